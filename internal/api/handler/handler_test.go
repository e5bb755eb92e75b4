package handler

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/model"
	"github.com/shafqatdeveloper/campus-navigator/internal/repository"
	"github.com/shafqatdeveloper/campus-navigator/internal/service"
	"github.com/shafqatdeveloper/campus-navigator/pkg/jwt"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.AdminResponse
	meErr         error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.AdminResponse, error) {
	return m.meResult, m.meErr
}

// ── Mock TeacherService ──

type mockTeacherService struct {
	createResult *dto.TeacherResponse
	createErr    error
	getResult    *dto.TeacherResponse
	getErr       error
	searchResult []dto.TeacherResponse
	searchErr    error
	searchQuery  string
	deleteErr    error
}

func (m *mockTeacherService) Create(_ context.Context, _ *dto.CreateTeacherRequest, _ string) (*dto.TeacherResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTeacherService) GetByID(_ context.Context, _ string) (*dto.TeacherResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTeacherService) List(_ context.Context) ([]dto.TeacherResponse, error) {
	return m.searchResult, m.searchErr
}
func (m *mockTeacherService) Search(_ context.Context, query string) ([]dto.TeacherResponse, error) {
	m.searchQuery = query
	return m.searchResult, m.searchErr
}
func (m *mockTeacherService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock NavigateService ──

type mockNavigateService struct {
	navResult *dto.NavigateResponse
	navErr    error
	locations *dto.LocationListResponse
}

func (m *mockNavigateService) Navigate(_, _ string) (*dto.NavigateResponse, error) {
	return m.navResult, m.navErr
}
func (m *mockNavigateService) Locations() *dto.LocationListResponse {
	return m.locations
}

// ── Mock WizardService ──

type mockWizardService struct {
	stateResult  *dto.WizardStateResponse
	stateErr     error
	submitResult *dto.WizardSubmitResponse
	submitErr    error
	cancelErr    error
}

func (m *mockWizardService) Start(_ context.Context, _ string) (*dto.WizardStateResponse, error) {
	return m.stateResult, m.stateErr
}
func (m *mockWizardService) Get(_ context.Context, _ string) (*dto.WizardStateResponse, error) {
	return m.stateResult, m.stateErr
}
func (m *mockWizardService) SetYear(_ context.Context, _ string, _ int) (*dto.WizardStateResponse, error) {
	return m.stateResult, m.stateErr
}
func (m *mockWizardService) SetSession(_ context.Context, _ string, _ string) (*dto.WizardStateResponse, error) {
	return m.stateResult, m.stateErr
}
func (m *mockWizardService) SetSection(_ context.Context, _ string, _ string) (*dto.WizardStateResponse, error) {
	return m.stateResult, m.stateErr
}
func (m *mockWizardService) SetDayOff(_ context.Context, _ string, _ *dto.SetDayOffRequest) (*dto.WizardStateResponse, error) {
	return m.stateResult, m.stateErr
}
func (m *mockWizardService) SetSlot(_ context.Context, _ string, _ *dto.SetSlotRequest) (*dto.WizardStateResponse, error) {
	return m.stateResult, m.stateErr
}
func (m *mockWizardService) Next(_ context.Context, _ string) (*dto.WizardStateResponse, error) {
	return m.stateResult, m.stateErr
}
func (m *mockWizardService) Back(_ context.Context, _ string) (*dto.WizardStateResponse, error) {
	return m.stateResult, m.stateErr
}
func (m *mockWizardService) Submit(_ context.Context, _ string) (*dto.WizardSubmitResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockWizardService) Cancel(_ context.Context, _ string) error {
	return m.cancelErr
}
func (m *mockWizardService) Options(_ time.Time) *dto.WizardOptionsResponse {
	return &dto.WizardOptionsResponse{
		Years:    []int{2023, 2024, 2025},
		Sessions: []string{"SP", "FA"},
		Sections: []string{"A", "B", "C"},
	}
}

// ═══════════════════════════════════════════════════════════
// 测试辅助
// ═══════════════════════════════════════════════════════════

// withAdmin 模拟 JWT 中间件注入的认证上下文
func withAdmin(adminID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("admin_id", adminID)
		c.Next()
	}
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) *response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法 JSON: %v; body=%s", err, w.Body.String())
	}
	return &resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    900,
			Admin:        dto.AdminResponse{ID: "admin-1", Name: "管理员", Email: "admin@campus.edu"},
		},
	}
	h := NewAuthHandler(svc)

	router := gin.New()
	router.POST("/login", h.Login)

	w := doJSON(router, http.MethodPost, "/login", dto.LoginRequest{
		Email:    "admin@campus.edu",
		Password: "secret123",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d: %s", w.Code, w.Body.String())
	}
	resp := parseEnvelope(t, w)
	if resp.Code != 0 {
		t.Errorf("期望业务码 0, 实际 %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	router := gin.New()
	router.POST("/login", h.Login)

	w := doJSON(router, http.MethodPost, "/login", dto.LoginRequest{
		Email:    "admin@campus.edu",
		Password: "wrong",
	})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401, 实际 %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp.Code != 11001 {
		t.Errorf("期望业务码 11001, 实际 %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	router := gin.New()
	router.POST("/login", h.Login)

	// 缺少必填字段
	w := doJSON(router, http.MethodPost, "/login", map[string]string{"email": "not-an-email"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400, 实际 %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp.Code != 10001 {
		t.Errorf("期望业务码 10001, 实际 %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TeacherHandler
// ═══════════════════════════════════════════════════════════

func TestTeacherHandler_List_PassesQuery(t *testing.T) {
	svc := &mockTeacherService{
		searchResult: []dto.TeacherResponse{{ID: "t1", Name: "Dr. Ahmed Khan"}},
	}
	h := NewTeacherHandler(svc)

	router := gin.New()
	router.GET("/teachers", h.List)

	w := doJSON(router, http.MethodGet, "/teachers?q=ahmed", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d", w.Code)
	}
	if svc.searchQuery != "ahmed" {
		t.Errorf("期望查询词 ahmed, 实际 %q", svc.searchQuery)
	}
}

func TestTeacherHandler_Get_NotFound(t *testing.T) {
	svc := &mockTeacherService{getErr: service.ErrTeacherNotFound}
	h := NewTeacherHandler(svc)

	router := gin.New()
	router.GET("/teachers/:id", h.Get)

	w := doJSON(router, http.MethodGet, "/teachers/no-such-id", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404, 实际 %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp.Code != 12001 {
		t.Errorf("期望业务码 12001, 实际 %d", resp.Code)
	}
}

func TestTeacherHandler_Create_RequiresAuth(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{})

	// 不挂 withAdmin，模拟未经过 JWT 中间件
	router := gin.New()
	router.POST("/teachers", h.Create)

	w := doJSON(router, http.MethodPost, "/teachers", dto.CreateTeacherRequest{Name: "Dr. Sara Ali"})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401, 实际 %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp.Code != 10002 {
		t.Errorf("期望业务码 10002, 实际 %d", resp.Code)
	}
}

func TestTeacherHandler_Create_Success(t *testing.T) {
	svc := &mockTeacherService{
		createResult: &dto.TeacherResponse{ID: "t1", Name: "Dr. Sara Ali"},
	}
	h := NewTeacherHandler(svc)

	router := gin.New()
	router.POST("/teachers", withAdmin("admin-1"), h.Create)

	w := doJSON(router, http.MethodPost, "/teachers", dto.CreateTeacherRequest{Name: "Dr. Sara Ali"})

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201, 实际 %d: %s", w.Code, w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// NavigateHandler
// ═══════════════════════════════════════════════════════════

func TestNavigateHandler_Navigate_Success(t *testing.T) {
	svc := &mockNavigateService{
		navResult: &dto.NavigateResponse{
			From:         "Entrance",
			To:           "Digital Library",
			Distance:     18,
			Path:         []string{"Entrance", "Corridor_Main", "Digital_Library"},
			Instructions: []string{"Go forward for 5 meters"},
		},
	}
	h := NewNavigateHandler(svc)

	router := gin.New()
	router.POST("/navigate", h.Navigate)

	w := doJSON(router, http.MethodPost, "/navigate", dto.NavigateRequest{From: "entrance", To: "digital library"})

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d", w.Code)
	}
}

func TestNavigateHandler_Navigate_LocationNotFound(t *testing.T) {
	svc := &mockNavigateService{navErr: service.ErrLocationNotFound}
	h := NewNavigateHandler(svc)

	router := gin.New()
	router.POST("/navigate", h.Navigate)

	w := doJSON(router, http.MethodPost, "/navigate", dto.NavigateRequest{From: "Atlantis", To: "Entrance"})

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404, 实际 %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp.Code != 17001 {
		t.Errorf("期望业务码 17001, 实际 %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// WizardHandler
// ═══════════════════════════════════════════════════════════

func TestWizardHandler_Get_SessionNotFound(t *testing.T) {
	svc := &mockWizardService{stateErr: repository.ErrWizardSessionNotFound}
	h := NewWizardHandler(svc)

	router := gin.New()
	router.GET("/wizard", withAdmin("admin-1"), h.Get)

	w := doJSON(router, http.MethodGet, "/wizard", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404, 实际 %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp.Code != 15001 {
		t.Errorf("期望业务码 15001, 实际 %d", resp.Code)
	}
}

func TestWizardHandler_Submit_Conflict(t *testing.T) {
	svc := &mockWizardService{submitErr: service.ErrTimetableConflict}
	h := NewWizardHandler(svc)

	router := gin.New()
	router.POST("/wizard/submit", withAdmin("admin-1"), h.Submit)

	w := doJSON(router, http.MethodPost, "/wizard/submit", nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409, 实际 %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp.Code != 15004 {
		t.Errorf("期望业务码 15004, 实际 %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SubscribeHandler
// ═══════════════════════════════════════════════════════════

// stubTeacherRepo 只读教师仓库桩，供快照订阅流测试
type stubTeacherRepo struct {
	teachers []model.Teacher
}

func (s *stubTeacherRepo) Create(_ context.Context, _ *model.Teacher) error { return nil }
func (s *stubTeacherRepo) GetByID(_ context.Context, _ string) (*model.Teacher, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	return s.teachers, nil
}
func (s *stubTeacherRepo) Delete(_ context.Context, _ string) error { return nil }

func TestSubscribeHandler_UnknownCollection(t *testing.T) {
	hub := service.NewSnapshotHub(&repository.Repository{}, zap.NewNop())
	h := NewSubscribeHandler(hub)

	router := gin.New()
	router.GET("/subscribe/:collection", h.Subscribe)

	w := doJSON(router, http.MethodGet, "/subscribe/unicorns", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404, 实际 %d", w.Code)
	}
	resp := parseEnvelope(t, w)
	if resp.Code != 18001 {
		t.Errorf("期望业务码 18001, 实际 %d", resp.Code)
	}
}

// 长连接不应被服务器写超时切断：建立真实 HTTP 连接，
// 确认首个快照事件到达后连接仍保持打开
func TestSubscribeHandler_StreamsInitialSnapshot(t *testing.T) {
	repo := &repository.Repository{
		Teacher: &stubTeacherRepo{teachers: []model.Teacher{{TeacherID: "t1", Name: "Dr. Ahmed Khan"}}},
	}
	hub := service.NewSnapshotHub(repo, zap.NewNop())
	h := NewSubscribeHandler(hub)

	router := gin.New()
	router.GET("/subscribe/:collection", h.Subscribe)

	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancelReq := context.WithCancel(context.Background())
	defer cancelReq()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/subscribe/teachers", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("订阅请求失败: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("Content-Type 应为 text/event-stream, 实际 %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	deadline := time.After(3 * time.Second)
	got := make(chan string, 1)
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if strings.HasPrefix(line, "data:") {
				got <- line
				return
			}
		}
	}()

	select {
	case line := <-got:
		if !strings.Contains(line, "Dr. Ahmed Khan") {
			t.Errorf("首个快照应包含已有数据, 实际 %q", line)
		}
	case <-deadline:
		t.Fatal("等待首个快照事件超时")
	}
}

func TestWizardHandler_Submit_Success(t *testing.T) {
	svc := &mockWizardService{
		submitResult: &dto.WizardSubmitResponse{TimetableID: "tt-1", Title: "2025 FA - Section B"},
	}
	h := NewWizardHandler(svc)

	router := gin.New()
	router.POST("/wizard/submit", withAdmin("admin-1"), h.Submit)

	w := doJSON(router, http.MethodPost, "/wizard/submit", nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201, 实际 %d: %s", w.Code, w.Body.String())
	}
}
