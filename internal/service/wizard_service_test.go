package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/repository"
	"github.com/shafqatdeveloper/campus-navigator/internal/wizard"
)

// ── 测试辅助 ──

func setupTestWizardService() (WizardService, *mockTimetableRepo, *mockWizardStore) {
	ttRepo := newMockTimetableRepo()
	repo := &repository.Repository{
		Admin:     newMockAdminRepo(),
		Teacher:   newMockTeacherRepo(),
		Room:      newMockRoomRepo(),
		Timetable: ttRepo,
	}
	store := newMockWizardStore()
	logger := zap.NewNop()
	svc := NewWizardService(repo, store, NewSnapshotHub(repo, logger), logger)
	return svc, ttRepo, store
}

// completeWizard 走完整四步到可提交状态
func completeWizard(t *testing.T, svc WizardService, adminID string) {
	t.Helper()
	ctx := context.Background()

	if _, err := svc.Start(ctx, adminID); err != nil {
		t.Fatalf("Start 失败: %v", err)
	}
	if _, err := svc.SetYear(ctx, adminID, time.Now().Year()); err != nil {
		t.Fatalf("SetYear 失败: %v", err)
	}
	if _, err := svc.Next(ctx, adminID); err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if _, err := svc.SetSession(ctx, adminID, wizard.SessionFall); err != nil {
		t.Fatalf("SetSession 失败: %v", err)
	}
	if _, err := svc.Next(ctx, adminID); err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if _, err := svc.SetSection(ctx, adminID, "A"); err != nil {
		t.Fatalf("SetSection 失败: %v", err)
	}
	if _, err := svc.Next(ctx, adminID); err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
}

// ── 流程测试 ──

func TestWizardService_FullFlow(t *testing.T) {
	svc, ttRepo, store := setupTestWizardService()
	ctx := context.Background()

	completeWizard(t, svc, "admin-001")

	lecture := "Data Structures"
	if _, err := svc.SetSlot(ctx, "admin-001", &dto.SetSlotRequest{Day: "Monday", Slot: 1, Lecture: &lecture}); err != nil {
		t.Fatalf("SetSlot 失败: %v", err)
	}

	result, err := svc.Submit(ctx, "admin-001")
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}
	if result.TimetableID == "" {
		t.Error("提交成功应返回时间表 ID")
	}

	tt, err := ttRepo.GetByID(ctx, result.TimetableID)
	if err != nil {
		t.Fatalf("落库的时间表应可查询: %v", err)
	}
	if tt.Schedule["Monday"].Slots[1].Lecture != "Data Structures" {
		t.Error("课表内容未正确落库")
	}

	// 提交成功后会话销毁
	if _, err := store.Get(ctx, "admin-001"); !errors.Is(err, repository.ErrWizardSessionNotFound) {
		t.Errorf("提交成功后会话应销毁，实际: %v", err)
	}
}

func TestWizardService_Submit_NotSubmittable(t *testing.T) {
	svc, _, _ := setupTestWizardService()
	ctx := context.Background()

	if _, err := svc.Start(ctx, "admin-001"); err != nil {
		t.Fatalf("Start 失败: %v", err)
	}

	// 第一步就提交
	_, err := svc.Submit(ctx, "admin-001")
	if !errors.Is(err, ErrWizardNotSubmittable) {
		t.Errorf("期望 ErrWizardNotSubmittable，实际: %v", err)
	}
}

func TestWizardService_Submit_ConflictKeepsSession(t *testing.T) {
	svc, _, store := setupTestWizardService()
	ctx := context.Background()

	// 第一个管理员创建 (当前年, FA, A)
	completeWizard(t, svc, "admin-001")
	if _, err := svc.Submit(ctx, "admin-001"); err != nil {
		t.Fatalf("首次提交应成功: %v", err)
	}

	// 第二个管理员走到相同组合
	completeWizard(t, svc, "admin-002")
	lecture := "Physics"
	svc.SetSlot(ctx, "admin-002", &dto.SetSlotRequest{Day: "Tuesday", Slot: 2, Lecture: &lecture})

	_, err := svc.Submit(ctx, "admin-002")
	if !errors.Is(err, ErrTimetableConflict) {
		t.Fatalf("期望 ErrTimetableConflict，实际: %v", err)
	}

	// 提交失败后会话原样保留，编辑内容不丢失
	session, err := store.Get(ctx, "admin-002")
	if err != nil {
		t.Fatalf("冲突后会话应保留: %v", err)
	}
	if session.Step != wizard.StepBuildSchedule {
		t.Errorf("冲突后应停留在编辑步骤，实际 %s", session.Step)
	}
	if session.Schedule["Tuesday"].Slots[2].Lecture != "Physics" {
		t.Error("冲突后课表编辑不应丢失")
	}

	// 修正班级后可重新提交
	if _, err := svc.Back(ctx, "admin-002"); err != nil {
		t.Fatalf("Back 失败: %v", err)
	}
	if _, err := svc.SetSection(ctx, "admin-002", "B"); err != nil {
		t.Fatalf("SetSection 失败: %v", err)
	}
	if _, err := svc.Next(ctx, "admin-002"); err != nil {
		t.Fatalf("Next 失败: %v", err)
	}
	if _, err := svc.Submit(ctx, "admin-002"); err != nil {
		t.Fatalf("修正后提交应成功: %v", err)
	}
}

func TestWizardService_Cancel_DiscardsSession(t *testing.T) {
	svc, ttRepo, store := setupTestWizardService()
	ctx := context.Background()

	completeWizard(t, svc, "admin-001")
	if err := svc.Cancel(ctx, "admin-001"); err != nil {
		t.Fatalf("Cancel 失败: %v", err)
	}

	if _, err := store.Get(ctx, "admin-001"); !errors.Is(err, repository.ErrWizardSessionNotFound) {
		t.Errorf("取消后会话应销毁，实际: %v", err)
	}
	if len(ttRepo.timetables) != 0 {
		t.Error("取消不应产生时间表")
	}
}

func TestWizardService_Get_NoSession(t *testing.T) {
	svc, _, _ := setupTestWizardService()

	_, err := svc.Get(context.Background(), "admin-001")
	if !errors.Is(err, repository.ErrWizardSessionNotFound) {
		t.Errorf("期望 ErrWizardSessionNotFound，实际: %v", err)
	}
}

func TestWizardService_SetSlot_NoLectureClearsLecture(t *testing.T) {
	svc, _, _ := setupTestWizardService()
	ctx := context.Background()

	completeWizard(t, svc, "admin-001")

	lecture := "AI"
	svc.SetSlot(ctx, "admin-001", &dto.SetSlotRequest{Day: "Wednesday", Slot: 3, Lecture: &lecture})

	noLecture := true
	state, err := svc.SetSlot(ctx, "admin-001", &dto.SetSlotRequest{Day: "Wednesday", Slot: 3, NoLecture: &noLecture})
	if err != nil {
		t.Fatalf("SetSlot 失败: %v", err)
	}

	entry := state.Schedule["Wednesday"].Slots[3]
	if entry.Lecture != "" || !entry.NoLecture {
		t.Errorf("noLecture 应清空课程名: %+v", entry)
	}
}

func TestWizardService_Options(t *testing.T) {
	svc, _, _ := setupTestWizardService()

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	opts := svc.Options(now)

	if opts.Years[0] != wizard.MinYear {
		t.Errorf("年份下限应为 %d，实际 %d", wizard.MinYear, opts.Years[0])
	}
	if opts.Years[len(opts.Years)-1] != 2027 {
		t.Errorf("年份上限应为当前+1，实际 %d", opts.Years[len(opts.Years)-1])
	}
	if len(opts.Sessions) != 2 {
		t.Errorf("学期应为 SP/FA 两项，实际 %d 项", len(opts.Sessions))
	}
	if len(opts.Sections) != 11 {
		t.Errorf("班级应为 A..K 共 11 项，实际 %d 项", len(opts.Sections))
	}
}
