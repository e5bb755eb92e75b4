package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shafqatdeveloper/campus-navigator/internal/model"
	"github.com/shafqatdeveloper/campus-navigator/internal/repository"
	"github.com/shafqatdeveloper/campus-navigator/internal/wizard"
	pkgerrors "github.com/shafqatdeveloper/campus-navigator/pkg/errors"
)

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	admins map[string]*model.Admin
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	if a, ok := m.admins[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
	seq      int
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		m.seq++
		teacher.TeacherID = fmt.Sprintf("teacher-%d", m.seq)
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	result := make([]model.Teacher, 0, len(m.teachers))
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.teachers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.teachers, id)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
	seq   int
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		m.seq++
		room.RoomID = fmt.Sprintf("room-%d", m.seq)
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	result := make([]model.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.rooms[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rooms, id)
	return nil
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	timetables map[string]*model.Timetable
	seq        int
	failCreate error // 注入 Create 错误
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{timetables: make(map[string]*model.Timetable)}
}

func (m *mockTimetableRepo) Create(_ context.Context, tt *model.Timetable) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	for _, existing := range m.timetables {
		if existing.Year == tt.Year && existing.Session == tt.Session && existing.Section == tt.Section {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if tt.TimetableID == "" {
		m.seq++
		tt.TimetableID = fmt.Sprintf("tt-%d", m.seq)
	}
	m.timetables[tt.TimetableID] = tt
	return nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id string) (*model.Timetable, error) {
	if t, ok := m.timetables[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) List(_ context.Context) ([]model.Timetable, error) {
	result := make([]model.Timetable, 0, len(m.timetables))
	for _, t := range m.timetables {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.timetables[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.timetables, id)
	return nil
}

// ── Mock WizardStore ──

type mockWizardStore struct {
	sessions map[string]*wizard.Session
}

func newMockWizardStore() *mockWizardStore {
	return &mockWizardStore{sessions: make(map[string]*wizard.Session)}
}

func (m *mockWizardStore) Save(_ context.Context, adminID string, session *wizard.Session) error {
	m.sessions[adminID] = cloneWizardSession(session)
	return nil
}

func (m *mockWizardStore) Get(_ context.Context, adminID string) (*wizard.Session, error) {
	s, ok := m.sessions[adminID]
	if !ok {
		return nil, repository.ErrWizardSessionNotFound
	}
	return cloneWizardSession(s), nil
}

// cloneWizardSession 模拟 Redis 的序列化隔离：存取互不共享内存
func cloneWizardSession(s *wizard.Session) *wizard.Session {
	clone := *s
	if s.Schedule != nil {
		clone.Schedule = s.Schedule.Clone()
	}
	return &clone
}

func (m *mockWizardStore) Delete(_ context.Context, adminID string) error {
	delete(m.sessions, adminID)
	return nil
}
