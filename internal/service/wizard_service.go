package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/model"
	"github.com/shafqatdeveloper/campus-navigator/internal/repository"
	"github.com/shafqatdeveloper/campus-navigator/internal/wizard"
	pkgerrors "github.com/shafqatdeveloper/campus-navigator/pkg/errors"
)

var (
	// ErrTimetableConflict 同一 (年份, 学期, 班级) 的时间表已存在
	ErrTimetableConflict = errors.New("该年份、学期与班级的时间表已存在")
	// ErrWizardNotSubmittable 会话未到可提交状态
	ErrWizardNotSubmittable = errors.New("向导尚未完成，无法提交")
)

// WizardService 时间表创建向导
// 会话保存在 Redis 中，按管理员维度隔离；提交成功后会话销毁，
// 提交失败（含唯一性冲突）时会话原样保留
type WizardService interface {
	Start(ctx context.Context, adminID string) (*dto.WizardStateResponse, error)
	Get(ctx context.Context, adminID string) (*dto.WizardStateResponse, error)
	SetYear(ctx context.Context, adminID string, year int) (*dto.WizardStateResponse, error)
	SetSession(ctx context.Context, adminID string, session string) (*dto.WizardStateResponse, error)
	SetSection(ctx context.Context, adminID string, section string) (*dto.WizardStateResponse, error)
	SetDayOff(ctx context.Context, adminID string, req *dto.SetDayOffRequest) (*dto.WizardStateResponse, error)
	SetSlot(ctx context.Context, adminID string, req *dto.SetSlotRequest) (*dto.WizardStateResponse, error)
	Next(ctx context.Context, adminID string) (*dto.WizardStateResponse, error)
	Back(ctx context.Context, adminID string) (*dto.WizardStateResponse, error)
	Submit(ctx context.Context, adminID string) (*dto.WizardSubmitResponse, error)
	Cancel(ctx context.Context, adminID string) error
	Options(now time.Time) *dto.WizardOptionsResponse
}

type wizardService struct {
	repo     *repository.Repository
	store    repository.WizardStore
	snapshot *SnapshotHub
	logger   *zap.Logger
}

// NewWizardService 创建 WizardService 实例
func NewWizardService(
	repo *repository.Repository,
	store repository.WizardStore,
	snapshot *SnapshotHub,
	logger *zap.Logger,
) WizardService {
	return &wizardService{repo: repo, store: store, snapshot: snapshot, logger: logger}
}

// Start 开启新会话；已有进行中的会话时直接覆盖
func (s *wizardService) Start(ctx context.Context, adminID string) (*dto.WizardStateResponse, error) {
	session := wizard.NewSession(uuid.New().String(), time.Now())
	if err := s.store.Save(ctx, adminID, session); err != nil {
		s.logger.Error("保存向导会话失败", zap.Error(err))
		return nil, err
	}
	return toWizardState(session), nil
}

func (s *wizardService) Get(ctx context.Context, adminID string) (*dto.WizardStateResponse, error) {
	session, err := s.store.Get(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return toWizardState(session), nil
}

func (s *wizardService) SetYear(ctx context.Context, adminID string, year int) (*dto.WizardStateResponse, error) {
	return s.mutate(ctx, adminID, func(session *wizard.Session) error {
		return session.SetYear(year, time.Now())
	})
}

func (s *wizardService) SetSession(ctx context.Context, adminID string, term string) (*dto.WizardStateResponse, error) {
	return s.mutate(ctx, adminID, func(session *wizard.Session) error {
		return session.SetTerm(term)
	})
}

func (s *wizardService) SetSection(ctx context.Context, adminID string, section string) (*dto.WizardStateResponse, error) {
	return s.mutate(ctx, adminID, func(session *wizard.Session) error {
		return session.SetSection(section)
	})
}

func (s *wizardService) SetDayOff(ctx context.Context, adminID string, req *dto.SetDayOffRequest) (*dto.WizardStateResponse, error) {
	return s.mutate(ctx, adminID, func(session *wizard.Session) error {
		return session.SetDayOff(req.Day, req.DayOff)
	})
}

// SetSlot 更新单个节次；lecture 与 no_lecture 可分别或同时提供
func (s *wizardService) SetSlot(ctx context.Context, adminID string, req *dto.SetSlotRequest) (*dto.WizardStateResponse, error) {
	return s.mutate(ctx, adminID, func(session *wizard.Session) error {
		if req.Lecture != nil {
			if err := session.SetSlotLecture(req.Day, req.Slot, *req.Lecture); err != nil {
				return err
			}
		}
		if req.NoLecture != nil {
			if err := session.SetSlotNoLecture(req.Day, req.Slot, *req.NoLecture); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *wizardService) Next(ctx context.Context, adminID string) (*dto.WizardStateResponse, error) {
	return s.mutate(ctx, adminID, func(session *wizard.Session) error {
		return session.Next()
	})
}

func (s *wizardService) Back(ctx context.Context, adminID string) (*dto.WizardStateResponse, error) {
	return s.mutate(ctx, adminID, func(session *wizard.Session) error {
		return session.Back()
	})
}

// Submit 将会话内容落库为时间表
// 失败时（含唯一性冲突）不改动会话，管理员可修改后重试；
// 成功后销毁会话并广播 timetables 快照
func (s *wizardService) Submit(ctx context.Context, adminID string) (*dto.WizardSubmitResponse, error) {
	session, err := s.store.Get(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !session.CanSubmit() {
		return nil, ErrWizardNotSubmittable
	}

	tt := &model.Timetable{
		Year:      session.Year,
		Session:   session.Term,
		Section:   session.Section,
		Schedule:  session.Schedule,
		CreatedBy: &adminID,
	}
	if err := s.repo.Timetable.Create(ctx, tt); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrTimetableConflict
		}
		s.logger.Error("时间表落库失败", zap.Error(err))
		return nil, err
	}

	if err := s.store.Delete(ctx, adminID); err != nil {
		// 会话清理失败不影响已创建的时间表
		s.logger.Warn("向导会话清理失败", zap.Error(err))
	}

	s.snapshot.Notify(ctx, CollectionTimetables)

	return &dto.WizardSubmitResponse{
		TimetableID: tt.TimetableID,
		Title:       tt.Title(),
	}, nil
}

// Cancel 放弃会话，所有中间编辑被丢弃
func (s *wizardService) Cancel(ctx context.Context, adminID string) error {
	return s.store.Delete(ctx, adminID)
}

// Options 向导各步骤的可选项
func (s *wizardService) Options(now time.Time) *dto.WizardOptionsResponse {
	years := make([]int, 0, now.Year()+2-wizard.MinYear)
	for y := wizard.MinYear; y <= now.Year()+1; y++ {
		years = append(years, y)
	}
	return &dto.WizardOptionsResponse{
		Years:    years,
		Sessions: []string{wizard.SessionSpring, wizard.SessionFall},
		Sections: append([]string(nil), wizard.Sections...),
	}
}

// mutate 读取会话、应用变更、写回；变更失败时不写回
func (s *wizardService) mutate(ctx context.Context, adminID string, fn func(*wizard.Session) error) (*dto.WizardStateResponse, error) {
	session, err := s.store.Get(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, adminID, session); err != nil {
		s.logger.Error("保存向导会话失败", zap.Error(err))
		return nil, err
	}
	return toWizardState(session), nil
}

func toWizardState(session *wizard.Session) *dto.WizardStateResponse {
	return &dto.WizardStateResponse{
		ID:       session.ID,
		Step:     string(session.Step),
		Year:     session.Year,
		Session:  session.Term,
		Section:  session.Section,
		Schedule: session.Schedule,
	}
}
