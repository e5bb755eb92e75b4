package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/model"
	"github.com/shafqatdeveloper/campus-navigator/internal/repository"
	"github.com/shafqatdeveloper/campus-navigator/internal/schedule"
)

// ErrTimetableNotFound 时间表不存在
var ErrTimetableNotFound = errors.New("时间表不存在")

// TimetableService 时间表查询与删除
// 创建入口在 WizardService：时间表只能通过向导提交产生
type TimetableService interface {
	List(ctx context.Context) ([]dto.TimetableSummaryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TimetableResponse, error)
	GetView(ctx context.Context, id string) (*dto.TimetableViewResponse, error)
	Delete(ctx context.Context, id string) error
}

type timetableService struct {
	repo     *repository.Repository
	snapshot *SnapshotHub
	logger   *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, snapshot *SnapshotHub, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, snapshot: snapshot, logger: logger}
}

func (s *timetableService) List(ctx context.Context) ([]dto.TimetableSummaryResponse, error) {
	tts, err := s.repo.Timetable.List(ctx)
	if err != nil {
		s.logger.Error("查询时间表列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.TimetableSummaryResponse, 0, len(tts))
	for i := range tts {
		t := &tts[i]
		out = append(out, dto.TimetableSummaryResponse{
			ID:        t.TimetableID,
			Year:      t.Year,
			Session:   t.Session,
			Section:   t.Section,
			Title:     t.Title(),
			CreatedAt: t.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *timetableService) GetByID(ctx context.Context, id string) (*dto.TimetableResponse, error) {
	tt, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TimetableResponse{
		ID:        tt.TimetableID,
		Year:      tt.Year,
		Session:   tt.Session,
		Section:   tt.Section,
		Title:     tt.Title(),
		Schedule:  tt.Schedule,
		CreatedAt: tt.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GetView 渲染时间表：固定节次表头 + 按展示优先级计算的单元格
func (s *timetableService) GetView(ctx context.Context, id string) (*dto.TimetableViewResponse, error) {
	tt, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TimetableViewResponse{
		ID:        tt.TimetableID,
		Title:     tt.Title(),
		TimeSlots: schedule.TimeSlots(),
		Break: dto.BreakResponse{
			Start: schedule.BreakStart,
			End:   schedule.BreakEnd,
			Label: schedule.BreakLabel,
		},
		Days: tt.Schedule.Render(),
	}, nil
}

func (s *timetableService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Timetable.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimetableNotFound
		}
		s.logger.Error("删除时间表失败", zap.Error(err))
		return err
	}
	s.snapshot.Notify(ctx, CollectionTimetables)
	return nil
}

func (s *timetableService) get(ctx context.Context, id string) (*model.Timetable, error) {
	tt, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("查询时间表失败", zap.Error(err))
		return nil, err
	}
	return tt, nil
}
