package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/model"
	"github.com/shafqatdeveloper/campus-navigator/internal/repository"
)

// ErrTeacherNotFound 教师不存在
var ErrTeacherNotFound = errors.New("教师不存在")

// TeacherService 教师名录业务接口
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest, createdBy string) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	Search(ctx context.Context, query string) ([]dto.TeacherResponse, error)
	Delete(ctx context.Context, id string) error
}

type teacherService struct {
	repo     *repository.Repository
	snapshot *SnapshotHub
	logger   *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, snapshot *SnapshotHub, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, snapshot: snapshot, logger: logger}
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest, createdBy string) (*dto.TeacherResponse, error) {
	teacher := &model.Teacher{
		Name:          strings.TrimSpace(req.Name),
		Qualification: req.Qualification,
		Department:    req.Department,
		Expertise:     req.Expertise,
		Office:        req.Office,
		Email:         req.Email,
		Phone:         req.Phone,
		Bio:           req.Bio,
	}
	teacher.CreatedBy = &createdBy
	teacher.UpdatedBy = &createdBy

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}

	s.snapshot.Notify(ctx, CollectionTeachers)
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		out = append(out, *toTeacherResponse(&teachers[i]))
	}
	return out, nil
}

// Search 按姓名或院系不区分大小写子串匹配；空查询返回全量
func (s *teacherService) Search(ctx context.Context, query string) ([]dto.TeacherResponse, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	out := make([]dto.TeacherResponse, 0, len(all))
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Department), q) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *teacherService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("删除教师失败", zap.Error(err))
		return err
	}
	s.snapshot.Notify(ctx, CollectionTeachers)
	return nil
}

func toTeacherResponse(t *model.Teacher) *dto.TeacherResponse {
	return &dto.TeacherResponse{
		ID:            t.TeacherID,
		Name:          t.Name,
		Qualification: t.Qualification,
		Department:    t.Department,
		Expertise:     t.Expertise,
		Office:        t.Office,
		Email:         t.Email,
		Phone:         t.Phone,
		Bio:           t.Bio,
	}
}
