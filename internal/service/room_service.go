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

// ErrRoomNotFound 教室不存在
var ErrRoomNotFound = errors.New("教室不存在")

// RoomService 教室名录业务接口
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest, createdBy string) (*dto.RoomResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RoomResponse, error)
	List(ctx context.Context) ([]dto.RoomResponse, error)
	Search(ctx context.Context, query string) ([]dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
}

type roomService struct {
	repo     *repository.Repository
	snapshot *SnapshotHub
	logger   *zap.Logger
}

// NewRoomService 创建 RoomService 实例
func NewRoomService(repo *repository.Repository, snapshot *SnapshotHub, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, snapshot: snapshot, logger: logger}
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest, createdBy string) (*dto.RoomResponse, error) {
	room := &model.Room{
		Name:     strings.TrimSpace(req.Name),
		Block:    req.Block,
		Floor:    req.Floor,
		RoomType: req.RoomType,
		Capacity: req.Capacity,
	}
	room.CreatedBy = &createdBy
	room.UpdatedBy = &createdBy

	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.logger.Error("创建教室失败", zap.Error(err))
		return nil, err
	}

	s.snapshot.Notify(ctx, CollectionRooms)
	return toRoomResponse(room), nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询教室失败", zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) List(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		s.logger.Error("查询教室列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, *toRoomResponse(&rooms[i]))
	}
	return out, nil
}

// Search 按名称或楼栋不区分大小写子串匹配；空查询返回全量
func (s *roomService) Search(ctx context.Context, query string) ([]dto.RoomResponse, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	out := make([]dto.RoomResponse, 0, len(all))
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Block), q) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *roomService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Room.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("删除教室失败", zap.Error(err))
		return err
	}
	s.snapshot.Notify(ctx, CollectionRooms)
	return nil
}

func toRoomResponse(r *model.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:       r.RoomID,
		Name:     r.Name,
		Block:    r.Block,
		Floor:    r.Floor,
		RoomType: r.RoomType,
		Capacity: r.Capacity,
	}
}
