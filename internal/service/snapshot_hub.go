package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/shafqatdeveloper/campus-navigator/internal/repository"
)

// ── 集合快照订阅 ──
//
// 订阅者在订阅时立即收到集合的完整快照，此后每次集合发生
// 写操作（新增/删除）都会收到新的完整快照。订阅通过返回的
// 取消函数或 Context 结束，取消后通道关闭。

// 可订阅集合
const (
	CollectionTeachers   = "teachers"
	CollectionRooms      = "rooms"
	CollectionTimetables = "timetables"
)

// ErrUnknownCollection 集合名不可订阅
var ErrUnknownCollection = errors.New("未知的集合名称")

// Snapshot 一次推送的完整集合内容
type Snapshot struct {
	Collection string      `json:"collection"`
	Data       interface{} `json:"data"`
}

// SnapshotHub 集合快照广播中心
type SnapshotHub struct {
	repo   *repository.Repository
	logger *zap.Logger

	mu   sync.RWMutex
	subs map[string]map[chan Snapshot]struct{}
}

// NewSnapshotHub 创建 SnapshotHub
func NewSnapshotHub(repo *repository.Repository, logger *zap.Logger) *SnapshotHub {
	return &SnapshotHub{
		repo:   repo,
		logger: logger,
		subs: map[string]map[chan Snapshot]struct{}{
			CollectionTeachers:   {},
			CollectionRooms:      {},
			CollectionTimetables: {},
		},
	}
}

// Subscribe 订阅集合快照
// 返回的通道先收到当前完整快照，之后在每次写操作后收到新快照；
// 调用取消函数或 ctx 结束后通道关闭
func (h *SnapshotHub) Subscribe(ctx context.Context, collection string) (<-chan Snapshot, func(), error) {
	h.mu.RLock()
	_, ok := h.subs[collection]
	h.mu.RUnlock()
	if !ok {
		return nil, nil, ErrUnknownCollection
	}

	initial, err := h.fetch(ctx, collection)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan Snapshot, 4)
	ch <- Snapshot{Collection: collection, Data: initial}

	h.mu.Lock()
	h.subs[collection][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[collection], ch)
			h.mu.Unlock()
			close(ch)
		})
	}

	// Context 结束时自动退订
	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel, nil
}

// Notify 集合发生写操作后重新拉取并广播完整快照
// 广播失败只记录日志，不影响触发写操作的请求
func (h *SnapshotHub) Notify(ctx context.Context, collection string) {
	h.mu.RLock()
	n := len(h.subs[collection])
	h.mu.RUnlock()
	if n == 0 {
		return
	}

	data, err := h.fetch(ctx, collection)
	if err != nil {
		h.logger.Error("快照拉取失败", zap.String("collection", collection), zap.Error(err))
		return
	}

	snap := Snapshot{Collection: collection, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[collection] {
		select {
		case ch <- snap:
		default:
			// 订阅者消费过慢时丢弃本次推送，下次写操作会再推最新快照
			h.logger.Warn("订阅通道已满，丢弃快照", zap.String("collection", collection))
		}
	}
}

func (h *SnapshotHub) fetch(ctx context.Context, collection string) (interface{}, error) {
	switch collection {
	case CollectionTeachers:
		return h.repo.Teacher.List(ctx)
	case CollectionRooms:
		return h.repo.Room.List(ctx)
	case CollectionTimetables:
		return h.repo.Timetable.List(ctx)
	default:
		return nil, ErrUnknownCollection
	}
}
