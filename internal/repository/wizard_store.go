package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shafqatdeveloper/campus-navigator/internal/wizard"
	"github.com/shafqatdeveloper/campus-navigator/pkg/redis"
)

var (
	// ErrWizardSessionNotFound 向导会话不存在或已过期
	ErrWizardSessionNotFound = errors.New("向导会话不存在或已过期")
	// ErrSessionStoreUnavailable Redis 未连接，向导功能降级不可用
	ErrSessionStoreUnavailable = errors.New("会话存储不可用")
)

// WizardStore 向导会话存储接口
// 会话按管理员维度保存，每个管理员同时只有一个进行中的会话
type WizardStore interface {
	Save(ctx context.Context, adminID string, session *wizard.Session) error
	Get(ctx context.Context, adminID string) (*wizard.Session, error)
	Delete(ctx context.Context, adminID string) error
}

const wizardKeyPrefix = "wizard:session:"

// wizardTTL 会话闲置过期时间；每次保存刷新
const wizardTTL = 2 * time.Hour

type wizardStore struct {
	rdb *redis.Client
}

// NewWizardStore 创建基于 Redis 的 WizardStore
func NewWizardStore(rdb *redis.Client) WizardStore {
	return &wizardStore{rdb: rdb}
}

func (s *wizardStore) Save(ctx context.Context, adminID string, session *wizard.Session) error {
	if s.rdb == nil {
		return ErrSessionStoreUnavailable
	}
	return s.rdb.SetJSON(ctx, wizardKeyPrefix+adminID, session, wizardTTL)
}

func (s *wizardStore) Get(ctx context.Context, adminID string) (*wizard.Session, error) {
	if s.rdb == nil {
		return nil, ErrSessionStoreUnavailable
	}
	var session wizard.Session
	err := s.rdb.GetJSON(ctx, wizardKeyPrefix+adminID, &session)
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return nil, ErrWizardSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *wizardStore) Delete(ctx context.Context, adminID string) error {
	if s.rdb == nil {
		return ErrSessionStoreUnavailable
	}
	return s.rdb.Delete(ctx, wizardKeyPrefix+adminID)
}
