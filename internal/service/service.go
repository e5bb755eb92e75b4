package service

import (
	"go.uber.org/zap"

	"github.com/shafqatdeveloper/campus-navigator/config"
	"github.com/shafqatdeveloper/campus-navigator/internal/repository"
	"github.com/shafqatdeveloper/campus-navigator/pkg/jwt"
	"github.com/shafqatdeveloper/campus-navigator/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Teacher   TeacherService
	Room      RoomService
	Timetable TimetableService
	Wizard    WizardService
	Ask       AskService
	Navigate  NavigateService
	Export    ExportService
	Snapshot  *SnapshotHub
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	wizardStore repository.WizardStore,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	snapshot := NewSnapshotHub(repo, logger)
	timetable := NewTimetableService(repo, snapshot, logger)

	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Teacher:   NewTeacherService(repo, snapshot, logger),
		Room:      NewRoomService(repo, snapshot, logger),
		Timetable: timetable,
		Wizard:    NewWizardService(repo, wizardStore, snapshot, logger),
		Ask:       NewAskService(&cfg.Assistant, logger),
		Navigate:  NewNavigateService(logger),
		Export:    NewExportService(repo, logger),
		Snapshot:  snapshot,
	}
}
