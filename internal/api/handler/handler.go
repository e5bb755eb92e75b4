package handler

import "github.com/shafqatdeveloper/campus-navigator/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Teacher   *TeacherHandler
	Room      *RoomHandler
	Timetable *TimetableHandler
	Wizard    *WizardHandler
	Ask       *AskHandler
	Navigate  *NavigateHandler
	Export    *ExportHandler
	Subscribe *SubscribeHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Teacher:   NewTeacherHandler(svc.Teacher),
		Room:      NewRoomHandler(svc.Room),
		Timetable: NewTimetableHandler(svc.Timetable),
		Wizard:    NewWizardHandler(svc.Wizard),
		Ask:       NewAskHandler(svc.Ask),
		Navigate:  NewNavigateHandler(svc.Navigate),
		Export:    NewExportHandler(svc.Export),
		Subscribe: NewSubscribeHandler(svc.Snapshot),
	}
}
