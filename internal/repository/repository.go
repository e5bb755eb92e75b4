package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Admin     AdminRepository
	Teacher   TeacherRepository
	Room      RoomRepository
	Timetable TimetableRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Admin:     NewAdminRepo(db),
		Teacher:   NewTeacherRepo(db),
		Room:      NewRoomRepo(db),
		Timetable: NewTimetableRepo(db),
	}
}
