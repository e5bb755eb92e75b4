package model

import (
	"fmt"
	"time"

	"github.com/shafqatdeveloper/campus-navigator/internal/schedule"
)

// Timetable 班级时间表 — 对应 timetables
// (year, session, section) 组合唯一，由数据库唯一索引保证；
// 时间表创建后不提供编辑入口，只能删除后重建
type Timetable struct {
	TimetableID string                `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"timetable_id"`
	Year        int                   `gorm:"type:smallint;not null"                         json:"year"`
	Session     string                `gorm:"type:varchar(2);not null"                       json:"session"`
	Section     string                `gorm:"type:varchar(1);not null"                       json:"section"`
	Schedule    schedule.WeekSchedule `gorm:"type:jsonb;not null"                            json:"schedule"`
	CreatedAt   time.Time             `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	CreatedBy   *string               `gorm:"type:uuid"                                      json:"created_by,omitempty"`
}

// TableName 指定表名
func (Timetable) TableName() string { return "timetables" }

// Title 时间表展示标题，如 "2025 FA - Section B"
func (t *Timetable) Title() string {
	return fmt.Sprintf("%d %s - Section %s", t.Year, t.Session, t.Section)
}
