package dto

import "github.com/shafqatdeveloper/campus-navigator/internal/schedule"

// ── 创建向导 DTO ──

// SetYearRequest 选择年份
type SetYearRequest struct {
	Year int `json:"year" binding:"required"`
}

// SetSessionRequest 选择学期
type SetSessionRequest struct {
	Session string `json:"session" binding:"required"`
}

// SetSectionRequest 选择班级
type SetSectionRequest struct {
	Section string `json:"section" binding:"required"`
}

// SetDayOffRequest 标记整日停课
type SetDayOffRequest struct {
	Day    string `json:"day" binding:"required"`
	DayOff bool   `json:"day_off"`
}

// SetSlotRequest 更新单个节次
// no_lecture 为 true 时课程名被清空；填写课程名不会清除 no_lecture 标志
type SetSlotRequest struct {
	Day       string  `json:"day"  binding:"required"`
	Slot      int     `json:"slot" binding:"required,min=1,max=5"`
	Lecture   *string `json:"lecture,omitempty"`
	NoLecture *bool   `json:"no_lecture,omitempty"`
}

// WizardStateResponse 向导会话状态响应
type WizardStateResponse struct {
	ID       string                `json:"id"`
	Step     string                `json:"step"`
	Year     int                   `json:"year,omitempty"`
	Session  string                `json:"session,omitempty"`
	Section  string                `json:"section,omitempty"`
	Schedule schedule.WeekSchedule `json:"schedule,omitempty"`
}

// WizardSubmitResponse 提交成功响应
type WizardSubmitResponse struct {
	TimetableID string `json:"timetable_id"`
	Title       string `json:"title"`
}

// WizardOptionsResponse 向导可选项（年份范围、学期、班级）
type WizardOptionsResponse struct {
	Years    []int    `json:"years"`
	Sessions []string `json:"sessions"`
	Sections []string `json:"sections"`
}
