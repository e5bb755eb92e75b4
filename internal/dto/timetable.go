package dto

import "github.com/shafqatdeveloper/campus-navigator/internal/schedule"

// ── 时间表 DTO ──

// TimetableResponse 时间表完整响应
type TimetableResponse struct {
	ID        string                `json:"id"`
	Year      int                   `json:"year"`
	Session   string                `json:"session"`
	Section   string                `json:"section"`
	Title     string                `json:"title"`
	Schedule  schedule.WeekSchedule `json:"schedule"`
	CreatedAt string                `json:"created_at"`
}

// TimetableSummaryResponse 时间表列表项（不含课表网格）
type TimetableSummaryResponse struct {
	ID        string `json:"id"`
	Year      int    `json:"year"`
	Session   string `json:"session"`
	Section   string `json:"section"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// TimetableViewResponse 渲染后的时间表（前端直接展示）
type TimetableViewResponse struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	TimeSlots []schedule.TimeSlot    `json:"time_slots"`
	Break     BreakResponse          `json:"break"`
	Days      []schedule.RenderedDay `json:"days"`
}

// BreakResponse 午休时间段
type BreakResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// TimeSlotListResponse 固定节次响应
type TimeSlotListResponse struct {
	TimeSlots []schedule.TimeSlot `json:"time_slots"`
	Break     BreakResponse       `json:"break"`
}
