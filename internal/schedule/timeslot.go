package schedule

// TimeSlot 固定节次时间段（静态参考数据，不随时间表持久化）
type TimeSlot struct {
	ID    int    `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// 午休时间：第 3 节与第 4 节之间
const (
	BreakStart = "12:45"
	BreakEnd   = "13:40"
	BreakLabel = "Break: 12:45 - 01:40 PM"
)

var timeSlots = []TimeSlot{
	{ID: 1, Start: "08:30", End: "09:55", Label: "08:30 - 09:55 AM"},
	{ID: 2, Start: "09:55", End: "11:20", Label: "09:55 - 11:20 AM"},
	{ID: 3, Start: "11:20", End: "12:45", Label: "11:20 - 12:45 PM"},
	{ID: 4, Start: "13:40", End: "15:05", Label: "01:40 - 03:05 PM"},
	{ID: 5, Start: "15:05", End: "16:30", Label: "03:05 - 04:30 PM"},
}

// TimeSlots 返回 5 个固定节次的副本（按时间顺序）
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(timeSlots))
	copy(out, timeSlots)
	return out
}
