package schedule

// ── 课表渲染 ──
//
// 渲染优先级（与前端展示一致）：
//  1. 当日 dayOff → 所有节次显示"无课程安排"占位符
//  2. 节次 noLecture → 显示 Free（区别于未填写）
//  3. lecture 非空 → 显示课程名
//  4. 其余 → 占位符

// 单元格展示值
const (
	CellNoEntry = "—"
	CellFree    = "Free"
)

// RenderCell 计算单个节次的展示值
// 未知教学日或节次按未填写处理
func (ws WeekSchedule) RenderCell(day string, slotID int) string {
	ds, ok := ws[day]
	if !ok {
		return CellNoEntry
	}
	if ds.DayOff {
		return CellNoEntry
	}
	entry, ok := ds.Slots[slotID]
	if !ok {
		return CellNoEntry
	}
	if entry.NoLecture {
		return CellFree
	}
	if entry.Lecture != "" {
		return entry.Lecture
	}
	return CellNoEntry
}

// RenderedDay 单日渲染结果
type RenderedDay struct {
	Day    string   `json:"day"`
	DayOff bool     `json:"day_off"`
	Cells  []string `json:"cells"` // 按节次 1..5 顺序
}

// Render 渲染整周课表
// 行按 Monday..Friday，列按节次 1..5 的时间顺序
func (ws WeekSchedule) Render() []RenderedDay {
	out := make([]RenderedDay, 0, len(Days))
	for _, day := range Days {
		cells := make([]string, 0, SlotCount)
		for id := 1; id <= SlotCount; id++ {
			cells = append(cells, ws.RenderCell(day, id))
		}
		dayOff := false
		if ds, ok := ws[day]; ok {
			dayOff = ds.DayOff
		}
		out = append(out, RenderedDay{Day: day, DayOff: dayOff, Cells: cells})
	}
	return out
}
