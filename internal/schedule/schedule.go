package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ── 周课表网格模型 ──
//
// 一份时间表是 5 个教学日 × 5 个固定节次的网格，JSON 结构与前端
// 提交的文档保持一致：
//
//	{"Monday":{"dayOff":false,"slots":{"1":{"lecture":"","noLecture":false},...}},...}
//
// 所有修改操作返回新副本，调用方持有的旧网格不受影响。

// Days 教学日，顺序即展示顺序
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// SlotCount 每日固定节次数
const SlotCount = 5

var (
	// ErrUnknownDay 教学日不在 Monday..Friday 范围内
	ErrUnknownDay = errors.New("未知教学日")
	// ErrSlotOutOfRange 节次编号不在 1..5 范围内
	ErrSlotOutOfRange = errors.New("节次越界")
)

// SlotEntry 单节次内容
// Lecture 与 NoLecture 互斥：NoLecture 置 true 时 Lecture 同步清空；
// 反向不成立（填写 Lecture 不会清掉 NoLecture），与原系统行为保持一致
type SlotEntry struct {
	Lecture   string `json:"lecture"`
	NoLecture bool   `json:"noLecture"`
}

// DaySchedule 单日课表
// DayOff 为 true 时整日停课，渲染时覆盖所有节次内容
type DaySchedule struct {
	DayOff bool              `json:"dayOff"`
	Slots  map[int]SlotEntry `json:"slots"`
}

// WeekSchedule 周课表：教学日名 → 当日课表
type WeekSchedule map[string]DaySchedule

// New 构建全新的空白周课表
// 每个教学日 dayOff=false，每个节次 {lecture:"", noLecture:false}，
// 各日各节次互不共享底层结构
func New() WeekSchedule {
	ws := make(WeekSchedule, len(Days))
	for _, day := range Days {
		slots := make(map[int]SlotEntry, SlotCount)
		for id := 1; id <= SlotCount; id++ {
			slots[id] = SlotEntry{}
		}
		ws[day] = DaySchedule{DayOff: false, Slots: slots}
	}
	return ws
}

// Clone 深拷贝整个网格
func (ws WeekSchedule) Clone() WeekSchedule {
	out := make(WeekSchedule, len(ws))
	for day, ds := range ws {
		slots := make(map[int]SlotEntry, len(ds.Slots))
		for id, entry := range ds.Slots {
			slots[id] = entry
		}
		out[day] = DaySchedule{DayOff: ds.DayOff, Slots: slots}
	}
	return out
}

// WithDayOff 返回仅替换指定日 dayOff 标志的新网格，其余内容不变
func (ws WeekSchedule) WithDayOff(day string, off bool) (WeekSchedule, error) {
	if _, ok := ws[day]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDay, day)
	}
	out := ws.Clone()
	ds := out[day]
	ds.DayOff = off
	out[day] = ds
	return out, nil
}

// WithLecture 返回仅替换指定节次课程名的新网格
// 注意：填写课程名不会清除 noLecture 标志（保留原系统的不对称行为）
func (ws WeekSchedule) WithLecture(day string, slotID int, lecture string) (WeekSchedule, error) {
	out, entry, err := ws.cloneFor(day, slotID)
	if err != nil {
		return nil, err
	}
	entry.Lecture = lecture
	out[day].Slots[slotID] = entry
	return out, nil
}

// WithNoLecture 返回仅替换指定节次空闲标志的新网格
// noLecture 置 true 时在同一次更新内将 lecture 清空（耦合清除是原子的）
func (ws WeekSchedule) WithNoLecture(day string, slotID int, noLecture bool) (WeekSchedule, error) {
	out, entry, err := ws.cloneFor(day, slotID)
	if err != nil {
		return nil, err
	}
	entry.NoLecture = noLecture
	if noLecture {
		entry.Lecture = ""
	}
	out[day].Slots[slotID] = entry
	return out, nil
}

func (ws WeekSchedule) cloneFor(day string, slotID int) (WeekSchedule, SlotEntry, error) {
	ds, ok := ws[day]
	if !ok {
		return nil, SlotEntry{}, fmt.Errorf("%w: %s", ErrUnknownDay, day)
	}
	entry, ok := ds.Slots[slotID]
	if !ok {
		return nil, SlotEntry{}, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slotID)
	}
	return ws.Clone(), entry, nil
}

// Validate 校验网格结构完整（5 日 × 5 节）
func (ws WeekSchedule) Validate() error {
	if len(ws) != len(Days) {
		return fmt.Errorf("课表应包含 %d 个教学日，实际 %d 个", len(Days), len(ws))
	}
	for _, day := range Days {
		ds, ok := ws[day]
		if !ok {
			return fmt.Errorf("课表缺少教学日: %s", day)
		}
		if len(ds.Slots) != SlotCount {
			return fmt.Errorf("%s 应包含 %d 个节次，实际 %d 个", day, SlotCount, len(ds.Slots))
		}
		for id := 1; id <= SlotCount; id++ {
			if _, ok := ds.Slots[id]; !ok {
				return fmt.Errorf("%s 缺少节次 %d", day, id)
			}
		}
	}
	return nil
}

// ── GORM JSONB 支持 ──

// Value 序列化为 JSONB 存储
func (ws WeekSchedule) Value() (driver.Value, error) {
	if ws == nil {
		return nil, nil
	}
	return json.Marshal(ws)
}

// Scan 从 JSONB 反序列化
func (ws *WeekSchedule) Scan(src interface{}) error {
	if src == nil {
		*ws = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("WeekSchedule.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, ws)
}
