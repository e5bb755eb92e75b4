package wizard

import (
	"errors"
	"time"

	"github.com/shafqatdeveloper/campus-navigator/internal/schedule"
)

// ── 时间表创建向导 ──
//
// 严格线性的四步流程：选择年份 → 选择学期 → 选择班级 → 编辑课表。
// 前进受守卫条件约束；后退无条件且不清除已填字段；
// 从"选择班级"进入"编辑课表"时课表总是重新初始化，
// 之前一次进入编辑步骤时的改动被丢弃。

// Step 向导步骤
type Step string

const (
	StepSelectYear    Step = "select_year"
	StepSelectSession Step = "select_session"
	StepSelectSection Step = "select_section"
	StepBuildSchedule Step = "build_schedule"
)

// 学期代码
const (
	SessionSpring = "SP"
	SessionFall   = "FA"
)

// MinYear 可选学年下限；上限为当前年份 + 1
const MinYear = 2023

// Sections 固定班级字母表 A..K
var Sections = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"}

var (
	ErrYearRequired    = errors.New("请先选择年份")
	ErrSessionRequired = errors.New("请先选择学期")
	ErrSectionRequired = errors.New("请先选择班级")
	ErrInvalidYear     = errors.New("年份超出允许范围")
	ErrInvalidSession  = errors.New("学期必须为 SP 或 FA")
	ErrInvalidSection  = errors.New("班级必须为 A 到 K 之间的字母")
	ErrWrongStep       = errors.New("当前步骤不允许该操作")
	ErrAtFirstStep     = errors.New("已处于第一步，无法后退")
)

// Session 一次向导会话的完整状态
// 会话由发起它的管理员独占，其他组件只读不写
type Session struct {
	ID        string                `json:"id"`
	Step      Step                  `json:"step"`
	Year      int                   `json:"year,omitempty"`
	Term      string                `json:"session,omitempty"`
	Section   string                `json:"section,omitempty"`
	Schedule  schedule.WeekSchedule `json:"schedule,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// NewSession 开启新的向导会话，初始步骤为选择年份
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Step:      StepSelectYear,
		CreatedAt: now,
	}
}

// ValidYear 年份是否在允许范围内（2023 .. 当前年份+1）
func ValidYear(year int, now time.Time) bool {
	return year >= MinYear && year <= now.Year()+1
}

// ValidSession 学期代码是否合法
func ValidSession(term string) bool {
	return term == SessionSpring || term == SessionFall
}

// ValidSection 班级是否在固定字母表内
func ValidSection(section string) bool {
	for _, s := range Sections {
		if s == section {
			return true
		}
	}
	return false
}

// SetYear 在"选择年份"步骤记录年份
func (s *Session) SetYear(year int, now time.Time) error {
	if s.Step != StepSelectYear {
		return ErrWrongStep
	}
	if !ValidYear(year, now) {
		return ErrInvalidYear
	}
	s.Year = year
	return nil
}

// SetTerm 在"选择学期"步骤记录学期
func (s *Session) SetTerm(term string) error {
	if s.Step != StepSelectSession {
		return ErrWrongStep
	}
	if !ValidSession(term) {
		return ErrInvalidSession
	}
	s.Term = term
	return nil
}

// SetSection 在"选择班级"步骤记录班级
func (s *Session) SetSection(section string) error {
	if s.Step != StepSelectSection {
		return ErrWrongStep
	}
	if !ValidSection(section) {
		return ErrInvalidSection
	}
	s.Section = section
	return nil
}

// Next 前进到下一步；守卫条件不满足时保持原步骤并返回对应错误
// 从"选择班级"进入"编辑课表"时重新初始化课表（丢弃上次编辑内容）
func (s *Session) Next() error {
	switch s.Step {
	case StepSelectYear:
		if s.Year == 0 {
			return ErrYearRequired
		}
		s.Step = StepSelectSession
	case StepSelectSession:
		if s.Term == "" {
			return ErrSessionRequired
		}
		s.Step = StepSelectSection
	case StepSelectSection:
		if s.Section == "" {
			return ErrSectionRequired
		}
		s.Schedule = schedule.New()
		s.Step = StepBuildSchedule
	default:
		return ErrWrongStep
	}
	return nil
}

// Back 无条件后退一步，已填字段保持不变
func (s *Session) Back() error {
	switch s.Step {
	case StepSelectYear:
		return ErrAtFirstStep
	case StepSelectSession:
		s.Step = StepSelectYear
	case StepSelectSection:
		s.Step = StepSelectSession
	case StepBuildSchedule:
		s.Step = StepSelectSection
	default:
		return ErrWrongStep
	}
	return nil
}

// SetDayOff 在"编辑课表"步骤标记整日停课
func (s *Session) SetDayOff(day string, off bool) error {
	if s.Step != StepBuildSchedule {
		return ErrWrongStep
	}
	ws, err := s.Schedule.WithDayOff(day, off)
	if err != nil {
		return err
	}
	s.Schedule = ws
	return nil
}

// SetSlotLecture 在"编辑课表"步骤填写节次课程名
func (s *Session) SetSlotLecture(day string, slotID int, lecture string) error {
	if s.Step != StepBuildSchedule {
		return ErrWrongStep
	}
	ws, err := s.Schedule.WithLecture(day, slotID, lecture)
	if err != nil {
		return err
	}
	s.Schedule = ws
	return nil
}

// SetSlotNoLecture 在"编辑课表"步骤标记节次空闲
func (s *Session) SetSlotNoLecture(day string, slotID int, noLecture bool) error {
	if s.Step != StepBuildSchedule {
		return ErrWrongStep
	}
	ws, err := s.Schedule.WithNoLecture(day, slotID, noLecture)
	if err != nil {
		return err
	}
	s.Schedule = ws
	return nil
}

// CanSubmit 是否处于可提交状态
func (s *Session) CanSubmit() bool {
	return s.Step == StepBuildSchedule && s.Schedule != nil
}
