package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shafqatdeveloper/campus-navigator/internal/model"
	"github.com/shafqatdeveloper/campus-navigator/internal/repository"
	"github.com/shafqatdeveloper/campus-navigator/internal/schedule"
)

// ErrExportGenerateFail 导出文件生成失败
var ErrExportGenerateFail = errors.New("生成导出文件失败")

// 每学期按 16 个教学周生成日历事件
const semesterWeeks = 16

// ExportService 时间表导出
//
// 设计说明：
//   - Excel：行 = 教学日，列 = 固定节次，单元格按展示优先级渲染
//   - ICS：每个有课节次生成一个按周重复的 VEVENT，学期起始周
//     由年份与学期推算（SP 从 2 月、FA 从 9 月的第一个周一开始）
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	ExportXLSX(ctx context.Context, timetableID string) (*bytes.Buffer, string, error)
	ExportICS(ctx context.Context, timetableID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) loadTimetable(ctx context.Context, id string) (*model.Timetable, error) {
	tt, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("查询时间表失败", zap.Error(err))
		return nil, err
	}
	return tt, nil
}

// ExportXLSX 导出时间表为 Excel
func (s *exportService) ExportXLSX(ctx context.Context, timetableID string) (*bytes.Buffer, string, error) {
	tt, err := s.loadTimetable(ctx, timetableID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	slots := schedule.TimeSlots()

	// 列宽：A 列为教学日，其后每节次一列
	f.SetColWidth(sheetName, "A", "A", 12)
	lastCol, _ := excelize.ColumnNumberToName(1 + len(slots))
	f.SetColWidth(sheetName, "B", lastCol, 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", tt.Title())
	f.MergeCell(sheetName, "A1", fmt.Sprintf("%s1", lastCol))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头：Day | 各节次时间
	row := 2
	f.SetCellValue(sheetName, cellRef(1, row), "Day")
	for i, ts := range slots {
		f.SetCellValue(sheetName, cellRef(2+i, row), ts.Label)
	}
	f.SetCellStyle(sheetName, cellRef(1, row), cellRef(1+len(slots), row), headerStyle)

	// 数据行
	row = 3
	for _, rd := range tt.Schedule.Render() {
		f.SetCellValue(sheetName, cellRef(1, row), rd.Day)
		for i, cell := range rd.Cells {
			f.SetCellValue(sheetName, cellRef(2+i, row), cell)
		}
		row++
	}

	// 午休说明
	f.SetCellValue(sheetName, cellRef(1, row+1), schedule.BreakLabel)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("timetable_%d_%s_%s.xlsx", tt.Year, tt.Session, tt.Section)
	return buf, filename, nil
}

// ExportICS 导出时间表为 iCalendar
// 每个有课节次生成一个按周重复的事件；停课日与空闲节次不生成
func (s *exportService) ExportICS(ctx context.Context, timetableID string) (*bytes.Buffer, string, error) {
	tt, err := s.loadTimetable(ctx, timetableID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//campus-navigator//timetable//EN")

	weekStart := semesterFirstMonday(tt.Year, tt.Session)
	slots := schedule.TimeSlots()
	now := time.Now()

	for dayIdx, day := range schedule.Days {
		ds, ok := tt.Schedule[day]
		if !ok || ds.DayOff {
			continue
		}
		for _, ts := range slots {
			entry := ds.Slots[ts.ID]
			if entry.NoLecture || entry.Lecture == "" {
				continue
			}

			date := weekStart.AddDate(0, 0, dayIdx)
			start := atClock(date, ts.Start)
			end := atClock(date, ts.End)

			evt := cal.AddEvent(uuid.New().String())
			evt.SetCreatedTime(now)
			evt.SetDtStampTime(now)
			evt.SetStartAt(start)
			evt.SetEndAt(end)
			evt.SetSummary(entry.Lecture)
			evt.SetDescription(tt.Title())
			evt.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", semesterWeeks))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("timetable_%d_%s_%s.ics", tt.Year, tt.Session, tt.Section)
	return buf, filename, nil
}

// semesterFirstMonday 学期第一个教学周的周一
// SP 学期从 2 月、FA 学期从 9 月的第一个周一开始
func semesterFirstMonday(year int, session string) time.Time {
	month := time.September
	if session == "SP" {
		month = time.February
	}
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// atClock 将 "HH:MM" 叠加到日期上
func atClock(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

func cellRef(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
