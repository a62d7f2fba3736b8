package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"examseating/internal/model"
	"examseating/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoAssignments = errors.New("座位表中无座位分配")
	ErrExportGenerateFail  = errors.New("生成导出文件失败")
	ErrExportNoExams       = errors.New("暂无已发布的考试座位")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 座位表导出为 Excel (.xlsx)：每个考场一个 Sheet，按行列网格呈现
//   - 考生个人考试日程导出为 iCalendar (.ics)：仅含已批准座位表中的场次
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSeatingChart 导出座位表为 Excel
	ExportSeatingChart(ctx context.Context, arrangementID string) (*bytes.Buffer, string, error)
	// ExportStudentCalendar 导出考生本人的考试日程为 ics
	ExportStudentCalendar(ctx context.Context, callerUserID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportSeatingChart — 导出座位表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 每个考场一个 Sheet（Sheet 名为考场名）
//   - 网格与考场行列一致，单元格为 "姓名 (学号)"，空位为 "-"
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportSeatingChart(ctx context.Context, arrangementID string) (*bytes.Buffer, string, error) {
	arrangement, err := s.repo.Seating.GetDetailByID(ctx, arrangementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrArrangementNotFound
		}
		s.logger.Error("查询座位表失败", zap.Error(err))
		return nil, "", err
	}
	if len(arrangement.Assignments) == 0 {
		return nil, "", ErrExportNoAssignments
	}

	// 按考场分组，单元格以行优先座位序号为键，与引擎共用同一套坐标换算
	type roomChart struct {
		classroom *model.Classroom
		cells     map[int]string
	}
	charts := make(map[string]*roomChart)
	var order []string
	for i := range arrangement.Assignments {
		a := &arrangement.Assignments[i]
		if a.Classroom == nil {
			continue
		}
		chart, ok := charts[a.ClassroomID]
		if !ok {
			chart = &roomChart{classroom: a.Classroom, cells: make(map[int]string)}
			charts[a.ClassroomID] = chart
			order = append(order, a.ClassroomID)
		}
		text := a.StudentID
		if a.Student != nil {
			text = fmt.Sprintf("%s (%s)", a.Student.FullName, a.Student.RollNumber)
		}
		chart.cells[coordinateToIndex(a.SeatRow, a.SeatColumn, a.Classroom.Columns)] = text
	}
	sort.Slice(order, func(i, j int) bool {
		return charts[order[i]].classroom.Name < charts[order[j]].classroom.Name
	})

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for sheetIdx, classroomID := range order {
		chart := charts[classroomID]
		room := chart.classroom
		sheetName := room.Name

		idx, err := f.NewSheet(sheetName)
		if err != nil {
			s.logger.Error("创建 Sheet 失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
		if sheetIdx == 0 {
			f.SetActiveSheet(idx)
		}

		// 标题行
		f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — %s", arrangement.Name, room.Name))
		f.MergeCell(sheetName, "A1", cell(colName(room.Columns), 1))
		f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

		// 列头：C1 ~ Cn；行头：R1 ~ Rn
		for c := 1; c <= room.Columns; c++ {
			name := colName(c)
			f.SetColWidth(sheetName, name, name, 20)
			f.SetCellValue(sheetName, cell(name, 2), fmt.Sprintf("C%d", c))
			f.SetCellStyle(sheetName, cell(name, 2), cell(name, 2), headerStyle)
		}
		for r := 1; r <= room.Rows; r++ {
			excelRow := r + 2
			for c := 1; c <= room.Columns; c++ {
				text, ok := chart.cells[coordinateToIndex(r, c, room.Columns)]
				if !ok {
					text = "-"
				}
				f.SetCellValue(sheetName, cell(colName(c), excelRow), text)
			}
		}
	}
	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("座位表_%s.xlsx", arrangement.Name)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportStudentCalendar — 考生考试日程导出为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 仅包含本人报名且座位表已批准的场次，事件地点为座位编号

func (s *exportService) ExportStudentCalendar(ctx context.Context, callerUserID string) (*bytes.Buffer, string, error) {
	student, err := s.repo.Student.GetByUserID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrStudentNotFound
		}
		s.logger.Error("查询考生失败", zap.Error(err))
		return nil, "", err
	}
	if student.IsBlacklisted {
		return nil, "", ErrStudentBlacklisted
	}

	regs, err := s.repo.Registration.ListByStudent(ctx, student.ID)
	if err != nil {
		s.logger.Error("查询考生报名失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	events := 0
	now := time.Now()
	for i := range regs {
		subject := regs[i].ExamSubject
		if subject == nil {
			continue
		}
		assignment, err := s.repo.Seating.GetApprovedAssignment(ctx, subject.ID, student.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // 座位未发布的场次不进日程
			}
			s.logger.Error("查询座位分配失败", zap.Error(err))
			return nil, "", err
		}

		start, err1 := combineDateTime(subject.ExamDate, subject.StartTime)
		end, err2 := combineDateTime(subject.ExamDate, subject.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%s@examseating", subject.ID, student.ID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("考试: %s", subject.Subject))
		event.SetLocation(assignment.SeatCode)
		event.SetDescription(fmt.Sprintf("考生 %s (%s)，座位 %s", student.FullName, student.RollNumber, assignment.SeatCode))
		events++
	}
	if events == 0 {
		return nil, "", ErrExportNoExams
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("考试日程_%s.ics", student.RollNumber)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// combineDateTime 将日期与 "HH:MM" 合并为本地时间
func combineDateTime(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
