package service

import (
	"bytes"
	"fmt"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/util"
	"lms_authoring_backend/pkg/logger"
	"lms_authoring_backend/pkg/monitoring"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AttendanceService 按日期记录考勤，今天结束之后的日期只读
type AttendanceService struct {
	Repo *repository.AttendanceRepository
	Now  func() time.Time

	mu  sync.RWMutex
	loc *time.Location
}

func NewAttendanceService(repo *repository.AttendanceRepository, loc *time.Location) *AttendanceService {
	s := &AttendanceService{Repo: repo, Now: time.Now}
	s.SetLocation(loc)
	return s
}

// SetLocation 配置热更新时替换时区
func (s *AttendanceService) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	s.mu.Lock()
	s.loc = loc
	s.mu.Unlock()
}

func (s *AttendanceService) Location() *time.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loc
}

// Today 考勤时区下的当天日期
func (s *AttendanceService) Today() string {
	return s.Now().In(s.Location()).Format(util.DateFormat)
}

type AddStudentRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (s *AttendanceService) AddStudent(req AddStudentRequest) (*model.Student, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, util.NewValidationError("name", "is required")
	}
	st := &model.Student{
		ID:    strings.TrimSpace(req.ID),
		Name:  name,
		Email: strings.TrimSpace(req.Email),
	}
	if st.ID == "" {
		st.ID = model.NewID()
	}
	if !s.Repo.CreateStudent(st) {
		return nil, util.ErrDuplicate
	}
	return st, nil
}

func (s *AttendanceService) ListStudents() []model.Student {
	return s.Repo.ListStudents()
}

// parseDate 解析 yyyy-MM-dd，返回规范化的日期字符串和是否晚于今天
func (s *AttendanceService) parseDate(date string) (string, bool, error) {
	loc := s.Location()
	d, err := time.ParseInLocation(util.DateFormat, strings.TrimSpace(date), loc)
	if err != nil {
		return "", false, util.NewValidationError("date", "must be formatted as yyyy-MM-dd")
	}
	return d.Format(util.DateFormat), isFuture(d, s.Now().In(loc)), nil
}

// isFuture 与"今天结束"比较，今天本身仍可编辑
func isFuture(day, now time.Time) bool {
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
	return day.After(endOfToday)
}

type MarkAttendanceRequest struct {
	Date      string                 `json:"date" binding:"required"`
	StudentID string                 `json:"studentId" binding:"required"`
	Status    model.AttendanceStatus `json:"status" binding:"required"`
	Time      string                 `json:"time"`
	Notes     string                 `json:"notes"`
}

// Mark 写入单个学生某一天的考勤，其他日期不受影响
func (s *AttendanceService) Mark(req MarkAttendanceRequest) (*model.AttendanceRecord, error) {
	date, future, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if future {
		return nil, util.ErrFutureDate
	}
	if _, ok := s.Repo.FindStudent(req.StudentID); !ok {
		return nil, util.ErrStudentNotFound
	}
	if !req.Status.Valid() {
		return nil, util.NewValidationError("status", "must be present, absent or late")
	}
	clock := strings.TrimSpace(req.Time)
	if clock != "" {
		if _, err := time.Parse("15:04", clock); err != nil {
			return nil, util.NewValidationError("time", "must be formatted as HH:MM")
		}
	}

	rec := model.AttendanceRecord{
		StudentID: req.StudentID,
		Date:      date,
		Status:    req.Status,
		Time:      clock,
		Notes:     strings.TrimSpace(req.Notes),
	}
	s.Repo.Upsert(rec)
	monitoring.AttendanceMarked.WithLabelValues(string(rec.Status)).Inc()
	logger.Log.Debug("attendance marked",
		zap.String("date", date),
		zap.String("student_id", rec.StudentID),
		zap.String("status", string(rec.Status)),
	)
	return &rec, nil
}

// AttendanceFilter 考勤列表的搜索与状态过滤
type AttendanceFilter struct {
	Search string
	Status string // all | present | absent | late | unmarked
}

func (f AttendanceFilter) validate() error {
	switch model.AttendanceStatus(f.Status) {
	case "", "all", model.Present, model.Absent, model.Late, model.Unmarked:
		return nil
	}
	return util.NewValidationError("status", "must be one of all, present, absent, late, unmarked")
}

func (f AttendanceFilter) match(row model.AttendanceRow) bool {
	if f.Status != "" && f.Status != "all" && string(row.Status) != f.Status {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(row.Name), q) ||
			strings.Contains(strings.ToLower(row.Email), q)
	}
	return true
}

// List 名册中每个学生一行，未记录的状态为 unmarked
// 未来日期无论过滤条件如何都返回空列表
func (s *AttendanceService) List(date string, filter AttendanceFilter) ([]model.AttendanceRow, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}
	day, future, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	rows := []model.AttendanceRow{}
	if future {
		return rows, nil
	}
	for _, row := range s.rowsOn(day) {
		if filter.match(row) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *AttendanceService) rowsOn(day string) []model.AttendanceRow {
	records := s.Repo.RecordsOn(day)
	students := s.Repo.ListStudents()
	rows := make([]model.AttendanceRow, 0, len(students))
	for _, st := range students {
		row := model.AttendanceRow{Student: st, Status: model.Unmarked}
		if rec, ok := records[st.ID]; ok {
			row.Status = rec.Status
			row.Time = rec.Time
			row.Notes = rec.Notes
		}
		rows = append(rows, row)
	}
	return rows
}

// Summary 当天各状态人数，未来日期只返回只读标记
func (s *AttendanceService) Summary(date string) (*model.AttendanceSummary, error) {
	day, future, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	summary := &model.AttendanceSummary{Date: day, ReadOnly: future, Counts: map[string]int{}}
	if future {
		return summary, nil
	}
	rows := s.rowsOn(day)
	summary.Total = len(rows)
	summary.Counts = CountBy(rows, func(r model.AttendanceRow) string { return string(r.Status) })
	return summary, nil
}

var csvHeader = []string{"Student Name", "Email", "Status", "Time", "Notes"}

// ExportCSV 导出当前过滤结果，未来日期返回 ok=false 且不产生文件
func (s *AttendanceService) ExportCSV(date string, filter AttendanceFilter) (filename string, data []byte, ok bool, err error) {
	day, future, err := s.parseDate(date)
	if err != nil {
		return "", nil, false, err
	}
	if future {
		return "", nil, false, nil
	}
	rows, err := s.List(day, filter)
	if err != nil {
		return "", nil, false, err
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(csvHeader, ",") + "\n")
	for _, r := range rows {
		status := ""
		if r.Status != model.Unmarked {
			status = string(r.Status)
		}
		fields := []string{r.Name, r.Email, status, r.Time, r.Notes}
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quoteField(f))
		}
		buf.WriteByte('\n')
	}
	return fmt.Sprintf("attendance_%s.csv", day), buf.Bytes(), true, nil
}

// quoteField 每个字段都加引号，内部引号按 RFC 4180 转义
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
