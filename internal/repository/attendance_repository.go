package repository

import (
	"lms_authoring_backend/internal/model"
	"sort"
	"strings"
	"sync"
)

// AttendanceRepository 学生名册与按日期分组的考勤记录
// 修改某一天的记录不会触碰其他日期
type AttendanceRepository struct {
	mu       sync.RWMutex
	students map[string]model.Student
	records  map[string]map[string]model.AttendanceRecord // date -> studentID -> record
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{
		students: make(map[string]model.Student),
		records:  make(map[string]map[string]model.AttendanceRecord),
	}
}

func (r *AttendanceRepository) CreateStudent(s *model.Student) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[s.ID]; ok {
		return false
	}
	for _, existing := range r.students {
		if s.Email != "" && strings.EqualFold(existing.Email, s.Email) {
			return false
		}
	}
	r.students[s.ID] = *s
	return true
}

func (r *AttendanceRepository) FindStudent(id string) (model.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.students[id]
	return s, ok
}

// ListStudents 按姓名排序
func (r *AttendanceRepository) ListStudents() []model.Student {
	r.mu.RLock()
	out := make([]model.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *AttendanceRepository) Upsert(rec model.AttendanceRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day, ok := r.records[rec.Date]
	if !ok {
		day = make(map[string]model.AttendanceRecord)
		r.records[rec.Date] = day
	}
	day[rec.StudentID] = rec
}

// RecordsOn 返回某天的记录副本
func (r *AttendanceRepository) RecordsOn(date string) map[string]model.AttendanceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]model.AttendanceRecord, len(r.records[date]))
	for id, rec := range r.records[date] {
		out[id] = rec
	}
	return out
}
