package model

type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
	// Unmarked 只用于查询结果，表示当天没有记录
	Unmarked AttendanceStatus = "unmarked"
)

func (s AttendanceStatus) Valid() bool {
	return s == Present || s == Absent || s == Late
}

type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AttendanceRecord 以 (Date, StudentID) 为键
type AttendanceRecord struct {
	StudentID string           `json:"studentId"`
	Date      string           `json:"date"` // yyyy-MM-dd
	Status    AttendanceStatus `json:"status"`
	Time      string           `json:"time,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// AttendanceRow 某日考勤列表中的一行
type AttendanceRow struct {
	Student
	Status AttendanceStatus `json:"status"`
	Time   string           `json:"time,omitempty"`
	Notes  string           `json:"notes,omitempty"`
}

type AttendanceSummary struct {
	Date     string         `json:"date"`
	ReadOnly bool           `json:"readOnly"`
	Total    int            `json:"total"`
	Counts   map[string]int `json:"counts"`
}
