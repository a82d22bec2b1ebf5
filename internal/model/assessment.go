package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type AssessmentStatus string

const (
	StatusDraft     AssessmentStatus = "draft"
	StatusPublished AssessmentStatus = "published"
)

func (s AssessmentStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Attempts 允许作答次数，Unlimited 时忽略 Limit
// JSON 中编码为正整数或字符串 "unlimited"
type Attempts struct {
	Limit     int
	Unlimited bool
}

const unlimitedAttempts = "unlimited"

func UnlimitedAttempts() Attempts { return Attempts{Unlimited: true} }

func LimitedAttempts(n int) Attempts { return Attempts{Limit: n} }

func (a Attempts) Valid() bool {
	return a.Unlimited || a.Limit > 0
}

func (a Attempts) String() string {
	if a.Unlimited {
		return unlimitedAttempts
	}
	return strconv.Itoa(a.Limit)
}

func (a Attempts) MarshalJSON() ([]byte, error) {
	if a.Unlimited {
		return json.Marshal(unlimitedAttempts)
	}
	return json.Marshal(a.Limit)
}

func (a *Attempts) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Attempts{Limit: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("attemptsAllowed must be a number or %q", unlimitedAttempts)
	}
	s = strings.TrimSpace(strings.ToLower(s))
	if s == unlimitedAttempts {
		*a = UnlimitedAttempts()
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("attemptsAllowed must be a number or %q", unlimitedAttempts)
	}
	*a = Attempts{Limit: n}
	return nil
}

// AssessmentDetails 详情页可编辑的元数据
type AssessmentDetails struct {
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	AssessmentType   QuestionType `json:"assessmentType"`
	Category         string       `json:"category"`
	PassingScore     int          `json:"passingScore"` // 百分比 0-100
	AttemptsAllowed  Attempts     `json:"attemptsAllowed"`
	TimeLimitMinutes int          `json:"timeLimitMinutes"`
}

// Assessment 一份可评分的测评，题目有序
type Assessment struct {
	ID string `json:"id"`
	AssessmentDetails
	Questions   []Question       `json:"questions"`
	Status      AssessmentStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	PublishedAt *time.Time       `json:"publishedAt,omitempty"`
}

// TotalPoints 全部题目分值之和，即测验提交的满分
func (a Assessment) TotalPoints() int {
	total := 0
	for _, q := range a.Questions {
		total += q.Points
	}
	return total
}

func (a Assessment) QuestionByID(id string) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

func (a Assessment) Clone() Assessment {
	c := a
	c.Questions = make([]Question, len(a.Questions))
	for i, q := range a.Questions {
		c.Questions[i] = q.Clone()
	}
	if a.PublishedAt != nil {
		t := *a.PublishedAt
		c.PublishedAt = &t
	}
	return c
}

// AssessmentSummary 列表页展示用
type AssessmentSummary struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AssessmentType   QuestionType     `json:"assessmentType"`
	Category         string           `json:"category"`
	Status           AssessmentStatus `json:"status"`
	QuestionCount    int              `json:"questionCount"`
	TotalPoints      int              `json:"totalPoints"`
	TimeLimitMinutes int              `json:"timeLimitMinutes"`
	CreatedAt        time.Time        `json:"createdAt"`
}

func (a Assessment) Summary() AssessmentSummary {
	return AssessmentSummary{
		ID:               a.ID,
		Title:            a.Title,
		AssessmentType:   a.AssessmentType,
		Category:         a.Category,
		Status:           a.Status,
		QuestionCount:    len(a.Questions),
		TotalPoints:      a.TotalPoints(),
		TimeLimitMinutes: a.TimeLimitMinutes,
		CreatedAt:        a.CreatedAt,
	}
}
