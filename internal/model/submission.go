package model

import "time"

// Position 辩论立场
type Position string

const (
	PositionFor     Position = "for"
	PositionAgainst Position = "against"
)

func (p Position) Valid() bool {
	return p == PositionFor || p == PositionAgainst
}

// Submission 一名学习者对一次测评（或辩论）的作答
// Score 在教师评分前为 nil，评分后可覆盖但不能清空
type Submission struct {
	ID           string            `json:"id"`
	AssessmentID string            `json:"assessmentId,omitempty"`
	DebateID     string            `json:"debateId,omitempty"`
	UserID       string            `json:"userId"`
	UserName     string            `json:"userName"`
	Position     Position          `json:"position,omitempty"`
	Answers      map[string]string `json:"answers,omitempty"`
	Response     string            `json:"response"`
	Score        *int              `json:"score,omitempty"`
	Feedback     string            `json:"feedback,omitempty"`
	SubmittedAt  time.Time         `json:"submittedAt"`
	ScoredAt     *time.Time        `json:"scoredAt,omitempty"`
}

func (s Submission) IsScored() bool {
	return s.Score != nil
}

func (s Submission) Clone() Submission {
	c := s
	if s.Answers != nil {
		c.Answers = make(map[string]string, len(s.Answers))
		for k, v := range s.Answers {
			c.Answers[k] = v
		}
	}
	if s.Score != nil {
		v := *s.Score
		c.Score = &v
	}
	if s.ScoredAt != nil {
		t := *s.ScoredAt
		c.ScoredAt = &t
	}
	return c
}

// ScoreStats 由提交列表实时计算，不存储
type ScoreStats struct {
	Count          int     `json:"count"`
	CompletedCount int     `json:"completedCount"`
	Average        float64 `json:"average"`
	Min            int     `json:"min"`
	Max            int     `json:"max"`
}
