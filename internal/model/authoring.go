package model

import "time"

type AuthoringStep string

const (
	StepDetails   AuthoringStep = "details"
	StepQuestions AuthoringStep = "questions"
)

// AuthoringSession 出题界面的状态：详情、已添加题目、当前草稿
// AssessmentID 在第一次保存前为空
type AuthoringSession struct {
	ID           string            `json:"id"`
	Step         AuthoringStep     `json:"step"`
	Details      AssessmentDetails `json:"details"`
	Questions    []Question        `json:"questions"`
	Draft        QuestionDraft     `json:"draft"`
	AssessmentID string            `json:"assessmentId,omitempty"`
	Status       AssessmentStatus  `json:"status,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (s AuthoringSession) Clone() AuthoringSession {
	c := s
	c.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		c.Questions[i] = q.Clone()
	}
	c.Draft = s.Draft.Clone()
	return c
}
