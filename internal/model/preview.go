package model

import "time"

type PreviewState string

const (
	PreviewNotStarted PreviewState = "not_started"
	PreviewInProgress PreviewState = "in_progress"
	PreviewSubmitted  PreviewState = "submitted"
)

// PreviewSession 学习者视角的答题过程，基于开始时的评估快照
type PreviewSession struct {
	ID               string            `json:"id"`
	AssessmentID     string            `json:"assessmentId"`
	Assessment       Assessment        `json:"-"`
	State            PreviewState      `json:"state"`
	Cursor           int               `json:"cursor"`
	Answers          map[string]string `json:"answers"`
	TimeLimitSeconds int               `json:"timeLimitSeconds"`
	StartedAt        *time.Time        `json:"startedAt,omitempty"`
	SubmittedAt      *time.Time        `json:"submittedAt,omitempty"`
}

func (p PreviewSession) Clone() PreviewSession {
	c := p
	c.Assessment = p.Assessment.Clone()
	c.Answers = make(map[string]string, len(p.Answers))
	for k, v := range p.Answers {
		c.Answers[k] = v
	}
	if p.StartedAt != nil {
		t := *p.StartedAt
		c.StartedAt = &t
	}
	if p.SubmittedAt != nil {
		t := *p.SubmittedAt
		c.SubmittedAt = &t
	}
	return c
}

// PreviewQuestion 发给学习者的题目，不含答案与解析
type PreviewQuestion struct {
	ID        string       `json:"id"`
	Type      QuestionType `json:"type"`
	Prompt    string       `json:"question"`
	Options   []string     `json:"options,omitempty"`
	Points    int          `json:"points"`
	TimeLimit int          `json:"timeLimit"`
	InputKind InputKind    `json:"inputKind"`
}

type PreviewView struct {
	SessionID        string           `json:"sessionId"`
	AssessmentID     string           `json:"assessmentId"`
	Title            string           `json:"title"`
	State            PreviewState     `json:"state"`
	Index            int              `json:"index"`
	Total            int              `json:"total"`
	Question         *PreviewQuestion `json:"question,omitempty"`
	Answer           string           `json:"answer,omitempty"`
	AnsweredCount    int              `json:"answeredCount"`
	RemainingSeconds int              `json:"remainingSeconds"`
}

// PreviewResult Submit 时交给调用方的答案，会话本身不再保留
type PreviewResult struct {
	SessionID    string            `json:"sessionId"`
	AssessmentID string            `json:"assessmentId"`
	Answers      map[string]string `json:"answers"`
	SubmittedAt  time.Time         `json:"submittedAt"`
	Submission   *Submission       `json:"submission,omitempty"`
}
