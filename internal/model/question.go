package model

import (
	"fmt"
	"strings"
)

// QuestionType 题型，封闭枚举
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	FillInBlank    QuestionType = "fill_blank"
	Essay          QuestionType = "essay"
	Upload         QuestionType = "upload"
	Project        QuestionType = "project"
	ProctoredExam  QuestionType = "proctored_exam"
)

// QuestionTypes 按界面顺序列出全部题型
var QuestionTypes = []QuestionType{
	MultipleChoice,
	TrueFalse,
	FillInBlank,
	Essay,
	Upload,
	Project,
	ProctoredExam,
}

var questionTypeAliases = map[string]QuestionType{
	"mcq":               MultipleChoice,
	"multiplechoice":    MultipleChoice,
	"truefalse":         TrueFalse,
	"boolean":           TrueFalse,
	"fill_in_blank":     FillInBlank,
	"fill_in_the_blank": FillInBlank,
	"fillblank":         FillInBlank,
	"fill_in":           FillInBlank,
	"proctored":         ProctoredExam,
}

// ParseQuestionType 大小写不敏感，'-' 与空格视同 '_'
func ParseQuestionType(s string) (QuestionType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for _, t := range QuestionTypes {
		if string(t) == norm {
			return t, nil
		}
	}
	if t, ok := questionTypeAliases[norm]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

func (t QuestionType) Valid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions 只有选择题携带选项列表
func (t QuestionType) HasOptions() bool {
	switch t {
	case MultipleChoice:
		return true
	case TrueFalse, FillInBlank, Essay, Upload, Project, ProctoredExam:
		return false
	}
	return false
}

// HasCorrectAnswer 自由作答题型没有标准答案
func (t QuestionType) HasCorrectAnswer() bool {
	switch t {
	case MultipleChoice, TrueFalse, FillInBlank:
		return true
	case Essay, Upload, Project, ProctoredExam:
		return false
	}
	return false
}

// InputKind 预览时的作答控件
type InputKind string

const (
	InputChoice   InputKind = "choice"
	InputBoolean  InputKind = "boolean"
	InputText     InputKind = "text"
	InputTextarea InputKind = "textarea"
)

// InputKind 上传、项目、监考题型没有专用控件，统一退化为多行文本
func (t QuestionType) InputKind() (InputKind, error) {
	switch t {
	case MultipleChoice:
		return InputChoice, nil
	case TrueFalse:
		return InputBoolean, nil
	case FillInBlank:
		return InputText, nil
	case Essay:
		return InputTextarea, nil
	case Upload, Project, ProctoredExam:
		return InputTextarea, nil
	}
	return "", fmt.Errorf("unknown question type %q", string(t))
}

// Question 评估中的一道题
type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
	Points        int          `json:"points"`
	TimeLimit     int          `json:"timeLimit"` // 秒，仅作提示
	Explanation   string       `json:"explanation,omitempty"`
}

// AcceptedAnswers 填空题的标准答案是逗号分隔的集合
func (q Question) AcceptedAnswers() []string {
	if q.Type != FillInBlank || q.CorrectAnswer == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(q.CorrectAnswer, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	return c
}

// QuestionDraft 出题表单的当前内容，尚未提交到评估
type QuestionDraft struct {
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	Points        int          `json:"points"`
	TimeLimit     int          `json:"timeLimit"`
	Explanation   string       `json:"explanation"`
}

func (d QuestionDraft) Clone() QuestionDraft {
	c := d
	if d.Options != nil {
		c.Options = append([]string(nil), d.Options...)
	}
	return c
}
