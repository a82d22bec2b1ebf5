package service

import (
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/util"
	"strings"
)

// defaultDraft 返回题型对应的空白表单
func defaultDraft(t model.QuestionType) model.QuestionDraft {
	d := model.QuestionDraft{
		Type:      t,
		Points:    util.DefaultPoints,
		TimeLimit: util.DefaultTimeLimit,
	}
	switch t {
	case model.MultipleChoice:
		d.Options = make([]string, util.DefaultOptionSlots)
	case model.TrueFalse:
		d.CorrectAnswer = "true"
	case model.FillInBlank, model.Essay, model.Upload, model.Project, model.ProctoredExam:
	}
	return d
}

func nonEmptyOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if v := strings.TrimSpace(o); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalizeBool(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "1":
		return "true", true
	case "false", "f", "no", "0":
		return "false", true
	}
	return "", false
}

// buildQuestion 校验草稿并生成可提交的题目（不分配ID）
func buildQuestion(d model.QuestionDraft) (model.Question, error) {
	if !d.Type.Valid() {
		return model.Question{}, util.NewValidationError("type", "unknown question type %q", d.Type)
	}
	prompt := strings.TrimSpace(d.Prompt)
	if prompt == "" {
		return model.Question{}, util.NewValidationError("question", "must not be empty")
	}
	if d.Points < 1 {
		return model.Question{}, util.NewValidationError("points", "must be a positive integer")
	}
	if d.TimeLimit < 1 {
		return model.Question{}, util.NewValidationError("timeLimit", "must be a positive number of seconds")
	}

	q := model.Question{
		Type:        d.Type,
		Prompt:      prompt,
		Points:      d.Points,
		TimeLimit:   d.TimeLimit,
		Explanation: strings.TrimSpace(d.Explanation),
	}

	// 自由作答题型没有标准答案，草稿里残留的答案直接丢弃
	if !d.Type.HasCorrectAnswer() {
		return q, nil
	}

	switch d.Type {
	case model.MultipleChoice:
		opts := nonEmptyOptions(d.Options)
		if len(opts) < util.MinOptions {
			return model.Question{}, util.NewValidationError("options", "need at least %d non-empty options", util.MinOptions)
		}
		if len(opts) > util.MaxOptions {
			return model.Question{}, util.NewValidationError("options", "at most %d options allowed", util.MaxOptions)
		}
		q.Options = opts
		answer := strings.TrimSpace(d.CorrectAnswer)
		if answer != "" {
			found := false
			for _, o := range opts {
				if o == answer {
					found = true
					break
				}
			}
			if !found {
				return model.Question{}, util.NewValidationError("correctAnswer", "must be one of the options")
			}
		}
		q.CorrectAnswer = answer
	case model.TrueFalse:
		v, ok := normalizeBool(d.CorrectAnswer)
		if !ok {
			return model.Question{}, util.NewValidationError("correctAnswer", "must be true or false")
		}
		q.CorrectAnswer = v
	case model.FillInBlank:
		q.CorrectAnswer = d.CorrectAnswer
		q.CorrectAnswer = strings.Join(q.AcceptedAnswers(), ",")
	}
	return q, nil
}

// validateQuestion 用于导入已有题目，规则与提交草稿一致
// 缺省的分值和时限取默认值，负数仍然拒绝
func validateQuestion(q model.Question) (model.Question, error) {
	if q.Points == 0 {
		q.Points = util.DefaultPoints
	}
	if q.TimeLimit == 0 {
		q.TimeLimit = util.DefaultTimeLimit
	}
	built, err := buildQuestion(model.QuestionDraft{
		Type:          q.Type,
		Prompt:        q.Prompt,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Points:        q.Points,
		TimeLimit:     q.TimeLimit,
		Explanation:   q.Explanation,
	})
	if err != nil {
		return model.Question{}, err
	}
	if q.Type == model.MultipleChoice && len(nonEmptyOptions(q.Options)) != len(q.Options) {
		return model.Question{}, util.NewValidationError("options", "must not contain empty entries")
	}
	built.ID = q.ID
	return built, nil
}

// validateDetails 检查数值范围；requireComplete 时还要求标题和题型
func validateDetails(d model.AssessmentDetails, requireComplete bool) error {
	if requireComplete {
		if strings.TrimSpace(d.Title) == "" {
			return util.NewValidationError("title", "is required")
		}
		if d.AssessmentType == "" {
			return util.NewValidationError("assessmentType", "is required")
		}
	}
	if d.AssessmentType != "" && !d.AssessmentType.Valid() {
		return util.NewValidationError("assessmentType", "unknown question type %q", d.AssessmentType)
	}
	if d.PassingScore < 0 || d.PassingScore > util.MaxPassingScore {
		return util.NewValidationError("passingScore", "must be between 0 and %d", util.MaxPassingScore)
	}
	if !d.AttemptsAllowed.Valid() {
		return util.NewValidationError("attemptsAllowed", "must be a positive integer or \"unlimited\"")
	}
	if d.TimeLimitMinutes < 1 {
		return util.NewValidationError("timeLimitMinutes", "must be a positive integer")
	}
	return nil
}

func defaultDetails() model.AssessmentDetails {
	return model.AssessmentDetails{
		AttemptsAllowed:  model.LimitedAttempts(1),
		TimeLimitMinutes: util.DefaultAssessmentMinutes,
		PassingScore:     70,
	}
}
