package service

import (
	"context"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/util"
	"lms_authoring_backend/pkg/logger"
	"lms_authoring_backend/pkg/monitoring"
	"lms_authoring_backend/pkg/tracing"
	"time"

	"go.uber.org/zap"
)

// PreviewService 学习者预览：not_started -> in_progress -> submitted
// 倒计时只用于展示，到时不会自动提交
type PreviewService struct {
	Previews    *repository.PreviewSessionRepository
	Assessments *repository.AssessmentRepository
	Submissions *SubmissionService
	Now         func() time.Time
}

func NewPreviewService(previews *repository.PreviewSessionRepository, assessments *repository.AssessmentRepository, submissions *SubmissionService) *PreviewService {
	return &PreviewService{
		Previews:    previews,
		Assessments: assessments,
		Submissions: submissions,
		Now:         time.Now,
	}
}

// Create 以评估当前内容为快照创建会话，之后对评估的编辑不影响本次预览
func (s *PreviewService) Create(assessmentID string) (*model.PreviewView, error) {
	a, err := s.Assessments.FindByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if len(a.Questions) == 0 {
		return nil, util.ErrNoQuestions
	}
	p := &model.PreviewSession{
		ID:               model.NewID(),
		AssessmentID:     a.ID,
		Assessment:       *a,
		State:            model.PreviewNotStarted,
		Answers:          map[string]string{},
		TimeLimitSeconds: a.TimeLimitMinutes * 60,
	}
	if err := s.Previews.Create(p); err != nil {
		return nil, err
	}
	return s.view(p)
}

func (s *PreviewService) View(id string) (*model.PreviewView, error) {
	p, err := s.Previews.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.view(p)
}

func (s *PreviewService) Discard(id string) error {
	return s.Previews.Delete(id)
}

func (s *PreviewService) transition(id string, fn func(*model.PreviewSession) error) (*model.PreviewView, error) {
	p, err := s.Previews.Update(id, fn)
	if err != nil {
		return nil, err
	}
	return s.view(p)
}

func requireState(p *model.PreviewSession, want model.PreviewState) error {
	if p.State != want {
		return util.ErrInvalidTransition
	}
	return nil
}

func (s *PreviewService) Start(id string) (*model.PreviewView, error) {
	v, err := s.transition(id, func(p *model.PreviewSession) error {
		if err := requireState(p, model.PreviewNotStarted); err != nil {
			return err
		}
		now := s.Now()
		p.State = model.PreviewInProgress
		p.StartedAt = &now
		p.Cursor = 0
		return nil
	})
	if err != nil {
		return nil, err
	}
	monitoring.PreviewTransitions.WithLabelValues(string(model.PreviewInProgress)).Inc()
	return v, nil
}

// Answer 覆盖该题之前的答案
func (s *PreviewService) Answer(id, questionID, value string) (*model.PreviewView, error) {
	return s.transition(id, func(p *model.PreviewSession) error {
		if err := requireState(p, model.PreviewInProgress); err != nil {
			return err
		}
		if _, ok := p.Assessment.QuestionByID(questionID); !ok {
			return util.ErrQuestionNotInScope
		}
		p.Answers[questionID] = value
		return nil
	})
}

func (s *PreviewService) Next(id string) (*model.PreviewView, error) {
	return s.move(id, 1)
}

func (s *PreviewService) Previous(id string) (*model.PreviewView, error) {
	return s.move(id, -1)
}

// move 光标限制在 [0, n-1]
func (s *PreviewService) move(id string, delta int) (*model.PreviewView, error) {
	return s.transition(id, func(p *model.PreviewSession) error {
		if err := requireState(p, model.PreviewInProgress); err != nil {
			return err
		}
		last := len(p.Assessment.Questions) - 1
		cursor := p.Cursor + delta
		if cursor < 0 {
			cursor = 0
		}
		if cursor > last {
			cursor = last
		}
		p.Cursor = cursor
		return nil
	})
}

// Learner 提交者身份，为空时只返回答案不生成提交记录
type Learner struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

func (l *Learner) present() bool {
	return l != nil && l.UserID != "" && l.UserName != ""
}

// Submit 结束预览并清空会话中的答案，答案随结果一并返回
func (s *PreviewService) Submit(ctx context.Context, id string, learner *Learner) (_ *model.PreviewResult, err error) {
	_, span := tracing.StartSpan(ctx, "preview.submit", "preview.id", id)
	defer func() { tracing.End(span, err) }()

	var captured map[string]string
	p, err := s.Previews.Update(id, func(p *model.PreviewSession) error {
		if err := requireState(p, model.PreviewInProgress); err != nil {
			return err
		}
		now := s.Now()
		captured = p.Answers
		p.Answers = map[string]string{}
		p.State = model.PreviewSubmitted
		p.SubmittedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	monitoring.PreviewTransitions.WithLabelValues(string(model.PreviewSubmitted)).Inc()

	result := &model.PreviewResult{
		SessionID:    p.ID,
		AssessmentID: p.AssessmentID,
		Answers:      captured,
		SubmittedAt:  *p.SubmittedAt,
	}

	if learner.present() && s.Submissions != nil {
		sub, err := s.Submissions.Create(CreateSubmissionRequest{
			AssessmentID: p.AssessmentID,
			UserID:       learner.UserID,
			UserName:     learner.UserName,
			Answers:      captured,
		})
		if err != nil {
			// 评估可能在预览期间被删除，答案仍然返回给调用方
			logger.Log.Warn("failed to record preview submission",
				zap.String("preview_id", p.ID),
				zap.Error(err),
			)
		} else {
			result.Submission = sub
		}
	}
	logger.Log.Debug("preview submitted",
		zap.String("preview_id", p.ID),
		zap.Int("answered", len(captured)),
	)
	return result, nil
}

func (s *PreviewService) view(p *model.PreviewSession) (*model.PreviewView, error) {
	v := &model.PreviewView{
		SessionID:        p.ID,
		AssessmentID:     p.AssessmentID,
		Title:            p.Assessment.Title,
		State:            p.State,
		Index:            p.Cursor,
		Total:            len(p.Assessment.Questions),
		AnsweredCount:    len(p.Answers),
		RemainingSeconds: p.TimeLimitSeconds,
	}

	switch p.State {
	case model.PreviewNotStarted:
	case model.PreviewInProgress:
		q := p.Assessment.Questions[p.Cursor]
		kind, err := q.Type.InputKind()
		if err != nil {
			return nil, err
		}
		v.Question = &model.PreviewQuestion{
			ID:        q.ID,
			Type:      q.Type,
			Prompt:    q.Prompt,
			Options:   q.Options,
			Points:    q.Points,
			TimeLimit: q.TimeLimit,
			InputKind: kind,
		}
		v.Answer = p.Answers[q.ID]
		if p.StartedAt != nil {
			elapsed := int(s.Now().Sub(*p.StartedAt) / time.Second)
			v.RemainingSeconds = p.TimeLimitSeconds - elapsed
			if v.RemainingSeconds < 0 {
				v.RemainingSeconds = 0
			}
		}
	case model.PreviewSubmitted:
		v.RemainingSeconds = 0
	}
	return v, nil
}
