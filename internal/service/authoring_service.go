package service

import (
	"context"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/util"
	"lms_authoring_backend/pkg/logger"
	"lms_authoring_backend/pkg/monitoring"
	"lms_authoring_backend/pkg/tracing"
	"strings"
	"time"

	"go.uber.org/zap"
)

type AuthoringService struct {
	Sessions    *repository.AuthoringSessionRepository
	Assessments *repository.AssessmentRepository
	Now         func() time.Time
}

func NewAuthoringService(sessions *repository.AuthoringSessionRepository, assessments *repository.AssessmentRepository) *AuthoringService {
	return &AuthoringService{Sessions: sessions, Assessments: assessments, Now: time.Now}
}

// AssessmentDetailsRequest 详情表单，字段为 nil 表示不修改
type AssessmentDetailsRequest struct {
	Title            *string         `json:"title"`
	Description      *string         `json:"description"`
	AssessmentType   *string         `json:"assessmentType"`
	Category         *string         `json:"category"`
	PassingScore     *int            `json:"passingScore"`
	AttemptsAllowed  *model.Attempts `json:"attemptsAllowed"`
	TimeLimitMinutes *int            `json:"timeLimitMinutes"`
}

func (r AssessmentDetailsRequest) apply(d *model.AssessmentDetails) error {
	if r.Title != nil {
		d.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		d.Description = *r.Description
	}
	if r.AssessmentType != nil {
		if strings.TrimSpace(*r.AssessmentType) == "" {
			d.AssessmentType = ""
		} else {
			t, err := model.ParseQuestionType(*r.AssessmentType)
			if err != nil {
				return util.NewValidationError("assessmentType", "%v", err)
			}
			d.AssessmentType = t
		}
	}
	if r.Category != nil {
		d.Category = strings.TrimSpace(*r.Category)
	}
	if r.PassingScore != nil {
		d.PassingScore = *r.PassingScore
	}
	if r.AttemptsAllowed != nil {
		d.AttemptsAllowed = *r.AttemptsAllowed
	}
	if r.TimeLimitMinutes != nil {
		d.TimeLimitMinutes = *r.TimeLimitMinutes
	}
	return nil
}

// QuestionDraftRequest 修改当前草稿，字段为 nil 表示不修改
type QuestionDraftRequest struct {
	Type          *string   `json:"type"`
	Prompt        *string   `json:"question"`
	Options       *[]string `json:"options"`
	CorrectAnswer *string   `json:"correctAnswer"`
	Points        *int      `json:"points"`
	TimeLimit     *int      `json:"timeLimit"`
	Explanation   *string   `json:"explanation"`
}

func (s *AuthoringService) CreateSession(req AssessmentDetailsRequest) (*model.AuthoringSession, error) {
	details := defaultDetails()
	if err := req.apply(&details); err != nil {
		return nil, err
	}
	if err := validateDetails(details, false); err != nil {
		return nil, err
	}

	now := s.Now()
	session := &model.AuthoringSession{
		ID:        model.NewID(),
		Step:      model.StepDetails,
		Details:   details,
		Questions: []model.Question{},
		Draft:     defaultDraft(details.AssessmentType),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Sessions.Create(session); err != nil {
		return nil, err
	}
	logger.Log.Debug("authoring session created", zap.String("session_id", session.ID))
	return session, nil
}

// OpenSession 载入已保存的评估继续编辑，已发布的评估同样允许修改
func (s *AuthoringService) OpenSession(assessmentID string) (*model.AuthoringSession, error) {
	a, err := s.Assessments.FindByID(assessmentID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	session := &model.AuthoringSession{
		ID:           model.NewID(),
		Step:         model.StepDetails,
		Details:      a.AssessmentDetails,
		Questions:    a.Questions,
		Draft:        defaultDraft(a.AssessmentType),
		AssessmentID: a.ID,
		Status:       a.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Sessions.Create(session); err != nil {
		return nil, err
	}
	if a.Status == model.StatusPublished {
		logger.Log.Info("editing published assessment", zap.String("assessment_id", a.ID))
	}
	return session, nil
}

func (s *AuthoringService) GetSession(id string) (*model.AuthoringSession, error) {
	return s.Sessions.FindByID(id)
}

func (s *AuthoringService) DiscardSession(id string) error {
	return s.Sessions.Delete(id)
}

func (s *AuthoringService) update(id string, fn func(*model.AuthoringSession) error) (*model.AuthoringSession, error) {
	return s.Sessions.Update(id, func(sess *model.AuthoringSession) error {
		if err := fn(sess); err != nil {
			return err
		}
		sess.UpdatedAt = s.Now()
		return nil
	})
}

func (s *AuthoringService) UpdateDetails(id string, req AssessmentDetailsRequest) (*model.AuthoringSession, error) {
	return s.update(id, func(sess *model.AuthoringSession) error {
		details := sess.Details
		if err := req.apply(&details); err != nil {
			return err
		}
		if err := validateDetails(details, false); err != nil {
			return err
		}
		// 评估题型在创建时确定，已有题目后不可更换
		if details.AssessmentType != sess.Details.AssessmentType && len(sess.Questions) > 0 {
			return util.NewValidationError("assessmentType", "cannot change once questions have been added")
		}
		if details.AssessmentType != sess.Details.AssessmentType {
			sess.Draft = defaultDraft(details.AssessmentType)
		}
		sess.Details = details
		return nil
	})
}

// ContinueToQuestions details -> questions
func (s *AuthoringService) ContinueToQuestions(id string) (*model.AuthoringSession, error) {
	return s.update(id, func(sess *model.AuthoringSession) error {
		if err := validateDetails(sess.Details, true); err != nil {
			return err
		}
		if sess.Step != model.StepQuestions {
			sess.Step = model.StepQuestions
			sess.Draft = defaultDraft(sess.Details.AssessmentType)
		}
		return nil
	})
}

// BackToDetails 返回详情页，已添加的题目保留
func (s *AuthoringService) BackToDetails(id string) (*model.AuthoringSession, error) {
	return s.update(id, func(sess *model.AuthoringSession) error {
		sess.Step = model.StepDetails
		return nil
	})
}

func requireQuestionsStep(sess *model.AuthoringSession) error {
	if sess.Step != model.StepQuestions {
		return util.ErrInvalidTransition
	}
	return nil
}

func (s *AuthoringService) UpdateDraft(id string, req QuestionDraftRequest) (*model.AuthoringSession, error) {
	return s.update(id, func(sess *model.AuthoringSession) error {
		if err := requireQuestionsStep(sess); err != nil {
			return err
		}
		d := sess.Draft.Clone()

		if req.Type != nil {
			t, err := model.ParseQuestionType(*req.Type)
			if err != nil {
				return util.NewValidationError("type", "%v", err)
			}
			if t != d.Type {
				// 切换题型时保留题干等通用字段，选项与答案回到默认
				fresh := defaultDraft(t)
				fresh.Prompt = d.Prompt
				fresh.Points = d.Points
				fresh.TimeLimit = d.TimeLimit
				fresh.Explanation = d.Explanation
				d = fresh
			}
		}
		if req.Prompt != nil {
			d.Prompt = *req.Prompt
		}
		if req.Options != nil {
			if !d.Type.HasOptions() {
				return util.NewValidationError("options", "question type %q has no options", d.Type)
			}
			opts := *req.Options
			if len(opts) < util.MinOptions || len(opts) > util.MaxOptions {
				return util.NewValidationError("options", "must have between %d and %d entries", util.MinOptions, util.MaxOptions)
			}
			d.Options = append([]string(nil), opts...)
		}
		if req.CorrectAnswer != nil {
			d.CorrectAnswer = *req.CorrectAnswer
		}
		if req.Points != nil {
			if *req.Points < 1 {
				return util.NewValidationError("points", "must be a positive integer")
			}
			d.Points = *req.Points
		}
		if req.TimeLimit != nil {
			if *req.TimeLimit < 1 {
				return util.NewValidationError("timeLimit", "must be a positive number of seconds")
			}
			d.TimeLimit = *req.TimeLimit
		}
		if req.Explanation != nil {
			d.Explanation = *req.Explanation
		}
		sess.Draft = d
		return nil
	})
}

// AddOption 追加一个空选项，已有6个时不做任何事
func (s *AuthoringService) AddOption(id string) (*model.AuthoringSession, error) {
	return s.update(id, func(sess *model.AuthoringSession) error {
		if err := requireQuestionsStep(sess); err != nil {
			return err
		}
		if !sess.Draft.Type.HasOptions() {
			return util.NewValidationError("options", "question type %q has no options", sess.Draft.Type)
		}
		if len(sess.Draft.Options) >= util.MaxOptions {
			return nil
		}
		sess.Draft.Options = append(sess.Draft.Options, "")
		return nil
	})
}

// RemoveOption 删除指定选项，剩余不足2个时不做任何事
func (s *AuthoringService) RemoveOption(id string, index int) (*model.AuthoringSession, error) {
	return s.update(id, func(sess *model.AuthoringSession) error {
		if err := requireQuestionsStep(sess); err != nil {
			return err
		}
		opts := sess.Draft.Options
		if index < 0 || index >= len(opts) {
			return util.NewValidationError("index", "option index %d out of range", index)
		}
		if len(opts)-1 < util.MinOptions {
			return nil
		}
		sess.Draft.Options = append(opts[:index:index], opts[index+1:]...)
		return nil
	})
}

func (s *AuthoringService) UpdateOption(id string, index int, value string) (*model.AuthoringSession, error) {
	return s.update(id, func(sess *model.AuthoringSession) error {
		if err := requireQuestionsStep(sess); err != nil {
			return err
		}
		if index < 0 || index >= len(sess.Draft.Options) {
			return util.NewValidationError("index", "option index %d out of range", index)
		}
		sess.Draft.Options[index] = value
		return nil
	})
}

// AddQuestion 校验草稿后追加到题目列表，并把草稿重置为该题型的默认值
// 题干为空或有效选项不足时返回 ValidationError，题目列表不变
func (s *AuthoringService) AddQuestion(id string) (*model.AuthoringSession, *model.Question, error) {
	var added model.Question
	sess, err := s.update(id, func(sess *model.AuthoringSession) error {
		if err := requireQuestionsStep(sess); err != nil {
			return err
		}
		q, err := buildQuestion(sess.Draft)
		if err != nil {
			return err
		}
		q.ID = model.NewID()
		sess.Questions = append(sess.Questions, q)
		sess.Draft = defaultDraft(sess.Draft.Type)
		added = q
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	monitoring.QuestionsAdded.WithLabelValues(string(added.Type)).Inc()
	logger.Log.Debug("question added",
		zap.String("session_id", id),
		zap.String("question_id", added.ID),
		zap.String("type", string(added.Type)),
	)
	return sess, &added, nil
}

// DeleteQuestion 幂等，ID 不存在时不报错
func (s *AuthoringService) DeleteQuestion(id, questionID string) (*model.AuthoringSession, error) {
	return s.update(id, func(sess *model.AuthoringSession) error {
		kept := sess.Questions[:0:0]
		for _, q := range sess.Questions {
			if q.ID != questionID {
				kept = append(kept, q)
			}
		}
		sess.Questions = kept
		return nil
	})
}

func (s *AuthoringService) SaveAsDraft(ctx context.Context, id string) (*model.Assessment, error) {
	return s.save(ctx, id, model.StatusDraft)
}

func (s *AuthoringService) Publish(ctx context.Context, id string) (*model.Assessment, error) {
	return s.save(ctx, id, model.StatusPublished)
}

// save 第一次保存时创建评估并记录 createdAt，之后原地更新
func (s *AuthoringService) save(ctx context.Context, id string, status model.AssessmentStatus) (_ *model.Assessment, err error) {
	_, span := tracing.StartSpan(ctx, "authoring.save", "session.id", id, "assessment.status", string(status))
	defer func() { tracing.End(span, err) }()

	var saved *model.Assessment
	_, err = s.update(id, func(sess *model.AuthoringSession) error {
		if err := validateDetails(sess.Details, true); err != nil {
			return err
		}
		if len(sess.Questions) == 0 {
			return util.ErrNoQuestions
		}

		now := s.Now()
		if sess.AssessmentID == "" {
			a := &model.Assessment{
				ID:                model.NewID(),
				AssessmentDetails: sess.Details,
				Questions:         sess.Questions,
				Status:            status,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if status == model.StatusPublished {
				a.PublishedAt = &now
			}
			if err := s.Assessments.Create(a); err != nil {
				return err
			}
			sess.AssessmentID = a.ID
			saved = a
		} else {
			a, err := s.Assessments.Update(sess.AssessmentID, func(a *model.Assessment) error {
				a.AssessmentDetails = sess.Details
				a.Questions = sess.Questions
				a.UpdatedAt = now
				switch status {
				case model.StatusPublished:
					if a.Status != model.StatusPublished || a.PublishedAt == nil {
						a.PublishedAt = &now
					}
				case model.StatusDraft:
					a.PublishedAt = nil
				}
				a.Status = status
				return nil
			})
			if err != nil {
				return err
			}
			saved = a
		}
		sess.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AssessmentsSaved.WithLabelValues(string(status)).Inc()
	logger.Log.Info("assessment saved",
		zap.String("assessment_id", saved.ID),
		zap.String("status", string(status)),
		zap.Int("questions", len(saved.Questions)),
	)
	return saved, nil
}
