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

type SubmissionService struct {
	Submissions *repository.SubmissionRepository
	Assessments *repository.AssessmentRepository
	Debates     *repository.DebateRepository
	Now         func() time.Time
}

func NewSubmissionService(submissions *repository.SubmissionRepository, assessments *repository.AssessmentRepository, debates *repository.DebateRepository) *SubmissionService {
	return &SubmissionService{
		Submissions: submissions,
		Assessments: assessments,
		Debates:     debates,
		Now:         time.Now,
	}
}

// CreateSubmissionRequest 测验提交带 AssessmentID 与 Answers，辩论提交带 DebateID 与 Position
type CreateSubmissionRequest struct {
	AssessmentID string            `json:"assessmentId"`
	DebateID     string            `json:"debateId"`
	UserID       string            `json:"userId" binding:"required"`
	UserName     string            `json:"userName" binding:"required"`
	Position     model.Position    `json:"position"`
	Answers      map[string]string `json:"answers"`
	Response     string            `json:"response"`
}

func (s *SubmissionService) Create(req CreateSubmissionRequest) (*model.Submission, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, util.NewValidationError("userId", "is required")
	}
	if strings.TrimSpace(req.UserName) == "" {
		return nil, util.NewValidationError("userName", "is required")
	}

	sub := &model.Submission{
		ID:          model.NewID(),
		UserID:      strings.TrimSpace(req.UserID),
		UserName:    strings.TrimSpace(req.UserName),
		Response:    req.Response,
		SubmittedAt: s.Now(),
	}

	switch {
	case req.AssessmentID != "" && req.DebateID != "":
		return nil, util.NewValidationError("assessmentId", "a submission belongs to either an assessment or a debate")
	case req.AssessmentID != "":
		a, err := s.Assessments.FindByID(req.AssessmentID)
		if err != nil {
			return nil, err
		}
		if req.Position != "" {
			return nil, util.NewValidationError("position", "only debate submissions carry a position")
		}
		for qid := range req.Answers {
			if _, ok := a.QuestionByID(qid); !ok {
				return nil, util.NewValidationError("answers", "question %s does not belong to this assessment", qid)
			}
		}
		sub.AssessmentID = a.ID
		sub.Answers = make(map[string]string, len(req.Answers))
		for k, v := range req.Answers {
			sub.Answers[k] = v
		}
	case req.DebateID != "":
		d, err := s.Debates.FindByID(req.DebateID)
		if err != nil {
			return nil, err
		}
		if !req.Position.Valid() {
			return nil, util.NewValidationError("position", "must be for or against")
		}
		if len(req.Answers) > 0 {
			return nil, util.NewValidationError("answers", "debate submissions carry a position, not answers")
		}
		sub.DebateID = d.ID
		sub.Position = req.Position
	default:
		return nil, util.NewValidationError("assessmentId", "assessmentId or debateId is required")
	}

	if err := s.Submissions.Create(sub); err != nil {
		return nil, err
	}
	logger.Log.Debug("submission recorded",
		zap.String("submission_id", sub.ID),
		zap.String("user_id", sub.UserID),
	)
	return sub, nil
}

func (s *SubmissionService) Get(id string) (*model.Submission, error) {
	return s.Submissions.FindByID(id)
}

func (s *SubmissionService) List(filter repository.SubmissionFilter) []model.Submission {
	return s.Submissions.List(filter)
}

func (s *SubmissionService) Delete(id string) error {
	return s.Submissions.Delete(id)
}

// MaxScore 测验为全部题目分值之和，辩论为活动设置的满分
func (s *SubmissionService) MaxScore(sub *model.Submission) (int, error) {
	if sub.DebateID != "" {
		d, err := s.Debates.FindByID(sub.DebateID)
		if err != nil {
			return 0, err
		}
		return d.MaxScore, nil
	}
	a, err := s.Assessments.FindByID(sub.AssessmentID)
	if err != nil {
		return 0, err
	}
	return a.TotalPoints(), nil
}

// Score 记录教师评分，超出 [0, maxScore] 直接拒绝
// 再次评分会覆盖之前的分数与评语
func (s *SubmissionService) Score(ctx context.Context, id string, score int, feedback string) (_ *model.Submission, err error) {
	_, span := tracing.StartSpan(ctx, "submission.score", "submission.id", id)
	defer func() { tracing.End(span, err) }()

	current, err := s.Submissions.FindByID(id)
	if err != nil {
		return nil, err
	}
	maxScore, err := s.MaxScore(current)
	if err != nil {
		return nil, err
	}
	if score < 0 || score > maxScore {
		return nil, util.NewValidationError("score", "must be between 0 and %d", maxScore)
	}

	sub, err := s.Submissions.Update(id, func(sub *model.Submission) error {
		now := s.Now()
		v := score
		sub.Score = &v
		sub.Feedback = feedback
		sub.ScoredAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.SubmissionsScored.Inc()
	logger.Log.Info("submission scored",
		zap.String("submission_id", id),
		zap.Int("score", score),
		zap.Int("max_score", maxScore),
	)
	return sub, nil
}

// Analytics 按过滤条件取提交后实时计算
func (s *SubmissionService) Analytics(filter repository.SubmissionFilter) model.ScoreStats {
	return ComputeAnalytics(s.Submissions.List(filter))
}
