package service

import (
	"context"
	"fmt"
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/repository"
	"lms_authoring_backend/internal/util"
	"lms_authoring_backend/pkg/logger"
	"lms_authoring_backend/pkg/tracing"
	"time"

	"go.uber.org/zap"
)

// AssessmentService 已保存评估的目录：列表、详情、删除、导入导出
type AssessmentService struct {
	Assessments *repository.AssessmentRepository
	Submissions *repository.SubmissionRepository
	Now         func() time.Time
}

func NewAssessmentService(assessments *repository.AssessmentRepository, submissions *repository.SubmissionRepository) *AssessmentService {
	return &AssessmentService{Assessments: assessments, Submissions: submissions, Now: time.Now}
}

func (s *AssessmentService) List(filter repository.AssessmentFilter, page, limit int) ([]model.AssessmentSummary, int64) {
	all := s.Assessments.List(filter)
	out := make([]model.AssessmentSummary, 0, limit)
	for _, a := range util.Paginate(all, page, limit) {
		out = append(out, a.Summary())
	}
	return out, int64(len(all))
}

func (s *AssessmentService) Get(id string) (*model.Assessment, error) {
	return s.Assessments.FindByID(id)
}

// Delete 同时删除该评估下的提交
func (s *AssessmentService) Delete(id string) error {
	if err := s.Assessments.Delete(id); err != nil {
		return err
	}
	removed := s.Submissions.DeleteByAssessment(id)
	logger.Log.Info("assessment deleted",
		zap.String("assessment_id", id),
		zap.Int("submissions_removed", removed),
	)
	return nil
}

// Import 接收导出格式的评估，校验全部字段后作为新评估保存
// 题目ID为空或重复时重新生成，createdAt 保留原值（为空时取当前时间）
func (s *AssessmentService) Import(ctx context.Context, in model.Assessment) (_ *model.Assessment, err error) {
	_, span := tracing.StartSpan(ctx, "assessment.import", "assessment.title", in.Title)
	defer func() { tracing.End(span, err) }()

	if err := validateDetails(in.AssessmentDetails, true); err != nil {
		return nil, err
	}
	if len(in.Questions) == 0 {
		return nil, util.ErrNoQuestions
	}
	status := in.Status
	if status == "" {
		status = model.StatusDraft
	}
	if !status.Valid() {
		return nil, util.NewValidationError("status", "must be draft or published")
	}

	seen := make(map[string]bool, len(in.Questions))
	questions := make([]model.Question, 0, len(in.Questions))
	for i, q := range in.Questions {
		checked, err := validateQuestion(q)
		if err != nil {
			if ve, ok := util.AsValidation(err); ok {
				return nil, util.NewValidationError(fmt.Sprintf("questions[%d].%s", i, ve.Field), "%s", ve.Message)
			}
			return nil, err
		}
		if checked.ID == "" || seen[checked.ID] {
			checked.ID = model.NewID()
		}
		seen[checked.ID] = true
		questions = append(questions, checked)
	}

	now := s.Now()
	a := &model.Assessment{
		ID:                model.NewID(),
		AssessmentDetails: in.AssessmentDetails,
		Questions:         questions,
		Status:            status,
		CreatedAt:         in.CreatedAt,
		UpdatedAt:         now,
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if status == model.StatusPublished {
		published := now
		if in.PublishedAt != nil {
			published = *in.PublishedAt
		}
		a.PublishedAt = &published
	}
	if err := s.Assessments.Create(a); err != nil {
		return nil, err
	}
	logger.Log.Info("assessment imported",
		zap.String("assessment_id", a.ID),
		zap.Int("questions", len(a.Questions)),
	)
	return a, nil
}
