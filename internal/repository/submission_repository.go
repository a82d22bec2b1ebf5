package repository

import (
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/util"
	"strings"
)

type SubmissionRepository struct {
	rows *table[model.Submission]
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{
		rows: newTable(model.Submission.Clone, util.ErrSubmissionNotFound),
	}
}

type SubmissionFilter struct {
	AssessmentID string
	DebateID     string
	UserName     string
	Scored       *bool
}

func (f SubmissionFilter) match(s model.Submission) bool {
	if f.AssessmentID != "" && s.AssessmentID != f.AssessmentID {
		return false
	}
	if f.DebateID != "" && s.DebateID != f.DebateID {
		return false
	}
	if f.UserName != "" && !strings.Contains(strings.ToLower(s.UserName), strings.ToLower(f.UserName)) {
		return false
	}
	if f.Scored != nil && s.IsScored() != *f.Scored {
		return false
	}
	return true
}

func (r *SubmissionRepository) Create(s *model.Submission) error {
	if !r.rows.insert(s.ID, *s) {
		return util.ErrDuplicate
	}
	return nil
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	s, err := r.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) Update(id string, fn func(*model.Submission) error) (*model.Submission, error) {
	s, err := r.rows.mutate(id, fn)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) Delete(id string) error {
	if !r.rows.remove(id) {
		return util.ErrSubmissionNotFound
	}
	return nil
}

// List 按提交时间倒序
func (r *SubmissionRepository) List(filter SubmissionFilter) []model.Submission {
	return r.rows.list(filter.match, func(a, b model.Submission) bool {
		if a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.ID < b.ID
		}
		return a.SubmittedAt.After(b.SubmittedAt)
	})
}

// DeleteByAssessment 评估被删除时清理其提交
func (r *SubmissionRepository) DeleteByAssessment(assessmentID string) int {
	removed := 0
	for _, s := range r.List(SubmissionFilter{AssessmentID: assessmentID}) {
		if r.rows.remove(s.ID) {
			removed++
		}
	}
	return removed
}
