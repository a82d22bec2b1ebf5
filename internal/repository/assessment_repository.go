package repository

import (
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/util"
	"strings"
)

type AssessmentRepository struct {
	rows *table[model.Assessment]
}

func NewAssessmentRepository() *AssessmentRepository {
	return &AssessmentRepository{
		rows: newTable(model.Assessment.Clone, util.ErrAssessmentNotFound),
	}
}

type AssessmentFilter struct {
	Status   model.AssessmentStatus
	Category string
	Query    string // 标题模糊匹配
}

func (f AssessmentFilter) match(a model.Assessment) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Category != "" && !strings.EqualFold(a.Category, f.Category) {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	if !r.rows.insert(a.ID, *a) {
		return util.ErrDuplicate
	}
	return nil
}

func (r *AssessmentRepository) FindByID(id string) (*model.Assessment, error) {
	a, err := r.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update 在锁内修改评估，fn 出错时保持原样
func (r *AssessmentRepository) Update(id string, fn func(*model.Assessment) error) (*model.Assessment, error) {
	a, err := r.rows.mutate(id, fn)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) Delete(id string) error {
	if !r.rows.remove(id) {
		return util.ErrAssessmentNotFound
	}
	return nil
}

// List 按创建时间倒序
func (r *AssessmentRepository) List(filter AssessmentFilter) []model.Assessment {
	return r.rows.list(filter.match, func(a, b model.Assessment) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
