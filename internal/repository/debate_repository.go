package repository

import (
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/util"
)

type DebateRepository struct {
	rows *table[model.Debate]
}

func NewDebateRepository() *DebateRepository {
	return &DebateRepository{
		rows: newTable(model.Debate.Clone, util.ErrDebateNotFound),
	}
}

func (r *DebateRepository) Create(d *model.Debate) error {
	if !r.rows.insert(d.ID, *d) {
		return util.ErrDuplicate
	}
	return nil
}

func (r *DebateRepository) FindByID(id string) (*model.Debate, error) {
	d, err := r.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DebateRepository) Update(id string, fn func(*model.Debate) error) (*model.Debate, error) {
	d, err := r.rows.mutate(id, fn)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DebateRepository) List() []model.Debate {
	return r.rows.list(nil, func(a, b model.Debate) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
