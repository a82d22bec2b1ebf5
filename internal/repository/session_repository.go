package repository

import (
	"lms_authoring_backend/internal/model"
	"lms_authoring_backend/internal/util"
)

// AuthoringSessionRepository 保存出题界面的进行中状态
type AuthoringSessionRepository struct {
	rows *table[model.AuthoringSession]
}

func NewAuthoringSessionRepository() *AuthoringSessionRepository {
	return &AuthoringSessionRepository{
		rows: newTable(model.AuthoringSession.Clone, util.ErrSessionNotFound),
	}
}

func (r *AuthoringSessionRepository) Create(s *model.AuthoringSession) error {
	if !r.rows.insert(s.ID, *s) {
		return util.ErrDuplicate
	}
	return nil
}

func (r *AuthoringSessionRepository) FindByID(id string) (*model.AuthoringSession, error) {
	s, err := r.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AuthoringSessionRepository) Update(id string, fn func(*model.AuthoringSession) error) (*model.AuthoringSession, error) {
	s, err := r.rows.mutate(id, fn)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AuthoringSessionRepository) Delete(id string) error {
	if !r.rows.remove(id) {
		return util.ErrSessionNotFound
	}
	return nil
}

// PreviewSessionRepository 保存学习者预览会话
type PreviewSessionRepository struct {
	rows *table[model.PreviewSession]
}

func NewPreviewSessionRepository() *PreviewSessionRepository {
	return &PreviewSessionRepository{
		rows: newTable(model.PreviewSession.Clone, util.ErrPreviewNotFound),
	}
}

func (r *PreviewSessionRepository) Create(p *model.PreviewSession) error {
	if !r.rows.insert(p.ID, *p) {
		return util.ErrDuplicate
	}
	return nil
}

func (r *PreviewSessionRepository) FindByID(id string) (*model.PreviewSession, error) {
	p, err := r.rows.get(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PreviewSessionRepository) Update(id string, fn func(*model.PreviewSession) error) (*model.PreviewSession, error) {
	p, err := r.rows.mutate(id, fn)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PreviewSessionRepository) Delete(id string) error {
	if !r.rows.remove(id) {
		return util.ErrPreviewNotFound
	}
	return nil
}
