package service

import (
	"context"

	"ember/internal/models"
)

// postRepoStub lets each test override only the calls it cares about. Any
// unset method panics so a test cannot silently exercise the wrong path.
type postRepoStub struct {
	createFunc         func(ctx context.Context, post *models.Post) error
	getByIDFunc        func(ctx context.Context, id uint) (*models.Post, error)
	listFunc           func(ctx context.Context, limit, offset int) ([]*models.Post, error)
	listByOwnerFunc    func(ctx context.Context, ownerID string, limit, offset int) ([]*models.Post, error)
	listByCategoryFunc func(ctx context.Context, category string, limit, offset int) ([]*models.Post, error)
	updateFieldsFunc   func(ctx context.Context, id uint, fields map[string]any) error
	deleteFunc         func(ctx context.Context, id uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFunc(ctx, post)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFunc(ctx, id)
}

func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFunc(ctx, limit, offset)
}

func (s *postRepoStub) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*models.Post, error) {
	return s.listByOwnerFunc(ctx, ownerID, limit, offset)
}

func (s *postRepoStub) ListByCategory(ctx context.Context, category string, limit, offset int) ([]*models.Post, error) {
	return s.listByCategoryFunc(ctx, category, limit, offset)
}

func (s *postRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	return s.updateFieldsFunc(ctx, id, fields)
}

func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFunc(ctx, id)
}

type commentRepoStub struct {
	createFunc       func(ctx context.Context, comment *models.Comment) error
	getByIDFunc      func(ctx context.Context, id uint) (*models.Comment, error)
	listByPostFunc   func(ctx context.Context, postID uint) ([]*models.Comment, error)
	updateFieldsFunc func(ctx context.Context, id uint, fields map[string]any) error
	deleteFunc       func(ctx context.Context, id uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFunc(ctx, comment)
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFunc(ctx, id)
}

func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFunc(ctx, postID)
}

func (s *commentRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	return s.updateFieldsFunc(ctx, id, fields)
}

func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFunc(ctx, id)
}
