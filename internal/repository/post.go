// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"encoding/json"
	"errors"

	"ember/internal/models"

	"gorm.io/gorm"
)

// PostRepository is the capability set higher layers need from post storage.
// There is no transactional guarantee across calls; callers must tolerate a
// read-then-write race.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*models.Post, error)
	ListByCategory(ctx context.Context, category string, limit, offset int) ([]*models.Post, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByCategory(ctx context.Context, category string, limit, offset int) ([]*models.Post, error) {
	// Categories are stored as a JSON array in a text column; containment is
	// matched against the quoted element. Works on both Postgres and SQLite.
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("categories LIKE ?", `%"`+category+`"%`).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	// Map-based updates bypass the field serializer, so the categories slice
	// is marshaled here to match the column's JSON encoding.
	if cats, ok := fields["categories"].([]string); ok {
		b, err := json.Marshal(cats)
		if err != nil {
			return err
		}
		fields["categories"] = string(b)
	}
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
