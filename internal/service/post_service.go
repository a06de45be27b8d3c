// Package service implements the resource lifecycle managers and the vote
// tally engine. Services authorize against the stored owner, never a
// client-supplied value, and propagate policy denials unchanged.
package service

import (
	"context"

	"ember/internal/auth"
	"ember/internal/models"
	"ember/internal/observability"
	"ember/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Identity    auth.Identity
	Title       string
	Description string
	Categories  []string
}

type ListPostsInput struct {
	Owner    string
	Category string
	Limit    int
	Offset   int
}

type UpdatePostInput struct {
	Identity    auth.Identity
	PostID      uint
	Title       string
	Description string
	Categories  []string
}

type DeletePostInput struct {
	Identity auth.Identity
	PostID   uint
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) error {
	const maxTitleLen = 300
	const maxDescriptionLen = 50000

	if in.Title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Description == "" {
		return models.NewValidationError("Description is required")
	}
	if len(in.Description) > maxDescriptionLen {
		return models.NewValidationError("Description too long (max 50000 characters)")
	}

	// Owner is always stamped from the verified identity.
	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		Categories:  in.Categories,
		CreatedBy:   in.Identity.SubjectID,
	}
	return s.postRepo.Create(ctx, post)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns all posts, or the subset owned by in.Owner or tagged with
// in.Category when set. An empty result is not an error.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	switch {
	case in.Owner != "":
		return s.postRepo.ListByOwner(ctx, in.Owner, in.Limit, in.Offset)
	case in.Category != "":
		return s.postRepo.ListByCategory(ctx, in.Category, in.Limit, in.Offset)
	default:
		return s.postRepo.List(ctx, in.Limit, in.Offset)
	}
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if err := auth.Authorize(&in.Identity, post.CreatedBy, auth.ActionMutate); err != nil {
		observability.AuthorizationDenials.WithLabelValues("mutate").Inc()
		return err
	}

	fields := map[string]any{}
	if in.Title != "" {
		fields["title"] = in.Title
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.Categories != nil {
		fields["categories"] = in.Categories
	}
	if len(fields) == 0 {
		return models.NewValidationError("No fields to update")
	}

	return s.postRepo.UpdateFields(ctx, in.PostID, fields)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if err := auth.Authorize(&in.Identity, post.CreatedBy, auth.ActionMutate); err != nil {
		observability.AuthorizationDenials.WithLabelValues("mutate").Inc()
		return err
	}

	return s.postRepo.Delete(ctx, in.PostID)
}
