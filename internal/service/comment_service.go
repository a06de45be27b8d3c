package service

import (
	"context"

	"ember/internal/auth"
	"ember/internal/models"
	"ember/internal/observability"
	"ember/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	Identity auth.Identity
	PostID   uint
	Content  string
}

type UpdateCommentInput struct {
	Identity  auth.Identity
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	Identity  auth.Identity
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment adds a comment to an existing post. The post reference is
// validated here only, not on later reads.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) error {
	const maxCommentLen = 10000

	if in.Content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return err
	}

	comment := &models.Comment{
		Content:   in.Content,
		PostID:    in.PostID,
		CreatedBy: in.Identity.SubjectID,
	}
	return s.commentRepo.Create(ctx, comment)
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListComments returns the comments on a post. A post with no comments (or an
// unknown post id) yields an empty list, not an error.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if err := auth.Authorize(&in.Identity, comment.CreatedBy, auth.ActionMutate); err != nil {
		observability.AuthorizationDenials.WithLabelValues("mutate").Inc()
		return err
	}

	if in.Content == "" {
		return models.NewValidationError("Content is required")
	}

	return s.commentRepo.UpdateFields(ctx, in.CommentID, map[string]any{
		"content": in.Content,
	})
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if err := auth.Authorize(&in.Identity, comment.CreatedBy, auth.ActionMutate); err != nil {
		observability.AuthorizationDenials.WithLabelValues("mutate").Inc()
		return err
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}
