package server

import (
	"fmt"
	"time"

	"ember/internal/cache"
	"ember/internal/models"
	"ember/internal/service"

	"github.com/gofiber/fiber/v2"
)

const commentCacheTTL = 60 * time.Second

func commentCacheKey(id uint) string {
	return fmt.Sprintf("comment:%d", id)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Comments retrieved successfully!", comments)
}

// GetComment handles GET /api/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var comment models.Comment
	err = cache.CacheAside(c.Context(), commentCacheKey(id), &comment, commentCacheTTL, func() error {
		cm, err := s.commentService.GetComment(c.Context(), id)
		if err != nil {
			return err
		}
		comment = *cm
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Comment retrieved successfully!", comment)
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	identity, ok := s.identity(c)
	if !ok {
		return models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	err = s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		Identity: identity,
		PostID:   postID,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Comment added successfully!", nil)
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	identity, ok := s.identity(c)
	if !ok {
		return models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	err = s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		Identity:  identity,
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	cache.Invalidate(c.Context(), commentCacheKey(id))

	return models.Respond(c, fiber.StatusOK, "Comment updated successfully!", nil)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	identity, ok := s.identity(c)
	if !ok {
		return models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	err = s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		Identity:  identity,
		CommentID: id,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	cache.Invalidate(c.Context(), commentCacheKey(id))

	return models.Respond(c, fiber.StatusOK, "Comment deleted successfully!", nil)
}

// VoteComment handles POST /api/comments/:id/vote
func (s *Server) VoteComment(c *fiber.Ctx) error {
	if _, ok := s.identity(c); !ok {
		return models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		VoteType string `json:"vote_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	dir, err := service.ParseDirection(req.VoteType)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	count, err := s.voteService.ApplyVote(c.Context(), service.TargetComment, id, dir)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	cache.Invalidate(c.Context(), commentCacheKey(id))

	return models.Respond(c, fiber.StatusOK,
		fmt.Sprintf("Comment %sd successfully!", dir),
		fiber.Map{"votes": count})
}
