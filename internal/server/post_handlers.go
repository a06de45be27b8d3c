package server

import (
	"fmt"
	"time"

	"ember/internal/cache"
	"ember/internal/models"
	"ember/internal/service"

	"github.com/gofiber/fiber/v2"
)

const postCacheTTL = 60 * time.Second

func postCacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	identity, ok := s.identity(c)
	if !ok {
		return models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
	}

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Categories  []string `json:"categories"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	// created_by comes from the verified identity; a client-supplied owner
	// field is never honored.
	err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		Identity:    identity,
		Title:       req.Title,
		Description: req.Description,
		Categories:  req.Categories,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Post created successfully!", nil)
}

// GetPosts handles GET /api/posts with an optional category filter.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Category: c.Query("category"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Posts retrieved successfully!", posts)
}

// GetUserPosts handles GET /api/users/:userId/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	owner := c.Params("userId")
	if owner == "" {
		return models.RespondWithError(c, models.NewValidationError("Invalid userId"))
	}
	page := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Owner:  owner,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Posts retrieved successfully!", posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var post models.Post
	err = cache.CacheAside(c.Context(), postCacheKey(id), &post, postCacheTTL, func() error {
		p, err := s.postService.GetPost(c.Context(), id)
		if err != nil {
			return err
		}
		post = *p
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Post retrieved successfully!", post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	identity, ok := s.identity(c)
	if !ok {
		return models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Categories  []string `json:"categories"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	err = s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		Identity:    identity,
		PostID:      id,
		Title:       req.Title,
		Description: req.Description,
		Categories:  req.Categories,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	cache.Invalidate(c.Context(), postCacheKey(id))

	return models.Respond(c, fiber.StatusOK, "Post updated successfully!", nil)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	identity, ok := s.identity(c)
	if !ok {
		return models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	err = s.postService.DeletePost(c.Context(), service.DeletePostInput{
		Identity: identity,
		PostID:   id,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	cache.Invalidate(c.Context(), postCacheKey(id))

	return models.Respond(c, fiber.StatusOK, "Post deleted successfully!", nil)
}

// VotePost handles POST /api/posts/:id/vote
func (s *Server) VotePost(c *fiber.Ctx) error {
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

	count, err := s.voteService.ApplyVote(c.Context(), service.TargetPost, id, dir)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	cache.Invalidate(c.Context(), postCacheKey(id))

	return models.Respond(c, fiber.StatusOK,
		fmt.Sprintf("Post %sd successfully!", dir),
		fiber.Map{"vote_count": count})
}
