package service

import (
	"context"

	"ember/internal/models"
	"ember/internal/observability"
	"ember/internal/repository"
)

// VoteTarget selects which collection a vote applies to.
type VoteTarget string

const (
	TargetPost    VoteTarget = "post"
	TargetComment VoteTarget = "comment"
)

// Direction is a vote direction, constrained to exactly two literals.
type Direction string

const (
	Upvote   Direction = "upvote"
	Downvote Direction = "downvote"
)

// ParseDirection validates a raw vote direction value.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(raw) {
	case Upvote, Downvote:
		return Direction(raw), nil
	default:
		return "", models.NewValidationError("vote_type must be 'upvote' or 'downvote'")
	}
}

func (d Direction) delta() int {
	if d == Upvote {
		return 1
	}
	return -1
}

// VoteService applies vote deltas to post and comment tallies.
//
// The tally is a non-atomic read-modify-write: the store adapter exposes no
// compare-and-swap or transaction primitive, so two concurrent votes on the
// same resource can lose an update. This is an accepted consistency weakness
// of the design, not something the engine papers over. No record is kept of
// which subject voted; repeat voting accumulates.
type VoteService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewVoteService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *VoteService {
	return &VoteService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// ApplyVote applies a single vote delta to the target resource and returns
// the resulting count. A missing resource is a NotFound error, never a
// silent no-op.
func (s *VoteService) ApplyVote(ctx context.Context, target VoteTarget, id uint, dir Direction) (int, error) {
	var count int

	switch target {
	case TargetPost:
		post, err := s.postRepo.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		count = post.VoteCount + dir.delta()
		if err := s.postRepo.UpdateFields(ctx, id, map[string]any{"vote_count": count}); err != nil {
			return 0, err
		}
	case TargetComment:
		comment, err := s.commentRepo.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		count = comment.Votes + dir.delta()
		if err := s.commentRepo.UpdateFields(ctx, id, map[string]any{"votes": count}); err != nil {
			return 0, err
		}
	default:
		return 0, models.NewValidationError("Unknown vote target")
	}

	observability.VotesApplied.WithLabelValues(string(target), string(dir)).Inc()
	return count, nil
}
