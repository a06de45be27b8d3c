package service

import (
	"context"
	"testing"

	"ember/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	t.Parallel()

	dir, err := ParseDirection("upvote")
	require.NoError(t, err)
	assert.Equal(t, Upvote, dir)

	dir, err = ParseDirection("downvote")
	require.NoError(t, err)
	assert.Equal(t, Downvote, dir)

	for _, raw := range []string{"", "up", "UPVOTE", "like"} {
		_, err := ParseDirection(raw)
		assertCode(t, err, models.CodeValidation)
	}
}

// votingPostRepo keeps a single post's tally in memory so serial vote
// sequences read their own writes.
func votingPostRepo(t *testing.T, initial int) *postRepoStub {
	t.Helper()
	count := initial
	return &postRepoStub{
		getByIDFunc: func(ctx context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, CreatedBy: "u1", VoteCount: count}, nil
		},
		updateFieldsFunc: func(ctx context.Context, id uint, fields map[string]any) error {
			v, ok := fields["vote_count"].(int)
			require.True(t, ok, "vote must write vote_count")
			count = v
			return nil
		},
	}
}

func TestApplyVote_PostSerialSequence(t *testing.T) {
	t.Parallel()

	svc := NewVoteService(votingPostRepo(t, 0), &commentRepoStub{})
	ctx := context.Background()

	count, err := svc.ApplyVote(ctx, TargetPost, 1, Upvote)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.ApplyVote(ctx, TargetPost, 1, Upvote)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = svc.ApplyVote(ctx, TargetPost, 1, Downvote)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestApplyVote_DownvoteGoesNegative(t *testing.T) {
	t.Parallel()

	svc := NewVoteService(votingPostRepo(t, 0), &commentRepoStub{})

	count, err := svc.ApplyVote(context.Background(), TargetPost, 1, Downvote)
	require.NoError(t, err)
	assert.Equal(t, -1, count)
}

func TestApplyVote_CommentTally(t *testing.T) {
	t.Parallel()

	votes := 5
	commentRepo := &commentRepoStub{
		getByIDFunc: func(ctx context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, Votes: votes}, nil
		},
		updateFieldsFunc: func(ctx context.Context, id uint, fields map[string]any) error {
			v, ok := fields["votes"].(int)
			require.True(t, ok, "comment vote must write votes")
			votes = v
			return nil
		},
	}
	svc := NewVoteService(&postRepoStub{}, commentRepo)

	count, err := svc.ApplyVote(context.Background(), TargetComment, 3, Upvote)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
	assert.Equal(t, 6, votes)
}

func TestApplyVote_MissingResource(t *testing.T) {
	t.Parallel()

	postRepo := &postRepoStub{
		getByIDFunc: func(ctx context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post")
		},
	}
	commentRepo := &commentRepoStub{
		getByIDFunc: func(ctx context.Context, id uint) (*models.Comment, error) {
			return nil, models.NewNotFoundError("Comment")
		},
	}
	svc := NewVoteService(postRepo, commentRepo)
	ctx := context.Background()

	_, err := svc.ApplyVote(ctx, TargetPost, 999, Upvote)
	assertCode(t, err, models.CodeNotFound)

	_, err = svc.ApplyVote(ctx, TargetComment, 999, Upvote)
	assertCode(t, err, models.CodeNotFound)
}
