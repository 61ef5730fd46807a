package stories

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/storyshelf/storyshelf/pkg/errcodes"
	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/storyshelf/storyshelf/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalStories(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	count, err := env.svc.TotalStories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	author := testutils.CreateUser(t, env.db, models.UserRoleAuthor)
	testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID})
	testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID, Active: models.StoryStatusApproved})
	testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID, Active: models.StoryStatusRejected})

	count, err = env.svc.TotalStories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNewStoriesCount(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Now()

	author := testutils.CreateUser(t, env.db, models.UserRoleAuthor)
	approved := models.StoryStatusApproved
	testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID, Active: approved, CreatedAt: now.Add(-24 * time.Hour)})
	testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID, Active: approved, CreatedAt: now.AddDate(0, 0, -10)})
	testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID, Active: approved, CreatedAt: now.AddDate(0, -2, 0)})
	testutils.CreateStory(t, env.db, testutils.StoryOptions{AuthorID: author.ID, Active: models.StoryStatusPending, CreatedAt: now.Add(-time.Hour)})

	tests := []struct {
		period string
		want   int
	}{
		{"", 1},
		{PeriodWeek, 1},
		{PeriodMonth, 2},
	}
	for _, tt := range tests {
		count, err := env.svc.NewStoriesCount(ctx, tt.period, now)
		require.NoError(t, err)
		assert.Equal(t, tt.want, count, "period %q", tt.period)
	}

	_, err := env.svc.NewStoriesCount(ctx, "quarter", now)
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusBadRequest, codeErr.HTTPCode)
	assert.Equal(t, "invalid_parameter", codeErr.Code)
}
