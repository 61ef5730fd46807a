package testutils

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/storyshelf/storyshelf/pkg/models"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var seq atomic.Int64

func next() int64 {
	return seq.Add(1)
}

// CreateUser inserts a user with the given role.
func CreateUser(t *testing.T, db bun.IDB, role string) *models.User {
	t.Helper()

	now := time.Now()
	user := &models.User{
		CreatedAt: now,
		UpdatedAt: now,
		Username:  fmt.Sprintf("%s-%d", role, next()),
		Role:      role,
	}
	_, err := db.NewInsert().Model(user).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return user
}

// CreateCategory inserts a category with the given name.
func CreateCategory(t *testing.T, db bun.IDB, name string) *models.Category {
	t.Helper()

	now := time.Now()
	category := &models.Category{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
	}
	_, err := db.NewInsert().Model(category).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return category
}

type StoryOptions struct {
	Title       string
	AuthorID    int
	Active      models.StoryStatus
	IsComplete  bool
	CreatedAt   time.Time
	CategoryIDs []int
}

// CreateStory inserts a story together with its first chapter and category
// links, bypassing the lifecycle rules so tests can set up any state.
func CreateStory(t *testing.T, db bun.IDB, opts StoryOptions) *models.Story {
	t.Helper()
	ctx := context.Background()

	if opts.Title == "" {
		opts.Title = fmt.Sprintf("Story %d", next())
	}
	if opts.CreatedAt.IsZero() {
		opts.CreatedAt = time.Now()
	}

	story := &models.Story{
		CreatedAt:  opts.CreatedAt,
		UpdatedAt:  opts.CreatedAt,
		Title:      opts.Title,
		AuthorID:   opts.AuthorID,
		Active:     opts.Active,
		IsComplete: opts.IsComplete,
	}
	_, err := db.NewInsert().Model(story).Returning("*").Exec(ctx)
	require.NoError(t, err)

	chapter := &models.Chapter{
		CreatedAt:     opts.CreatedAt,
		UpdatedAt:     opts.CreatedAt,
		StoryID:       story.ID,
		Title:         story.Title,
		ChapterNumber: models.FirstChapterNumber,
	}
	_, err = db.NewInsert().Model(chapter).Returning("*").Exec(ctx)
	require.NoError(t, err)

	for _, id := range opts.CategoryIDs {
		_, err = db.NewInsert().Model(&models.StoryCategory{StoryID: story.ID, CategoryID: id}).Exec(ctx)
		require.NoError(t, err)
	}

	return story
}

// CreateView inserts a story view row directly.
func CreateView(t *testing.T, db bun.IDB, storyID, userID int, lastViewed time.Time) *models.StoryView {
	t.Helper()

	view := &models.StoryView{
		StoryID:    storyID,
		UserID:     userID,
		ViewCount:  1,
		LastViewed: lastViewed,
	}
	_, err := db.NewInsert().Model(view).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return view
}
