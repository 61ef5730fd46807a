package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"golang.org/x/text/cases"
)

// StoryStatus is the moderation state of a story. It's stored in the
// `active` column as an integer.
type StoryStatus int

const (
	StoryStatusPending  StoryStatus = 0
	StoryStatusApproved StoryStatus = 1
	StoryStatusDisabled StoryStatus = 2
	StoryStatusRejected StoryStatus = 3
)

func (s StoryStatus) String() string {
	switch s {
	case StoryStatusPending:
		return "pending"
	case StoryStatusApproved:
		return "approved"
	case StoryStatusDisabled:
		return "disabled"
	case StoryStatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the known statuses.
func (s StoryStatus) Valid() bool {
	return s >= StoryStatusPending && s <= StoryStatusRejected
}

// StoryTransition names a moderation or completion action applied to a story.
type StoryTransition string

const (
	StoryTransitionApprove  StoryTransition = "approve"
	StoryTransitionDisable  StoryTransition = "disable"
	StoryTransitionReject   StoryTransition = "reject"
	StoryTransitionComplete StoryTransition = "complete"
)

type Story struct {
	bun.BaseModel `bun:"table:stories,alias:s"`

	ID         int         `bun:",pk,autoincrement" json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Title      string      `bun:",notnull" json:"title"`
	TitleFold  string      `bun:",notnull" json:"-"`
	Summary    *string     `json:"summary"`
	AuthorID   int         `bun:",notnull" json:"author_id"`
	Active     StoryStatus `bun:",notnull" json:"active"`
	IsComplete bool        `bun:",notnull" json:"is_complete"`

	StoryViewsCount int `bun:",scanonly" json:"story_views_count"`

	// Relations
	Author            *User       `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Chapters          []*Chapter  `bun:"rel:has-many,join:id=story_id" json:"chapters,omitempty"`
	Images            []*Image    `bun:"rel:has-many,join:id=story_id" json:"images,omitempty"`
	Categories        []*Category `bun:"m2m:story_categories,join:Story=Category" json:"categories,omitempty"`
	FavouritedByUsers []*User     `bun:"m2m:favourites,join:Story=User" json:"favourited_by_users,omitempty"`
	UsersView         []*User     `bun:"m2m:story_views,join:Story=User" json:"users_view,omitempty"`
}

var _ bun.BeforeAppendModelHook = (*Story)(nil)

// BeforeAppendModel keeps title_fold in step with the title on every insert
// and update.
func (s *Story) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		s.TitleFold = FoldTitle(s.Title)
	}
	return nil
}

// FoldTitle returns the Unicode case folded form of a title, which is what
// title searches compare against.
func FoldTitle(title string) string {
	return cases.Fold().String(title)
}
