package models

import (
	"time"

	"github.com/uptrace/bun"
)

// StoryView records that a user has viewed a story. There is at most one row
// per (story_id, user_id).
type StoryView struct {
	bun.BaseModel `bun:"table:story_views,alias:sv"`

	ID         int       `bun:",pk,autoincrement" json:"id"`
	StoryID    int       `bun:",notnull" json:"story_id"`
	Story      *Story    `bun:"rel:belongs-to,join:story_id=id" json:"story,omitempty"`
	UserID     int       `bun:",notnull" json:"user_id"`
	User       *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	ViewCount  int       `bun:",notnull" json:"view_count"`
	LastViewed time.Time `json:"last_viewed"`
}
