package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Favourite struct {
	bun.BaseModel `bun:"table:favourites,alias:fav"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	StoryID   int       `bun:",notnull" json:"story_id"`
	Story     *Story    `bun:"rel:belongs-to,join:story_id=id" json:"story,omitempty"`
	UserID    int       `bun:",notnull" json:"user_id"`
	User      *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}
