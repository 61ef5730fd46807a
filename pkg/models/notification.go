package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int       `bun:",notnull" json:"user_id"`
	Title     string    `bun:",notnull" json:"title"`
	Message   string    `bun:",notnull" json:"message"`
	IsRead    bool      `bun:",notnull" json:"is_read"`
	StoryID   *int      `json:"story_id"`
}
