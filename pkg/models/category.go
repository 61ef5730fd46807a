package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID         int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Name       string    `bun:",notnull" json:"name"`
	StoryCount int       `bun:",scanonly" json:"story_count"`
}

type StoryCategory struct {
	bun.BaseModel `bun:"table:story_categories,alias:sc"`

	StoryID    int       `bun:",pk" json:"story_id"`
	Story      *Story    `bun:"rel:belongs-to,join:story_id=id" json:"story,omitempty"`
	CategoryID int       `bun:",pk" json:"category_id"`
	Category   *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
}
