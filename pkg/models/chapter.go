package models

import (
	"time"

	"github.com/uptrace/bun"
)

// FirstChapterNumber is the number of the chapter created alongside every
// story.
const FirstChapterNumber = 1

type Chapter struct {
	bun.BaseModel `bun:"table:chapters,alias:ch"`

	ID            int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	StoryID       int       `bun:",notnull" json:"story_id"`
	Title         string    `bun:",notnull" json:"title"`
	ChapterNumber int       `bun:",notnull" json:"chapter_number"`
	Content       string    `bun:",notnull" json:"content"`

	// Relations
	Story  *Story   `bun:"rel:belongs-to,join:story_id=id" json:"-"`
	Images []*Image `bun:"rel:has-many,join:id=chapter_id" json:"images,omitempty"`
}
