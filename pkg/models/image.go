package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Image struct {
	bun.BaseModel `bun:"table:images,alias:img"`

	ID           int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	StoryID      int       `bun:",notnull" json:"story_id"`
	ChapterID    int       `bun:",notnull" json:"chapter_id"`
	Path         string    `bun:",notnull" json:"path"`
	IsCoverImage bool      `bun:",notnull" json:"is_cover_image"`
}

// LicenseImage is a legal or verification document attached to a story. These
// are kept apart from the images shown to readers.
type LicenseImage struct {
	bun.BaseModel `bun:"table:license_images,alias:li"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	StoryID   int       `bun:",notnull" json:"story_id"`
	ChapterID int       `bun:",notnull" json:"chapter_id"`
	Path      string    `bun:",notnull" json:"path"`
}
