package models

import "github.com/uptrace/bun"

// Register registers the join models that back m2m relations. It must be
// called on every bun.DB before relations are queried.
func Register(db *bun.DB) {
	db.RegisterModel(
		(*StoryCategory)(nil),
		(*Favourite)(nil),
		(*StoryView)(nil),
	)
}
