package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		statements := []string{
			`CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				username TEXT NOT NULL,
				role TEXT NOT NULL
			)`,
			`CREATE UNIQUE INDEX ux_users_username ON users (username COLLATE NOCASE)`,
			`CREATE TABLE categories (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				name TEXT NOT NULL
			)`,
			`CREATE UNIQUE INDEX ux_categories_name ON categories (name COLLATE NOCASE)`,
			`CREATE TABLE stories (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				title TEXT NOT NULL,
				summary TEXT,
				author_id INTEGER REFERENCES users (id) NOT NULL,
				active INTEGER NOT NULL DEFAULT 0 CHECK (active IN (0, 1, 2, 3))
			)`,
			`CREATE INDEX ix_stories_author_id ON stories (author_id)`,
			`CREATE INDEX ix_stories_active_created_at ON stories (active, created_at)`,
			`CREATE TABLE story_categories (
				story_id INTEGER REFERENCES stories (id) ON DELETE CASCADE NOT NULL,
				category_id INTEGER REFERENCES categories (id) ON DELETE CASCADE NOT NULL,
				PRIMARY KEY (story_id, category_id)
			)`,
			`CREATE INDEX ix_story_categories_category_id ON story_categories (category_id)`,
			`CREATE TABLE chapters (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				story_id INTEGER REFERENCES stories (id) ON DELETE CASCADE NOT NULL,
				title TEXT NOT NULL,
				chapter_number INTEGER NOT NULL,
				content TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE UNIQUE INDEX ux_chapters_story_number ON chapters (story_id, chapter_number)`,
			`CREATE TABLE images (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				story_id INTEGER REFERENCES stories (id) ON DELETE CASCADE NOT NULL,
				chapter_id INTEGER REFERENCES chapters (id) ON DELETE CASCADE NOT NULL,
				path TEXT NOT NULL,
				is_cover_image BOOLEAN NOT NULL DEFAULT FALSE
			)`,
			`CREATE INDEX ix_images_chapter_id ON images (chapter_id)`,
			// A story can only have a single cover.
			`CREATE UNIQUE INDEX ux_images_story_cover ON images (story_id) WHERE is_cover_image`,
			`CREATE TABLE license_images (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				story_id INTEGER REFERENCES stories (id) ON DELETE CASCADE NOT NULL,
				chapter_id INTEGER REFERENCES chapters (id) ON DELETE CASCADE NOT NULL,
				path TEXT NOT NULL
			)`,
			`CREATE INDEX ix_license_images_story_id ON license_images (story_id)`,
			`CREATE TABLE story_views (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				story_id INTEGER REFERENCES stories (id) ON DELETE CASCADE NOT NULL,
				user_id INTEGER REFERENCES users (id) ON DELETE CASCADE NOT NULL,
				view_count INTEGER NOT NULL DEFAULT 1,
				last_viewed TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE UNIQUE INDEX ux_story_views_story_user ON story_views (story_id, user_id)`,
			`CREATE INDEX ix_story_views_user_id ON story_views (user_id)`,
			`CREATE TABLE favourites (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				story_id INTEGER REFERENCES stories (id) ON DELETE CASCADE NOT NULL,
				user_id INTEGER REFERENCES users (id) ON DELETE CASCADE NOT NULL
			)`,
			`CREATE UNIQUE INDEX ux_favourites_story_user ON favourites (story_id, user_id)`,
			`CREATE TABLE notifications (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER REFERENCES users (id) ON DELETE CASCADE NOT NULL,
				title TEXT NOT NULL,
				message TEXT NOT NULL,
				is_read BOOLEAN NOT NULL DEFAULT FALSE,
				story_id INTEGER REFERENCES stories (id) ON DELETE SET NULL
			)`,
			`CREATE INDEX ix_notifications_user_id ON notifications (user_id)`,
		}

		for _, stmt := range statements {
			if _, err := db.Exec(stmt); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		tables := []string{
			"notifications",
			"favourites",
			"story_views",
			"license_images",
			"images",
			"chapters",
			"story_categories",
			"stories",
			"categories",
			"users",
		}
		for _, table := range tables {
			if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
