package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User roles. Only authors receive story notifications.
const (
	UserRoleAuthor    = "author"
	UserRoleReader    = "reader"
	UserRoleModerator = "moderator"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `bun:",notnull" json:"username"`
	Role      string    `bun:",notnull" json:"role"`
}

// IsAuthor reports whether the user publishes stories and should be told about
// moderation decisions.
func (u *User) IsAuthor() bool {
	return u != nil && u.Role == UserRoleAuthor
}
