package stories

import "mime/multipart"

type ListStoriesQuery struct {
	CategoriesID []string `query:"categories_id" json:"categories_id,omitempty"`
	IsActive     *int     `query:"is_active" json:"is_active,omitempty" validate:"omitempty,min=0,max=3"`
	SearchString string   `query:"search_string" json:"search_string,omitempty" mod:"trim"`
	IsComplete   *string  `query:"is_complete" json:"is_complete,omitempty"`
	UserID       *int     `query:"user_id" json:"user_id,omitempty"`
	IsStoryNew   *string  `query:"is_story_new" json:"is_story_new,omitempty"`
	Page         int      `query:"page" json:"page,omitempty" default:"1" validate:"min=1"`
	PerPage      *int     `query:"per_page" json:"per_page,omitempty" validate:"omitempty,min=1,max=50"`
}

// CreateStoryPayload is accepted either as JSON or as a multipart form. Files
// are only read from multipart forms, from the chapter_image, license_image
// and cover_image fields.
type CreateStoryPayload struct {
	Title       string                             `json:"title" form:"title" mod:"trim" validate:"required,max=255"`
	Summary     *string                            `json:"summary" form:"summary"`
	AuthorID    int                                `json:"author_id" form:"author_id" validate:"required,min=1"`
	CategoryIDs []int                              `json:"category_ids" form:"category_ids" validate:"omitempty,dive,min=1"`
	FormFiles   map[string][]*multipart.FileHeader `json:"-" form:"-"`

	// Accepted but ignored. New stories always start pending and incomplete.
	Active     *int  `json:"active,omitempty" form:"active"`
	IsComplete *bool `json:"is_complete,omitempty" form:"is_complete"`
}

type UpdateStoryPayload struct {
	Title    *string `json:"title,omitempty" form:"title" mod:"trim" validate:"omitempty,min=1,max=255"`
	AuthorID *int    `json:"author_id,omitempty" form:"author_id" validate:"omitempty,min=1"`
	Summary  *string `json:"summary,omitempty" form:"summary"`
}

type NewStoriesQuery struct {
	TimePeriod string `query:"time_period" json:"time_period,omitempty"`
}
