package users

// CreateUserPayload represents the request body for creating a user.
type CreateUserPayload struct {
	Username string `json:"username" form:"username" mod:"trim" validate:"required,min=3,max=50,username"`
	Role     string `json:"role" form:"role" mod:"trim,lcase" validate:"required,oneof=author reader moderator"`
}

type ListUsersQuery struct {
	Limit  int     `query:"limit" json:"limit,omitempty" default:"24" validate:"min=1,max=50"`
	Offset int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Role   *string `query:"role" json:"role,omitempty" validate:"omitempty,oneof=author reader moderator"`
}
