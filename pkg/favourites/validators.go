package favourites

type FavouritePayload struct {
	UserID int `json:"user_id" form:"user_id" validate:"required,min=1"`
}
