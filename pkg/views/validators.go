package views

type RecordViewPayload struct {
	UserID int `json:"user_id" form:"user_id" validate:"required,min=1"`
}
