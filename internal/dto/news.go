package dto

// CreateNewsRequest is the payload for publishing an announcement.
type CreateNewsRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}
