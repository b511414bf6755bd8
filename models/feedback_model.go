package models

type FeedbackRating string

const (
	RatingPositive FeedbackRating = "positive"
	RatingNegative FeedbackRating = "negative"
)

func (r FeedbackRating) Valid() bool {
	return r == RatingPositive || r == RatingNegative
}

type FeedbackRequest struct {
	ResponseID   string         `json:"response_id"`
	Rating       FeedbackRating `json:"rating"`
	FeedbackText string         `json:"feedback_text,omitempty"`
}
