package models

import "time"

const (
	SwipeLiked    = "liked"
	SwipeSkipped  = "skipped"
	SwipeDisliked = "disliked"
)

type Swipe struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

func ValidSwipeResult(result string) bool {
	switch result {
	case SwipeLiked, SwipeSkipped, SwipeDisliked:
		return true
	}
	return false
}
