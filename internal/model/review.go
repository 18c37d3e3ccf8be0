package model

import "time"

// Review bounds enforced at the handler layer before any write.
const (
	MinReviewRating     = 1
	MaxReviewRating     = 5
	MinReviewCommentLen = 10
	MaxReviewCommentLen = 1000
)

// Review is a user's rating and comment for a lake. One review per
// (user, lake); the table carries a unique key over that pair.
type Review struct {
	ID        uint64    `json:"id"`         // reviews.id
	UserID    uint64    `json:"user_id"`    // reviews.user_id
	LakeID    uint64    `json:"lake_id"`    // reviews.lake_id
	Rating    int       `json:"rating"`     // reviews.rating (1..5)
	Comment   string    `json:"comment"`    // reviews.comment
	CreatedAt time.Time `json:"created_at"` // reviews.created_at
	UpdatedAt time.Time `json:"updated_at"` // reviews.updated_at
}
