package domain

import (
	"context"
	"time"
)

// Review is a child of one skill. Nothing stops a user from reviewing
// the same skill twice; the aggregation tolerates duplicates.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SkillID   string    `json:"skill_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewInput struct {
	Rating int    `validate:"required"`
	Text   string `validate:"required"`
}

type ReviewSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"` // rounded to one decimal, 0 when no reviews
}

type ReviewRepository interface {
	ListBySkill(ctx context.Context, skillID string) ([]Review, error)
	Get(ctx context.Context, skillID, reviewID string) (*Review, error)
	Create(ctx context.Context, skillID string, review *Review) error // assigns review.ID
	Delete(ctx context.Context, skillID, reviewID string) error
	Count(ctx context.Context, skillID string) (int, error)
	// ListByUser is a collection-group query across all skills. With
	// ordered true it asks the store for newest-first results and may
	// fail with IndexUnavailable; callers then retry unordered.
	ListByUser(ctx context.Context, userID string, limit int, ordered bool) ([]Review, error)
}

type ReviewUsecase interface {
	Submit(ctx context.Context, actor Actor, skillID string, input ReviewInput) (*Review, error)
	Delete(ctx context.Context, actor Actor, skillID, reviewID string) error
}
