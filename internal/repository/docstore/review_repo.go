package docstore

import (
	"context"
	"time"

	ds "go-skillhub-backend/internal/docstore"
	"go-skillhub-backend/internal/domain"
)

const reviewsCollection = "reviews"

type reviewRepository struct {
	store ds.Store
}

func NewReviewRepository(store ds.Store) domain.ReviewRepository {
	return &reviewRepository{store: store}
}

func reviewsPath(skillID string) string {
	return ds.Join(skillsCollection, skillID, reviewsCollection)
}

func reviewPath(skillID, reviewID string) string {
	return ds.Join(skillsCollection, skillID, reviewsCollection, reviewID)
}

func (r *reviewRepository) ListBySkill(ctx context.Context, skillID string) ([]domain.Review, error) {
	docs, err := r.store.Query(ctx, reviewsPath(skillID), ds.Query{
		OrderBy: "created_at",
		Dir:     ds.Descending,
	})
	if err != nil {
		return nil, err
	}
	return decodeReviews(docs), nil
}

func (r *reviewRepository) Get(ctx context.Context, skillID, reviewID string) (*domain.Review, error) {
	doc, err := r.store.Get(ctx, reviewPath(skillID, reviewID))
	if err != nil {
		return nil, err
	}
	return decodeReview(doc), nil
}

func (r *reviewRepository) Create(ctx context.Context, skillID string, review *domain.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	review.SkillID = skillID
	data := map[string]any{
		"user_id":    review.UserID,
		"skill_id":   review.SkillID,
		"rating":     review.Rating,
		"text":       review.Text,
		"created_at": encodeTime(review.CreatedAt),
	}
	id, err := r.store.Add(ctx, reviewsPath(skillID), data)
	if err != nil {
		return err
	}
	review.ID = id
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, skillID, reviewID string) error {
	return r.store.Delete(ctx, reviewPath(skillID, reviewID))
}

func (r *reviewRepository) Count(ctx context.Context, skillID string) (int, error) {
	docs, err := r.store.Query(ctx, reviewsPath(skillID), ds.Query{})
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID string, limit int, ordered bool) ([]domain.Review, error) {
	q := ds.Query{
		Filters: []ds.Filter{ds.Where("user_id", ds.OpEqual, userID)},
		Limit:   limit,
	}
	if ordered {
		q.OrderBy = "created_at"
		q.Dir = ds.Descending
	}
	docs, err := r.store.QueryGroup(ctx, reviewsCollection, q)
	if err != nil {
		return nil, err
	}
	return decodeReviews(docs), nil
}

func decodeReviews(docs []ds.Doc) []domain.Review {
	reviews := make([]domain.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, *decodeReview(doc))
	}
	return reviews
}

func decodeReview(doc ds.Doc) *domain.Review {
	return &domain.Review{
		ID:        doc.ID,
		UserID:    str(doc.Data, "user_id"),
		SkillID:   str(doc.Data, "skill_id"),
		Rating:    intVal(doc.Data, "rating"),
		Text:      str(doc.Data, "text"),
		CreatedAt: timeVal(doc.Data, "created_at"),
	}
}
