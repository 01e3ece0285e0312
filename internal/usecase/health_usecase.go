package usecase

import (
	"context"

	"go-skillhub-backend/internal/docstore"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	store docstore.Store
}

func NewHealthUsecase(store docstore.Store) HealthUsecase {
	return &healthUsecase{store: store}
}

// Check probes the document store with a cheap single-document query.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{"status": "ok", "store": "ok"}
	if _, err := u.store.Query(ctx, "users", docstore.Query{Limit: 1}); err != nil {
		status["status"] = "degraded"
		status["store"] = err.Error()
	}
	return status
}
