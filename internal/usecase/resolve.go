package usecase

import (
	"context"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/resolver"
	"go-skillhub-backend/pkg/apperror"
)

// userFetcher adapts the user repository to the resolver contract.
// NotFound is a cacheable miss; other failures bubble up as degraded
// misses inside the cache.
func userFetcher(repo domain.UserRepository) resolver.FetchFunc[domain.User] {
	return func(ctx context.Context, id string) (domain.User, bool, error) {
		u, err := repo.GetByID(ctx, id)
		if err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				return domain.User{}, false, nil
			}
			return domain.User{}, false, err
		}
		return *u, true, nil
	}
}

// userOrUnknown keeps views renderable when an author document has been
// deleted out from under its content.
func userOrUnknown(ctx context.Context, cache *resolver.Cache[domain.User], id string) domain.User {
	if u, ok := cache.Resolve(ctx, id); ok {
		return u
	}
	return domain.User{ID: id, DisplayName: "Unknown User"}
}
