package docstore

import (
	"context"
	"time"

	ds "go-skillhub-backend/internal/docstore"
	"go-skillhub-backend/internal/domain"
)

const usersCollection = "users"

type userRepository struct {
	store ds.Store
}

func NewUserRepository(store ds.Store) domain.UserRepository {
	return &userRepository{store: store}
}

func userPath(id string) string {
	return ds.Join(usersCollection, id)
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	data := map[string]any{
		"email":       user.Email,
		"displayName": user.DisplayName,
		"bio":         user.Bio,
		"avatar_url":  user.AvatarURL,
		"role":        user.Role,
		"isAdmin":     user.IsAdmin,
		"isDisabled":  user.IsDisabled,
		"createdAt":   encodeTime(user.CreatedAt),
	}
	return r.store.Set(ctx, userPath(user.ID), data)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.Get(ctx, userPath(id))
	if err != nil {
		return nil, err
	}
	return decodeUser(doc), nil
}

func (r *userRepository) SetProfile(ctx context.Context, id, displayName, bio string, avatarURL *string) error {
	partial := map[string]any{
		"displayName": displayName,
		"bio":         bio,
		"updatedAt":   encodeTime(time.Now()),
	}
	if avatarURL != nil {
		partial["avatar_url"] = *avatarURL
	}
	return r.store.Update(ctx, userPath(id), partial)
}

func (r *userRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	return r.store.Update(ctx, userPath(id), map[string]any{"isAdmin": isAdmin})
}

func (r *userRepository) SetDisabled(ctx context.Context, id string, isDisabled bool) error {
	return r.store.Update(ctx, userPath(id), map[string]any{"isDisabled": isDisabled})
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	docs, err := r.store.Query(ctx, usersCollection, ds.Query{
		OrderBy: "createdAt",
		Dir:     ds.Descending,
	})
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, *decodeUser(doc))
	}
	return users, nil
}

func decodeUser(doc ds.Doc) *domain.User {
	return &domain.User{
		ID:          doc.ID,
		Email:       str(doc.Data, "email"),
		DisplayName: str(doc.Data, "displayName"),
		Bio:         str(doc.Data, "bio"),
		AvatarURL:   str(doc.Data, "avatar_url"),
		Role:        str(doc.Data, "role"),
		IsAdmin:     boolVal(doc.Data, "isAdmin"),
		IsDisabled:  boolVal(doc.Data, "isDisabled"),
		CreatedAt:   timeVal(doc.Data, "createdAt"),
		UpdatedAt:   timeVal(doc.Data, "updatedAt"),
	}
}
