package domain

import (
	"context"
	"io"
	"time"
)

type User struct {
	ID          string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Role        string    `json:"role"` // "customer", "creator" or "" until selected
	IsAdmin     bool      `json:"isAdmin"`
	IsDisabled  bool      `json:"isDisabled"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// Session is the engine-side result of verifying a login token: the
// asserted identity plus the user document, if one exists yet.
type Session struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	User      *User  `json:"user,omitempty"`
	NeedsRole bool   `json:"needs_role"`
}

type ProfileUpdate struct {
	DisplayName string `validate:"required"`
	Bio         string
	Avatar      io.Reader // optional replacement image
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error // document id is user.ID
	GetByID(ctx context.Context, id string) (*User, error)
	SetProfile(ctx context.Context, id, displayName, bio string, avatarURL *string) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	SetDisabled(ctx context.Context, id string, isDisabled bool) error
	List(ctx context.Context) ([]User, error) // newest first
}

type AuthUsecase interface {
	EnsureSession(ctx context.Context, token string) (*Session, error)
	SelectRole(ctx context.Context, userID, email, role string) (*User, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, actor Actor, input ProfileUpdate) (*User, error)
}
