package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/policy"
	"go-skillhub-backend/pkg/apperror"
	"go-skillhub-backend/pkg/auth"
	"go-skillhub-backend/pkg/blob"
	"go-skillhub-backend/pkg/logger"
)

const avatarsFolder = "avatars"

type authUsecase struct {
	userRepo domain.UserRepository
	verifier auth.Verifier
	blobs    blob.Storage
	validate *validator.Validate
}

func NewAuthUsecase(userRepo domain.UserRepository, verifier auth.Verifier, blobs blob.Storage, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		verifier: verifier,
		blobs:    blobs,
		validate: validate,
	}
}

// EnsureSession verifies the login token and loads the user document
// behind it. A verified identity without a document is a first login:
// the session is valid but must pass through role selection first.
func (u *authUsecase) EnsureSession(ctx context.Context, token string) (*domain.Session, error) {
	identity, err := u.verifier.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, identity.SubjectID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return &domain.Session{
				UserID:    identity.SubjectID,
				Email:     identity.Email,
				NeedsRole: true,
			}, nil
		}
		return nil, err
	}

	if user.IsDisabled {
		return nil, apperror.PermissionDenied("Your account has been disabled. Please contact support.")
	}

	return &domain.Session{
		UserID:    identity.SubjectID,
		Email:     identity.Email,
		User:      user,
		NeedsRole: user.Role == "",
	}, nil
}

// SelectRole finishes signup by creating the user document. A user who
// already picked a role keeps it; the choice is one-time.
func (u *authUsecase) SelectRole(ctx context.Context, userID, email, role string) (*domain.User, error) {
	if role != domain.RoleCustomer && role != domain.RoleCreator {
		return nil, apperror.ValidationFailed("role", "Invalid role selected.")
	}

	existing, err := u.userRepo.GetByID(ctx, userID)
	if err == nil && existing.Role != "" {
		return existing, nil
	}
	if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, err
	}

	user := &domain.User{
		ID:          userID,
		Email:       email,
		DisplayName: defaultDisplayName(userID),
		Role:        role,
		CreatedAt:   time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.Info("user role selected", "user_id", userID, "role", role)
	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *authUsecase) UpdateProfile(ctx context.Context, actor domain.Actor, input domain.ProfileUpdate) (*domain.User, error) {
	if err := policy.Err(policy.RequireMember(actor)); err != nil {
		return nil, err
	}
	if err := validateStruct(u.validate, input); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	var avatarURL *string
	if input.Avatar != nil {
		if publicID := blob.PublicIDFromURL(user.AvatarURL); publicID != "" {
			if err := u.blobs.Destroy(ctx, publicID); err != nil {
				logger.Log.Warn("failed to remove old avatar", "user_id", actor.ID, "error", err)
			}
		}
		url, err := u.blobs.Upload(ctx, input.Avatar, avatarsFolder, blob.Transform{
			Width:  400,
			Height: 400,
			Crop:   blob.CropFill,
		})
		if err != nil {
			return nil, err
		}
		avatarURL = &url
	}

	if err := u.userRepo.SetProfile(ctx, actor.ID, input.DisplayName, input.Bio, avatarURL); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, actor.ID)
}

// defaultDisplayName seeds a new account with a short handle derived
// from its id; the user can change it on the profile page.
func defaultDisplayName(userID string) string {
	short := userID
	if len(short) > 6 {
		short = short[:6]
	}
	return "user_" + short
}
