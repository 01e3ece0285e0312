package usecase

import (
	"context"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/policy"
	"go-skillhub-backend/internal/resolver"
	"go-skillhub-backend/pkg/logger"
)

type adminUsecase struct {
	userRepo  domain.UserRepository
	skillRepo domain.SkillRepository
}

func NewAdminUsecase(userRepo domain.UserRepository, skillRepo domain.SkillRepository) domain.AdminUsecase {
	return &adminUsecase{
		userRepo:  userRepo,
		skillRepo: skillRepo,
	}
}

func (u *adminUsecase) ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if err := policy.Err(policy.CanModerate(actor)); err != nil {
		return nil, err
	}
	return u.userRepo.List(ctx)
}

func (u *adminUsecase) ListCourses(ctx context.Context, actor domain.Actor) ([]domain.AdminCourse, error) {
	if err := policy.Err(policy.CanModerate(actor)); err != nil {
		return nil, err
	}
	skills, err := u.skillRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	users := resolver.New(userFetcher(u.userRepo))
	ids := make([]string, 0, len(skills))
	for _, s := range skills {
		ids = append(ids, s.AuthorID)
	}
	users.ResolveMany(ctx, ids)

	courses := make([]domain.AdminCourse, 0, len(skills))
	for _, s := range skills {
		courses = append(courses, domain.AdminCourse{
			Skill:      s,
			AuthorName: userOrUnknown(ctx, users, s.AuthorID).DisplayName,
		})
	}
	return courses, nil
}

// ToggleAdmin flips the target's admin flag. Admins cannot change their
// own flags, so an instance always keeps at least one admin.
func (u *adminUsecase) ToggleAdmin(ctx context.Context, actor domain.Actor, userID string) (bool, error) {
	if err := policy.Err(policy.CanToggleUserFlag(actor, userID)); err != nil {
		return false, err
	}
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	next := !user.IsAdmin
	if err := u.userRepo.SetAdmin(ctx, userID, next); err != nil {
		return false, err
	}
	logger.Log.Info("admin flag toggled", "target_id", userID, "value", next, "actor_id", actor.ID)
	return next, nil
}

func (u *adminUsecase) ToggleDisabled(ctx context.Context, actor domain.Actor, userID string) (bool, error) {
	if err := policy.Err(policy.CanToggleUserFlag(actor, userID)); err != nil {
		return false, err
	}
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	next := !user.IsDisabled
	if err := u.userRepo.SetDisabled(ctx, userID, next); err != nil {
		return false, err
	}
	logger.Log.Info("disabled flag toggled", "target_id", userID, "value", next, "actor_id", actor.ID)
	return next, nil
}

func (u *adminUsecase) TogglePublished(ctx context.Context, actor domain.Actor, skillID string) (bool, error) {
	if err := policy.Err(policy.CanModerate(actor)); err != nil {
		return false, err
	}
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return false, err
	}
	next := !skill.IsPublished
	if err := u.skillRepo.SetPublished(ctx, skillID, next); err != nil {
		return false, err
	}
	return next, nil
}

func (u *adminUsecase) ToggleFeatured(ctx context.Context, actor domain.Actor, skillID string) (bool, error) {
	if err := policy.Err(policy.CanModerate(actor)); err != nil {
		return false, err
	}
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return false, err
	}
	next := !skill.IsFeatured
	if err := u.skillRepo.SetFeatured(ctx, skillID, next); err != nil {
		return false, err
	}
	return next, nil
}
