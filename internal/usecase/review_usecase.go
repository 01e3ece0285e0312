package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/policy"
)

type reviewUsecase struct {
	skillRepo  domain.SkillRepository
	reviewRepo domain.ReviewRepository
	validate   *validator.Validate
}

func NewReviewUsecase(skillRepo domain.SkillRepository, reviewRepo domain.ReviewRepository, validate *validator.Validate) domain.ReviewUsecase {
	return &reviewUsecase{
		skillRepo:  skillRepo,
		reviewRepo: reviewRepo,
		validate:   validate,
	}
}

func (u *reviewUsecase) Submit(ctx context.Context, actor domain.Actor, skillID string, input domain.ReviewInput) (*domain.Review, error) {
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if err := policy.Err(policy.CanViewContent(actor, skill.AuthorID, skill.IsPublished)); err != nil {
		return nil, err
	}
	if err := validateStruct(u.validate, input); err != nil {
		return nil, err
	}

	review := &domain.Review{
		UserID: actor.ID,
		Rating: input.Rating,
		Text:   input.Text,
	}
	if err := u.reviewRepo.Create(ctx, skillID, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (u *reviewUsecase) Delete(ctx context.Context, actor domain.Actor, skillID, reviewID string) error {
	skill, err := u.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return err
	}
	review, err := u.reviewRepo.Get(ctx, skillID, reviewID)
	if err != nil {
		return err
	}
	if err := policy.Err(policy.CanDeleteReview(actor, review.UserID, skill.AuthorID)); err != nil {
		return err
	}
	return u.reviewRepo.Delete(ctx, skillID, reviewID)
}
