package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/usecase"
	"go-skillhub-backend/pkg/apperror"
)

func TestReviewSubmit(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	creator := e.addUser(t, "c1", domain.RoleCreator, false)
	customer := e.addUser(t, "u1", domain.RoleCustomer, false)
	skill := e.addSkill(t, creator.ID, "Macrame", true)
	uc := usecase.NewReviewUsecase(e.skills, e.reviews, e.validate)

	t.Run("Should attach the review to the skill and the actor", func(t *testing.T) {
		review, err := uc.Submit(ctx, customer, skill.ID, domain.ReviewInput{Rating: 5, Text: "great"})
		require.NoError(t, err)
		assert.Equal(t, customer.ID, review.UserID)
		assert.Equal(t, skill.ID, review.SkillID)
		assert.NotEmpty(t, review.ID)
	})

	t.Run("Should allow the same user to review twice", func(t *testing.T) {
		_, err := uc.Submit(ctx, customer, skill.ID, domain.ReviewInput{Rating: 4, Text: "again"})
		require.NoError(t, err)

		reviews, err := e.reviews.ListBySkill(ctx, skill.ID)
		require.NoError(t, err)
		assert.Len(t, reviews, 2)
	})

	t.Run("Should reject a review without text or rating", func(t *testing.T) {
		_, err := uc.Submit(ctx, customer, skill.ID, domain.ReviewInput{Rating: 5})
		assert.True(t, apperror.IsKind(err, apperror.KindValidationFailed))

		_, err = uc.Submit(ctx, customer, skill.ID, domain.ReviewInput{Text: "no rating"})
		assert.True(t, apperror.IsKind(err, apperror.KindValidationFailed))
	})

	t.Run("Should fail for a missing skill", func(t *testing.T) {
		_, err := uc.Submit(ctx, customer, "ghost", domain.ReviewInput{Rating: 5, Text: "x"})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("Should deny reviews on an unpublished skill", func(t *testing.T) {
		draft := e.addSkill(t, creator.ID, "Draft", false)
		_, err := uc.Submit(ctx, customer, draft.ID, domain.ReviewInput{Rating: 5, Text: "x"})
		assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))
	})
}

func TestReviewDelete(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	creator := e.addUser(t, "c1", domain.RoleCreator, false)
	reviewer := e.addUser(t, "u1", domain.RoleCustomer, false)
	bystander := e.addUser(t, "u2", domain.RoleCustomer, false)
	skill := e.addSkill(t, creator.ID, "Macrame", true)
	uc := usecase.NewReviewUsecase(e.skills, e.reviews, e.validate)

	t.Run("Should deny unrelated members", func(t *testing.T) {
		review := e.addReview(t, skill.ID, reviewer.ID, 5)
		err := uc.Delete(ctx, bystander, skill.ID, review.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))
	})

	t.Run("Should allow the review author", func(t *testing.T) {
		review := e.addReview(t, skill.ID, reviewer.ID, 5)
		require.NoError(t, uc.Delete(ctx, reviewer, skill.ID, review.ID))
		_, err := e.reviews.Get(ctx, skill.ID, review.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("Should allow the skill author to moderate", func(t *testing.T) {
		review := e.addReview(t, skill.ID, reviewer.ID, 1)
		require.NoError(t, uc.Delete(ctx, creator, skill.ID, review.ID))
	})

	t.Run("Should fail for a review that is already gone", func(t *testing.T) {
		err := uc.Delete(ctx, reviewer, skill.ID, "ghost")
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}
