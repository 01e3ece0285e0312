package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/usecase"
)

func TestStorefront(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	creator := e.addUser(t, "c1", domain.RoleCreator, false)
	viewer := e.addUser(t, "u1", domain.RoleCustomer, false)
	e.addSkill(t, creator.ID, "Public Skill", true)
	e.addSkill(t, creator.ID, "Draft Skill", false)
	require.NoError(t, e.products.Create(ctx, &domain.Product{
		Name: "Bracelet", Description: "d", Price: 10, Category: "Jewelry & Accessories",
		AuthorID: creator.ID, IsPublished: true,
	}))
	require.NoError(t, e.products.Create(ctx, &domain.Product{
		Name: "Hidden", Description: "d", Price: 5, Category: "Other",
		AuthorID: creator.ID, IsPublished: false,
	}))
	uc := usecase.NewProfileUsecase(e.users, e.skills, e.products, e.reviews, 10)

	t.Run("Should show only the creator's published content", func(t *testing.T) {
		sf, err := uc.Storefront(ctx, viewer, creator.ID)
		require.NoError(t, err)
		assert.Equal(t, "name-c1", sf.Creator.DisplayName)
		require.Len(t, sf.Skills, 1)
		assert.Equal(t, "Public Skill", sf.Skills[0].Name)
		require.Len(t, sf.Products, 1)
		assert.Equal(t, "Bracelet", sf.Products[0].Name)
	})
}

func seedActivity(t *testing.T, e *env, userID string) (older, newer, orphaned *domain.Review) {
	t.Helper()
	ctx := context.Background()
	creator := e.addUser(t, "c1", domain.RoleCreator, false)
	s1 := e.addSkill(t, creator.ID, "First", true)
	s2 := e.addSkill(t, creator.ID, "Second", true)

	older = &domain.Review{UserID: userID, Rating: 3, Text: "ok", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, e.reviews.Create(ctx, s1.ID, older))
	newer = &domain.Review{UserID: userID, Rating: 5, Text: "great", CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, e.reviews.Create(ctx, s2.ID, newer))

	// Delete only the skill document, leaving its review orphaned the
	// way an interrupted cascade would.
	gone := e.addSkill(t, creator.ID, "Gone", true)
	orphaned = &domain.Review{UserID: userID, Rating: 4, Text: "was here", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, e.reviews.Create(ctx, gone.ID, orphaned))
	require.NoError(t, e.store.Delete(ctx, "skills/"+gone.ID))
	return older, newer, orphaned
}

func TestActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("Should list reviews newest first with their skills", func(t *testing.T) {
		e := newEnv()
		customer := e.addUser(t, "u1", domain.RoleCustomer, false)
		seedActivity(t, e, customer.ID)
		uc := usecase.NewProfileUsecase(e.users, e.skills, e.products, e.reviews, 10)

		view, err := uc.Activity(ctx, customer, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "name-u1", view.ProfileUser.DisplayName)
		require.Len(t, view.Items, 2)
		assert.Equal(t, "Second", view.Items[0].Skill.Name)
		assert.Equal(t, "First", view.Items[1].Skill.Name)
		assert.Equal(t, "review", view.Items[0].Type)
	})

	t.Run("Should skip reviews whose skill was deleted", func(t *testing.T) {
		e := newEnv()
		customer := e.addUser(t, "u1", domain.RoleCustomer, false)
		_, _, orphaned := seedActivity(t, e, customer.ID)
		uc := usecase.NewProfileUsecase(e.users, e.skills, e.products, e.reviews, 10)

		view, err := uc.Activity(ctx, customer, customer.ID)
		require.NoError(t, err)
		for _, item := range view.Items {
			assert.NotEqual(t, orphaned.ID, item.Review.ID)
		}
	})

	t.Run("Should fall back to client-side ordering when the index is missing", func(t *testing.T) {
		e := newEnv()
		customer := e.addUser(t, "u1", domain.RoleCustomer, false)
		seedActivity(t, e, customer.ID)
		e.store.DisableGroupOrdering()
		uc := usecase.NewProfileUsecase(e.users, e.skills, e.products, e.reviews, 10)

		view, err := uc.Activity(ctx, customer, customer.ID)
		require.NoError(t, err)
		require.Len(t, view.Items, 2)
		assert.Equal(t, "Second", view.Items[0].Skill.Name)
		assert.Equal(t, "First", view.Items[1].Skill.Name)
	})

	t.Run("Should honor the feed limit", func(t *testing.T) {
		e := newEnv()
		customer := e.addUser(t, "u1", domain.RoleCustomer, false)
		seedActivity(t, e, customer.ID)
		uc := usecase.NewProfileUsecase(e.users, e.skills, e.products, e.reviews, 1)

		view, err := uc.Activity(ctx, customer, customer.ID)
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Second", view.Items[0].Skill.Name)
	})
}
