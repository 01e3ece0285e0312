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

func TestAdminUserToggles(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := e.addUser(t, "a1", domain.RoleCustomer, true)
	member := e.addUser(t, "u1", domain.RoleCustomer, false)
	target := e.addUser(t, "u2", domain.RoleCustomer, false)
	uc := usecase.NewAdminUsecase(e.users, e.skills)

	t.Run("Should flip and report the new admin flag", func(t *testing.T) {
		val, err := uc.ToggleAdmin(ctx, admin, target.ID)
		require.NoError(t, err)
		assert.True(t, val)

		val, err = uc.ToggleAdmin(ctx, admin, target.ID)
		require.NoError(t, err)
		assert.False(t, val)
	})

	t.Run("Should flip the disabled flag", func(t *testing.T) {
		val, err := uc.ToggleDisabled(ctx, admin, target.ID)
		require.NoError(t, err)
		assert.True(t, val)

		got, err := e.users.GetByID(ctx, target.ID)
		require.NoError(t, err)
		assert.True(t, got.IsDisabled)
	})

	t.Run("Should refuse an admin toggling their own flags", func(t *testing.T) {
		_, err := uc.ToggleAdmin(ctx, admin, admin.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))

		_, err = uc.ToggleDisabled(ctx, admin, admin.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))
	})

	t.Run("Should deny non-admins everywhere", func(t *testing.T) {
		_, err := uc.ToggleAdmin(ctx, member, target.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))

		_, err = uc.ListUsers(ctx, member)
		assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))
	})

	t.Run("Should list every user for admins", func(t *testing.T) {
		users, err := uc.ListUsers(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})
}

func TestAdminCourseModeration(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := e.addUser(t, "a1", domain.RoleCustomer, true)
	creator := e.addUser(t, "c1", domain.RoleCreator, false)
	published := e.addSkill(t, creator.ID, "Published", true)
	e.addSkill(t, creator.ID, "Draft", false)
	uc := usecase.NewAdminUsecase(e.users, e.skills)

	t.Run("Should list all courses with author names, drafts included", func(t *testing.T) {
		courses, err := uc.ListCourses(ctx, admin)
		require.NoError(t, err)
		require.Len(t, courses, 2)
		for _, c := range courses {
			assert.Equal(t, "name-c1", c.AuthorName)
		}
	})

	t.Run("Should toggle published and featured", func(t *testing.T) {
		val, err := uc.TogglePublished(ctx, admin, published.ID)
		require.NoError(t, err)
		assert.False(t, val)

		val, err = uc.ToggleFeatured(ctx, admin, published.ID)
		require.NoError(t, err)
		assert.True(t, val)

		got, err := e.skills.GetByID(ctx, published.ID)
		require.NoError(t, err)
		assert.False(t, got.IsPublished)
		assert.True(t, got.IsFeatured)
	})

	t.Run("Should fail on a missing skill", func(t *testing.T) {
		_, err := uc.TogglePublished(ctx, admin, "ghost")
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}
