package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-skillhub-backend/internal/domain"
	"go-skillhub-backend/internal/policy"
	"go-skillhub-backend/pkg/apperror"
)

var (
	anonymous = domain.Actor{}
	noRole    = domain.Actor{ID: "u1"}
	customer  = domain.Actor{ID: "u1", Role: domain.RoleCustomer}
	creator   = domain.Actor{ID: "c1", Role: domain.RoleCreator}
	admin     = domain.Actor{ID: "a1", Role: domain.RoleCustomer, IsAdmin: true}
)

func TestRequireMember(t *testing.T) {
	t.Run("Should deny anonymous", func(t *testing.T) {
		d := policy.RequireMember(anonymous)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonUnauthenticated, d.Reason)
	})

	t.Run("Should deny authenticated user without a role", func(t *testing.T) {
		d := policy.RequireMember(noRole)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonRoleSelectionRequired, d.Reason)
	})

	t.Run("Should allow members of either role", func(t *testing.T) {
		assert.True(t, policy.RequireMember(customer).Allowed)
		assert.True(t, policy.RequireMember(creator).Allowed)
	})
}

func TestCanViewContent(t *testing.T) {
	t.Run("Should allow any member to view published content", func(t *testing.T) {
		assert.True(t, policy.CanViewContent(customer, "someone-else", true).Allowed)
	})

	t.Run("Should hide unpublished content from other members", func(t *testing.T) {
		d := policy.CanViewContent(customer, "someone-else", false)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonUnpublished, d.Reason)
	})

	t.Run("Should let the author preview their unpublished content", func(t *testing.T) {
		assert.True(t, policy.CanViewContent(creator, creator.ID, false).Allowed)
	})

	t.Run("Should let admins view unpublished content", func(t *testing.T) {
		assert.True(t, policy.CanViewContent(admin, "someone-else", false).Allowed)
	})
}

func TestCanCreateAndEditContent(t *testing.T) {
	t.Run("Should deny customers creating content", func(t *testing.T) {
		d := policy.CanCreateContent(customer)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonNotCreator, d.Reason)
	})

	t.Run("Should allow creators", func(t *testing.T) {
		assert.True(t, policy.CanCreateContent(creator).Allowed)
	})

	t.Run("Should deny a creator editing someone else's content", func(t *testing.T) {
		d := policy.CanEditContent(creator, "another-creator")
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonNotOwner, d.Reason)
	})

	t.Run("Should allow the owner", func(t *testing.T) {
		assert.True(t, policy.CanEditContent(creator, creator.ID).Allowed)
	})
}

func TestCanDeleteReview(t *testing.T) {
	t.Run("Should allow the review author", func(t *testing.T) {
		assert.True(t, policy.CanDeleteReview(customer, customer.ID, "skill-author").Allowed)
	})

	t.Run("Should allow the skill author", func(t *testing.T) {
		assert.True(t, policy.CanDeleteReview(creator, "reviewer", creator.ID).Allowed)
	})

	t.Run("Should deny everyone else", func(t *testing.T) {
		d := policy.CanDeleteReview(customer, "reviewer", "skill-author")
		assert.False(t, d.Allowed)
	})
}

func TestCanDeleteDiscussion(t *testing.T) {
	t.Run("Should allow author, skill author and admin", func(t *testing.T) {
		assert.True(t, policy.CanDeleteDiscussion(customer, customer.ID, "skill-author").Allowed)
		assert.True(t, policy.CanDeleteDiscussion(creator, "poster", creator.ID).Allowed)
		assert.True(t, policy.CanDeleteDiscussion(admin, "poster", "skill-author").Allowed)
	})

	t.Run("Should deny unrelated members", func(t *testing.T) {
		assert.False(t, policy.CanDeleteDiscussion(customer, "poster", "skill-author").Allowed)
	})
}

func TestCanToggleUserFlag(t *testing.T) {
	t.Run("Should deny non-admins", func(t *testing.T) {
		d := policy.CanToggleUserFlag(customer, "target")
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonNotAdmin, d.Reason)
	})

	t.Run("Should allow admin on another user", func(t *testing.T) {
		assert.True(t, policy.CanToggleUserFlag(admin, "target").Allowed)
	})

	t.Run("Should refuse an admin targeting themselves", func(t *testing.T) {
		d := policy.CanToggleUserFlag(admin, admin.ID)
		assert.False(t, d.Allowed)
		assert.Equal(t, policy.ReasonSelfTarget, d.Reason)
	})
}

func TestErr(t *testing.T) {
	t.Run("Should return nil for allowed decisions", func(t *testing.T) {
		assert.NoError(t, policy.Err(policy.RequireMember(customer)))
	})

	t.Run("Should map unauthenticated and denied to distinct kinds", func(t *testing.T) {
		err := policy.Err(policy.RequireMember(anonymous))
		assert.True(t, apperror.IsKind(err, apperror.KindUnauthenticated))

		err = policy.Err(policy.CanCreateContent(customer))
		assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))
	})
}
