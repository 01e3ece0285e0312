// Package policy holds the pure access decisions. Functions here never
// touch storage or sessions: they answer from the explicit actor and the
// facts passed in, and calling code enforces the result.
package policy

import "go-skillhub-backend/internal/domain"

type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnauthenticated
	ReasonRoleSelectionRequired
	ReasonNotCreator
	ReasonNotOwner
	ReasonNotAdmin
	ReasonSelfTarget
	ReasonUnpublished
)

type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(r Reason) Decision {
	return Decision{Reason: r}
}

// RequireMember gates everything behind login and role selection: a user
// who has not yet picked a role may only reach the role-selection flow.
func RequireMember(actor domain.Actor) Decision {
	if !actor.Authenticated() {
		return deny(ReasonUnauthenticated)
	}
	if actor.Role == "" {
		return deny(ReasonRoleSelectionRequired)
	}
	return allow()
}

// CanViewContent: published content is visible to any member; unpublished
// content only to its author or an admin.
func CanViewContent(actor domain.Actor, authorID string, isPublished bool) Decision {
	if d := RequireMember(actor); !d.Allowed {
		return d
	}
	if isPublished || actor.IsAdmin || actor.ID == authorID {
		return allow()
	}
	return deny(ReasonUnpublished)
}

// CanCreateContent: only creators publish skills and products.
func CanCreateContent(actor domain.Actor) Decision {
	if d := RequireMember(actor); !d.Allowed {
		return d
	}
	if !actor.IsCreator() {
		return deny(ReasonNotCreator)
	}
	return allow()
}

// CanEditContent distinguishes "not authenticated", "not a creator" and
// "not the owner" so callers can respond precisely.
func CanEditContent(actor domain.Actor, authorID string) Decision {
	if d := CanCreateContent(actor); !d.Allowed {
		return d
	}
	if actor.ID != authorID {
		return deny(ReasonNotOwner)
	}
	return allow()
}

// CanDeleteReview: the review's author may remove it, and so may the
// author of the reviewed skill (moderating their own content). Nobody
// else — including the skill author editing someone else's text.
func CanDeleteReview(actor domain.Actor, reviewAuthorID, skillAuthorID string) Decision {
	if d := RequireMember(actor); !d.Allowed {
		return d
	}
	if actor.ID == reviewAuthorID || actor.ID == skillAuthorID {
		return allow()
	}
	return deny(ReasonNotOwner)
}

// CanDeleteDiscussion: post/reply author, the skill's author, or an admin.
func CanDeleteDiscussion(actor domain.Actor, contentAuthorID, skillAuthorID string) Decision {
	if d := RequireMember(actor); !d.Allowed {
		return d
	}
	if actor.IsAdmin || actor.ID == contentAuthorID || actor.ID == skillAuthorID {
		return allow()
	}
	return deny(ReasonNotOwner)
}

// CanModerate gates the admin surface.
func CanModerate(actor domain.Actor) Decision {
	if !actor.Authenticated() {
		return deny(ReasonUnauthenticated)
	}
	if !actor.IsAdmin {
		return deny(ReasonNotAdmin)
	}
	return allow()
}

// CanToggleUserFlag: admins may flip another user's admin/disabled flags
// but never their own, regardless of privilege.
func CanToggleUserFlag(actor domain.Actor, targetUserID string) Decision {
	if d := CanModerate(actor); !d.Allowed {
		return d
	}
	if actor.ID == targetUserID {
		return deny(ReasonSelfTarget)
	}
	return allow()
}
