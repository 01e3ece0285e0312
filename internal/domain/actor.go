package domain

import "context"

const (
	RoleCustomer = "customer"
	RoleCreator  = "creator"
)

// Actor is the request-scoped identity every policy decision and usecase
// receives explicitly. An empty ID means the request is unauthenticated.
type Actor struct {
	ID      string
	Role    string
	IsAdmin bool
}

func (a Actor) Authenticated() bool {
	return a.ID != ""
}

func (a Actor) IsCreator() bool {
	return a.Role == RoleCreator
}

// ActorFromContext rebuilds the actor from the context keys the session
// layer populates. Missing keys yield an anonymous actor.
func ActorFromContext(ctx context.Context) Actor {
	var a Actor
	if id, ok := ctx.Value(KeyUserID).(string); ok {
		a.ID = id
	}
	if role, ok := ctx.Value(KeyUserRole).(string); ok {
		a.Role = role
	}
	if admin, ok := ctx.Value(KeyIsAdmin).(bool); ok {
		a.IsAdmin = admin
	}
	return a
}

// ActorFor derives the actor a user document authenticates as.
func ActorFor(u *User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{ID: u.ID, Role: u.Role, IsAdmin: u.IsAdmin}
}
