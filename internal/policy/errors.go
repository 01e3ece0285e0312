package policy

import "go-skillhub-backend/pkg/apperror"

// Err translates a denial into the user-facing error the caller should
// surface. Returns nil for allowed decisions.
func Err(d Decision) error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case ReasonUnauthenticated:
		return apperror.Unauthenticated("Authentication required.")
	case ReasonRoleSelectionRequired:
		return apperror.PermissionDenied("Please complete your profile by selecting a role.")
	case ReasonNotCreator:
		return apperror.PermissionDenied("You must be a creator to do this.")
	case ReasonNotOwner:
		return apperror.PermissionDenied("You can only manage your own content.")
	case ReasonNotAdmin:
		return apperror.PermissionDenied("You must be an administrator to do this.")
	case ReasonSelfTarget:
		return apperror.PermissionDenied("You cannot change your own account status.")
	case ReasonUnpublished:
		return apperror.PermissionDenied("Sorry, this content is not currently available.")
	default:
		return apperror.PermissionDenied("Permission denied.")
	}
}
