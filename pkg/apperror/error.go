package apperror

import "errors"

// Kind classifies an error so callers can branch without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthenticated
	KindPermissionDenied
	KindValidationFailed
	KindIndexUnavailable
	KindUnavailable
)

type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"` // set for validation failures
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two AppErrors of the same kind.
func (e *AppError) Is(target error) bool {
	var ae *AppError
	if !errors.As(target, &ae) {
		return false
	}
	return e.Kind == ae.Kind
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message, nil)
}

func Unauthenticated(message string) *AppError {
	return New(KindUnauthenticated, message, nil)
}

func PermissionDenied(message string) *AppError {
	return New(KindPermissionDenied, message, nil)
}

// ValidationFailed reports which field blocked the write.
func ValidationFailed(field, message string) *AppError {
	return &AppError{Kind: KindValidationFailed, Message: message, Field: field}
}

// IndexUnavailable signals that a query needs an index the collaborator
// has not built yet. Callers are expected to fall back to an unordered
// fetch rather than fail the request.
func IndexUnavailable(message string) *AppError {
	return New(KindIndexUnavailable, message, nil)
}

// Unavailable wraps a collaborator failure. The cause is kept for
// operator logs and never shown to the end user.
func Unavailable(message string, err error) *AppError {
	return New(KindUnavailable, message, err)
}

func Internal(err error) *AppError {
	return New(KindInternal, "Internal error", err)
}

// KindOf extracts the kind from any error; plain errors are internal.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
