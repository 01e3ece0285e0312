package usecase

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"go-skillhub-backend/pkg/apperror"
)

// validateStruct maps the first validator failure to a field-level
// validation error.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return apperror.ValidationFailed(f.Field(), f.Field()+" is missing or invalid.")
	}
	return apperror.Internal(err)
}
