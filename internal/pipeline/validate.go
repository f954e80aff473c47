package pipeline

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	scenefolderrors "github.com/scenefold/scenefold/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// validateParams checks a decoded parameter struct against its validate
// tags and converts failures to the pipeline's validation error type.
func validateParams(target any) error {
	if err := validatorInstance().Struct(target); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			field := strings.ToLower(first.Field())
			return scenefolderrors.NewValidationError(field, fmt.Sprintf("failed %q constraint", first.Tag()), err)
		}
		return scenefolderrors.NewValidationError("parameters", err.Error(), err)
	}
	return nil
}
