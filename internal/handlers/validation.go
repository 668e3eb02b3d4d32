package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rosterhq/roster/pkg/errors"
	"github.com/rosterhq/roster/pkg/response"
	"github.com/rosterhq/roster/pkg/validator"
)

// bindAndValidate decodes the JSON body into target and runs struct
// validation. On failure it writes the error response and returns false.
func bindAndValidate[T any](c *gin.Context, target *T) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		response.Error(c, apperrors.NewInvalidArgument("invalid request payload"))
		return false
	}

	if err := validator.ValidateStruct(target); err != nil {
		response.Error(c, formatValidationError(err))
		return false
	}

	return true
}

func formatValidationError(err error) error {
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return apperrors.NewInvalidArgument(err.Error())
	}

	messages := make([]string, 0, len(failures))
	for _, failure := range failures {
		messages = append(messages, describeFailure(failure))
	}
	return apperrors.NewInvalidArgument(strings.Join(messages, "; "))
}

func describeFailure(failure validator.ValidationError) string {
	switch failure.Tag {
	case "required":
		return fmt.Sprintf("%s is required", failure.Field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", failure.Field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", failure.Field, failure.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", failure.Field, failure.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", failure.Field, failure.Param)
	default:
		return fmt.Sprintf("%s is invalid", failure.Field)
	}
}
