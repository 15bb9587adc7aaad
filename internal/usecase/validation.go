package usecase

import (
	"fmt"
	"strings"

	"github.com/vantora/leadhub/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SortableLeadFields whitelists the columns a client may sort by. Anything
// else is rejected up front instead of being passed through to the store.
var SortableLeadFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"firstName": true,
	"lastName":  true,
	"email":     true,
	"company":   true,
	"stage":     true,
	"source":    true,
	"value":     true,
}

func ValidateRegisterInput(input RegisterInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Username) == "" {
		errs = append(errs, ValidationError{"username", "is required"})
	}
	if input.Password == "" {
		errs = append(errs, ValidationError{"password", "is required"})
	} else if len(input.Password) < 6 {
		errs = append(errs, ValidationError{"password", "must be at least 6 characters long"})
	}

	return errs
}

func ValidateLoginInput(input LoginInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Username) == "" {
		errs = append(errs, ValidationError{"username", "is required"})
	}
	if input.Password == "" {
		errs = append(errs, ValidationError{"password", "is required"})
	}

	return errs
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, ValidationError{"firstName", "is required"})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errs = append(errs, ValidationError{"lastName", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	}
	if strings.TrimSpace(input.Phone) == "" {
		errs = append(errs, ValidationError{"phone", "is required"})
	}
	if strings.TrimSpace(input.Company) == "" {
		errs = append(errs, ValidationError{"company", "is required"})
	}

	if input.Stage != "" && !entity.IsValidStage(input.Stage) {
		errs = append(errs, ValidationError{"stage", "must be one of " + strings.Join(entity.Stages, ", ")})
	}
	if input.Source != "" && !entity.IsValidSource(input.Source) {
		errs = append(errs, ValidationError{"source", "must be one of " + strings.Join(entity.Sources, ", ")})
	}
	if input.Value != nil && *input.Value < 0 {
		errs = append(errs, ValidationError{"value", "must not be negative"})
	}

	return errs
}

func ValidateUpdateLeadInput(input UpdateLeadInput) []ValidationError {
	var errs []ValidationError

	if input.FirstName != nil && strings.TrimSpace(*input.FirstName) == "" {
		errs = append(errs, ValidationError{"firstName", "must not be empty"})
	}
	if input.LastName != nil && strings.TrimSpace(*input.LastName) == "" {
		errs = append(errs, ValidationError{"lastName", "must not be empty"})
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) == "" {
		errs = append(errs, ValidationError{"email", "must not be empty"})
	}
	if input.Phone != nil && strings.TrimSpace(*input.Phone) == "" {
		errs = append(errs, ValidationError{"phone", "must not be empty"})
	}
	if input.Company != nil && strings.TrimSpace(*input.Company) == "" {
		errs = append(errs, ValidationError{"company", "must not be empty"})
	}
	if input.Stage != nil && !entity.IsValidStage(*input.Stage) {
		errs = append(errs, ValidationError{"stage", "must be one of " + strings.Join(entity.Stages, ", ")})
	}
	if input.Source != nil && !entity.IsValidSource(*input.Source) {
		errs = append(errs, ValidationError{"source", "must be one of " + strings.Join(entity.Sources, ", ")})
	}
	if input.Value != nil && *input.Value < 0 {
		errs = append(errs, ValidationError{"value", "must not be negative"})
	}

	return errs
}

func ValidateListLeadsInput(input ListLeadsInput) []ValidationError {
	var errs []ValidationError

	if input.SortBy != "" && !SortableLeadFields[input.SortBy] {
		errs = append(errs, ValidationError{"sortBy", "is not a sortable field"})
	}
	if input.Stage != "" && input.Stage != "All" && !entity.IsValidStage(input.Stage) {
		errs = append(errs, ValidationError{"stage", "must be one of " + strings.Join(entity.Stages, ", ")})
	}
	if input.Source != "" && !entity.IsValidSource(input.Source) {
		errs = append(errs, ValidationError{"source", "must be one of " + strings.Join(entity.Sources, ", ")})
	}

	return errs
}

func validationMessage(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
