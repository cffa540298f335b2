package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/urbancruise/cruise-lms/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Source) == "" {
		errors = append(errors, ValidationError{"source", "is required"})
	} else if !entity.ValidSource(input.Source) {
		errors = append(errors, ValidationError{"source", "must be one of website, meta, google, import, url_import"})
	}

	if input.Status != "" && !validStatus(input.Status) {
		errors = append(errors, ValidationError{"status", "must be one of new, contacted, qualified, converted, lost"})
	}

	return errors
}

func validStatus(s string) bool {
	switch s {
	case entity.StatusNew, entity.StatusContacted, entity.StatusQualified,
		entity.StatusConverted, entity.StatusLost:
		return true
	}
	return false
}
