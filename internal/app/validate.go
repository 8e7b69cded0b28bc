package app

import (
	"strings"
	"time"

	"taskflow/internal/domain"
)

// dateLayout is the wire format for start/end dates.
const dateLayout = "2006-01-02"

// validateDateRange checks that both dates are present, parseable and
// ordered. The range is inclusive: equal start and end dates are valid.
func validateDateRange(start, end string) error {
	if start == "" || end == "" {
		return domain.NewValidationError("Start date and end date are required")
	}
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return domain.NewValidationError("Start date must be a valid date (YYYY-MM-DD)")
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return domain.NewValidationError("End date must be a valid date (YYYY-MM-DD)")
	}
	if to.Before(from) {
		return domain.NewValidationError("End date must be after start date")
	}
	return nil
}

func validateProjectDraft(draft domain.ProjectDraft) error {
	if strings.TrimSpace(draft.ProjectName) == "" {
		return domain.NewValidationError("Project name is required")
	}
	if draft.UserAssigned == 0 {
		return domain.NewValidationError("Please assign a manager to the project")
	}
	return validateDateRange(draft.StartDate, draft.EndDate)
}

func validateTaskDraft(draft domain.TaskDraft) error {
	if strings.TrimSpace(draft.TaskName) == "" {
		return domain.NewValidationError("Task name is required")
	}
	return validateDateRange(draft.StartDate, draft.EndDate)
}

func validateUserDraft(draft domain.UserDraft) error {
	if strings.TrimSpace(draft.FirstName) == "" {
		return domain.NewValidationError("First name is required")
	}
	if strings.TrimSpace(draft.LastName) == "" {
		return domain.NewValidationError("Last name is required")
	}
	if strings.TrimSpace(draft.Username) == "" {
		return domain.NewValidationError("Username is required")
	}
	if strings.TrimSpace(draft.Email) == "" {
		return domain.NewValidationError("Email is required")
	}
	if draft.Role == "" {
		return domain.NewValidationError("Role is required")
	}
	if !draft.Role.Valid() {
		return domain.NewValidationError("Role must be admin, manager or user")
	}
	if strings.TrimSpace(draft.Password) == "" {
		return domain.NewValidationError("Password is required")
	}
	if len(draft.Password) < 6 {
		return domain.NewValidationError("Password must be at least 6 characters long")
	}
	return nil
}
