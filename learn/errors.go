package learn

import (
	"errors"

	"abhyaasi/api"
)

// ErrorMessage maps a submission failure to user-facing copy. Validation
// errors pass the server's message through; everything else gets a generic
// line.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrSubmissionInFlight):
		return "A submission is already running. Hold on."
	case errors.Is(err, ErrCooldownActive):
		return "Submissions are locked until the cooldown ends."
	case errors.Is(err, ErrCodingCompleted):
		return "This task is already completed."
	case errors.Is(err, ErrUnsupportedLanguage):
		return "That language is not supported for this module."
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return "Submission failed. Please check your connection and try again."
	}
	switch {
	case apiErr.StatusCode == 404:
		return "Module not found."
	case apiErr.StatusCode == 400:
		if apiErr.Message != "" && apiErr.Body != nil {
			return apiErr.Message
		}
		return "The submission was rejected. Please review your input."
	case apiErr.StatusCode >= 500:
		return "Something went wrong on our side. Please try again later."
	default:
		return "Submission failed. Please try again."
	}
}
