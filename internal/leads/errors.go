package leads

import "errors"

var (
	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrNilSubmission is returned when Append is called without a submission
	ErrNilSubmission = errors.New("leads: submission is required")
)
