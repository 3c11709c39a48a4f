package services

import (
	"errors"
	"fmt"
)

// ErrNoEvaluation means a report was requested before any structured
// evaluation succeeded in the session.
var ErrNoEvaluation = errors.New("no successful evaluation yet: run the evaluation action first")

// ErrUnknownAction is returned for an action name outside the catalog.
var ErrUnknownAction = errors.New("unknown action")

// MissingInputError reports an absent resume, job description or question.
// It is user-correctable and no model call is made.
type MissingInputError struct {
	Input string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input: %s", e.Input)
}

// Warning is the message shown to the user.
func (e *MissingInputError) Warning() string {
	switch e.Input {
	case "resume":
		return "Please upload a resume (PDF) and provide a job description."
	case "job_description":
		return "Please provide a job description."
	case "question":
		return "Please enter a question about your resume or job match."
	default:
		return fmt.Sprintf("Please provide the %s.", e.Input)
	}
}

// DocumentDecodeError reports bytes that could not be read as a PDF or
// rasterized.
type DocumentDecodeError struct {
	Cause error
}

func (e *DocumentDecodeError) Error() string {
	return fmt.Sprintf("failed to decode document: %v", e.Cause)
}

func (e *DocumentDecodeError) Unwrap() error {
	return e.Cause
}

// InferenceError wraps any failure of the model call. It carries no
// classification of the cause.
type InferenceError struct {
	Cause error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Cause)
}

func (e *InferenceError) Unwrap() error {
	return e.Cause
}
