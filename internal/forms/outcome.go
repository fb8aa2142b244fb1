// Package forms holds draft entities for the site's forms: their field
// values, inline validation and a single-attempt submit.
package forms

import (
	"errors"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/validate"
)

// GenericError is shown when a failure carries no usable message.
const GenericError = "Something went wrong. Please try again."

// Outcome is the result of a Submit call.
type Outcome struct {
	// Errors holds field-level validation messages; nothing was sent when set.
	Errors validate.Errors
	// Err is the display text of a failed submission.
	Err string
	// SessionExpired is set when the backend rejected the session token.
	SessionExpired bool
	// Done is set when the submission went through.
	Done bool
}

func (o Outcome) Failed() bool { return o.Errors.Any() || o.Err != "" }

func invalid(errs validate.Errors) Outcome { return Outcome{Errors: errs} }

// failed converts a submission error into an outcome.
func failed(err error, fallback string) Outcome {
	return Outcome{
		Err:            Message(err, fallback),
		SessionExpired: errors.Is(err, apiclient.ErrUnauthorized),
	}
}

// Message extracts the text to show for err: the backend's own message for
// API errors, the connectivity message when nothing came back, else fallback.
func Message(err error, fallback string) string {
	if fallback == "" {
		fallback = GenericError
	}
	var (
		apiErr *apiclient.Error
		ue     UserError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, apiclient.ErrNetwork):
		return apiclient.ErrNetwork.Error()
	case errors.As(err, &ue):
		return string(ue)
	}
	return fallback
}

// UserError is an error whose text is meant for the visitor.
type UserError string

func (e UserError) Error() string { return string(e) }
