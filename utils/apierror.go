package utils

import (
	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorKind classifies a request failure so the transport layer can map it
// to a status code and observability can distinguish causes even when the
// client only sees a generic message.
type ErrorKind int

const (
	// KindBadRequest is a malformed body or anything else unexpected at the
	// boundary. The client sees a generic message, never internal detail.
	KindBadRequest ErrorKind = iota
	// KindValidation is a user-correctable input problem, surfaced verbatim.
	KindValidation
	// KindConfiguration is a missing deployment secret, checked before any I/O.
	KindConfiguration
	// KindDependency is a datastore or email-service failure.
	KindDependency
)

// APIError is the tagged failure result of parsing, validating, or fulfilling
// a form submission.
type APIError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status.
func (e *APIError) Status() int {
	switch e.Kind {
	case KindValidation, KindBadRequest:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func BadRequest(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

func ValidationFailed(message string) *APIError {
	return &APIError{Kind: KindValidation, Message: message}
}

func Misconfigured(message string) *APIError {
	return &APIError{Kind: KindConfiguration, Message: message}
}

func DependencyFailed(message string, err error) *APIError {
	return &APIError{Kind: KindDependency, Message: message, Err: err}
}

// WriteFormError renders an APIError in the public form-endpoint envelope.
// Server-side kinds are logged and reported before the response goes out.
func WriteFormError(c *fiber.Ctx, e *APIError) error {
	switch e.Kind {
	case KindConfiguration, KindDependency:
		logrus.WithFields(logrus.Fields{
			"kind":    e.Kind,
			"path":    c.Path(),
			"message": e.Message,
		}).WithError(e.Err).Error("form submission failed")
		if e.Err != nil {
			sentry.CaptureException(e.Err)
		} else {
			sentry.CaptureMessage(e.Message)
		}
	}
	return c.Status(e.Status()).JSON(fiber.Map{
		"ok":    false,
		"error": e.Message,
	})
}

// CaptureError reports a non-fatal dependency failure to sentry.
func CaptureError(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// OK renders the public form-endpoint success envelope.
func OK(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}
