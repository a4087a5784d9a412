package flight

import (
	"context"
	"errors"
	"net/http"

	"skytrip/internal/calendar"
	"skytrip/internal/results"
	"skytrip/internal/searchform"
	"skytrip/pkg/skyscrapper"
)

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeFormIncomplete  ErrorCode = "FORM_INCOMPLETE"
	ErrorCodeMissingSession  ErrorCode = "MISSING_SESSION_ID"
	ErrorCodeUpstream        ErrorCode = "UPSTREAM_FAILURE"
	ErrorCodeTimeout         ErrorCode = "TIMEOUT"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

var (
	ErrSessionNotFound    = errors.New("flight: session not found")
	ErrSuggestionNotFound = errors.New("flight: suggestion not found")
	ErrCalendarClosed     = errors.New("flight: calendar is not open")
)

// AppError carries the HTTP status and code a failure is reported with.
type AppError struct {
	Status  int       `json:"-"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"error"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func newAppError(status int, code ErrorCode, msg string, err error) *AppError {
	return &AppError{Status: status, Code: code, Message: msg, Err: err}
}

// toAppError classifies err for the client. Unknown errors stay as they are
// and end up as a 500.
func toAppError(err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	var apiErr *skyscrapper.APIError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return newAppError(http.StatusNotFound, ErrorCodeNotFound, "Session not found", err)
	case errors.Is(err, results.ErrItineraryNotFound):
		return newAppError(http.StatusNotFound, ErrorCodeNotFound, "Itinerary not found", err)
	case errors.Is(err, ErrSuggestionNotFound):
		return newAppError(http.StatusNotFound, ErrorCodeNotFound, "Suggestion not found", err)
	case errors.Is(err, searchform.ErrFormInvalid):
		return newAppError(http.StatusUnprocessableEntity, ErrorCodeFormIncomplete, "Please fill in all required fields", err)
	case errors.Is(err, results.ErrMissingSessionID):
		return newAppError(http.StatusUnprocessableEntity, ErrorCodeMissingSession, results.MsgMissingSessionID, err)
	case errors.Is(err, ErrCalendarClosed),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, searchform.ErrInvalidTripType),
		errors.Is(err, searchform.ErrInvalidCabinClass),
		errors.Is(err, searchform.ErrInvalidField),
		errors.Is(err, searchform.ErrInvalidPassengerKind),
		errors.Is(err, searchform.ErrLegNotFound),
		errors.Is(err, searchform.ErrLastLeg),
		errors.Is(err, results.ErrInvalidFilter):
		return newAppError(http.StatusBadRequest, ErrorCodeValidation, err.Error(), err)
	case errors.Is(err, results.ErrDetailsUnavailable):
		return newAppError(http.StatusBadGateway, ErrorCodeUpstream, results.MsgDetailsUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return newAppError(http.StatusGatewayTimeout, ErrorCodeTimeout, "Flight data provider timed out", err)
	case errors.As(err, &apiErr):
		return newAppError(http.StatusBadGateway, ErrorCodeUpstream, "Flight data provider returned an error", err)
	}
	return err
}
