package handler

import (
	"errors"
	"net/http"
)

// HTTPError carries a status code and a client-facing message.
type HTTPError struct {
	Code    int
	Message string
}

func (e HTTPError) Error() string { return e.Message }

// NewHTTPError returns an HTTPError. An empty message uses the status text.
func NewHTTPError(code int, message string) HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return HTTPError{Code: code, Message: message}
}

var (
	ErrBadRequest         = NewHTTPError(http.StatusBadRequest, "")
	ErrUnauthorized       = NewHTTPError(http.StatusUnauthorized, "")
	ErrForbidden          = NewHTTPError(http.StatusForbidden, "")
	ErrNotFound           = NewHTTPError(http.StatusNotFound, "")
	ErrServiceUnavailable = NewHTTPError(http.StatusServiceUnavailable, "")
	ErrInternal           = NewHTTPError(http.StatusInternalServerError, "")

	ErrNilResponse = errors.New("handler returned nil response")
)

// DefaultErrorHandler renders {"error": message} using the first HTTPError
// found in err's chain, or 500.
func DefaultErrorHandler(ctx Context, err error) {
	httpErr := ErrInternal
	var he HTTPError
	if errors.As(err, &he) {
		httpErr = he
	}
	_ = Error(httpErr.Code, httpErr.Message).Render(ctx.ResponseWriter(), ctx.Request())
}
