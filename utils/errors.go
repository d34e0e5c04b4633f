package utils

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthenticated   = errors.New("authentication credentials were not provided")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInactiveUser      = errors.New("user inactive or deleted")
	ErrTokenNoKey        = errors.New("token header without credentials")
	ErrTokenHasSpaces    = errors.New("token header with spaces")
	ErrBookingIDRequired = errors.New("booking id required")
)

// HTTPErrorInfo is the status and client-facing message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

type errorMapping struct {
	err     error
	status  int
	message string
}

// ErrorMapper translates domain errors into HTTP responses.
// Mappings are matched with errors.Is in registration order.
type ErrorMapper struct {
	mappings       []errorMapping
	defaultStatus  int
	defaultMessage string
}

func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "A server error occurred.",
	}
}

func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, errorMapping{err: err, status: status, message: message})
	return m
}

func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "Request timed out."}
	}
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.err) {
			return HTTPErrorInfo{Status: mapping.status, Message: mapping.message}
		}
	}
	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

var DefaultErrorMapper = NewErrorMapper().
	WithMapping(ErrNotFound, http.StatusNotFound, "Not found.").
	WithMapping(gorm.ErrRecordNotFound, http.StatusNotFound, "Not found.").
	WithMapping(ErrUnauthenticated, http.StatusUnauthorized, "Authentication credentials were not provided.").
	WithMapping(ErrInvalidToken, http.StatusUnauthorized, "Invalid token.").
	WithMapping(ErrInactiveUser, http.StatusUnauthorized, "User inactive or deleted.").
	WithMapping(ErrTokenNoKey, http.StatusUnauthorized, "Invalid token header. No credentials provided.").
	WithMapping(ErrTokenHasSpaces, http.StatusUnauthorized, "Invalid token header. Token string should not contain spaces.").
	WithMapping(ErrBookingIDRequired, http.StatusBadRequest, "Booking ID required.")
