package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies an application error category
type ErrorCode string

// String returns the code as a string
func (c ErrorCode) String() string {
	return string(c)
}

// Error codes
const (
	ErrorCode_HTTP_OK          ErrorCode = "OK"
	ErrorCode_INTERNAL         ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND        ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS   ErrorCode = "ALREADY_EXISTS"
	ErrorCode_UNAUTHENTICATED  ErrorCode = "UNAUTHENTICATED"
	ErrorCode_FORBIDDEN        ErrorCode = "FORBIDDEN"

	ErrorCode_AUTH_INVALID_TOKEN         ErrorCode = "AUTH_INVALID_TOKEN"
	ErrorCode_AUTH_TOKEN_EXPIRED         ErrorCode = "AUTH_TOKEN_EXPIRED"
	ErrorCode_AUTH_INVALID_CREDENTIALS   ErrorCode = "AUTH_INVALID_CREDENTIALS"
	ErrorCode_AUTH_USER_NOT_FOUND        ErrorCode = "AUTH_USER_NOT_FOUND"
	ErrorCode_AUTH_USER_ALREADY_EXISTS   ErrorCode = "AUTH_USER_ALREADY_EXISTS"
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN ErrorCode = "AUTH_INVALID_REFRESH_TOKEN"

	ErrorCode_TEAM_NOT_FOUND     ErrorCode = "TEAM_NOT_FOUND"
	ErrorCode_TEAM_REQUIRED      ErrorCode = "TEAM_REQUIRED"
	ErrorCode_MEMBER_NOT_FOUND   ErrorCode = "MEMBER_NOT_FOUND"
	ErrorCode_INTEGRATION_FAILED ErrorCode = "INTEGRATION_FAILED"
	ErrorCode_NOT_CONNECTED      ErrorCode = "NOT_CONNECTED"
	ErrorCode_ANALYSIS_FAILED    ErrorCode = "ANALYSIS_FAILED"
	ErrorCode_MISSING_TRANSCRIPT ErrorCode = "MISSING_TRANSCRIPT"
	ErrorCode_INVALID_PAYLOAD    ErrorCode = "INVALID_PAYLOAD"
)

// AppError is the application error type carried across layers
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrAlreadyExists(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  fmt.Sprintf("%s already exists", resource),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid request body",
	}
}

// Authentication Errors

func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

func ErrInvalidCredentials() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_CREDENTIALS,
		Message:  "Invalid email or password",
	}
}

func ErrUserNotFound() AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_AUTH_USER_NOT_FOUND,
		Message:  "User not found",
	}
}

func ErrUserAlreadyExists(email string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_AUTH_USER_ALREADY_EXISTS,
		Message:  "User already exists",
	}.WithDetail("email", email)
}

func ErrInvalidRefreshToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_REFRESH_TOKEN,
		Message:  "Invalid refresh token",
	}
}

// Team Errors

func ErrTeamNotFound() AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_TEAM_NOT_FOUND,
		Message:  "Team not found",
	}
}

func ErrTeamRequired() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_TEAM_REQUIRED,
		Message:  "You must create or be part of a team first",
	}
}

func ErrMemberNotFound(email string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEMBER_NOT_FOUND,
		Message:  "No user found with that email address",
	}.WithDetail("email", email)
}

// Integration Errors

func ErrIntegrationNotConnected(integration string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_NOT_CONNECTED,
		Message:  fmt.Sprintf("%s account is not connected", integration),
	}
}

func ErrIntegrationFailed(integration string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_INTEGRATION_FAILED,
		Message:  fmt.Sprintf("Failed to reach %s", integration),
	}
}

// Analysis Errors

func ErrMissingTranscript() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MISSING_TRANSCRIPT,
		Message:  "Transcript text is required",
	}
}

func ErrAnalysisFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_ANALYSIS_FAILED,
		Message:  "Transcript analysis failed",
	}
}
