package errors

import (
	"errors"
	"net/http"
)

// Authentication errors surfaced at login and refresh.
var (
	// ErrInvalidCredentials is returned when the account is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailNotConfirmed is returned when the account has not confirmed its email.
	ErrEmailNotConfirmed = errors.New("email not confirmed")
	// ErrBanned is returned when the account is suspended.
	ErrBanned = errors.New("account is banned")
	// ErrUserAlreadyExists is returned when signing up with a taken email.
	ErrUserAlreadyExists = errors.New("account already exists")
)

// Token errors.
var (
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrBadSignature is returned when a token's signature or format is invalid.
	ErrBadSignature = errors.New("could not validate credentials")
	// ErrWrongScope is returned when a token carries the wrong scope claim.
	ErrWrongScope = errors.New("invalid scope for token")
	// ErrReuseDetected is returned when a presented refresh token does not match
	// the stored one; the stored token is revoked before this propagates.
	ErrReuseDetected = errors.New("refresh token reuse detected")
	// ErrEmailTokenInvalid is returned for a broken email-verification token.
	ErrEmailTokenInvalid = errors.New("invalid token for email verification")
)

// ErrForbidden is returned when the principal's role fails the allow-list or
// the ownership check.
var ErrForbidden = errors.New("operation forbidden")

// Validation errors.
var (
	// ErrRatingSelectionInvalid is returned for a star selection that breaks the
	// exactly-one (create) or at-most-one (update) rule.
	ErrRatingSelectionInvalid = errors.New("invalid star selection")
	// ErrOwnImageRating is returned when a user rates their own image.
	ErrOwnImageRating = errors.New("cannot rate your own image")
	// ErrDuplicateRating is returned when a concurrent insert loses the
	// (user, image) uniqueness race.
	ErrDuplicateRating = errors.New("rating already exists")
	// ErrTagExists is returned when creating or renaming a tag to a taken name.
	ErrTagExists = errors.New("tag already exists")
	// ErrSearchOrderInvalid is returned for an unknown search ordering key.
	ErrSearchOrderInvalid = errors.New("filter type must be 'd' / '-d' for date or 'r' / '-r' for rating")
)

// Not-found errors.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrRatingNotFound  = errors.New("rating not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrImageNotFound   = errors.New("image not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailNotConfirmed):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "EMAIL_NOT_CONFIRMED")
	case errors.Is(err, ErrBanned):
		return NewHTTPError(http.StatusForbidden, err.Error(), "BANNED")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "ACCOUNT_EXISTS")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrBadSignature):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "BAD_SIGNATURE")
	case errors.Is(err, ErrWrongScope):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "WRONG_SCOPE")
	case errors.Is(err, ErrReuseDetected):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "REFRESH_REUSE")
	case errors.Is(err, ErrEmailTokenInvalid):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "EMAIL_TOKEN_INVALID")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrRatingSelectionInvalid):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RATING_SELECTION_INVALID")
	case errors.Is(err, ErrOwnImageRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OWN_IMAGE_RATING")
	case errors.Is(err, ErrDuplicateRating):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_RATING")
	case errors.Is(err, ErrTagExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "TAG_EXISTS")
	case errors.Is(err, ErrSearchOrderInvalid):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SEARCH_ORDER_INVALID")
	case errors.Is(err, ErrAccountNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrRatingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RATING_NOT_FOUND")
	case errors.Is(err, ErrTagNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TAG_NOT_FOUND")
	case errors.Is(err, ErrImageNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "IMAGE_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
