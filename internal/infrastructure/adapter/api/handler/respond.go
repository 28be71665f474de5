package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/finance-tracker/internal/domain/error"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/api/dto"
)

// respondError translates a domain error into the HTTP status, public
// message and error code the API contract defines
func respondError(c *gin.Context, err error) {
	c.JSON(httpStatus(err), dto.Fail(errs.ErrorCode(err), publicMessage(err), errs.ValidationFields(err)))
}

func httpStatus(err error) int {
	switch {
	case errs.IsValidationError(err),
		errs.IsInsufficientFundsError(err),
		errors.Is(err, errs.ErrDuplicateEmail),
		errors.Is(err, errs.ErrInvalidPagination),
		errors.Is(err, errs.ErrInvalidDateFormat),
		errors.Is(err, errs.ErrInvalidIDFormat):
		return http.StatusBadRequest
	case errs.IsAuthenticationError(err):
		return http.StatusUnauthorized
	case errs.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage keeps the wire messages stable regardless of how the
// underlying errors are worded or wrapped
func publicMessage(err error) string {
	switch {
	case errs.IsValidationError(err):
		return "Validation failed"
	case errs.IsInsufficientFundsError(err):
		return "Insufficient funds for this transaction"
	case errors.Is(err, errs.ErrDuplicateEmail):
		return "An account with this email address already exists"
	case errors.Is(err, errs.ErrInvalidPagination):
		return "Invalid pagination parameters. Page must be >= 1, limit must be between 1 and 100."
	case errors.Is(err, errs.ErrInvalidDateFormat):
		return "Invalid date format"
	case errors.Is(err, errs.ErrInvalidIDFormat):
		return "Invalid ID format"
	case errors.Is(err, errs.ErrInvalidCredentials):
		return "Invalid email address or password"
	case errors.Is(err, errs.ErrAccountDeactivated):
		return "Account is deactivated. Please contact support."
	case errors.Is(err, errs.ErrTokenExpired):
		return "Authentication token has expired. Please log in again."
	case errors.Is(err, errs.ErrInvalidToken):
		return "Invalid authentication token"
	case errors.Is(err, errs.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, errs.ErrTransactionNotFound):
		return "Transaction not found"
	default:
		return "Internal server error"
	}
}

// respondBindingError reports a malformed or incomplete request body
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Fail(
		errs.CodeValidationFailed,
		"Invalid request format: "+err.Error(),
		nil,
	))
}
