package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/arjun/srms/internal/app/models/dto"
	"github.com/arjun/srms/internal/pkg/apperrors"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed")),
		})
	case errors.Is(err, apperrors.ErrSchemaMismatch):
		c.JSON(422, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeSchemaMismatch, messageOf(err, "Uploaded data does not match the stored schema")),
		})
	case errors.Is(err, apperrors.ErrResultTableMissing):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "No results uploaded for this year yet"),
		})
	case errors.Is(err, apperrors.ErrResultNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Result not found"),
		})
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found"),
		})
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found")),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})
	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// messageOf prefers the wrapped message of a CustomError over the generic
// fallback, so validation and schema errors surface their detail.
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
