package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/srms/internal/app/models/dto"
	"github.com/arjun/srms/internal/app/services"
	"github.com/arjun/srms/internal/middleware"
	"github.com/arjun/srms/internal/pkg/apperrors"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// AdminLogin handles administrator login
// @Summary Admin login
// @Description Authenticates an administrator and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /auth/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("username and password are required"))
		return
	}

	token, err := c.authService.AdminLogin(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(token))
}

// StudentLogin handles student login
// @Summary Student login
// @Description Authenticates a student by roll number and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Student credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /auth/student/login [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	var req dto.StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("roll number and password are required"))
		return
	}

	token, err := c.authService.StudentLogin(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(token))
}
