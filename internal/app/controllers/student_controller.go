package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/app/models/dto"
	"github.com/arjun/srms/internal/app/services"
	"github.com/arjun/srms/internal/middleware"
	"github.com/arjun/srms/internal/pkg/apperrors"
)

// StudentController handles the student-facing dashboard operations
type StudentController struct {
	resultService services.ResultService
}

// NewStudentController creates a new StudentController
func NewStudentController(resultService services.ResultService) *StudentController {
	return &StudentController{resultService: resultService}
}

// MyResult returns the authenticated student's own result row
// @Summary Get my result
// @Description Returns the most recent result row and derived score for the logged-in student
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentResultResponse} "Result retrieved"
// @Failure 404 {object} dto.APIResponse "No result found for this student"
// @Security BearerAuth
// @Router /students/me/result [get]
func (c *StudentController) MyResult(ctx *gin.Context) {
	roll := ctx.GetString(middleware.ContextSubject)
	yearStr := ctx.GetString(middleware.ContextYear)

	year, err := models.ParseYearTag(yearStr)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	resp, err := c.resultService.StudentResult(ctx.Request.Context(), roll, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
