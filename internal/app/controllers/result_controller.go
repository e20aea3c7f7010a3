package controllers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/app/models/dto"
	"github.com/arjun/srms/internal/app/services"
	"github.com/arjun/srms/internal/middleware"
	"github.com/arjun/srms/internal/pkg/apperrors"
	"github.com/arjun/srms/internal/pkg/filestorage"
)

// ResultController handles result table operations
type ResultController struct {
	ingestService services.IngestService
	resultService services.ResultService
	fileStorage   *filestorage.LocalStorage
	logger        zerolog.Logger
}

// NewResultController creates a new ResultController
func NewResultController(ingestService services.IngestService, resultService services.ResultService, fileStorage *filestorage.LocalStorage, logger zerolog.Logger) *ResultController {
	return &ResultController{
		ingestService: ingestService,
		resultService: resultService,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

// yearParam parses the :year path parameter into a year tag.
func yearParam(ctx *gin.Context) (models.YearTag, error) {
	year, err := models.ParseYearTag(ctx.Param("year"))
	if err != nil {
		return "", apperrors.NewValidationError("unknown year, expected one of first_year, second_year, third_year, fourth_year")
	}
	return year, nil
}

// idParam parses the :id path parameter into a row id.
func idParam(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid result id")
	}
	return id, nil
}

// Upload handles a CSV upload for one academic year
// @Summary Upload a results CSV
// @Description Ingests a CSV file into the year's result table, creating the table on first upload
// @Tags results
// @Accept multipart/form-data
// @Produce json
// @Param year path string true "Academic year tag (first_year..fourth_year)"
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.UploadResponse} "Upload processed"
// @Failure 400 {object} dto.APIResponse "Invalid file or missing required columns"
// @Failure 422 {object} dto.APIResponse "Rows do not match the stored schema"
// @Security BearerAuth
// @Router /years/{year}/results [post]
func (c *ResultController) Upload(ctx *gin.Context) {
	year, err := yearParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("no file provided"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("failed to open uploaded file"))
		return
	}
	defer file.Close()

	count, err := c.ingestService.UploadCSV(ctx.Request.Context(), year, fileHeader.Filename, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Archive the original upload for audit purposes. A failed archive does
	// not undo the ingestion.
	if _, err := c.fileStorage.SaveUpload(fileHeader, string(year)); err != nil {
		c.logger.Warn().Err(err).Str("year", string(year)).Msg("failed to archive uploaded CSV")
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UploadResponse{
		Year:          year,
		RowsProcessed: count,
	}))
}

// List handles listing a year's results
// @Summary List results for a year
// @Description Returns all rows of the year's result table, optionally filtered by roll number or name
// @Tags results
// @Produce json
// @Param year path string true "Academic year tag"
// @Param roll query string false "Filter by roll number substring"
// @Param name query string false "Filter by name substring"
// @Success 200 {object} dto.APIResponse{data=dto.ResultListResponse} "Results retrieved"
// @Security BearerAuth
// @Router /years/{year}/results [get]
func (c *ResultController) List(ctx *gin.Context) {
	year, err := yearParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.resultService.ListResults(ctx.Request.Context(), year, ctx.Query("roll"), ctx.Query("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Get handles fetching a single result row
// @Summary Get a single result row
// @Tags results
// @Produce json
// @Param year path string true "Academic year tag"
// @Param id path int true "Row id"
// @Success 200 {object} dto.APIResponse "Result retrieved"
// @Failure 404 {object} dto.APIResponse "Result not found"
// @Security BearerAuth
// @Router /years/{year}/results/{id} [get]
func (c *ResultController) Get(ctx *gin.Context) {
	year, err := yearParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := idParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	row, err := c.resultService.GetResult(ctx.Request.Context(), year, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(row))
}

// Update handles editing a single result row
// @Summary Update a result row
// @Description Updates selected columns of a row and re-reconciles the student identity
// @Tags results
// @Accept json
// @Produce json
// @Param year path string true "Academic year tag"
// @Param id path int true "Row id"
// @Param request body dto.UpdateResultRequest true "Column values to set"
// @Success 200 {object} dto.APIResponse "Result updated"
// @Failure 404 {object} dto.APIResponse "Result not found"
// @Failure 422 {object} dto.APIResponse "Values do not match the stored schema"
// @Security BearerAuth
// @Router /years/{year}/results/{id} [put]
func (c *ResultController) Update(ctx *gin.Context) {
	year, err := yearParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := idParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("request body must contain a values object"))
		return
	}

	if err := c.ingestService.UpdateRow(ctx.Request.Context(), year, id, req.Values); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Result updated successfully"}))
}

// Delete handles removing a single result row
// @Summary Delete a result row
// @Tags results
// @Produce json
// @Param year path string true "Academic year tag"
// @Param id path int true "Row id"
// @Success 200 {object} dto.APIResponse "Result deleted"
// @Failure 404 {object} dto.APIResponse "Result not found"
// @Security BearerAuth
// @Router /years/{year}/results/{id} [delete]
func (c *ResultController) Delete(ctx *gin.Context) {
	year, err := yearParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	id, err := idParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.resultService.DeleteResult(ctx.Request.Context(), year, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Result deleted successfully"}))
}

// Clear handles dropping a year's result table
// @Summary Clear a year's results
// @Description Drops the year's result table so the next upload starts from a fresh schema
// @Tags results
// @Produce json
// @Param year path string true "Academic year tag"
// @Success 200 {object} dto.APIResponse "Year cleared"
// @Security BearerAuth
// @Router /years/{year}/results [delete]
func (c *ResultController) Clear(ctx *gin.Context) {
	year, err := yearParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.resultService.ClearYear(ctx.Request.Context(), year); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"message": "Results cleared successfully"}))
}

// SampleCSV serves a minimal CSV template for uploads
// @Summary Download a sample CSV
// @Description Serves a template showing the minimum columns an upload needs
// @Tags results
// @Produce text/csv
// @Param year path string true "Academic year tag"
// @Success 200 {file} file "Sample CSV"
// @Security BearerAuth
// @Router /years/{year}/sample [get]
func (c *ResultController) SampleCSV(ctx *gin.Context) {
	year, err := yearParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("sample_%s.csv", year)
	path, err := c.fileStorage.EnsureFile(filename, writeSampleCSV)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Header("Content-Type", "text/csv")
	ctx.File(path)
}

func writeSampleCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	records := [][]string{
		{"roll_no", "name", "DMS", "CN", "EFT", "DBMS"},
		{"F1001", "Aarav Sharma", "88", "74", "91", "69"},
		{"F1002", "Diya Patel", "79", "85", "68", "90"},
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
