package echo

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	app "github.com/hardwarevault/inventory/internal/application/device"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type ImportHandler struct {
	importDevices app.ImportDevices
	history       app.GetImportHistory
	recent        app.GetRecentImports
	getJob        app.GetImportJob

	// maxUploadBytes caps the spreadsheet read; the body limit
	// middleware is configured from the same value.
	maxUploadBytes int64
}

func NewImportHandler(importDevices app.ImportDevices, history app.GetImportHistory, recent app.GetRecentImports, getJob app.GetImportJob, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{
		importDevices:  importDevices,
		history:        history,
		recent:         recent,
		getJob:         getJob,
		maxUploadBytes: maxUploadBytes,
	}
}

// ImportDevices accepts a multipart upload under the "file" field. A
// fully or partially successful import answers 200 or 207 with the job
// report either way; only a file that cannot be processed at all is a 400.
func (h *ImportHandler) ImportDevices(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "missing_file",
			Message: "multipart field 'file' is required",
		}})
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "unsupported_file_type",
			Message: "only .xlsx files are supported",
		}})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "unreadable_file",
			Message: "failed to open uploaded file",
		}})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxUploadBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "unreadable_file",
			Message: "failed to read uploaded file",
		}})
	}
	if int64(len(data)) > h.maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, apiResponse{Error: &errorBody{
			Code:    "file_too_large",
			Message: fmt.Sprintf("file exceeds the %d byte upload limit", h.maxUploadBytes),
		}})
	}

	out, err := h.importDevices.Execute(c.Request().Context(), app.ImportDevicesInput{
		FileName: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		if errors.Is(err, app.ErrUnreadableFile) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_file",
				Message: "file is not a readable spreadsheet or is missing required columns",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "import failed",
		}})
	}

	// The upload response is the job summary itself, not the data
	// envelope; importers consume it directly.
	status := http.StatusOK
	if out.FailureCount > 0 {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, out)
}

func (h *ImportHandler) GetImportHistory(c echo.Context) error {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", 20)

	out, err := h.history.Execute(c.Request().Context(), app.GetImportHistoryInput{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidPage) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_page",
				Message: "page must be >= 1 and pageSize between 1 and 100",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to list import jobs",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) GetRecentImports(c echo.Context) error {
	limit := queryInt(c, "limit", 5)

	out, err := h.recent.Execute(c.Request().Context(), app.GetRecentImportsInput{Limit: limit})
	if err != nil {
		if errors.Is(err, app.ErrInvalidLimit) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_limit",
				Message: "limit must be between 1 and 50",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to list recent import jobs",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) GetImportJob(c echo.Context) error {
	out, err := h.getJob.Execute(c.Request().Context(), app.GetImportJobInput{
		ID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidJobID) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_job_id",
				Message: "id must be a valid UUID",
			}})
		}
		if errors.Is(err, app.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "import job not found",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get import job",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}
