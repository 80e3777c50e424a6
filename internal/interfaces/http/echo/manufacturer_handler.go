package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/hardwarevault/inventory/internal/application/device"
)

type ManufacturerHandler struct {
	list app.ListManufacturers
}

func NewManufacturerHandler(list app.ListManufacturers) *ManufacturerHandler {
	return &ManufacturerHandler{list: list}
}

func (h *ManufacturerHandler) ListManufacturers(c echo.Context) error {
	out, err := h.list.Execute(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to list manufacturers",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
