package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/hardwarevault/inventory/internal/application/device"
)

type DeviceHandler struct {
	list       app.ListDevices
	get        app.GetDevice
	create     app.CreateDevice
	update     app.UpdateDevice
	remove     app.DeleteDevice
	statistics app.GetDeviceStatistics
}

func NewDeviceHandler(list app.ListDevices, get app.GetDevice, create app.CreateDevice, update app.UpdateDevice, remove app.DeleteDevice, statistics app.GetDeviceStatistics) *DeviceHandler {
	return &DeviceHandler{
		list:       list,
		get:        get,
		create:     create,
		update:     update,
		remove:     remove,
		statistics: statistics,
	}
}

func (h *DeviceHandler) ListDevices(c echo.Context) error {
	in := app.ListDevicesInput{
		Page:            queryInt(c, "page", 1),
		PageSize:        queryInt(c, "pageSize", 20),
		CpuManufacturer: c.QueryParam("cpuManufacturer"),
		GpuManufacturer: c.QueryParam("gpuManufacturer"),
		StorageType:     c.QueryParam("storageType"),
		MinRAMGB:        queryInt(c, "minRamGB", 0),
		Search:          c.QueryParam("search"),
	}

	out, err := h.list.Execute(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, app.ErrInvalidPage) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_page",
				Message: "page must be >= 1 and pageSize between 1 and 100",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to list devices",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *DeviceHandler) GetDevice(c echo.Context) error {
	out, err := h.get.Execute(c.Request().Context(), app.GetDeviceInput{ID: c.Param("id")})
	if err != nil {
		return h.deviceError(c, err, "failed to get device")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *DeviceHandler) CreateDevice(c echo.Context) error {
	var in app.CreateDeviceInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	out, err := h.create.Execute(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, app.ErrInvalidDevice) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_device",
				Message: err.Error(),
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to create device",
		}})
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *DeviceHandler) UpdateDevice(c echo.Context) error {
	var in app.UpdateDeviceInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}
	in.ID = c.Param("id")

	out, err := h.update.Execute(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, app.ErrInvalidDevice) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_device",
				Message: err.Error(),
			}})
		}
		return h.deviceError(c, err, "failed to update device")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *DeviceHandler) DeleteDevice(c echo.Context) error {
	err := h.remove.Execute(c.Request().Context(), app.DeleteDeviceInput{ID: c.Param("id")})
	if err != nil {
		return h.deviceError(c, err, "failed to delete device")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *DeviceHandler) GetStatistics(c echo.Context) error {
	out, err := h.statistics.Execute(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get device statistics",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *DeviceHandler) deviceError(c echo.Context, err error, fallback string) error {
	if errors.Is(err, app.ErrInvalidID) {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "invalid_device_id",
			Message: "id must be a valid UUID",
		}})
	}
	if errors.Is(err, app.ErrDeviceNotFound) {
		return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
			Code:    "not_found",
			Message: "device not found",
		}})
	}
	return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
		Code:    "internal_error",
		Message: fallback,
	}})
}
