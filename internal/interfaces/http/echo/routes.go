package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, imports *ImportHandler, devices *DeviceHandler, manufacturers *ManufacturerHandler) {
	v1 := server.Group("/api/v1")

	if imports != nil {
		v1.POST("/devices/import", imports.ImportDevices)
		v1.GET("/imports", imports.GetImportHistory)
		v1.GET("/imports/recent", imports.GetRecentImports)
		v1.GET("/imports/:id", imports.GetImportJob)
	}

	if devices != nil {
		v1.GET("/devices", devices.ListDevices)
		v1.POST("/devices", devices.CreateDevice)
		v1.GET("/devices/statistics", devices.GetStatistics)
		v1.GET("/devices/:id", devices.GetDevice)
		v1.PUT("/devices/:id", devices.UpdateDevice)
		v1.DELETE("/devices/:id", devices.DeleteDevice)
	}

	if manufacturers != nil {
		v1.GET("/manufacturers", manufacturers.ListManufacturers)
	}
}
