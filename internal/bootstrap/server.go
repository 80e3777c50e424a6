package bootstrap

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	app "github.com/hardwarevault/inventory/internal/application/device"
	"github.com/hardwarevault/inventory/internal/infrastructure/excel"
	"github.com/hardwarevault/inventory/internal/infrastructure/repository"
	httpecho "github.com/hardwarevault/inventory/internal/interfaces/http/echo"
)

func NewHTTPServer(db *gorm.DB, pool *pgxpool.Pool, maxUploadBytes int64) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(fmt.Sprintf("%d", maxUploadBytes)))

	importJobRepo := repository.NewImportJobRepository(db)
	deviceImportRepo := repository.NewDeviceImportRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	manufacturerRepo := repository.NewManufacturerRepository(db)
	statisticsRepo := repository.NewStatisticsRepository(pool)
	parser := excel.NewParser()

	importHandler := httpecho.NewImportHandler(
		app.NewImportDevices(importJobRepo, deviceImportRepo, parser),
		app.NewGetImportHistory(importJobRepo),
		app.NewGetRecentImports(importJobRepo),
		app.NewGetImportJob(importJobRepo),
		maxUploadBytes,
	)
	deviceHandler := httpecho.NewDeviceHandler(
		app.NewListDevices(deviceRepo),
		app.NewGetDevice(deviceRepo),
		app.NewCreateDevice(deviceRepo),
		app.NewUpdateDevice(deviceRepo),
		app.NewDeleteDevice(deviceRepo),
		app.NewGetDeviceStatistics(statisticsRepo),
	)
	manufacturerHandler := httpecho.NewManufacturerHandler(
		app.NewListManufacturers(manufacturerRepo),
	)

	httpecho.RegisterRoutes(server, importHandler, deviceHandler, manufacturerHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
