package device

import (
	"context"

	"github.com/google/uuid"
)

type ImportJobRepository interface {
	Create(ctx context.Context, job *ImportJob) error
	Update(ctx context.Context, job *ImportJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*ImportJob, error)
	GetPage(ctx context.Context, page, pageSize int) ([]ImportJob, int64, error)
	GetRecent(ctx context.Context, limit int) ([]ImportJob, error)
}

// DeviceImportBatch is the write scope of one import call. AddRow resolves
// the row's lookup references (get-or-create with in-batch dedup), builds a
// validated device and queues it inside the batch transaction. An AddRow
// error is scoped to that row; the batch stays usable for the next row.
// Commit is the single atomic write of the whole import.
type DeviceImportBatch interface {
	AddRow(ctx context.Context, row ImportRow) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type DeviceImportRepository interface {
	Begin(ctx context.Context) (DeviceImportBatch, error)
}

// DeviceDetails is the read model for listings and detail fetches: the
// aggregate plus the resolved lookup names.
type DeviceDetails struct {
	Device
	CpuModel           string
	CpuManufacturer    string
	GpuModel           string
	GpuManufacturer    string
	PowerSupplyWattage int
}

type DeviceFilter struct {
	CpuManufacturer string
	GpuManufacturer string
	StorageType     string
	MinRAMGB        int
	Search          string
	IncludeDeleted  bool
}

type DeviceRepository interface {
	Create(ctx context.Context, dev *Device) error
	Update(ctx context.Context, dev *Device) error
	GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*DeviceDetails, error)
	GetPage(ctx context.Context, filter DeviceFilter, page, pageSize int) ([]DeviceDetails, int64, error)
}

type ManufacturerSummary struct {
	Manufacturer
	CpuCount    int64
	GpuCount    int64
	DeviceCount int64
}

type ManufacturerRepository interface {
	ListWithCounts(ctx context.Context) ([]ManufacturerSummary, error)
}

type DeviceStatistics struct {
	TotalDevices      int64
	ActiveDevices     int64
	DeletedDevices    int64
	SSDCount          int64
	HDDCount          int64
	AverageRAMGB      float64
	AverageStorageGB  float64
	ByCpuManufacturer map[string]int64
	ByGpuManufacturer map[string]int64
}

type StatisticsRepository interface {
	GetDeviceStatistics(ctx context.Context) (DeviceStatistics, error)
}
