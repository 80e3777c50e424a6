package device_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	app "github.com/hardwarevault/inventory/internal/application/device"
	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

type fakeDeviceRepo struct {
	devices    map[uuid.UUID]*domain.DeviceDetails
	lastFilter domain.DeviceFilter
	createErr  error
	updated    *domain.Device
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: make(map[uuid.UUID]*domain.DeviceDetails)}
}

func (f *fakeDeviceRepo) Create(ctx context.Context, dev *domain.Device) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.devices[dev.ID] = &domain.DeviceDetails{Device: *dev}
	return nil
}

func (f *fakeDeviceRepo) Update(ctx context.Context, dev *domain.Device) error {
	if _, ok := f.devices[dev.ID]; !ok {
		return domain.ErrDeviceNotFound
	}
	f.updated = dev
	f.devices[dev.ID] = &domain.DeviceDetails{Device: *dev}
	return nil
}

func (f *fakeDeviceRepo) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.DeviceDetails, error) {
	details, ok := f.devices[id]
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	if details.Deleted && !includeDeleted {
		return nil, domain.ErrDeviceNotFound
	}
	copied := *details
	return &copied, nil
}

func (f *fakeDeviceRepo) GetPage(ctx context.Context, filter domain.DeviceFilter, page, pageSize int) ([]domain.DeviceDetails, int64, error) {
	f.lastFilter = filter
	out := make([]domain.DeviceDetails, 0, len(f.devices))
	for _, details := range f.devices {
		if details.Deleted && !filter.IncludeDeleted {
			continue
		}
		out = append(out, *details)
	}
	return out, int64(len(out)), nil
}

func seedDevice(t *testing.T, repo *fakeDeviceRepo) *domain.Device {
	t.Helper()

	dev, err := domain.NewDevice(8192, 512, "SSD", 1, 2, 3, 2.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.devices[dev.ID] = &domain.DeviceDetails{
		Device:             *dev,
		CpuModel:           "Core i5-9400",
		CpuManufacturer:    "Intel",
		GpuModel:           "RTX 3060",
		GpuManufacturer:    "NVIDIA",
		PowerSupplyWattage: 550,
	}
	return dev
}

func TestCreateDevice(t *testing.T) {
	t.Parallel()

	repo := newFakeDeviceRepo()
	uc := app.NewCreateDevice(repo)

	out, err := uc.Execute(context.Background(), app.CreateDeviceInput{
		RAMSizeMB:     16384,
		StorageSizeGB: 1000,
		StorageType:   "ssd",
		CpuID:         1,
		GpuID:         2,
		PowerSupplyID: 3,
		WeightKg:      9.5,
		USBPorts:      []app.USBPortIO{{PortType: "USB 3.0", Count: 4}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out.RAMSizeGB != 16 {
		t.Fatalf("expected 16 GB, got %d", out.RAMSizeGB)
	}
	if out.StorageType != "SSD" {
		t.Fatalf("expected normalized storage type, got %s", out.StorageType)
	}
	if len(out.USBPorts) != 1 || out.USBPorts[0].Count != 4 {
		t.Fatalf("unexpected usb ports: %+v", out.USBPorts)
	}
}

func TestCreateDeviceInvalid(t *testing.T) {
	t.Parallel()

	uc := app.NewCreateDevice(newFakeDeviceRepo())

	_, err := uc.Execute(context.Background(), app.CreateDeviceInput{
		RAMSizeMB:     128, // below minimum
		StorageSizeGB: 512,
		StorageType:   "SSD",
		CpuID:         1,
		GpuID:         2,
		PowerSupplyID: 3,
		WeightKg:      2.5,
	})
	if !errors.Is(err, app.ErrInvalidDevice) {
		t.Fatalf("expected ErrInvalidDevice, got %v", err)
	}
}

func TestGetDeviceNotFound(t *testing.T) {
	t.Parallel()

	uc := app.NewGetDevice(newFakeDeviceRepo())

	_, err := uc.Execute(context.Background(), app.GetDeviceInput{ID: uuid.NewString()})
	if !errors.Is(err, app.ErrDeviceNotFound) {
		t.Fatalf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestGetDeviceInvalidID(t *testing.T) {
	t.Parallel()

	uc := app.NewGetDevice(newFakeDeviceRepo())

	_, err := uc.Execute(context.Background(), app.GetDeviceInput{ID: "nope"})
	if !errors.Is(err, app.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestUpdateDevicePartial(t *testing.T) {
	t.Parallel()

	repo := newFakeDeviceRepo()
	dev := seedDevice(t, repo)
	uc := app.NewUpdateDevice(repo)

	newRAM := 32768
	out, err := uc.Execute(context.Background(), app.UpdateDeviceInput{
		ID:        dev.ID.String(),
		RAMSizeMB: &newRAM,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out.RAMSizeMB != 32768 {
		t.Fatalf("expected updated RAM, got %d", out.RAMSizeMB)
	}
	// Untouched fields keep their values.
	if out.StorageSizeGB != 512 {
		t.Fatalf("storage must be unchanged, got %d", out.StorageSizeGB)
	}
	if repo.updated == nil {
		t.Fatal("expected repository update")
	}
}

func TestUpdateDeviceInvalidValue(t *testing.T) {
	t.Parallel()

	repo := newFakeDeviceRepo()
	dev := seedDevice(t, repo)
	uc := app.NewUpdateDevice(repo)

	badWeight := 9000.0
	_, err := uc.Execute(context.Background(), app.UpdateDeviceInput{
		ID:       dev.ID.String(),
		WeightKg: &badWeight,
	})
	if !errors.Is(err, app.ErrInvalidDevice) {
		t.Fatalf("expected ErrInvalidDevice, got %v", err)
	}
}

func TestDeleteDeviceSoftDeletes(t *testing.T) {
	t.Parallel()

	repo := newFakeDeviceRepo()
	dev := seedDevice(t, repo)
	uc := app.NewDeleteDevice(repo)

	if err := uc.Execute(context.Background(), app.DeleteDeviceInput{ID: dev.ID.String()}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if repo.updated == nil || !repo.updated.Deleted {
		t.Fatal("expected soft delete persisted via update")
	}

	// Deleted devices disappear from default reads.
	getUC := app.NewGetDevice(repo)
	if _, err := getUC.Execute(context.Background(), app.GetDeviceInput{ID: dev.ID.String()}); !errors.Is(err, app.ErrDeviceNotFound) {
		t.Fatalf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestListDevicesPassesFilter(t *testing.T) {
	t.Parallel()

	repo := newFakeDeviceRepo()
	seedDevice(t, repo)
	uc := app.NewListDevices(repo)

	out, err := uc.Execute(context.Background(), app.ListDevicesInput{
		Page:            1,
		PageSize:        20,
		CpuManufacturer: "Intel",
		StorageType:     "SSD",
		MinRAMGB:        4,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(out.Data) != 1 {
		t.Fatalf("expected 1 device, got %d", len(out.Data))
	}
	if repo.lastFilter.CpuManufacturer != "Intel" || repo.lastFilter.MinRAMGB != 4 {
		t.Fatalf("filter not forwarded: %+v", repo.lastFilter)
	}
}

func TestListDevicesInvalidPage(t *testing.T) {
	t.Parallel()

	uc := app.NewListDevices(newFakeDeviceRepo())

	if _, err := uc.Execute(context.Background(), app.ListDevicesInput{Page: 0, PageSize: 20}); !errors.Is(err, app.ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
}
