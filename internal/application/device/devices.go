package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

type USBPortIO struct {
	PortType string `json:"portType"`
	Count    int    `json:"count"`
}

type DeviceOutput struct {
	DeviceID           string      `json:"deviceId"`
	RAMSizeMB          int         `json:"ramSizeInMB"`
	RAMSizeGB          int         `json:"ramSizeInGB"`
	StorageSizeGB      int         `json:"storageSizeInGB"`
	StorageType        string      `json:"storageType"`
	CpuID              int64       `json:"cpuId"`
	CpuModel           string      `json:"cpuModel"`
	CpuManufacturer    string      `json:"cpuManufacturer"`
	GpuID              int64       `json:"gpuId"`
	GpuModel           string      `json:"gpuModel"`
	GpuManufacturer    string      `json:"gpuManufacturer"`
	PowerSupplyID      int64       `json:"powerSupplyId"`
	PowerSupplyWattage int         `json:"powerSupplyWattage"`
	WeightKg           float64     `json:"weightInKg"`
	USBPorts           []USBPortIO `json:"usbPorts"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

type PagedDevicesOutput struct {
	Data       []DeviceOutput `json:"data"`
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
}

type ListDevicesInput struct {
	Page            int
	PageSize        int
	CpuManufacturer string
	GpuManufacturer string
	StorageType     string
	MinRAMGB        int
	Search          string
}

type ListDevices interface {
	Execute(ctx context.Context, in ListDevicesInput) (PagedDevicesOutput, error)
}

type listDevices struct {
	repo domain.DeviceRepository
}

func NewListDevices(repo domain.DeviceRepository) ListDevices {
	return &listDevices{repo: repo}
}

func (uc *listDevices) Execute(ctx context.Context, in ListDevicesInput) (PagedDevicesOutput, error) {
	if in.Page < 1 || in.PageSize < 1 || in.PageSize > 100 {
		return PagedDevicesOutput{}, ErrInvalidPage
	}

	filter := domain.DeviceFilter{
		CpuManufacturer: in.CpuManufacturer,
		GpuManufacturer: in.GpuManufacturer,
		StorageType:     in.StorageType,
		MinRAMGB:        in.MinRAMGB,
		Search:          in.Search,
	}

	devices, totalCount, err := uc.repo.GetPage(ctx, filter, in.Page, in.PageSize)
	if err != nil {
		return PagedDevicesOutput{}, fmt.Errorf("list devices: %w", err)
	}

	outputs := make([]DeviceOutput, 0, len(devices))
	for i := range devices {
		outputs = append(outputs, toDeviceOutput(&devices[i]))
	}

	return PagedDevicesOutput{
		Data:       outputs,
		TotalCount: totalCount,
		Page:       in.Page,
		PageSize:   in.PageSize,
	}, nil
}

type GetDeviceInput struct {
	ID string
}

type GetDevice interface {
	Execute(ctx context.Context, in GetDeviceInput) (DeviceOutput, error)
}

type getDevice struct {
	repo domain.DeviceRepository
}

func NewGetDevice(repo domain.DeviceRepository) GetDevice {
	return &getDevice{repo: repo}
}

func (uc *getDevice) Execute(ctx context.Context, in GetDeviceInput) (DeviceOutput, error) {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return DeviceOutput{}, ErrInvalidID
	}

	details, err := uc.repo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, domain.ErrDeviceNotFound) {
			return DeviceOutput{}, ErrDeviceNotFound
		}
		return DeviceOutput{}, fmt.Errorf("get device: %w", err)
	}

	return toDeviceOutput(details), nil
}

type CreateDeviceInput struct {
	RAMSizeMB     int         `json:"ramSizeInMB"`
	StorageSizeGB int         `json:"storageSizeInGB"`
	StorageType   string      `json:"storageType"`
	CpuID         int64       `json:"cpuId"`
	GpuID         int64       `json:"gpuId"`
	PowerSupplyID int64       `json:"powerSupplyId"`
	WeightKg      float64     `json:"weightInKg"`
	USBPorts      []USBPortIO `json:"usbPorts"`
}

type CreateDevice interface {
	Execute(ctx context.Context, in CreateDeviceInput) (DeviceOutput, error)
}

type createDevice struct {
	repo domain.DeviceRepository
}

func NewCreateDevice(repo domain.DeviceRepository) CreateDevice {
	return &createDevice{repo: repo}
}

func (uc *createDevice) Execute(ctx context.Context, in CreateDeviceInput) (DeviceOutput, error) {
	dev, err := domain.NewDevice(in.RAMSizeMB, in.StorageSizeGB, in.StorageType,
		in.CpuID, in.GpuID, in.PowerSupplyID, in.WeightKg)
	if err != nil {
		return DeviceOutput{}, fmt.Errorf("%w: %v", ErrInvalidDevice, err)
	}
	for _, port := range in.USBPorts {
		if err := dev.AddUSBPort(port.PortType, port.Count); err != nil {
			return DeviceOutput{}, fmt.Errorf("%w: %v", ErrInvalidDevice, err)
		}
	}

	if err := uc.repo.Create(ctx, dev); err != nil {
		return DeviceOutput{}, fmt.Errorf("create device: %w", err)
	}

	details, err := uc.repo.GetByID(ctx, dev.ID, false)
	if err != nil {
		return DeviceOutput{}, fmt.Errorf("reload created device: %w", err)
	}
	return toDeviceOutput(details), nil
}

type UpdateDeviceInput struct {
	ID            string
	RAMSizeMB     *int         `json:"ramSizeInMB"`
	StorageSizeGB *int         `json:"storageSizeInGB"`
	StorageType   *string      `json:"storageType"`
	CpuID         *int64       `json:"cpuId"`
	GpuID         *int64       `json:"gpuId"`
	PowerSupplyID *int64       `json:"powerSupplyId"`
	WeightKg      *float64     `json:"weightInKg"`
	USBPorts      *[]USBPortIO `json:"usbPorts"`
}

type UpdateDevice interface {
	Execute(ctx context.Context, in UpdateDeviceInput) (DeviceOutput, error)
}

type updateDevice struct {
	repo domain.DeviceRepository
}

func NewUpdateDevice(repo domain.DeviceRepository) UpdateDevice {
	return &updateDevice{repo: repo}
}

func (uc *updateDevice) Execute(ctx context.Context, in UpdateDeviceInput) (DeviceOutput, error) {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return DeviceOutput{}, ErrInvalidID
	}

	details, err := uc.repo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, domain.ErrDeviceNotFound) {
			return DeviceOutput{}, ErrDeviceNotFound
		}
		return DeviceOutput{}, fmt.Errorf("load device: %w", err)
	}
	dev := &details.Device

	if err := applyDeviceUpdates(dev, in); err != nil {
		return DeviceOutput{}, fmt.Errorf("%w: %v", ErrInvalidDevice, err)
	}

	if err := uc.repo.Update(ctx, dev); err != nil {
		return DeviceOutput{}, fmt.Errorf("update device: %w", err)
	}

	reloaded, err := uc.repo.GetByID(ctx, id, false)
	if err != nil {
		return DeviceOutput{}, fmt.Errorf("reload updated device: %w", err)
	}
	return toDeviceOutput(reloaded), nil
}

func applyDeviceUpdates(dev *domain.Device, in UpdateDeviceInput) error {
	if in.RAMSizeMB != nil {
		if err := dev.UpdateRAM(*in.RAMSizeMB); err != nil {
			return err
		}
	}
	if in.StorageSizeGB != nil || in.StorageType != nil {
		size := dev.StorageSizeGB
		storageType := string(dev.StorageType)
		if in.StorageSizeGB != nil {
			size = *in.StorageSizeGB
		}
		if in.StorageType != nil {
			storageType = *in.StorageType
		}
		if err := dev.UpdateStorage(size, storageType); err != nil {
			return err
		}
	}
	if in.WeightKg != nil {
		if err := dev.UpdateWeight(*in.WeightKg); err != nil {
			return err
		}
	}
	if in.CpuID != nil {
		if err := dev.UpdateCpu(*in.CpuID); err != nil {
			return err
		}
	}
	if in.GpuID != nil {
		if err := dev.UpdateGpu(*in.GpuID); err != nil {
			return err
		}
	}
	if in.PowerSupplyID != nil {
		if err := dev.UpdatePowerSupply(*in.PowerSupplyID); err != nil {
			return err
		}
	}
	if in.USBPorts != nil {
		dev.ClearUSBPorts()
		for _, port := range *in.USBPorts {
			if err := dev.AddUSBPort(port.PortType, port.Count); err != nil {
				return err
			}
		}
	}
	return nil
}

type DeleteDeviceInput struct {
	ID string
}

type DeleteDevice interface {
	Execute(ctx context.Context, in DeleteDeviceInput) error
}

type deleteDevice struct {
	repo domain.DeviceRepository
}

func NewDeleteDevice(repo domain.DeviceRepository) DeleteDevice {
	return &deleteDevice{repo: repo}
}

func (uc *deleteDevice) Execute(ctx context.Context, in DeleteDeviceInput) error {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return ErrInvalidID
	}

	details, err := uc.repo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, domain.ErrDeviceNotFound) {
			return ErrDeviceNotFound
		}
		return fmt.Errorf("load device: %w", err)
	}

	if err := details.Device.SoftDelete(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDevice, err)
	}
	if err := uc.repo.Update(ctx, &details.Device); err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	return nil
}

type DeviceStatisticsOutput struct {
	TotalDevices      int64            `json:"totalDevices"`
	ActiveDevices     int64            `json:"activeDevices"`
	DeletedDevices    int64            `json:"deletedDevices"`
	SSDCount          int64            `json:"ssdCount"`
	HDDCount          int64            `json:"hddCount"`
	AverageRAMGB      float64          `json:"averageRamInGB"`
	AverageStorageGB  float64          `json:"averageStorageInGB"`
	ByCpuManufacturer map[string]int64 `json:"byCpuManufacturer"`
	ByGpuManufacturer map[string]int64 `json:"byGpuManufacturer"`
}

type GetDeviceStatistics interface {
	Execute(ctx context.Context) (DeviceStatisticsOutput, error)
}

type getDeviceStatistics struct {
	repo domain.StatisticsRepository
}

func NewGetDeviceStatistics(repo domain.StatisticsRepository) GetDeviceStatistics {
	return &getDeviceStatistics{repo: repo}
}

func (uc *getDeviceStatistics) Execute(ctx context.Context) (DeviceStatisticsOutput, error) {
	stats, err := uc.repo.GetDeviceStatistics(ctx)
	if err != nil {
		return DeviceStatisticsOutput{}, fmt.Errorf("get device statistics: %w", err)
	}

	return DeviceStatisticsOutput{
		TotalDevices:      stats.TotalDevices,
		ActiveDevices:     stats.ActiveDevices,
		DeletedDevices:    stats.DeletedDevices,
		SSDCount:          stats.SSDCount,
		HDDCount:          stats.HDDCount,
		AverageRAMGB:      stats.AverageRAMGB,
		AverageStorageGB:  stats.AverageStorageGB,
		ByCpuManufacturer: stats.ByCpuManufacturer,
		ByGpuManufacturer: stats.ByGpuManufacturer,
	}, nil
}

func toDeviceOutput(details *domain.DeviceDetails) DeviceOutput {
	ports := make([]USBPortIO, 0, len(details.USBPorts))
	for _, port := range details.USBPorts {
		ports = append(ports, USBPortIO{PortType: port.PortType, Count: port.Count})
	}

	return DeviceOutput{
		DeviceID:           details.ID.String(),
		RAMSizeMB:          details.RAMSizeMB,
		RAMSizeGB:          details.RAMSizeGB(),
		StorageSizeGB:      details.StorageSizeGB,
		StorageType:        string(details.StorageType),
		CpuID:              details.CpuID,
		CpuModel:           details.CpuModel,
		CpuManufacturer:    details.CpuManufacturer,
		GpuID:              details.GpuID,
		GpuModel:           details.GpuModel,
		GpuManufacturer:    details.GpuManufacturer,
		PowerSupplyID:      details.PowerSupplyID,
		PowerSupplyWattage: details.PowerSupplyWattage,
		WeightKg:           details.WeightKg,
		USBPorts:           ports,
		CreatedAt:          details.CreatedAt,
		UpdatedAt:          details.UpdatedAt,
	}
}
