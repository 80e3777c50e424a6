package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
	"github.com/hardwarevault/inventory/internal/infrastructure/db/models"
)

type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) Create(ctx context.Context, dev *domain.Device) error {
	row := deviceToModel(dev)

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create device: %w", err)
	}

	return nil
}

func (r *DeviceRepository) Update(ctx context.Context, dev *domain.Device) error {
	row := deviceToModel(dev)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Device{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"ram_size_mb":     row.RAMSizeMB,
				"storage_size_gb": row.StorageSizeGB,
				"storage_type":    row.StorageType,
				"cpu_id":          row.CpuID,
				"gpu_id":          row.GpuID,
				"power_supply_id": row.PowerSupplyID,
				"weight_kg":       row.WeightKg,
				"is_deleted":      row.IsDeleted,
			})
		if result.Error != nil {
			return fmt.Errorf("update device: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrDeviceNotFound
		}

		// USB ports are replaced wholesale on update.
		if err := tx.Where("device_id = ?", row.ID).Delete(&models.DeviceUsbPort{}).Error; err != nil {
			return fmt.Errorf("delete usb ports: %w", err)
		}
		for i := range row.USBPorts {
			row.USBPorts[i].DeviceID = row.ID
		}
		if len(row.USBPorts) > 0 {
			if err := tx.Create(&row.USBPorts).Error; err != nil {
				return fmt.Errorf("insert usb ports: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*domain.DeviceDetails, error) {
	query := r.db.WithContext(ctx).
		Preload("USBPorts").
		Preload("Cpu.Manufacturer").
		Preload("Gpu.Manufacturer").
		Preload("PowerSupply").
		Where("id = ?", id.String())
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var row models.Device
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("get device by id: %w", err)
	}

	return deviceToDetails(row)
}

func (r *DeviceRepository) GetPage(ctx context.Context, filter domain.DeviceFilter, page, pageSize int) ([]domain.DeviceDetails, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Device{}).
		Joins("JOIN cpus ON cpus.id = devices.cpu_id").
		Joins("JOIN manufacturers cpu_makers ON cpu_makers.id = cpus.manufacturer_id").
		Joins("JOIN gpus ON gpus.id = devices.gpu_id").
		Joins("JOIN manufacturers gpu_makers ON gpu_makers.id = gpus.manufacturer_id")

	if !filter.IncludeDeleted {
		base = base.Where("devices.is_deleted = ?", false)
	}
	if filter.CpuManufacturer != "" {
		base = base.Where("cpu_makers.normalized_name = ?", NormalizeName(filter.CpuManufacturer))
	}
	if filter.GpuManufacturer != "" {
		base = base.Where("gpu_makers.normalized_name = ?", NormalizeName(filter.GpuManufacturer))
	}
	if filter.StorageType != "" {
		base = base.Where("devices.storage_type = ?", filter.StorageType)
	}
	if filter.MinRAMGB > 0 {
		base = base.Where("devices.ram_size_mb >= ?", filter.MinRAMGB*1024)
	}
	if filter.Search != "" {
		pattern := "%" + NormalizeName(filter.Search) + "%"
		base = base.Where(
			"LOWER(cpus.model_name) LIKE ? OR LOWER(gpus.model_name) LIKE ? OR LOWER(cpu_makers.name) LIKE ? OR LOWER(gpu_makers.name) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count devices: %w", err)
	}

	var rows []models.Device
	err := base.Session(&gorm.Session{}).
		Preload("USBPorts").
		Preload("Cpu.Manufacturer").
		Preload("Gpu.Manufacturer").
		Preload("PowerSupply").
		Order("devices.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list devices: %w", err)
	}

	devices := make([]domain.DeviceDetails, 0, len(rows))
	for _, row := range rows {
		details, err := deviceToDetails(row)
		if err != nil {
			return nil, 0, err
		}
		devices = append(devices, *details)
	}

	return devices, total, nil
}

func deviceToDetails(row models.Device) (*domain.DeviceDetails, error) {
	dev, err := deviceToDomain(row)
	if err != nil {
		return nil, err
	}

	details := &domain.DeviceDetails{Device: *dev}
	if row.Cpu != nil {
		details.CpuModel = row.Cpu.ModelName
		if row.Cpu.Manufacturer != nil {
			details.CpuManufacturer = row.Cpu.Manufacturer.Name
		}
	}
	if row.Gpu != nil {
		details.GpuModel = row.Gpu.ModelName
		if row.Gpu.Manufacturer != nil {
			details.GpuManufacturer = row.Gpu.Manufacturer.Name
		}
	}
	if row.PowerSupply != nil {
		details.PowerSupplyWattage = row.PowerSupply.Wattage
	}

	return details, nil
}

func deviceToModel(dev *domain.Device) models.Device {
	ports := make([]models.DeviceUsbPort, 0, len(dev.USBPorts))
	for _, port := range dev.USBPorts {
		ports = append(ports, models.DeviceUsbPort{
			DeviceID: dev.ID.String(),
			PortType: port.PortType,
			Count:    port.Count,
		})
	}

	return models.Device{
		ID:            dev.ID.String(),
		RAMSizeMB:     dev.RAMSizeMB,
		StorageSizeGB: dev.StorageSizeGB,
		StorageType:   string(dev.StorageType),
		CpuID:         dev.CpuID,
		GpuID:         dev.GpuID,
		PowerSupplyID: dev.PowerSupplyID,
		WeightKg:      dev.WeightKg,
		IsDeleted:     dev.Deleted,
		USBPorts:      ports,
	}
}

func deviceToDomain(row models.Device) (*domain.Device, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse device id %q: %w", row.ID, err)
	}

	ports := make([]domain.USBPort, 0, len(row.USBPorts))
	for _, port := range row.USBPorts {
		ports = append(ports, domain.USBPort{PortType: port.PortType, Count: port.Count})
	}

	return &domain.Device{
		ID:            id,
		RAMSizeMB:     row.RAMSizeMB,
		StorageSizeGB: row.StorageSizeGB,
		StorageType:   domain.StorageType(row.StorageType),
		CpuID:         row.CpuID,
		GpuID:         row.GpuID,
		PowerSupplyID: row.PowerSupplyID,
		WeightKg:      row.WeightKg,
		USBPorts:      ports,
		Deleted:       row.IsDeleted,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
