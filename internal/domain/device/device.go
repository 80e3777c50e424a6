package device

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type StorageType string

const (
	StorageSSD StorageType = "SSD"
	StorageHDD StorageType = "HDD"
)

type USBPort struct {
	PortType string
	Count    int
}

// Device is a hardware configuration. It is only constructed through
// NewDevice and only mutated through its methods, so an invalid Device
// cannot exist.
type Device struct {
	ID            uuid.UUID
	RAMSizeMB     int
	StorageSizeGB int
	StorageType   StorageType
	CpuID         int64
	GpuID         int64
	PowerSupplyID int64
	WeightKg      float64
	USBPorts      []USBPort
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Deleted       bool
}

func NewDevice(ramSizeMB, storageSizeGB int, storageType string, cpuID, gpuID, powerSupplyID int64, weightKg float64) (*Device, error) {
	if err := validateRAMSize(ramSizeMB); err != nil {
		return nil, err
	}
	if err := validateStorageSize(storageSizeGB); err != nil {
		return nil, err
	}
	normalizedType, err := normalizeStorageType(storageType)
	if err != nil {
		return nil, err
	}
	if cpuID <= 0 || gpuID <= 0 || powerSupplyID <= 0 {
		return nil, ErrInvalidReference
	}
	if err := validateWeight(weightKg); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Device{
		ID:            uuid.New(),
		RAMSizeMB:     ramSizeMB,
		StorageSizeGB: storageSizeGB,
		StorageType:   normalizedType,
		CpuID:         cpuID,
		GpuID:         gpuID,
		PowerSupplyID: powerSupplyID,
		WeightKg:      weightKg,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (d *Device) UpdateRAM(ramSizeMB int) error {
	if err := validateRAMSize(ramSizeMB); err != nil {
		return err
	}
	d.RAMSizeMB = ramSizeMB
	d.touch()
	return nil
}

func (d *Device) UpdateStorage(storageSizeGB int, storageType string) error {
	if err := validateStorageSize(storageSizeGB); err != nil {
		return err
	}
	normalizedType, err := normalizeStorageType(storageType)
	if err != nil {
		return err
	}
	d.StorageSizeGB = storageSizeGB
	d.StorageType = normalizedType
	d.touch()
	return nil
}

func (d *Device) UpdateWeight(weightKg float64) error {
	if err := validateWeight(weightKg); err != nil {
		return err
	}
	d.WeightKg = weightKg
	d.touch()
	return nil
}

func (d *Device) UpdateCpu(cpuID int64) error {
	if cpuID <= 0 {
		return ErrInvalidReference
	}
	d.CpuID = cpuID
	d.touch()
	return nil
}

func (d *Device) UpdateGpu(gpuID int64) error {
	if gpuID <= 0 {
		return ErrInvalidReference
	}
	d.GpuID = gpuID
	d.touch()
	return nil
}

func (d *Device) UpdatePowerSupply(powerSupplyID int64) error {
	if powerSupplyID <= 0 {
		return ErrInvalidReference
	}
	d.PowerSupplyID = powerSupplyID
	d.touch()
	return nil
}

func (d *Device) AddUSBPort(portType string, count int) error {
	if strings.TrimSpace(portType) == "" || count <= 0 {
		return ErrInvalidUSBPort
	}
	d.USBPorts = append(d.USBPorts, USBPort{PortType: portType, Count: count})
	d.touch()
	return nil
}

func (d *Device) ClearUSBPorts() {
	d.USBPorts = nil
	d.touch()
}

// SoftDelete flags the device as deleted; rows are never physically removed.
func (d *Device) SoftDelete() error {
	if d.Deleted {
		return ErrAlreadyDeleted
	}
	d.Deleted = true
	d.touch()
	return nil
}

func (d *Device) Restore() error {
	if !d.Deleted {
		return ErrNotDeleted
	}
	d.Deleted = false
	d.touch()
	return nil
}

func (d *Device) RAMSizeGB() int {
	return d.RAMSizeMB / 1024
}

func (d *Device) TotalUSBPorts() int {
	total := 0
	for _, port := range d.USBPorts {
		total += port.Count
	}
	return total
}

func (d *Device) touch() {
	d.UpdatedAt = time.Now().UTC()
}

func validateRAMSize(mb int) error {
	if mb < 512 || mb > 1_048_576 {
		return ErrInvalidRAMSize
	}
	return nil
}

func validateStorageSize(gb int) error {
	if gb < 1 || gb > 100_000 {
		return ErrInvalidStorageSize
	}
	return nil
}

func normalizeStorageType(raw string) (StorageType, error) {
	switch StorageType(strings.ToUpper(strings.TrimSpace(raw))) {
	case StorageSSD:
		return StorageSSD, nil
	case StorageHDD:
		return StorageHDD, nil
	default:
		return "", ErrInvalidStorageType
	}
}

func validateWeight(kg float64) error {
	if kg < 0.1 || kg > 500 {
		return ErrInvalidWeight
	}
	return nil
}
