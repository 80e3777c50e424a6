package models

import "time"

type Device struct {
	ID            string          `gorm:"type:uuid;primaryKey"`
	RAMSizeMB     int             `gorm:"not null"`
	StorageSizeGB int             `gorm:"not null"`
	StorageType   string          `gorm:"size:8;not null"`
	CpuID         int64           `gorm:"not null;index"`
	GpuID         int64           `gorm:"not null;index"`
	PowerSupplyID int64           `gorm:"not null;index"`
	WeightKg      float64         `gorm:"not null"`
	IsDeleted     bool            `gorm:"not null;default:false;index"`
	USBPorts      []DeviceUsbPort `gorm:"foreignKey:DeviceID"`
	Cpu           *Cpu            `gorm:"foreignKey:CpuID"`
	Gpu           *Gpu            `gorm:"foreignKey:GpuID"`
	PowerSupply   *PowerSupply    `gorm:"foreignKey:PowerSupplyID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Device) TableName() string {
	return "devices"
}

type DeviceUsbPort struct {
	ID        int64  `gorm:"primaryKey"`
	DeviceID  string `gorm:"type:uuid;index;not null"`
	PortType  string `gorm:"size:16;not null"`
	Count     int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DeviceUsbPort) TableName() string {
	return "device_usb_ports"
}
