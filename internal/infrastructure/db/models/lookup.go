package models

import "time"

type Manufacturer struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"size:255;not null"`
	NormalizedName string `gorm:"size:255;not null;uniqueIndex"`
	Category       string `gorm:"size:16;not null"`
	Website        *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Manufacturer) TableName() string {
	return "manufacturers"
}

type Cpu struct {
	ID             int64         `gorm:"primaryKey"`
	ModelName      string        `gorm:"size:255;not null"`
	NormalizedName string        `gorm:"size:255;not null;uniqueIndex:ux_cpus_manufacturer_model,priority:2"`
	ManufacturerID int64         `gorm:"not null;index;uniqueIndex:ux_cpus_manufacturer_model,priority:1"`
	Manufacturer   *Manufacturer `gorm:"foreignKey:ManufacturerID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Cpu) TableName() string {
	return "cpus"
}

type Gpu struct {
	ID             int64         `gorm:"primaryKey"`
	ModelName      string        `gorm:"size:255;not null"`
	NormalizedName string        `gorm:"size:255;not null;uniqueIndex:ux_gpus_manufacturer_model,priority:2"`
	ManufacturerID int64         `gorm:"not null;index;uniqueIndex:ux_gpus_manufacturer_model,priority:1"`
	Manufacturer   *Manufacturer `gorm:"foreignKey:ManufacturerID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Gpu) TableName() string {
	return "gpus"
}

type PowerSupply struct {
	ID        int64 `gorm:"primaryKey"`
	Wattage   int   `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PowerSupply) TableName() string {
	return "power_supplies"
}
