package device

import (
	"strings"
	"time"
)

type ProductCategory string

const (
	CategoryCPU  ProductCategory = "CPU"
	CategoryGPU  ProductCategory = "GPU"
	CategoryBoth ProductCategory = "Both"
)

// Manufacturer is shared by many devices through CPU and GPU models.
// Name uniqueness is case-insensitive.
type Manufacturer struct {
	ID        int64
	Name      string
	Category  ProductCategory
	Website   string
	CreatedAt time.Time
}

func NewManufacturer(name string, category ProductCategory) (*Manufacturer, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrEmptyManufacturerName
	}
	return &Manufacturer{
		Name:      trimmed,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// RequireCategory upgrades a manufacturer first seen for one category and
// later needed for the other to Both. Reports whether an upgrade happened.
func (m *Manufacturer) RequireCategory(category ProductCategory) bool {
	if m.Category == category || m.Category == CategoryBoth {
		return false
	}
	m.Category = CategoryBoth
	return true
}

// Cpu is a processor model; uniqueness is keyed on the case-insensitive
// trimmed model name.
type Cpu struct {
	ID             int64
	ModelName      string
	ManufacturerID int64
	CreatedAt      time.Time
}

func NewCpu(modelName string, manufacturerID int64) (*Cpu, error) {
	trimmed := strings.TrimSpace(modelName)
	if trimmed == "" {
		return nil, ErrEmptyModelName
	}
	if manufacturerID < 0 {
		return nil, ErrInvalidReference
	}
	return &Cpu{
		ModelName:      trimmed,
		ManufacturerID: manufacturerID,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

type Gpu struct {
	ID             int64
	ModelName      string
	ManufacturerID int64
	CreatedAt      time.Time
}

func NewGpu(modelName string, manufacturerID int64) (*Gpu, error) {
	trimmed := strings.TrimSpace(modelName)
	if trimmed == "" {
		return nil, ErrEmptyModelName
	}
	if manufacturerID < 0 {
		return nil, ErrInvalidReference
	}
	return &Gpu{
		ModelName:      trimmed,
		ManufacturerID: manufacturerID,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// PowerSupply is keyed on the exact wattage; a 500W supply is one record
// no matter how many devices reference it.
type PowerSupply struct {
	ID        int64
	Wattage   int
	CreatedAt time.Time
}

func NewPowerSupply(wattage int) (*PowerSupply, error) {
	if wattage <= 0 {
		return nil, ErrInvalidWattage
	}
	return &PowerSupply{
		Wattage:   wattage,
		CreatedAt: time.Now().UTC(),
	}, nil
}
