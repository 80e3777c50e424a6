package device

import (
	"context"
	"fmt"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

type ManufacturerOutput struct {
	ManufacturerID int64  `json:"manufacturerId"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Website        string `json:"website,omitempty"`
	CpuCount       int64  `json:"cpuCount"`
	GpuCount       int64  `json:"gpuCount"`
	DeviceCount    int64  `json:"deviceCount"`
}

type ListManufacturers interface {
	Execute(ctx context.Context) ([]ManufacturerOutput, error)
}

type listManufacturers struct {
	repo domain.ManufacturerRepository
}

func NewListManufacturers(repo domain.ManufacturerRepository) ListManufacturers {
	return &listManufacturers{repo: repo}
}

func (uc *listManufacturers) Execute(ctx context.Context) ([]ManufacturerOutput, error) {
	manufacturers, err := uc.repo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}

	outputs := make([]ManufacturerOutput, 0, len(manufacturers))
	for _, m := range manufacturers {
		outputs = append(outputs, ManufacturerOutput{
			ManufacturerID: m.ID,
			Name:           m.Name,
			Type:           string(m.Category),
			Website:        m.Website,
			CpuCount:       m.CpuCount,
			GpuCount:       m.GpuCount,
			DeviceCount:    m.DeviceCount,
		})
	}
	return outputs, nil
}
