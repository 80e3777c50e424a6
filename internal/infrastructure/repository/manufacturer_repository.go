package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

type ManufacturerRepository struct {
	db *gorm.DB
}

func NewManufacturerRepository(db *gorm.DB) *ManufacturerRepository {
	return &ManufacturerRepository{db: db}
}

func (r *ManufacturerRepository) ListWithCounts(ctx context.Context) ([]domain.ManufacturerSummary, error) {
	type summaryRow struct {
		ID          int64
		Name        string
		Category    string
		Website     *string
		CpuCount    int64
		GpuCount    int64
		DeviceCount int64
	}

	var rows []summaryRow
	err := r.db.WithContext(ctx).Raw(`
SELECT
  m.id,
  m.name,
  m.category,
  m.website,
  COUNT(DISTINCT c.id) AS cpu_count,
  COUNT(DISTINCT g.id) AS gpu_count,
  COUNT(DISTINCT d.id) AS device_count
FROM manufacturers m
LEFT JOIN cpus c ON c.manufacturer_id = m.id
LEFT JOIN gpus g ON g.manufacturer_id = m.id
LEFT JOIN devices d
  ON d.is_deleted = FALSE
 AND (d.cpu_id = c.id OR d.gpu_id = g.id)
GROUP BY m.id, m.name, m.category, m.website
ORDER BY m.name
`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}

	summaries := make([]domain.ManufacturerSummary, 0, len(rows))
	for _, row := range rows {
		summary := domain.ManufacturerSummary{
			Manufacturer: domain.Manufacturer{
				ID:       row.ID,
				Name:     row.Name,
				Category: domain.ProductCategory(row.Category),
			},
			CpuCount:    row.CpuCount,
			GpuCount:    row.GpuCount,
			DeviceCount: row.DeviceCount,
		}
		if row.Website != nil {
			summary.Website = *row.Website
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
