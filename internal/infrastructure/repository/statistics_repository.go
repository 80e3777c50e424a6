package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

// StatisticsRepository serves the aggregate dashboard queries straight
// from the pool; there is no aggregate to hydrate, so it skips the ORM.
type StatisticsRepository struct {
	pool *pgxpool.Pool
}

func NewStatisticsRepository(pool *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{pool: pool}
}

func (r *StatisticsRepository) GetDeviceStatistics(ctx context.Context) (domain.DeviceStatistics, error) {
	var stats domain.DeviceStatistics

	err := r.pool.QueryRow(ctx, `
SELECT
  COUNT(*),
  COUNT(*) FILTER (WHERE NOT is_deleted),
  COUNT(*) FILTER (WHERE is_deleted),
  COUNT(*) FILTER (WHERE storage_type = 'SSD' AND NOT is_deleted),
  COUNT(*) FILTER (WHERE storage_type = 'HDD' AND NOT is_deleted),
  COALESCE(AVG(ram_size_mb) FILTER (WHERE NOT is_deleted) / 1024.0, 0),
  COALESCE(AVG(storage_size_gb) FILTER (WHERE NOT is_deleted), 0)
FROM devices
`).Scan(
		&stats.TotalDevices,
		&stats.ActiveDevices,
		&stats.DeletedDevices,
		&stats.SSDCount,
		&stats.HDDCount,
		&stats.AverageRAMGB,
		&stats.AverageStorageGB,
	)
	if err != nil {
		return domain.DeviceStatistics{}, fmt.Errorf("device totals: %w", err)
	}

	stats.ByCpuManufacturer, err = r.countByManufacturer(ctx, `
SELECT m.name, COUNT(*)
FROM devices d
JOIN cpus c ON c.id = d.cpu_id
JOIN manufacturers m ON m.id = c.manufacturer_id
WHERE NOT d.is_deleted
GROUP BY m.name
ORDER BY m.name
`)
	if err != nil {
		return domain.DeviceStatistics{}, fmt.Errorf("devices by cpu manufacturer: %w", err)
	}

	stats.ByGpuManufacturer, err = r.countByManufacturer(ctx, `
SELECT m.name, COUNT(*)
FROM devices d
JOIN gpus g ON g.id = d.gpu_id
JOIN manufacturers m ON m.id = g.manufacturer_id
WHERE NOT d.is_deleted
GROUP BY m.name
ORDER BY m.name
`)
	if err != nil {
		return domain.DeviceStatistics{}, fmt.Errorf("devices by gpu manufacturer: %w", err)
	}

	return stats, nil
}

func (r *StatisticsRepository) countByManufacturer(ctx context.Context, query string) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		counts[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
