package repository_test

import (
	"context"
	"testing"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
	"github.com/hardwarevault/inventory/internal/infrastructure/repository"
)

func TestDeviceImportBatchIntegration(t *testing.T) {
	db := openTestDB(t)

	repo := repository.NewDeviceImportRepository(db)
	ctx := context.Background()

	batch, err := repo.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	defer batch.Rollback(ctx)

	rows := []domain.ImportRow{
		{
			RowNumber:       2,
			CpuManufacturer: "Intel",
			CpuModel:        "Core i5-9400",
			GpuManufacturer: "NVIDIA",
			GpuModel:        "RTX 3060",
			RAMSizeMB:       16384,
			StorageSizeGB:   512,
			StorageType:     "SSD",
			PSUWattage:      550,
			WeightKg:        8.2,
			USBPorts:        []domain.USBPort{{PortType: "USB 3.0", Count: 4}},
		},
		{
			// Same lookups spelled differently must not create duplicates.
			RowNumber:       3,
			CpuManufacturer: "  intel ",
			CpuModel:        "core i5-9400",
			GpuManufacturer: "nvidia",
			GpuModel:        "rtx 3060",
			RAMSizeMB:       8192,
			StorageSizeGB:   256,
			StorageType:     "HDD",
			PSUWattage:      550,
			WeightKg:        6.5,
		},
	}

	for _, row := range rows {
		if err := batch.AddRow(ctx, row); err != nil {
			t.Fatalf("add row %d: %v", row.RowNumber, err)
		}
	}

	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	var manufacturerCount int64
	if err := db.Table("manufacturers").Where("normalized_name IN ?", []string{"intel", "nvidia"}).Count(&manufacturerCount).Error; err != nil {
		t.Fatalf("count manufacturers: %v", err)
	}
	if manufacturerCount != 2 {
		t.Fatalf("expected 2 manufacturers, got %d", manufacturerCount)
	}

	var cpuCount int64
	if err := db.Table("cpus").Where("normalized_name = ?", "core i5-9400").Count(&cpuCount).Error; err != nil {
		t.Fatalf("count cpus: %v", err)
	}
	if cpuCount != 1 {
		t.Fatalf("expected 1 cpu, got %d", cpuCount)
	}

	var psuCount int64
	if err := db.Table("power_supplies").Where("wattage = ?", 550).Count(&psuCount).Error; err != nil {
		t.Fatalf("count power supplies: %v", err)
	}
	if psuCount != 1 {
		t.Fatalf("expected 1 power supply, got %d", psuCount)
	}
}

func TestDeviceImportBatchKeepsGoingAfterBadRowIntegration(t *testing.T) {
	db := openTestDB(t)

	repo := repository.NewDeviceImportRepository(db)
	ctx := context.Background()

	batch, err := repo.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	defer batch.Rollback(ctx)

	bad := domain.ImportRow{
		RowNumber:       2,
		CpuManufacturer: "AMD",
		CpuModel:        "Ryzen 7 5800X",
		GpuManufacturer: "AMD",
		GpuModel:        "RX 6700 XT",
		RAMSizeMB:       16384,
		StorageSizeGB:   512,
		StorageType:     "NVME", // rejected by device validation
		PSUWattage:      650,
		WeightKg:        9.1,
	}
	if err := batch.AddRow(ctx, bad); err == nil {
		t.Fatal("expected validation error")
	}

	good := bad
	good.RowNumber = 3
	good.StorageType = "SSD"
	if err := batch.AddRow(ctx, good); err != nil {
		t.Fatalf("batch must stay usable after a bad row: %v", err)
	}

	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	var amd struct{ Category string }
	if err := db.Table("manufacturers").Select("category").Where("normalized_name = ?", "amd").Scan(&amd).Error; err != nil {
		t.Fatalf("fetch manufacturer: %v", err)
	}
	if amd.Category != "Both" {
		t.Fatalf("expected AMD widened to Both, got %s", amd.Category)
	}
}
