package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
	"github.com/hardwarevault/inventory/internal/infrastructure/db/models"
)

// DeviceImportRepository opens import batches. A batch is one database
// transaction: either every accepted row becomes visible at commit, or
// none do.
type DeviceImportRepository struct {
	db *gorm.DB
}

func NewDeviceImportRepository(db *gorm.DB) *DeviceImportRepository {
	return &DeviceImportRepository{db: db}
}

func (r *DeviceImportRepository) Begin(ctx context.Context) (domain.DeviceImportBatch, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin import batch: %w", tx.Error)
	}

	return &deviceImportBatch{
		tx:    tx,
		index: NewLookupIndex(),
	}, nil
}

type deviceImportBatch struct {
	tx       *gorm.DB
	index    *LookupIndex
	finished bool
}

// AddRow resolves the row's lookup references, creating missing ones
// inside the transaction, then inserts the device. Each row runs under
// a savepoint so a failed row is rolled back on its own and the batch
// keeps going.
func (b *deviceImportBatch) AddRow(ctx context.Context, row domain.ImportRow) error {
	if b.finished {
		return errors.New("import batch already finished")
	}

	sp := fmt.Sprintf("import_row_%d", row.RowNumber)
	if err := b.tx.SavePoint(sp).Error; err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}

	undo, err := b.insertRow(ctx, row)
	if err != nil {
		if rbErr := b.tx.RollbackTo(sp).Error; rbErr != nil {
			return fmt.Errorf("rollback row %d: %v (original: %w)", row.RowNumber, rbErr, err)
		}
		for _, fn := range undo {
			fn()
		}
		return err
	}

	return nil
}

// insertRow returns the undo list for lookup entities cached during this
// row, so a savepoint rollback can evict entities whose inserts were
// discarded with it.
func (b *deviceImportBatch) insertRow(ctx context.Context, row domain.ImportRow) ([]func(), error) {
	var undo []func()

	cpuMaker, fns, err := b.resolveManufacturer(ctx, row.CpuManufacturer, domain.CategoryCPU)
	undo = append(undo, fns...)
	if err != nil {
		return undo, err
	}

	gpuMaker, fns, err := b.resolveManufacturer(ctx, row.GpuManufacturer, domain.CategoryGPU)
	undo = append(undo, fns...)
	if err != nil {
		return undo, err
	}

	cpu, fns, err := b.resolveCpu(ctx, row.CpuModel, cpuMaker.ID)
	undo = append(undo, fns...)
	if err != nil {
		return undo, err
	}

	gpu, fns, err := b.resolveGpu(ctx, row.GpuModel, gpuMaker.ID)
	undo = append(undo, fns...)
	if err != nil {
		return undo, err
	}

	psu, fns, err := b.resolvePowerSupply(ctx, row.PSUWattage)
	undo = append(undo, fns...)
	if err != nil {
		return undo, err
	}

	device, err := domain.NewDevice(row.RAMSizeMB, row.StorageSizeGB, row.StorageType, cpu.ID, gpu.ID, psu.ID, row.WeightKg)
	if err != nil {
		return undo, err
	}
	for _, port := range row.USBPorts {
		if err := device.AddUSBPort(port.PortType, port.Count); err != nil {
			return undo, err
		}
	}

	ports := make([]models.DeviceUsbPort, 0, len(device.USBPorts))
	for _, port := range device.USBPorts {
		ports = append(ports, models.DeviceUsbPort{PortType: port.PortType, Count: port.Count})
	}

	deviceRow := models.Device{
		ID:            device.ID.String(),
		RAMSizeMB:     device.RAMSizeMB,
		StorageSizeGB: device.StorageSizeGB,
		StorageType:   string(device.StorageType),
		CpuID:         device.CpuID,
		GpuID:         device.GpuID,
		PowerSupplyID: device.PowerSupplyID,
		WeightKg:      device.WeightKg,
		USBPorts:      ports,
	}

	if err := b.tx.Create(&deviceRow).Error; err != nil {
		return undo, fmt.Errorf("insert device: %w", err)
	}

	return nil, nil
}

func (b *deviceImportBatch) resolveManufacturer(ctx context.Context, name string, category domain.ProductCategory) (*domain.Manufacturer, []func(), error) {
	if m, ok := b.index.Manufacturer(name); ok {
		if m.RequireCategory(category) {
			b.index.MarkUpgraded(m)
		}
		return m, nil, nil
	}

	var row models.Manufacturer
	err := b.tx.Where("normalized_name = ?", NormalizeName(name)).First(&row).Error
	switch {
	case err == nil:
		m := &domain.Manufacturer{ID: row.ID, Name: row.Name, Category: domain.ProductCategory(row.Category)}
		if row.Website != nil {
			m.Website = *row.Website
		}
		if m.RequireCategory(category) {
			b.index.MarkUpgraded(m)
		}
		b.index.PutManufacturer(m)
		return m, nil, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to insert
	default:
		return nil, nil, fmt.Errorf("find manufacturer %q: %w", name, err)
	}

	m, err := domain.NewManufacturer(name, category)
	if err != nil {
		return nil, nil, err
	}

	newRow := models.Manufacturer{Name: m.Name, NormalizedName: NormalizeName(m.Name), Category: string(m.Category)}
	if err := b.tx.Create(&newRow).Error; err != nil {
		return nil, nil, fmt.Errorf("insert manufacturer %q: %w", m.Name, err)
	}
	m.ID = newRow.ID

	b.index.PutManufacturer(m)
	undo := []func(){func() { b.index.DeleteManufacturer(m.Name) }}
	return m, undo, nil
}

func (b *deviceImportBatch) resolveCpu(ctx context.Context, modelName string, manufacturerID int64) (*domain.Cpu, []func(), error) {
	if c, ok := b.index.Cpu(manufacturerID, modelName); ok {
		return c, nil, nil
	}

	var row models.Cpu
	err := b.tx.Where("manufacturer_id = ? AND normalized_name = ?", manufacturerID, NormalizeName(modelName)).First(&row).Error
	switch {
	case err == nil:
		c := &domain.Cpu{ID: row.ID, ModelName: row.ModelName, ManufacturerID: row.ManufacturerID}
		b.index.PutCpu(c)
		return c, nil, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to insert
	default:
		return nil, nil, fmt.Errorf("find cpu %q: %w", modelName, err)
	}

	c, err := domain.NewCpu(modelName, manufacturerID)
	if err != nil {
		return nil, nil, err
	}

	newRow := models.Cpu{ModelName: c.ModelName, NormalizedName: NormalizeName(c.ModelName), ManufacturerID: manufacturerID}
	if err := b.tx.Create(&newRow).Error; err != nil {
		return nil, nil, fmt.Errorf("insert cpu %q: %w", c.ModelName, err)
	}
	c.ID = newRow.ID

	b.index.PutCpu(c)
	undo := []func(){func() { b.index.DeleteCpu(manufacturerID, c.ModelName) }}
	return c, undo, nil
}

func (b *deviceImportBatch) resolveGpu(ctx context.Context, modelName string, manufacturerID int64) (*domain.Gpu, []func(), error) {
	if g, ok := b.index.Gpu(manufacturerID, modelName); ok {
		return g, nil, nil
	}

	var row models.Gpu
	err := b.tx.Where("manufacturer_id = ? AND normalized_name = ?", manufacturerID, NormalizeName(modelName)).First(&row).Error
	switch {
	case err == nil:
		g := &domain.Gpu{ID: row.ID, ModelName: row.ModelName, ManufacturerID: row.ManufacturerID}
		b.index.PutGpu(g)
		return g, nil, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to insert
	default:
		return nil, nil, fmt.Errorf("find gpu %q: %w", modelName, err)
	}

	g, err := domain.NewGpu(modelName, manufacturerID)
	if err != nil {
		return nil, nil, err
	}

	newRow := models.Gpu{ModelName: g.ModelName, NormalizedName: NormalizeName(g.ModelName), ManufacturerID: manufacturerID}
	if err := b.tx.Create(&newRow).Error; err != nil {
		return nil, nil, fmt.Errorf("insert gpu %q: %w", g.ModelName, err)
	}
	g.ID = newRow.ID

	b.index.PutGpu(g)
	undo := []func(){func() { b.index.DeleteGpu(manufacturerID, g.ModelName) }}
	return g, undo, nil
}

func (b *deviceImportBatch) resolvePowerSupply(ctx context.Context, wattage int) (*domain.PowerSupply, []func(), error) {
	if p, ok := b.index.PowerSupply(wattage); ok {
		return p, nil, nil
	}

	var row models.PowerSupply
	err := b.tx.Where("wattage = ?", wattage).First(&row).Error
	switch {
	case err == nil:
		p := &domain.PowerSupply{ID: row.ID, Wattage: row.Wattage}
		b.index.PutPowerSupply(p)
		return p, nil, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to insert
	default:
		return nil, nil, fmt.Errorf("find power supply %dW: %w", wattage, err)
	}

	p, err := domain.NewPowerSupply(wattage)
	if err != nil {
		return nil, nil, err
	}

	newRow := models.PowerSupply{Wattage: p.Wattage}
	if err := b.tx.Create(&newRow).Error; err != nil {
		return nil, nil, fmt.Errorf("insert power supply %dW: %w", p.Wattage, err)
	}
	p.ID = newRow.ID

	b.index.PutPowerSupply(p)
	undo := []func(){func() { b.index.DeletePowerSupply(p.Wattage) }}
	return p, undo, nil
}

// Commit flushes pending manufacturer category upgrades and commits the
// transaction.
func (b *deviceImportBatch) Commit(ctx context.Context) error {
	if b.finished {
		return errors.New("import batch already finished")
	}

	for _, m := range b.index.Upgraded() {
		err := b.tx.Model(&models.Manufacturer{}).
			Where("id = ?", m.ID).
			Update("category", string(m.Category)).Error
		if err != nil {
			return fmt.Errorf("update manufacturer category: %w", err)
		}
	}

	if err := b.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit import batch: %w", err)
	}
	b.finished = true

	return nil
}

func (b *deviceImportBatch) Rollback(ctx context.Context) error {
	if b.finished {
		return nil
	}
	b.finished = true

	if err := b.tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback import batch: %w", err)
	}

	return nil
}
