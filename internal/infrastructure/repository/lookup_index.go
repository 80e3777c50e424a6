package repository

import (
	"fmt"
	"strings"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

// NormalizeName is the canonical form used to match lookup entities:
// trimmed and case-folded, nothing more. The stored normalized_name
// columns hold exactly this form, so in-batch and cross-batch matching
// agree.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LookupIndex caches lookup entities resolved during one import batch,
// keyed by their normalized identity. Rows that reference the same
// manufacturer, CPU, GPU or power supply reuse the cached entity
// instead of querying or inserting again.
type LookupIndex struct {
	manufacturers map[string]*domain.Manufacturer
	cpus          map[string]*domain.Cpu
	gpus          map[string]*domain.Gpu
	powerSupplies map[int]*domain.PowerSupply
	upgraded      map[int64]*domain.Manufacturer
}

func NewLookupIndex() *LookupIndex {
	return &LookupIndex{
		manufacturers: make(map[string]*domain.Manufacturer),
		cpus:          make(map[string]*domain.Cpu),
		gpus:          make(map[string]*domain.Gpu),
		powerSupplies: make(map[int]*domain.PowerSupply),
		upgraded:      make(map[int64]*domain.Manufacturer),
	}
}

func (x *LookupIndex) Manufacturer(name string) (*domain.Manufacturer, bool) {
	m, ok := x.manufacturers[NormalizeName(name)]
	return m, ok
}

func (x *LookupIndex) PutManufacturer(m *domain.Manufacturer) {
	x.manufacturers[NormalizeName(m.Name)] = m
}

func (x *LookupIndex) DeleteManufacturer(name string) {
	key := NormalizeName(name)
	if m, ok := x.manufacturers[key]; ok {
		delete(x.upgraded, m.ID)
	}
	delete(x.manufacturers, key)
}

// MarkUpgraded records a manufacturer whose category widened during the
// batch; pending category changes are flushed in one pass at commit.
func (x *LookupIndex) MarkUpgraded(m *domain.Manufacturer) {
	x.upgraded[m.ID] = m
}

func (x *LookupIndex) Upgraded() []*domain.Manufacturer {
	out := make([]*domain.Manufacturer, 0, len(x.upgraded))
	for _, m := range x.upgraded {
		out = append(out, m)
	}
	return out
}

func modelKey(manufacturerID int64, modelName string) string {
	return fmt.Sprintf("%d|%s", manufacturerID, NormalizeName(modelName))
}

func (x *LookupIndex) Cpu(manufacturerID int64, modelName string) (*domain.Cpu, bool) {
	c, ok := x.cpus[modelKey(manufacturerID, modelName)]
	return c, ok
}

func (x *LookupIndex) PutCpu(c *domain.Cpu) {
	x.cpus[modelKey(c.ManufacturerID, c.ModelName)] = c
}

func (x *LookupIndex) DeleteCpu(manufacturerID int64, modelName string) {
	delete(x.cpus, modelKey(manufacturerID, modelName))
}

func (x *LookupIndex) Gpu(manufacturerID int64, modelName string) (*domain.Gpu, bool) {
	g, ok := x.gpus[modelKey(manufacturerID, modelName)]
	return g, ok
}

func (x *LookupIndex) PutGpu(g *domain.Gpu) {
	x.gpus[modelKey(g.ManufacturerID, g.ModelName)] = g
}

func (x *LookupIndex) DeleteGpu(manufacturerID int64, modelName string) {
	delete(x.gpus, modelKey(manufacturerID, modelName))
}

func (x *LookupIndex) PowerSupply(wattage int) (*domain.PowerSupply, bool) {
	p, ok := x.powerSupplies[wattage]
	return p, ok
}

func (x *LookupIndex) PutPowerSupply(p *domain.PowerSupply) {
	x.powerSupplies[p.Wattage] = p
}

func (x *LookupIndex) DeletePowerSupply(wattage int) {
	delete(x.powerSupplies, wattage)
}
