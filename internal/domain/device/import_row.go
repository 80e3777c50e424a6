package device

// ImportRow is one successfully typed spreadsheet row. It exists only for
// the duration of a single import call and is never persisted directly.
type ImportRow struct {
	RowNumber       int // 1-based, counting the header row
	CpuManufacturer string
	CpuModel        string
	GpuManufacturer string
	GpuModel        string
	RAMSizeMB       int
	StorageSizeGB   int
	StorageType     string
	PSUWattage      int
	WeightKg        float64
	USBPorts        []USBPort
}

// RowError is a failure scoped to one spreadsheet row. Produced by the
// parser for malformed data and by the persistence step for rows that
// failed domain validation or a storage constraint.
type RowError struct {
	Row      int    `json:"row"`
	Field    string `json:"field,omitempty"`
	RawValue string `json:"rawValue,omitempty"`
	Message  string `json:"message"`
}

// ParseResult is the parser's output: typed rows in source order plus
// row-level errors. Row order determines first-seen-wins dedup downstream.
type ParseResult struct {
	TotalRows int
	Rows      []ImportRow
	Errors    []RowError
}

func (r ParseResult) SuccessCount() int {
	return len(r.Rows)
}

func (r ParseResult) FailureCount() int {
	return len(r.Errors)
}
