package device_test

import (
	"errors"
	"testing"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

func TestNewImportJobPending(t *testing.T) {
	t.Parallel()

	job, err := domain.NewImportJob("  devices.xlsx  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if job.FileName != "devices.xlsx" {
		t.Fatalf("expected trimmed file name, got %q", job.FileName)
	}
	if job.Status != domain.JobPending {
		t.Fatalf("expected Pending, got %s", job.Status)
	}
	if job.CompletedAt != nil {
		t.Fatal("new job must not have a completion timestamp")
	}
}

func TestNewImportJobEmptyName(t *testing.T) {
	t.Parallel()

	if _, err := domain.NewImportJob("   "); !errors.Is(err, domain.ErrEmptyFileName) {
		t.Fatalf("expected ErrEmptyFileName, got %v", err)
	}
}

func TestImportJobLifecycle(t *testing.T) {
	t.Parallel()

	job, _ := domain.NewImportJob("devices.xlsx")

	if err := job.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if job.Status != domain.JobProcessing {
		t.Fatalf("expected Processing, got %s", job.Status)
	}

	rowErrors := []domain.RowError{{Row: 4, Field: "RAM (MB)", RawValue: "lots", Message: "invalid integer value"}}
	if err := job.Complete(5, 4, 1, rowErrors); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if job.Status != domain.JobCompleted {
		t.Fatalf("expected Completed, got %s", job.Status)
	}
	if job.TotalRows != job.SuccessCount+job.FailureCount {
		t.Fatalf("count invariant violated: %d != %d + %d", job.TotalRows, job.SuccessCount, job.FailureCount)
	}
	if job.CompletedAt == nil {
		t.Fatal("completed job must have a completion timestamp")
	}
	if job.DurationMs() == nil {
		t.Fatal("completed job must have a duration")
	}
	if job.SuccessRate() != 80.0 {
		t.Fatalf("expected 80.0, got %v", job.SuccessRate())
	}
}

func TestImportJobTransitionsOnlyForward(t *testing.T) {
	t.Parallel()

	job, _ := domain.NewImportJob("devices.xlsx")

	if err := job.Complete(0, 0, 0, nil); !errors.Is(err, domain.ErrInvalidJobTransition) {
		t.Fatalf("expected ErrInvalidJobTransition, got %v", err)
	}

	if err := job.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := job.Start(); !errors.Is(err, domain.ErrInvalidJobTransition) {
		t.Fatalf("expected ErrInvalidJobTransition, got %v", err)
	}

	if err := job.Complete(3, 3, 0, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := job.Complete(3, 3, 0, nil); !errors.Is(err, domain.ErrInvalidJobTransition) {
		t.Fatalf("expected ErrInvalidJobTransition, got %v", err)
	}
}

func TestImportJobFail(t *testing.T) {
	t.Parallel()

	job, _ := domain.NewImportJob("devices.xlsx")
	if err := job.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	job.Fail("unable to read spreadsheet")

	if job.Status != domain.JobFailed {
		t.Fatalf("expected Failed, got %s", job.Status)
	}
	if job.FailureReason != "unable to read spreadsheet" {
		t.Fatalf("unexpected reason: %q", job.FailureReason)
	}
	if job.CompletedAt == nil {
		t.Fatal("failed job must have a completion timestamp")
	}
	if !job.IsTerminal() {
		t.Fatal("failed job must be terminal")
	}
}

func TestManufacturerRequireCategory(t *testing.T) {
	t.Parallel()

	m, err := domain.NewManufacturer(" AMD ", domain.CategoryCPU)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.Name != "AMD" {
		t.Fatalf("expected trimmed name, got %q", m.Name)
	}

	if upgraded := m.RequireCategory(domain.CategoryCPU); upgraded {
		t.Fatal("same category must not upgrade")
	}
	if upgraded := m.RequireCategory(domain.CategoryGPU); !upgraded {
		t.Fatal("conflicting category must upgrade")
	}
	if m.Category != domain.CategoryBoth {
		t.Fatalf("expected Both, got %s", m.Category)
	}
	if upgraded := m.RequireCategory(domain.CategoryCPU); upgraded {
		t.Fatal("Both never upgrades again")
	}
}
