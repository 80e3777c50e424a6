package device_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/hardwarevault/inventory/internal/application/device"
	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

func completedJob(t *testing.T) domain.ImportJob {
	t.Helper()

	job, err := domain.NewImportJob("devices.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := job.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rowErrors := []domain.RowError{{Row: 3, Field: "Weight (kg)", Message: "column 'Weight (kg)' is required but empty"}}
	if err := job.Complete(5, 4, 1, rowErrors); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return *job
}

func TestGetImportHistory(t *testing.T) {
	t.Parallel()

	jobs := &fakeJobRepo{jobs: []domain.ImportJob{completedJob(t)}, totalCount: 12}
	uc := app.NewGetImportHistory(jobs)

	out, err := uc.Execute(context.Background(), app.GetImportHistoryInput{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out.TotalCount != 12 {
		t.Fatalf("expected total 12, got %d", out.TotalCount)
	}
	if len(out.Data) != 1 {
		t.Fatalf("expected 1 job, got %d", len(out.Data))
	}

	got := out.Data[0]
	if got.SuccessRate != 80.0 {
		t.Fatalf("expected success rate 80.0, got %v", got.SuccessRate)
	}
	if !got.HasErrors {
		t.Fatal("expected hasErrors true")
	}
	// Listings stay light; the error detail is on the single-job fetch.
	if len(got.Errors) != 0 {
		t.Fatalf("expected no inline errors in listing, got %d", len(got.Errors))
	}
}

func TestGetImportHistoryInvalidPage(t *testing.T) {
	t.Parallel()

	uc := app.NewGetImportHistory(&fakeJobRepo{})

	cases := []app.GetImportHistoryInput{
		{Page: 0, PageSize: 20},
		{Page: 1, PageSize: 0},
		{Page: 1, PageSize: 101},
	}
	for _, in := range cases {
		if _, err := uc.Execute(context.Background(), in); !errors.Is(err, app.ErrInvalidPage) {
			t.Fatalf("expected ErrInvalidPage for %+v, got %v", in, err)
		}
	}
}

func TestGetRecentImportsLimitBounds(t *testing.T) {
	t.Parallel()

	uc := app.NewGetRecentImports(&fakeJobRepo{jobs: []domain.ImportJob{completedJob(t)}})

	if _, err := uc.Execute(context.Background(), app.GetRecentImportsInput{Limit: 0}); !errors.Is(err, app.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), app.GetRecentImportsInput{Limit: 51}); !errors.Is(err, app.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}

	out, err := uc.Execute(context.Background(), app.GetRecentImportsInput{Limit: 5})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 job, got %d", len(out))
	}
}

func TestGetImportJobIncludesErrorDetail(t *testing.T) {
	t.Parallel()

	job := completedJob(t)
	uc := app.NewGetImportJob(&fakeJobRepo{jobs: []domain.ImportJob{job}})

	out, err := uc.Execute(context.Background(), app.GetImportJobInput{ID: job.ID.String()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out.ImportJobID != job.ID.String() {
		t.Fatalf("unexpected id: %s", out.ImportJobID)
	}
	if len(out.Errors) != 1 || out.Errors[0].Row != 3 {
		t.Fatalf("expected the row error detail, got %+v", out.Errors)
	}
	if out.DurationMs == nil {
		t.Fatal("expected a duration for a completed job")
	}
}

func TestGetImportJobInvalidID(t *testing.T) {
	t.Parallel()

	uc := app.NewGetImportJob(&fakeJobRepo{})

	if _, err := uc.Execute(context.Background(), app.GetImportJobInput{ID: "not-a-uuid"}); !errors.Is(err, app.ErrInvalidJobID) {
		t.Fatalf("expected ErrInvalidJobID, got %v", err)
	}
}

func TestGetImportJobNotFound(t *testing.T) {
	t.Parallel()

	uc := app.NewGetImportJob(&fakeJobRepo{getErr: domain.ErrImportJobNotFound})

	_, err := uc.Execute(context.Background(), app.GetImportJobInput{ID: "6cb24bc0-9f41-4a63-9f9c-3a6171c4b50e"})
	if !errors.Is(err, app.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
