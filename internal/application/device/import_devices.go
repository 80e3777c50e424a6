package device

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

// FileParser turns uploaded bytes into typed rows plus row errors. Any
// returned error is file-fatal; row problems live in the result.
type FileParser interface {
	Parse(data []byte) (domain.ParseResult, error)
}

type ImportDevicesInput struct {
	FileName string
	Data     []byte
}

type ImportErrorOutput struct {
	Row      int    `json:"row"`
	Field    string `json:"field"`
	RawValue string `json:"rawValue,omitempty"`
	Message  string `json:"message"`
}

type ImportDevicesOutput struct {
	ImportJobID  string              `json:"importJobId"`
	FileName     string              `json:"fileName"`
	TotalRows    int                 `json:"totalRows"`
	SuccessCount int                 `json:"successCount"`
	FailureCount int                 `json:"failureCount"`
	Status       string              `json:"status"`
	StartedAt    time.Time           `json:"startedAt"`
	CompletedAt  *time.Time          `json:"completedAt,omitempty"`
	Errors       []ImportErrorOutput `json:"errors"`
}

type ImportDevices interface {
	Execute(ctx context.Context, in ImportDevicesInput) (ImportDevicesOutput, error)
}

type importDevices struct {
	jobRepo   domain.ImportJobRepository
	batchRepo domain.DeviceImportRepository
	parser    FileParser
}

func NewImportDevices(jobRepo domain.ImportJobRepository, batchRepo domain.DeviceImportRepository, parser FileParser) ImportDevices {
	return &importDevices{jobRepo: jobRepo, batchRepo: batchRepo, parser: parser}
}

// Execute runs one import call to completion. The job record is durably
// Pending before any parsing begins; row-scoped failures are recovered
// inside the loop and the job still reaches Completed. Anything else marks
// the job Failed and propagates to the caller.
func (uc *importDevices) Execute(ctx context.Context, in ImportDevicesInput) (ImportDevicesOutput, error) {
	job, err := domain.NewImportJob(in.FileName)
	if err != nil {
		return ImportDevicesOutput{}, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return ImportDevicesOutput{}, fmt.Errorf("create import job: %w", err)
	}

	log.Info().Str("file", job.FileName).Str("job", job.ID.String()).Msg("import started")

	out, err := uc.run(ctx, job, in.Data)
	if err != nil {
		log.Error().Err(err).Str("job", job.ID.String()).Msg("critical import failure")
		job.Fail(err.Error())
		if updateErr := uc.jobRepo.Update(ctx, job); updateErr != nil {
			log.Error().Err(updateErr).Str("job", job.ID.String()).Msg("failed to record job failure")
		}
		return ImportDevicesOutput{}, err
	}
	return out, nil
}

func (uc *importDevices) run(ctx context.Context, job *domain.ImportJob, data []byte) (ImportDevicesOutput, error) {
	if err := job.Start(); err != nil {
		return ImportDevicesOutput{}, err
	}
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return ImportDevicesOutput{}, fmt.Errorf("mark job processing: %w", err)
	}

	parseResult, err := uc.parser.Parse(data)
	if err != nil {
		return ImportDevicesOutput{}, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	log.Info().
		Int("ok", parseResult.SuccessCount()).
		Int("failed", parseResult.FailureCount()).
		Str("job", job.ID.String()).
		Msg("parsing done")

	batch, err := uc.batchRepo.Begin(ctx)
	if err != nil {
		return ImportDevicesOutput{}, fmt.Errorf("begin import batch: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = batch.Rollback(ctx)
		}
	}()

	// Rows are processed in source order; the in-batch dedup inside AddRow
	// relies on first-seen-wins.
	var persistErrors []domain.RowError
	for _, row := range parseResult.Rows {
		if err := batch.AddRow(ctx, row); err != nil {
			log.Warn().Err(err).Int("row", row.RowNumber).Msg("row parsed but failed to persist")
			persistErrors = append(persistErrors, domain.RowError{
				Row:     row.RowNumber,
				Field:   "database",
				Message: fmt.Sprintf("database error: %v", err),
			})
		}
	}

	if err := batch.Commit(ctx); err != nil {
		return ImportDevicesOutput{}, fmt.Errorf("commit import batch: %w", err)
	}
	committed = true

	allErrors := mergeRowErrors(parseResult.Errors, persistErrors)
	successCount := parseResult.SuccessCount() - len(persistErrors)

	if err := job.Complete(parseResult.TotalRows, successCount, len(allErrors), allErrors); err != nil {
		return ImportDevicesOutput{}, err
	}
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return ImportDevicesOutput{}, fmt.Errorf("complete job: %w", err)
	}

	log.Info().
		Int("success", successCount).
		Int("failed", len(allErrors)).
		Str("job", job.ID.String()).
		Msg("import complete")

	return ImportDevicesOutput{
		ImportJobID:  job.ID.String(),
		FileName:     job.FileName,
		TotalRows:    job.TotalRows,
		SuccessCount: job.SuccessCount,
		FailureCount: job.FailureCount,
		Status:       string(job.Status),
		StartedAt:    job.StartedAt,
		CompletedAt:  job.CompletedAt,
		Errors:       toImportErrorOutputs(allErrors),
	}, nil
}

func mergeRowErrors(parseErrors, persistErrors []domain.RowError) []domain.RowError {
	merged := make([]domain.RowError, 0, len(parseErrors)+len(persistErrors))
	merged = append(merged, parseErrors...)
	merged = append(merged, persistErrors...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Row < merged[j].Row
	})
	return merged
}

func toImportErrorOutputs(rowErrors []domain.RowError) []ImportErrorOutput {
	outputs := make([]ImportErrorOutput, 0, len(rowErrors))
	for _, rowErr := range rowErrors {
		outputs = append(outputs, ImportErrorOutput{
			Row:      rowErr.Row,
			Field:    rowErr.Field,
			RawValue: rowErr.RawValue,
			Message:  rowErr.Message,
		})
	}
	return outputs
}
