package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
)

type ImportJobOutput struct {
	ImportJobID  string              `json:"importJobId"`
	FileName     string              `json:"fileName"`
	TotalRows    int                 `json:"totalRows"`
	SuccessCount int                 `json:"successCount"`
	FailureCount int                 `json:"failureCount"`
	SuccessRate  float64             `json:"successRate"`
	Status       string              `json:"status"`
	StartedAt    time.Time           `json:"startedAt"`
	CompletedAt  *time.Time          `json:"completedAt,omitempty"`
	DurationMs   *int64              `json:"durationMs,omitempty"`
	HasErrors    bool                `json:"hasErrors"`
	Errors       []ImportErrorOutput `json:"errors,omitempty"`
}

type PagedImportJobsOutput struct {
	Data       []ImportJobOutput `json:"data"`
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
}

type GetImportHistoryInput struct {
	Page     int
	PageSize int
}

type GetImportHistory interface {
	Execute(ctx context.Context, in GetImportHistoryInput) (PagedImportJobsOutput, error)
}

type getImportHistory struct {
	repo domain.ImportJobRepository
}

func NewGetImportHistory(repo domain.ImportJobRepository) GetImportHistory {
	return &getImportHistory{repo: repo}
}

func (uc *getImportHistory) Execute(ctx context.Context, in GetImportHistoryInput) (PagedImportJobsOutput, error) {
	if in.Page < 1 || in.PageSize < 1 || in.PageSize > 100 {
		return PagedImportJobsOutput{}, ErrInvalidPage
	}

	jobs, totalCount, err := uc.repo.GetPage(ctx, in.Page, in.PageSize)
	if err != nil {
		return PagedImportJobsOutput{}, fmt.Errorf("get import history: %w", err)
	}

	outputs := make([]ImportJobOutput, 0, len(jobs))
	for i := range jobs {
		outputs = append(outputs, toImportJobOutput(&jobs[i], false))
	}

	return PagedImportJobsOutput{
		Data:       outputs,
		TotalCount: totalCount,
		Page:       in.Page,
		PageSize:   in.PageSize,
	}, nil
}

type GetRecentImportsInput struct {
	Limit int
}

type GetRecentImports interface {
	Execute(ctx context.Context, in GetRecentImportsInput) ([]ImportJobOutput, error)
}

type getRecentImports struct {
	repo domain.ImportJobRepository
}

func NewGetRecentImports(repo domain.ImportJobRepository) GetRecentImports {
	return &getRecentImports{repo: repo}
}

func (uc *getRecentImports) Execute(ctx context.Context, in GetRecentImportsInput) ([]ImportJobOutput, error) {
	if in.Limit < 1 || in.Limit > 50 {
		return nil, ErrInvalidLimit
	}

	jobs, err := uc.repo.GetRecent(ctx, in.Limit)
	if err != nil {
		return nil, fmt.Errorf("get recent imports: %w", err)
	}

	outputs := make([]ImportJobOutput, 0, len(jobs))
	for i := range jobs {
		outputs = append(outputs, toImportJobOutput(&jobs[i], false))
	}
	return outputs, nil
}

type GetImportJobInput struct {
	ID string
}

type GetImportJob interface {
	Execute(ctx context.Context, in GetImportJobInput) (ImportJobOutput, error)
}

type getImportJob struct {
	repo domain.ImportJobRepository
}

func NewGetImportJob(repo domain.ImportJobRepository) GetImportJob {
	return &getImportJob{repo: repo}
}

func (uc *getImportJob) Execute(ctx context.Context, in GetImportJobInput) (ImportJobOutput, error) {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return ImportJobOutput{}, ErrInvalidJobID
	}

	job, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrImportJobNotFound) {
			return ImportJobOutput{}, ErrJobNotFound
		}
		return ImportJobOutput{}, fmt.Errorf("get import job: %w", err)
	}

	return toImportJobOutput(job, true), nil
}

func toImportJobOutput(job *domain.ImportJob, withErrors bool) ImportJobOutput {
	out := ImportJobOutput{
		ImportJobID:  job.ID.String(),
		FileName:     job.FileName,
		TotalRows:    job.TotalRows,
		SuccessCount: job.SuccessCount,
		FailureCount: job.FailureCount,
		SuccessRate:  job.SuccessRate(),
		Status:       string(job.Status),
		StartedAt:    job.StartedAt,
		CompletedAt:  job.CompletedAt,
		DurationMs:   job.DurationMs(),
		HasErrors:    job.FailureCount > 0,
	}
	if withErrors {
		out.Errors = toImportErrorOutputs(job.Errors)
	}
	return out
}
