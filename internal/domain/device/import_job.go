package device

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ImportJobStatus string

const (
	JobPending    ImportJobStatus = "Pending"
	JobProcessing ImportJobStatus = "Processing"
	JobCompleted  ImportJobStatus = "Completed"
	JobFailed     ImportJobStatus = "Failed"
)

// ImportJob records one upload attempt. Status only moves forward:
// Pending -> Processing -> Completed or Failed.
type ImportJob struct {
	ID            uuid.UUID
	FileName      string
	TotalRows     int
	SuccessCount  int
	FailureCount  int
	Status        ImportJobStatus
	Errors        []RowError
	FailureReason string
	StartedAt     time.Time
	CompletedAt   *time.Time
	CreatedBy     string
}

// NewImportJob creates a job in Pending. The caller persists it before any
// parsing begins, so an attempt leaves a trace even on an immediate crash.
func NewImportJob(fileName string) (*ImportJob, error) {
	trimmed := strings.TrimSpace(fileName)
	if trimmed == "" {
		return nil, ErrEmptyFileName
	}
	return &ImportJob{
		ID:        uuid.New(),
		FileName:  trimmed,
		Status:    JobPending,
		StartedAt: time.Now().UTC(),
	}, nil
}

// Start transitions Pending -> Processing, immediately before parsing.
func (j *ImportJob) Start() error {
	if j.Status != JobPending {
		return ErrInvalidJobTransition
	}
	j.Status = JobProcessing
	return nil
}

// Complete finalizes a job that ran to the end. A job with some failed rows
// is still Completed; Failed means the job itself could not run.
func (j *ImportJob) Complete(totalRows, successCount, failureCount int, rowErrors []RowError) error {
	if j.Status != JobProcessing {
		return ErrInvalidJobTransition
	}
	j.TotalRows = totalRows
	j.SuccessCount = successCount
	j.FailureCount = failureCount
	j.Errors = rowErrors
	j.Status = JobCompleted
	now := time.Now().UTC()
	j.CompletedAt = &now
	return nil
}

// Fail marks the job as unable to run. Valid from any non-terminal state so
// the catastrophic path can always record a reason.
func (j *ImportJob) Fail(reason string) {
	j.Status = JobFailed
	j.FailureReason = reason
	now := time.Now().UTC()
	j.CompletedAt = &now
}

func (j *ImportJob) IsTerminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

func (j *ImportJob) SuccessRate() float64 {
	if j.TotalRows == 0 {
		return 0
	}
	return math.Round(float64(j.SuccessCount)/float64(j.TotalRows)*1000) / 10
}

func (j *ImportJob) DurationMs() *int64 {
	if j.CompletedAt == nil {
		return nil
	}
	ms := j.CompletedAt.Sub(j.StartedAt).Milliseconds()
	return &ms
}
