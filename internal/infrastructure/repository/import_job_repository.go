package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/hardwarevault/inventory/internal/domain/device"
	"github.com/hardwarevault/inventory/internal/infrastructure/db/models"
)

type ImportJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

func (r *ImportJobRepository) Create(ctx context.Context, job *domain.ImportJob) error {
	row, err := importJobToModel(job)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create import job: %w", err)
	}

	return nil
}

func (r *ImportJobRepository) Update(ctx context.Context, job *domain.ImportJob) error {
	row, err := importJobToModel(job)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&models.ImportJob{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"total_rows":     row.TotalRows,
			"success_count":  row.SuccessCount,
			"failure_count":  row.FailureCount,
			"status":         row.Status,
			"error_log":      row.ErrorLog,
			"failure_reason": row.FailureReason,
			"completed_at":   row.CompletedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update import job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrImportJobNotFound
	}

	return nil
}

func (r *ImportJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportJob, error) {
	var row models.ImportJob

	err := r.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrImportJobNotFound
		}
		return nil, fmt.Errorf("get import job by id: %w", err)
	}

	return importJobToDomain(row)
}

func (r *ImportJobRepository) GetPage(ctx context.Context, page, pageSize int) ([]domain.ImportJob, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ImportJob{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count import jobs: %w", err)
	}

	var rows []models.ImportJob
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list import jobs: %w", err)
	}

	jobs := make([]domain.ImportJob, 0, len(rows))
	for _, row := range rows {
		job, err := importJobToDomain(row)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}

	return jobs, total, nil
}

func (r *ImportJobRepository) GetRecent(ctx context.Context, limit int) ([]domain.ImportJob, error) {
	var rows []models.ImportJob
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list recent import jobs: %w", err)
	}

	jobs := make([]domain.ImportJob, 0, len(rows))
	for _, row := range rows {
		job, err := importJobToDomain(row)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}

	return jobs, nil
}

func importJobToModel(job *domain.ImportJob) (models.ImportJob, error) {
	var errorLog datatypes.JSON
	if len(job.Errors) > 0 {
		raw, err := json.Marshal(job.Errors)
		if err != nil {
			return models.ImportJob{}, fmt.Errorf("marshal import error log: %w", err)
		}
		errorLog = datatypes.JSON(raw)
	}

	var failureReason *string
	if job.FailureReason != "" {
		reason := job.FailureReason
		failureReason = &reason
	}

	return models.ImportJob{
		ID:            job.ID.String(),
		FileName:      job.FileName,
		TotalRows:     job.TotalRows,
		SuccessCount:  job.SuccessCount,
		FailureCount:  job.FailureCount,
		Status:        string(job.Status),
		ErrorLog:      errorLog,
		FailureReason: failureReason,
		CreatedBy:     job.CreatedBy,
		StartedAt:     job.StartedAt,
		CompletedAt:   job.CompletedAt,
	}, nil
}

func importJobToDomain(row models.ImportJob) (*domain.ImportJob, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse import job id %q: %w", row.ID, err)
	}

	var rowErrors []domain.RowError
	if len(row.ErrorLog) > 0 {
		if err := json.Unmarshal(row.ErrorLog, &rowErrors); err != nil {
			return nil, fmt.Errorf("unmarshal import error log: %w", err)
		}
	}

	var failureReason string
	if row.FailureReason != nil {
		failureReason = *row.FailureReason
	}

	return &domain.ImportJob{
		ID:            id,
		FileName:      row.FileName,
		TotalRows:     row.TotalRows,
		SuccessCount:  row.SuccessCount,
		FailureCount:  row.FailureCount,
		Status:        domain.ImportJobStatus(row.Status),
		Errors:        rowErrors,
		FailureReason: failureReason,
		StartedAt:     row.StartedAt,
		CompletedAt:   row.CompletedAt,
		CreatedBy:     row.CreatedBy,
	}, nil
}
