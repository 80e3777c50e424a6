package models

import (
	"time"

	"gorm.io/datatypes"
)

type ImportJob struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	FileName      string `gorm:"type:text;not null"`
	TotalRows     int    `gorm:"not null;default:0"`
	SuccessCount  int    `gorm:"not null;default:0"`
	FailureCount  int    `gorm:"not null;default:0"`
	Status        string `gorm:"size:16;not null;index"`
	ErrorLog      datatypes.JSON
	FailureReason *string `gorm:"type:text"`
	CreatedBy     string  `gorm:"size:255;not null;default:''"`
	StartedAt     time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ImportJob) TableName() string {
	return "import_jobs"
}
