// file: internals/features/recruitment/job_postings/model/job_posting_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobPostingStatus string

const (
	JobPostingStatusDraft  JobPostingStatus = "draft"
	JobPostingStatusOpen   JobPostingStatus = "open"
	JobPostingStatusClosed JobPostingStatus = "closed"
)

func (s JobPostingStatus) Valid() bool {
	return s == JobPostingStatusDraft || s == JobPostingStatusOpen || s == JobPostingStatusClosed
}

type JobPostingModel struct {
	JobPostingID          uuid.UUID        `gorm:"column:job_posting_id;type:uuid;primaryKey" json:"job_posting_id"`
	JobPostingTitle       string           `gorm:"column:job_posting_title;type:varchar(180);not null" json:"job_posting_title"`
	JobPostingDescription *string          `gorm:"column:job_posting_description" json:"job_posting_description,omitempty"`
	JobPostingDepartment  *string          `gorm:"column:job_posting_department;type:varchar(120)" json:"job_posting_department,omitempty"`
	JobPostingStatus      JobPostingStatus `gorm:"column:job_posting_status;type:varchar(10);not null;default:'draft';index:idx_job_postings_status" json:"job_posting_status"`
	JobPostingCreatedBy   uuid.UUID        `gorm:"column:job_posting_created_by;type:uuid;not null" json:"job_posting_created_by"`

	JobPostingCreatedAt time.Time      `gorm:"column:job_posting_created_at;autoCreateTime" json:"job_posting_created_at"`
	JobPostingUpdatedAt time.Time      `gorm:"column:job_posting_updated_at;autoUpdateTime" json:"job_posting_updated_at"`
	JobPostingDeletedAt gorm.DeletedAt `gorm:"column:job_posting_deleted_at;index" json:"job_posting_deleted_at,omitempty"`
}

func (JobPostingModel) TableName() string { return "job_postings" }

func (m *JobPostingModel) BeforeCreate(tx *gorm.DB) error {
	if m.JobPostingID == uuid.Nil {
		m.JobPostingID = uuid.New()
	}
	return nil
}
