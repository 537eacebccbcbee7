// file: internals/features/recruitment/candidates/model/candidate_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CandidateStatus string

const (
	CandidateStatusApplied   CandidateStatus = "applied"
	CandidateStatusScreening CandidateStatus = "screening"
	CandidateStatusInterview CandidateStatus = "interview"
	CandidateStatusOffer     CandidateStatus = "offer"
	CandidateStatusHired     CandidateStatus = "hired"
	CandidateStatusRejected  CandidateStatus = "rejected"
)

func (s CandidateStatus) String() string { return string(s) }
func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidateStatusApplied, CandidateStatusScreening, CandidateStatusInterview,
		CandidateStatusOffer, CandidateStatusHired, CandidateStatusRejected:
		return true
	}
	return false
}

func (s *CandidateStatus) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*s = ""
		return nil
	case string:
		*s = CandidateStatus(v)
	case []byte:
		*s = CandidateStatus(string(v))
	default:
		return fmt.Errorf("unsupported type for CandidateStatus: %T", value)
	}
	return nil
}

func (s CandidateStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid CandidateStatus: %q", s)
	}
	return string(s), nil
}

type CandidateModel struct {
	CandidateID       uuid.UUID       `gorm:"column:candidate_id;type:uuid;primaryKey" json:"candidate_id"`
	CandidateFullName string          `gorm:"column:candidate_full_name;type:varchar(120);not null" json:"candidate_full_name"`
	CandidateEmail    string          `gorm:"column:candidate_email;type:varchar(160);not null;uniqueIndex:uq_candidates_email" json:"candidate_email"`
	CandidatePhone    *string         `gorm:"column:candidate_phone;type:varchar(30)" json:"candidate_phone,omitempty"`
	// CV disimpan di storage eksternal; kolom ini hanya path/URL-nya.
	CandidateCVURL        *string         `gorm:"column:candidate_cv_url;type:text" json:"candidate_cv_url,omitempty"`
	CandidateStatus       CandidateStatus `gorm:"column:candidate_status;type:varchar(20);not null;default:'applied';index:idx_candidates_status" json:"candidate_status"`
	CandidateJobPostingID *uuid.UUID      `gorm:"column:candidate_job_posting_id;type:uuid;index:idx_candidates_job_posting" json:"candidate_job_posting_id,omitempty"`

	CandidateCreatedAt time.Time      `gorm:"column:candidate_created_at;autoCreateTime" json:"candidate_created_at"`
	CandidateUpdatedAt time.Time      `gorm:"column:candidate_updated_at;autoUpdateTime" json:"candidate_updated_at"`
	CandidateDeletedAt gorm.DeletedAt `gorm:"column:candidate_deleted_at;index" json:"candidate_deleted_at,omitempty"`
}

func (CandidateModel) TableName() string { return "candidates" }

func (m *CandidateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CandidateID == uuid.Nil {
		m.CandidateID = uuid.New()
	}
	return nil
}
