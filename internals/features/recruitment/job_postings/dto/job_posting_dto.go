// file: internals/features/recruitment/job_postings/dto/job_posting_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "hrisku_backend/internals/features/recruitment/job_postings/model"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* ==============================
   CREATE (POST /job-postings)
============================== */

type CreateJobPostingRequest struct {
	JobPostingTitle       string  `json:"job_posting_title" validate:"required,max=180"`
	JobPostingDescription *string `json:"job_posting_description" validate:"omitempty"`
	JobPostingDepartment  *string `json:"job_posting_department" validate:"omitempty,max=120"`
}

func (r *CreateJobPostingRequest) ToModel(createdBy uuid.UUID) *model.JobPostingModel {
	return &model.JobPostingModel{
		JobPostingTitle:       strings.TrimSpace(r.JobPostingTitle),
		JobPostingDescription: trimPtr(r.JobPostingDescription),
		JobPostingDepartment:  trimPtr(r.JobPostingDepartment),
		JobPostingStatus:      model.JobPostingStatusDraft,
		JobPostingCreatedBy:   createdBy,
	}
}

/* ==============================
   UPDATE STATUS (PUT /job-postings/:id/status)
============================== */

type UpdateJobPostingStatusRequest struct {
	JobPostingStatus string `json:"job_posting_status" validate:"required,oneof=draft open closed"`
}

/* ==============================
   RESPONSE
============================== */

type JobPostingResponse struct {
	JobPostingID          uuid.UUID `json:"job_posting_id"`
	JobPostingTitle       string    `json:"job_posting_title"`
	JobPostingDescription *string   `json:"job_posting_description,omitempty"`
	JobPostingDepartment  *string   `json:"job_posting_department,omitempty"`
	JobPostingStatus      string    `json:"job_posting_status"`
	JobPostingCreatedBy   uuid.UUID `json:"job_posting_created_by"`
	JobPostingCreatedAt   time.Time `json:"job_posting_created_at"`
	JobPostingUpdatedAt   time.Time `json:"job_posting_updated_at"`
}

func FromModel(m *model.JobPostingModel) JobPostingResponse {
	return JobPostingResponse{
		JobPostingID:          m.JobPostingID,
		JobPostingTitle:       m.JobPostingTitle,
		JobPostingDescription: m.JobPostingDescription,
		JobPostingDepartment:  m.JobPostingDepartment,
		JobPostingStatus:      string(m.JobPostingStatus),
		JobPostingCreatedBy:   m.JobPostingCreatedBy,
		JobPostingCreatedAt:   m.JobPostingCreatedAt,
		JobPostingUpdatedAt:   m.JobPostingUpdatedAt,
	}
}

func FromModels(ms []model.JobPostingModel) []JobPostingResponse {
	out := make([]JobPostingResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
