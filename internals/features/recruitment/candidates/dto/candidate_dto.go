// file: internals/features/recruitment/candidates/dto/candidate_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "hrisku_backend/internals/features/recruitment/candidates/model"
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
   CREATE (POST /candidates)
============================== */

type CreateCandidateRequest struct {
	CandidateFullName     string     `json:"candidate_full_name" validate:"required,max=120"`
	CandidateEmail        string     `json:"candidate_email" validate:"required,email,max=160"`
	CandidatePhone        *string    `json:"candidate_phone" validate:"omitempty,max=30"`
	CandidateCVURL        *string    `json:"candidate_cv_url" validate:"omitempty,url"`
	CandidateJobPostingID *uuid.UUID `json:"candidate_job_posting_id" validate:"omitempty,uuid4"`
}

func (r *CreateCandidateRequest) ToModel() *model.CandidateModel {
	return &model.CandidateModel{
		CandidateFullName:     strings.TrimSpace(r.CandidateFullName),
		CandidateEmail:        strings.ToLower(strings.TrimSpace(r.CandidateEmail)),
		CandidatePhone:        trimPtr(r.CandidatePhone),
		CandidateCVURL:        trimPtr(r.CandidateCVURL),
		CandidateStatus:       model.CandidateStatusApplied,
		CandidateJobPostingID: r.CandidateJobPostingID,
	}
}

/* ==============================
   UPDATE STATUS (PUT /candidates/:id/status)
============================== */

type UpdateCandidateStatusRequest struct {
	CandidateStatus string `json:"candidate_status" validate:"required,oneof=applied screening interview offer hired rejected"`
}

/* ==============================
   RESPONSE
============================== */

type CandidateResponse struct {
	CandidateID           uuid.UUID  `json:"candidate_id"`
	CandidateFullName     string     `json:"candidate_full_name"`
	CandidateEmail        string     `json:"candidate_email"`
	CandidatePhone        *string    `json:"candidate_phone,omitempty"`
	CandidateCVURL        *string    `json:"candidate_cv_url,omitempty"`
	CandidateStatus       string     `json:"candidate_status"`
	CandidateJobPostingID *uuid.UUID `json:"candidate_job_posting_id,omitempty"`
	CandidateCreatedAt    time.Time  `json:"candidate_created_at"`
	CandidateUpdatedAt    time.Time  `json:"candidate_updated_at"`
}

func FromModel(m *model.CandidateModel) CandidateResponse {
	return CandidateResponse{
		CandidateID:           m.CandidateID,
		CandidateFullName:     m.CandidateFullName,
		CandidateEmail:        m.CandidateEmail,
		CandidatePhone:        m.CandidatePhone,
		CandidateCVURL:        m.CandidateCVURL,
		CandidateStatus:       m.CandidateStatus.String(),
		CandidateJobPostingID: m.CandidateJobPostingID,
		CandidateCreatedAt:    m.CandidateCreatedAt,
		CandidateUpdatedAt:    m.CandidateUpdatedAt,
	}
}

func FromModels(ms []model.CandidateModel) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
