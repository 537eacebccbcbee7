// file: internals/features/onboarding/employees/dto/employee_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "hrisku_backend/internals/features/onboarding/employees/model"
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
   CREATE (POST /employees)
============================== */

type CreateEmployeeRequest struct {
	EmployeeFullName string     `json:"employee_full_name" validate:"required,max=120"`
	EmployeeEmail    string     `json:"employee_email" validate:"required,email,max=160"`
	EmployeePosition *string    `json:"employee_position" validate:"omitempty,max=120"`
	EmployeeJoinedAt *time.Time `json:"employee_joined_at" validate:"omitempty"`
}

func (r *CreateEmployeeRequest) ToModel() *model.EmployeeModel {
	return &model.EmployeeModel{
		EmployeeFullName: strings.TrimSpace(r.EmployeeFullName),
		EmployeeEmail:    strings.ToLower(strings.TrimSpace(r.EmployeeEmail)),
		EmployeePosition: trimPtr(r.EmployeePosition),
		EmployeeJoinedAt: r.EmployeeJoinedAt,
	}
}

/* ==============================
   HIRE (POST /employees/hire)
============================== */

type HireFromCandidateRequest struct {
	CandidateID      uuid.UUID  `json:"candidate_id" validate:"required,uuid4"`
	EmployeePosition *string    `json:"employee_position" validate:"omitempty,max=120"`
	EmployeeJoinedAt *time.Time `json:"employee_joined_at" validate:"omitempty"`
}

/* ==============================
   RESPONSE
============================== */

type OnboardingTaskResponse struct {
	OnboardingTaskID     uuid.UUID `json:"onboarding_task_id"`
	OnboardingTaskTitle  string    `json:"onboarding_task_title"`
	OnboardingTaskOrder  int       `json:"onboarding_task_order"`
	OnboardingTaskIsDone bool      `json:"onboarding_task_is_done"`
}

type EmployeeResponse struct {
	EmployeeID          uuid.UUID  `json:"employee_id"`
	EmployeeFullName    string     `json:"employee_full_name"`
	EmployeeEmail       string     `json:"employee_email"`
	EmployeePosition    *string    `json:"employee_position,omitempty"`
	EmployeeCandidateID *uuid.UUID `json:"employee_candidate_id,omitempty"`
	EmployeeJoinedAt    *time.Time `json:"employee_joined_at,omitempty"`
	EmployeeCreatedAt   time.Time  `json:"employee_created_at"`
	EmployeeUpdatedAt   time.Time  `json:"employee_updated_at"`

	OnboardingTasks []OnboardingTaskResponse `json:"onboarding_tasks,omitempty"`
}

func FromTaskModel(m *model.OnboardingTaskModel) OnboardingTaskResponse {
	return OnboardingTaskResponse{
		OnboardingTaskID:     m.OnboardingTaskID,
		OnboardingTaskTitle:  m.OnboardingTaskTitle,
		OnboardingTaskOrder:  m.OnboardingTaskOrder,
		OnboardingTaskIsDone: m.OnboardingTaskIsDone,
	}
}

func FromModel(m *model.EmployeeModel) EmployeeResponse {
	resp := EmployeeResponse{
		EmployeeID:          m.EmployeeID,
		EmployeeFullName:    m.EmployeeFullName,
		EmployeeEmail:       m.EmployeeEmail,
		EmployeePosition:    m.EmployeePosition,
		EmployeeCandidateID: m.EmployeeCandidateID,
		EmployeeJoinedAt:    m.EmployeeJoinedAt,
		EmployeeCreatedAt:   m.EmployeeCreatedAt,
		EmployeeUpdatedAt:   m.EmployeeUpdatedAt,
	}
	for i := range m.OnboardingTasks {
		resp.OnboardingTasks = append(resp.OnboardingTasks, FromTaskModel(&m.OnboardingTasks[i]))
	}
	return resp
}

func FromModels(ms []model.EmployeeModel) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
