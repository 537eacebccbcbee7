// file: internals/features/onboarding/employees/model/employee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeModel struct {
	EmployeeID          uuid.UUID  `gorm:"column:employee_id;type:uuid;primaryKey" json:"employee_id"`
	EmployeeFullName    string     `gorm:"column:employee_full_name;type:varchar(120);not null" json:"employee_full_name"`
	EmployeeEmail       string     `gorm:"column:employee_email;type:varchar(160);not null;uniqueIndex:uq_employees_email" json:"employee_email"`
	EmployeePosition    *string    `gorm:"column:employee_position;type:varchar(120)" json:"employee_position,omitempty"`
	EmployeeCandidateID *uuid.UUID `gorm:"column:employee_candidate_id;type:uuid;index:idx_employees_candidate" json:"employee_candidate_id,omitempty"`
	EmployeeJoinedAt    *time.Time `gorm:"column:employee_joined_at" json:"employee_joined_at,omitempty"`

	EmployeeCreatedAt time.Time      `gorm:"column:employee_created_at;autoCreateTime" json:"employee_created_at"`
	EmployeeUpdatedAt time.Time      `gorm:"column:employee_updated_at;autoUpdateTime" json:"employee_updated_at"`
	EmployeeDeletedAt gorm.DeletedAt `gorm:"column:employee_deleted_at;index" json:"employee_deleted_at,omitempty"`

	OnboardingTasks []OnboardingTaskModel `gorm:"foreignKey:OnboardingTaskEmployeeID;references:EmployeeID" json:"onboarding_tasks,omitempty"`
}

func (EmployeeModel) TableName() string { return "employees" }

func (m *EmployeeModel) BeforeCreate(tx *gorm.DB) error {
	if m.EmployeeID == uuid.Nil {
		m.EmployeeID = uuid.New()
	}
	return nil
}

/* ============================================================================
   MODEL: onboarding_tasks (checklist per karyawan baru)
============================================================================ */

type OnboardingTaskModel struct {
	OnboardingTaskID         uuid.UUID `gorm:"column:onboarding_task_id;type:uuid;primaryKey" json:"onboarding_task_id"`
	OnboardingTaskEmployeeID uuid.UUID `gorm:"column:onboarding_task_employee_id;type:uuid;not null;index:idx_onboarding_tasks_employee" json:"onboarding_task_employee_id"`
	OnboardingTaskTitle      string    `gorm:"column:onboarding_task_title;type:varchar(180);not null" json:"onboarding_task_title"`
	OnboardingTaskOrder      int       `gorm:"column:onboarding_task_order;not null;default:1" json:"onboarding_task_order"`
	OnboardingTaskIsDone     bool      `gorm:"column:onboarding_task_is_done;not null;default:false" json:"onboarding_task_is_done"`

	OnboardingTaskCreatedAt time.Time `gorm:"column:onboarding_task_created_at;autoCreateTime" json:"onboarding_task_created_at"`
	OnboardingTaskUpdatedAt time.Time `gorm:"column:onboarding_task_updated_at;autoUpdateTime" json:"onboarding_task_updated_at"`
}

func (OnboardingTaskModel) TableName() string { return "onboarding_tasks" }

func (m *OnboardingTaskModel) BeforeCreate(tx *gorm.DB) error {
	if m.OnboardingTaskID == uuid.Nil {
		m.OnboardingTaskID = uuid.New()
	}
	return nil
}
