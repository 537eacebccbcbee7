// file: internals/features/onboarding/employees/controller/employee_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hrisku_backend/internals/features/onboarding/employees/dto"
	model "hrisku_backend/internals/features/onboarding/employees/model"
	service "hrisku_backend/internals/features/onboarding/employees/service"
	helper "hrisku_backend/internals/helpers"
	"hrisku_backend/internals/helpers/mailer"
)

type EmployeeController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.OnboardingService
}

func NewEmployeeController(db *gorm.DB, m mailer.Mailer) *EmployeeController {
	return &EmployeeController{
		DB:        db,
		Validator: validator.New(),
		Service:   service.NewOnboardingService(db, m),
	}
}

/* =======================
   Handlers
======================= */

// POST /employees — daftar langsung (tanpa pipeline rekrutmen)
func (ctrl *EmployeeController) Create(c *fiber.Ctx) error {
	var body dto.CreateEmployeeRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := body.ToModel()
	if err := ctrl.Service.CreateEmployee(c.Context(), m); err != nil {
		return helper.JsonServiceError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Preload("OnboardingTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("onboarding_task_order ASC")
		}).
		First(m, "employee_id = ?", m.EmployeeID).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Karyawan berhasil didaftarkan", dto.FromModel(m))
}

// POST /employees/hire — promosi kandidat jadi karyawan
func (ctrl *EmployeeController) HireFromCandidate(c *fiber.Ctx) error {
	var body dto.HireFromCandidateRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	emp, err := ctrl.Service.HireFromCandidate(c.Context(), body.CandidateID, body.EmployeePosition, body.EmployeeJoinedAt)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Preload("OnboardingTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("onboarding_task_order ASC")
		}).
		First(emp, "employee_id = ?", emp.EmployeeID).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Kandidat berhasil di-hire", dto.FromModel(emp))
}

// GET /employees?q=&page=&per_page=
func (ctrl *EmployeeController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := ctrl.DB.WithContext(c.Context()).Model(&model.EmployeeModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("(LOWER(employee_full_name) LIKE LOWER(?) OR LOWER(employee_email) LIKE LOWER(?))", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	var rows []model.EmployeeModel
	if err := tx.Order("employee_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /employees/:id — detail + checklist onboarding
func (ctrl *EmployeeController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.EmployeeModel
	if err := ctrl.DB.WithContext(c.Context()).
		Preload("OnboardingTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("onboarding_task_order ASC")
		}).
		First(&m, "employee_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Karyawan tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&m))
}

// PUT /employees/:id/tasks/:task_id/toggle — tandai task selesai/belum
func (ctrl *EmployeeController) ToggleTask(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	taskID, err := uuid.Parse(strings.TrimSpace(c.Params("task_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "task_id tidak valid")
	}

	t, err := ctrl.Service.ToggleTask(c.Context(), id, taskID)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Task diperbarui", dto.FromTaskModel(t))
}

// DELETE /employees/:id (soft delete)
func (ctrl *EmployeeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.EmployeeModel
	if err := ctrl.DB.WithContext(c.Context()).
		Select("employee_id").
		First(&m, "employee_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Karyawan tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Karyawan dihapus", fiber.Map{
		"employee_id": id,
	})
}
