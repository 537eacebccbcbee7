// file: internals/features/recruitment/job_postings/controller/job_posting_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hrisku_backend/internals/features/recruitment/job_postings/dto"
	model "hrisku_backend/internals/features/recruitment/job_postings/model"
	helper "hrisku_backend/internals/helpers"
	helperAuth "hrisku_backend/internals/helpers/auth"
)

type JobPostingController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewJobPostingController(db *gorm.DB) *JobPostingController {
	return &JobPostingController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   Handlers
======================= */

// POST /job-postings
func (ctrl *JobPostingController) Create(c *fiber.Ctx) error {
	var body dto.CreateJobPostingRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m := body.ToModel(actorID)
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Lowongan berhasil dibuat", dto.FromModel(m))
}

// GET /job-postings?status=&q=&page=&per_page=
func (ctrl *JobPostingController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := ctrl.DB.WithContext(c.Context()).Model(&model.JobPostingModel{})
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		tx = tx.Where("job_posting_status = ?", st)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("LOWER(job_posting_title) LIKE LOWER(?)", "%"+q+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	var rows []model.JobPostingModel
	if err := tx.Order("job_posting_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /job-postings/:id
func (ctrl *JobPostingController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.JobPostingModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&m, "job_posting_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Lowongan tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&m))
}

// PUT /job-postings/:id/status
func (ctrl *JobPostingController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var body dto.UpdateJobPostingStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.JobPostingModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&m, "job_posting_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Lowongan tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	m.JobPostingStatus = model.JobPostingStatus(body.JobPostingStatus)
	if err := ctrl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Status lowongan diperbarui", dto.FromModel(&m))
}

// DELETE /job-postings/:id (soft delete)
func (ctrl *JobPostingController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.JobPostingModel
	if err := ctrl.DB.WithContext(c.Context()).
		Select("job_posting_id").
		First(&m, "job_posting_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Lowongan tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Lowongan dihapus", fiber.Map{
		"job_posting_id": id,
	})
}
