// file: internals/features/recruitment/candidates/controller/candidate_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hrisku_backend/internals/features/recruitment/candidates/dto"
	model "hrisku_backend/internals/features/recruitment/candidates/model"
	jobmodel "hrisku_backend/internals/features/recruitment/job_postings/model"
	helper "hrisku_backend/internals/helpers"
)

type CandidateController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCandidateController(db *gorm.DB) *CandidateController {
	return &CandidateController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   Handlers
======================= */

// POST /candidates — pelamar masuk pipeline (status awal: applied)
func (ctrl *CandidateController) Create(c *fiber.Ctx) error {
	var body dto.CreateCandidateRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	// Lamaran hanya untuk lowongan yang masih open.
	if body.CandidateJobPostingID != nil {
		var job jobmodel.JobPostingModel
		if err := db.First(&job, "job_posting_id = ?", *body.CandidateJobPostingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return helper.JsonError(c, fiber.StatusNotFound, "Lowongan tidak ditemukan")
			}
			return helper.JsonServiceError(c, err)
		}
		if job.JobPostingStatus != jobmodel.JobPostingStatusOpen {
			return helper.JsonError(c, fiber.StatusConflict, "Lowongan sudah tidak menerima lamaran")
		}
	}

	m := body.ToModel()
	if err := db.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email kandidat sudah terdaftar")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Kandidat berhasil didaftarkan", dto.FromModel(m))
}

// GET /candidates?status=&job_posting_id=&q=&page=&per_page=
func (ctrl *CandidateController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := ctrl.DB.WithContext(c.Context()).Model(&model.CandidateModel{})
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		tx = tx.Where("candidate_status = ?", st)
	}
	if raw := strings.TrimSpace(c.Query("job_posting_id")); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "job_posting_id tidak valid")
		}
		tx = tx.Where("candidate_job_posting_id = ?", jobID)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("(LOWER(candidate_full_name) LIKE LOWER(?) OR LOWER(candidate_email) LIKE LOWER(?))", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	var rows []model.CandidateModel
	if err := tx.Order("candidate_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /candidates/:id
func (ctrl *CandidateController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.CandidateModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&m, "candidate_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Kandidat tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&m))
}

// PUT /candidates/:id/status — progres pipeline rekrutmen
func (ctrl *CandidateController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var body dto.UpdateCandidateStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.CandidateModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&m, "candidate_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Kandidat tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	m.CandidateStatus = model.CandidateStatus(body.CandidateStatus)
	if err := ctrl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Status kandidat diperbarui", dto.FromModel(&m))
}

// DELETE /candidates/:id (soft delete)
func (ctrl *CandidateController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.CandidateModel
	if err := ctrl.DB.WithContext(c.Context()).
		Select("candidate_id").
		First(&m, "candidate_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Kandidat tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Kandidat dihapus", fiber.Map{
		"candidate_id": id,
	})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "duplicate key")
}
