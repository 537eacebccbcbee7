// file: internals/features/training/tags/controller/training_tag_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hrisku_backend/internals/features/training/tags/dto"
	model "hrisku_backend/internals/features/training/tags/model"
	helper "hrisku_backend/internals/helpers"
)

type TrainingTagController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTrainingTagController(db *gorm.DB) *TrainingTagController {
	return &TrainingTagController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   Handlers
======================= */

// POST /tags
func (ctrl *TrainingTagController) Create(c *fiber.Ctx) error {
	var body dto.CreateTrainingTagRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := body.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama tag sudah dipakai")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Tag berhasil dibuat", dto.FromModel(m))
}

// GET /tags?q=&page=&per_page=
func (ctrl *TrainingTagController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := ctrl.DB.WithContext(c.Context()).Model(&model.TrainingTagModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("LOWER(training_tag_name) LIKE LOWER(?)", "%"+q+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	var rows []model.TrainingTagModel
	if err := tx.Order("training_tag_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /tags/:id
func (ctrl *TrainingTagController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.TrainingTagModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&m, "training_tag_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Tag tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&m))
}

// PUT /tags/:id
func (ctrl *TrainingTagController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var body dto.UpdateTrainingTagRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.TrainingTagModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&m, "training_tag_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Tag tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	m.TrainingTagName = strings.TrimSpace(body.TrainingTagName)
	if err := ctrl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama tag sudah dipakai")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Tag diperbarui", dto.FromModel(&m))
}

// DELETE /tags/:id
// Hard delete, tapi ditolak selama tag masih dirujuk: oleh materi, atau
// oleh assignment aktif di ledger quiz (tag provenance masih dipakai).
func (ctrl *TrainingTagController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	db := ctrl.DB.WithContext(c.Context())

	var m model.TrainingTagModel
	if err := db.First(&m, "training_tag_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Tag tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	var materialRefs int64
	if err := db.Table("training_material_tags").
		Where("material_tag_tag_id = ?", id).
		Count(&materialRefs).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	if materialRefs > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Tag masih dipakai materi")
	}

	var assignmentRefs int64
	if err := db.Table("training_quiz_questions").
		Where("quiz_question_tag_id = ? AND quiz_question_is_active = ?", id, true).
		Count(&assignmentRefs).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	if assignmentRefs > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Tag masih dipakai assignment quiz yang aktif")
	}

	// Sisa rujukan hanya baris m2m question/quiz; ikut dibersihkan supaya
	// tidak ada pointer gantung.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM training_question_tags WHERE question_tag_tag_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM training_quiz_tags WHERE quiz_tag_tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonDeleted(c, "Tag dihapus", fiber.Map{
		"training_tag_id": id,
	})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "duplicate key")
}
