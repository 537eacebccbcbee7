// file: internals/features/training/questions/controller/question_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hrisku_backend/internals/features/training/questions/dto"
	model "hrisku_backend/internals/features/training/questions/model"
	tagmodel "hrisku_backend/internals/features/training/tags/model"
	helper "hrisku_backend/internals/helpers"
)

type QuestionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   Handlers: CRUD soal
======================= */

// POST /questions
func (ctrl *QuestionController) Create(c *fiber.Ctx) error {
	var body dto.CreateQuestionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := body.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		for _, tagID := range body.TagIDs {
			var cnt int64
			if err := tx.Model(&tagmodel.TrainingTagModel{}).
				Where("training_tag_id = ?", tagID).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Tag tidak ditemukan: "+tagID.String())
			}
			if err := tx.Create(&model.QuestionTagModel{
				QuestionTagQuestionID: m.QuestionID,
				QuestionTagTagID:      tagID,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonServiceError(c, err)
	}

	// reload dengan tag
	if err := ctrl.DB.WithContext(c.Context()).
		Preload("Tags.Tag").
		First(m, "question_id = ?", m.QuestionID).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Soal berhasil dibuat", dto.FromModel(m))
}

// GET /questions?tag_id=&type=&active=&q=&page=&per_page=
func (ctrl *QuestionController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := ctrl.DB.WithContext(c.Context()).Model(&model.QuestionModel{})

	if raw := strings.TrimSpace(c.Query("tag_id")); raw != "" {
		tagID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "tag_id tidak valid")
		}
		tx = tx.Where(`question_id IN (
			SELECT question_tag_question_id FROM training_question_tags
			WHERE question_tag_tag_id = ?)`, tagID)
	}
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		tx = tx.Where("question_type = ?", t)
	}
	if a := strings.TrimSpace(c.Query("active")); a != "" {
		tx = tx.Where("question_is_active = ?", a == "true" || a == "1")
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("LOWER(question_text) LIKE LOWER(?)", "%"+q+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	var rows []model.QuestionModel
	if err := tx.Preload("Tags.Tag").
		Order("question_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /questions/:id
func (ctrl *QuestionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.QuestionModel
	if err := ctrl.DB.WithContext(c.Context()).
		Preload("Tags.Tag").
		First(&m, "question_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Soal tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&m))
}

// PATCH /questions/:id
func (ctrl *QuestionController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.QuestionModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&m, "question_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Soal tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	var body dto.PatchQuestionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := body.Apply(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Soal diperbarui", dto.FromModel(&m))
}

// DELETE /questions/:id  (soft delete; assignment aktif di quiz TIDAK ikut
// dinonaktifkan — baris ledger tetap, tapi soal tidak akan lolos seleksi baru)
func (ctrl *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.QuestionModel
	if err := ctrl.DB.WithContext(c.Context()).
		Select("question_id").
		First(&m, "question_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Soal tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Soal dihapus", fiber.Map{
		"question_id": id,
	})
}

/* =======================
   Handlers: tag soal
======================= */

// POST /questions/:id/tags
func (ctrl *QuestionController) AttachTag(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var body dto.AttachQuestionTagRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var qCount int64
	if err := db.Model(&model.QuestionModel{}).
		Where("question_id = ?", id).Count(&qCount).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	if qCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Soal tidak ditemukan")
	}
	var tCount int64
	if err := db.Model(&tagmodel.TrainingTagModel{}).
		Where("training_tag_id = ?", body.TagID).Count(&tCount).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	if tCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tag tidak ditemukan")
	}

	link := &model.QuestionTagModel{
		QuestionTagQuestionID: id,
		QuestionTagTagID:      body.TagID,
	}
	if err := db.Create(link).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Tag sudah terpasang pada soal ini")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Tag terpasang", link)
}

// DELETE /questions/:id/tags/:tag_id
func (ctrl *QuestionController) DetachTag(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	tagID, err := uuid.Parse(strings.TrimSpace(c.Params("tag_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "tag_id tidak valid")
	}

	res := ctrl.DB.WithContext(c.Context()).
		Where("question_tag_question_id = ? AND question_tag_tag_id = ?", id, tagID).
		Delete(&model.QuestionTagModel{})
	if res.Error != nil {
		return helper.JsonServiceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tag tidak terpasang pada soal ini")
	}
	return helper.JsonDeleted(c, "Tag dilepas", fiber.Map{
		"question_id": id,
		"tag_id":      tagID,
	})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "duplicate key")
}
