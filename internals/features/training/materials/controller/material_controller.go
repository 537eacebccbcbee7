// file: internals/features/training/materials/controller/material_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hrisku_backend/internals/features/training/materials/dto"
	model "hrisku_backend/internals/features/training/materials/model"
	service "hrisku_backend/internals/features/training/materials/service"
	tagmodel "hrisku_backend/internals/features/training/tags/model"
	helper "hrisku_backend/internals/helpers"
	helperAuth "hrisku_backend/internals/helpers/auth"
)

type MaterialController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Linker    *service.MaterialLinkService
}

func NewMaterialController(db *gorm.DB) *MaterialController {
	return &MaterialController{
		DB:        db,
		Validator: validator.New(),
		Linker:    service.NewMaterialLinkService(db),
	}
}

func (ctrl *MaterialController) actor(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return uuid.Nil, fe
		}
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	return id, nil
}

/* =======================
   Handlers: CRUD materi
======================= */

// POST /materials
func (ctrl *MaterialController) Create(c *fiber.Ctx) error {
	var body dto.CreateMaterialRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, err := ctrl.actor(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	m := body.ToModel(actorID)
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
			if err := tx.Create(&model.MaterialTagModel{
				MaterialTagMaterialID: m.MaterialID,
				MaterialTagTagID:      tagID,
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

	if err := ctrl.DB.WithContext(c.Context()).
		Preload("Tags.Tag").
		First(m, "material_id = ?", m.MaterialID).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Materi berhasil dibuat", dto.FromModel(m))
}

// GET /materials?tag_id=&q=&page=&per_page=
func (ctrl *MaterialController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := ctrl.DB.WithContext(c.Context()).Model(&model.MaterialModel{})
	if raw := strings.TrimSpace(c.Query("tag_id")); raw != "" {
		tagID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "tag_id tidak valid")
		}
		tx = tx.Where(`material_id IN (
			SELECT material_tag_material_id FROM training_material_tags
			WHERE material_tag_tag_id = ?)`, tagID)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("LOWER(material_title) LIKE LOWER(?)", "%"+q+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	var rows []model.MaterialModel
	if err := tx.Preload("Tags.Tag").
		Order("material_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /materials/:id
func (ctrl *MaterialController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.MaterialModel
	if err := ctrl.DB.WithContext(c.Context()).
		Preload("Tags.Tag").
		First(&m, "material_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&m))
}

// PATCH /materials/:id
func (ctrl *MaterialController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.MaterialModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&m, "material_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	var body dto.PatchMaterialRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	updates := body.ToUpdates()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", dto.FromModel(&m))
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Model(&m).Updates(updates).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Preload("Tags.Tag").
		First(&m, "material_id = ?", id).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Materi diperbarui", dto.FromModel(&m))
}

// DELETE /materials/:id (soft delete)
func (ctrl *MaterialController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var m model.MaterialModel
	if err := ctrl.DB.WithContext(c.Context()).
		Select("material_id").
		First(&m, "material_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
		}
		return helper.JsonServiceError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&m).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Materi dihapus", fiber.Map{
		"material_id": id,
	})
}

/* =======================
   Handlers: tag materi
======================= */

// POST /materials/:id/tags
func (ctrl *MaterialController) AttachTag(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var body dto.AttachMaterialTagRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())

	var mCount int64
	if err := db.Model(&model.MaterialModel{}).
		Where("material_id = ?", id).Count(&mCount).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	if mCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Materi tidak ditemukan")
	}
	var tCount int64
	if err := db.Model(&tagmodel.TrainingTagModel{}).
		Where("training_tag_id = ?", body.TagID).Count(&tCount).Error; err != nil {
		return helper.JsonServiceError(c, err)
	}
	if tCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tag tidak ditemukan")
	}

	link := &model.MaterialTagModel{
		MaterialTagMaterialID: id,
		MaterialTagTagID:      body.TagID,
	}
	if err := db.Create(link).Error; err != nil {
		if isUniqueViolationCtrl(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Tag sudah terpasang pada materi ini")
		}
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Tag terpasang", link)
}

// DELETE /materials/:id/tags/:tag_id
func (ctrl *MaterialController) DetachTag(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	tagID, err := uuid.Parse(strings.TrimSpace(c.Params("tag_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "tag_id tidak valid")
	}

	res := ctrl.DB.WithContext(c.Context()).
		Where("material_tag_material_id = ? AND material_tag_tag_id = ?", id, tagID).
		Delete(&model.MaterialTagModel{})
	if res.Error != nil {
		return helper.JsonServiceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tag tidak terpasang pada materi ini")
	}
	return helper.JsonDeleted(c, "Tag dilepas", fiber.Map{
		"material_id": id,
		"tag_id":      tagID,
	})
}

/* =======================
   Handlers: link quiz
======================= */

// POST /materials/:id/quizzes
func (ctrl *MaterialController) LinkQuiz(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var body dto.LinkQuizRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, err := ctrl.actor(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	link, err := ctrl.Linker.LinkQuiz(c.Context(), id, body.QuizID, actorID)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Quiz terpasang pada materi", link)
}

// DELETE /materials/:id/quizzes/:quiz_id
func (ctrl *MaterialController) UnlinkQuiz(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	quizID, err := uuid.Parse(strings.TrimSpace(c.Params("quiz_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "quiz_id tidak valid")
	}

	if err := ctrl.Linker.UnlinkQuiz(c.Context(), id, quizID); err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Quiz dilepas dari materi", fiber.Map{
		"material_id": id,
		"quiz_id":     quizID,
	})
}

// GET /materials/:id/quizzes
func (ctrl *MaterialController) ListQuizzes(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	quizzes, err := ctrl.Linker.ListQuizzes(c.Context(), id)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", quizzes)
}

func isUniqueViolationCtrl(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "duplicate key")
}
