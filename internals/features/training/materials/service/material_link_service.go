// file: internals/features/training/materials/service/material_link_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrisku_backend/internals/features/training/materials/model"
	quizmodel "hrisku_backend/internals/features/training/quizzes/model"
	"hrisku_backend/internals/helpers/errs"
)

/* =========================================================
   SERVICE: link material ↔ quiz dengan gate kecocokan tag
========================================================= */

type MaterialLinkService struct {
	DB *gorm.DB
}

func NewMaterialLinkService(db *gorm.DB) *MaterialLinkService {
	return &MaterialLinkService{DB: db}
}

// LinkQuiz memasang quiz ke material.
// Gate: kalau KEDUA sisi punya tag dan irisannya kosong → TagMismatch
// (dengan daftar nama tag kedua sisi untuk diagnosa). Sisi tanpa tag
// dianggap kompatibel dengan apa pun. Gate hanya berlaku saat pembuatan
// link; edit tag sesudahnya tidak memvalidasi ulang.
func (s *MaterialLinkService) LinkQuiz(ctx context.Context, materialID, quizID, createdBy uuid.UUID) (*model.MaterialQuizModel, error) {
	if createdBy == uuid.Nil {
		return nil, errs.New(errs.KindValidation, "created_by wajib diisi")
	}

	db := s.DB.WithContext(ctx)

	var material model.MaterialModel
	if err := db.First(&material, "material_id = ?", materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindNotFound, "Materi tidak ditemukan")
		}
		return nil, err
	}
	var quizCount int64
	if err := db.Model(&quizmodel.QuizModel{}).
		Where("quiz_id = ?", quizID).Count(&quizCount).Error; err != nil {
		return nil, err
	}
	if quizCount == 0 {
		return nil, errs.New(errs.KindNotFound, "Quiz tidak ditemukan")
	}

	materialTags, err := s.materialTagNames(db, materialID)
	if err != nil {
		return nil, err
	}
	quizTags, err := s.quizTagNames(db, quizID)
	if err != nil {
		return nil, err
	}

	if len(materialTags) > 0 && len(quizTags) > 0 && !intersects(materialTags, quizTags) {
		return nil, errs.WithDetails(errs.KindTagMismatch,
			"Materi dan quiz tidak punya tag yang sama",
			map[string]any{"material_tags": materialTags, "quiz_tags": quizTags})
	}

	var dup int64
	if err := db.Model(&model.MaterialQuizModel{}).
		Where("material_quiz_material_id = ? AND material_quiz_quiz_id = ? AND material_quiz_is_active = ?",
			materialID, quizID, true).
		Count(&dup).Error; err != nil {
		return nil, err
	}
	if dup > 0 {
		return nil, errs.New(errs.KindConflict, "Quiz sudah terpasang pada materi ini")
	}

	link := &model.MaterialQuizModel{
		MaterialQuizMaterialID: materialID,
		MaterialQuizQuizID:     quizID,
		MaterialQuizIsActive:   true,
		MaterialQuizCreatedBy:  createdBy,
	}
	if err := db.Create(link).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, errs.New(errs.KindConflict, "Quiz sudah terpasang pada materi ini")
		}
		log.Printf("[MaterialLinkService] ERROR create link: material_id=%s quiz_id=%s err=%v",
			materialID, quizID, err)
		return nil, err
	}
	return link, nil
}

// UnlinkQuiz menonaktifkan link aktif material↔quiz.
func (s *MaterialLinkService) UnlinkQuiz(ctx context.Context, materialID, quizID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&model.MaterialQuizModel{}).
		Where("material_quiz_material_id = ? AND material_quiz_quiz_id = ? AND material_quiz_is_active = ?",
			materialID, quizID, true).
		Update("material_quiz_is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.New(errs.KindNotFound, "Link aktif tidak ditemukan")
	}
	return nil
}

// ListQuizzes mengembalikan quiz yang terpasang aktif pada material.
func (s *MaterialLinkService) ListQuizzes(ctx context.Context, materialID uuid.UUID) ([]quizmodel.QuizModel, error) {
	var quizzes []quizmodel.QuizModel
	if err := s.DB.WithContext(ctx).
		Table("training_quizzes AS z").
		Joins("JOIN training_material_quizzes mq ON mq.material_quiz_quiz_id = z.quiz_id").
		Where("mq.material_quiz_material_id = ? AND mq.material_quiz_is_active = ?", materialID, true).
		Where("z.quiz_deleted_at IS NULL").
		Order("z.quiz_created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

/* =========================================================
   Internal helpers
========================================================= */

func (s *MaterialLinkService) materialTagNames(db *gorm.DB, materialID uuid.UUID) ([]string, error) {
	var names []string
	if err := db.
		Table("training_material_tags AS mt").
		Joins("JOIN training_tags t ON t.training_tag_id = mt.material_tag_tag_id").
		Where("mt.material_tag_material_id = ?", materialID).
		Order("t.training_tag_name ASC").
		Pluck("t.training_tag_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (s *MaterialLinkService) quizTagNames(db *gorm.DB, quizID uuid.UUID) ([]string, error) {
	var names []string
	if err := db.
		Table("training_quiz_tags AS qt").
		Joins("JOIN training_tags t ON t.training_tag_id = qt.quiz_tag_tag_id").
		Where("qt.quiz_tag_quiz_id = ?", quizID).
		Order("t.training_tag_name ASC").
		Pluck("t.training_tag_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func intersects(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[strings.ToLower(v)] = true
	}
	for _, v := range b {
		if set[strings.ToLower(v)] {
			return true
		}
	}
	return false
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "duplicate key")
}
