// file: internals/features/training/quizzes/service/assignment_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	questionmodel "hrisku_backend/internals/features/training/questions/model"
	"hrisku_backend/internals/features/training/quizzes/model"
	"hrisku_backend/internals/helpers/errs"
)

/* =========================================================
   SERVICE: ledger penugasan soal → quiz
========================================================= */

type AssignmentService struct {
	DB *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{DB: db}
}

/* =========================================================
   ATTACH (manual, satu soal)
========================================================= */

type AttachInput struct {
	QuestionID     uuid.UUID
	QuizID         uuid.UUID
	TagID          uuid.UUID
	Order          *int
	PointsOverride *float64
	// AddedBy selalu eksplisit dari controller, tidak pernah dari context ambient.
	AddedBy uuid.UUID
}

// Attach memasukkan satu soal ke quiz via tag.
// Urutan cek: soal ada & membawa tag → belum ada assignment AKTIF untuk
// pasangan (question, quiz) → insert. Pasangan yang pernah dinonaktifkan
// boleh masuk lagi (cek duplikat hanya melihat baris aktif).
func (s *AssignmentService) Attach(ctx context.Context, in AttachInput) (*model.QuizQuestionModel, error) {
	if in.AddedBy == uuid.Nil {
		return nil, errs.New(errs.KindValidation, "added_by wajib diisi")
	}
	if in.PointsOverride != nil && *in.PointsOverride <= 0 {
		return nil, errs.New(errs.KindValidation, "points_override harus > 0")
	}

	var out *model.QuizQuestionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.attachTx(tx, in)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// attachTx berisi logika attach yang juga dipakai AutoAttach & assembly.
func (s *AssignmentService) attachTx(tx *gorm.DB, in AttachInput) (*model.QuizQuestionModel, error) {
	// 1) Soal harus ada, aktif, dan benar-benar membawa tag yang dipakai
	//    sebagai alasan seleksi.
	var q questionmodel.QuestionModel
	if err := tx.Preload("Tags").
		First(&q, "question_id = ? AND question_is_active = ?", in.QuestionID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindNotFound, "Soal tidak ditemukan atau nonaktif")
		}
		log.Printf("[AssignmentService] ERROR load question: question_id=%s err=%v", in.QuestionID, err)
		return nil, err
	}
	if !q.HasTag(in.TagID) {
		return nil, errs.Newf(errs.KindInvalidTag, "Soal tidak membawa tag %s", in.TagID)
	}

	// 2) Quiz harus ada.
	var quizCount int64
	if err := tx.Model(&model.QuizModel{}).
		Where("quiz_id = ?", in.QuizID).Count(&quizCount).Error; err != nil {
		return nil, err
	}
	if quizCount == 0 {
		return nil, errs.New(errs.KindNotFound, "Quiz tidak ditemukan")
	}

	// 3) Cek duplikat AKTIF saja (optimasi; partial unique index tetap
	//    jadi penjaga terakhir saat dua attach balapan).
	var dup int64
	if err := tx.Model(&model.QuizQuestionModel{}).
		Where("quiz_question_question_id = ? AND quiz_question_quiz_id = ? AND quiz_question_is_active = ?",
			in.QuestionID, in.QuizID, true).
		Count(&dup).Error; err != nil {
		return nil, err
	}
	if dup > 0 {
		return nil, errs.New(errs.KindConflict, "Soal sudah terpasang aktif pada quiz ini")
	}

	// 4) Order default: max(order)+1 di antara baris aktif quiz (mulai 1).
	order := in.Order
	if order == nil {
		next, err := s.nextOrderTx(tx, in.QuizID)
		if err != nil {
			return nil, err
		}
		order = &next
	}

	m := &model.QuizQuestionModel{
		QuizQuestionQuizID:         in.QuizID,
		QuizQuestionQuestionID:     in.QuestionID,
		QuizQuestionTagID:          in.TagID,
		QuizQuestionOrder:          order,
		QuizQuestionPointsOverride: in.PointsOverride,
		QuizQuestionIsActive:       true,
		QuizQuestionAddedBy:        in.AddedBy,
	}
	if err := tx.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			// kalah balapan dengan attach lain untuk pasangan yang sama
			return nil, errs.New(errs.KindConflict, "Soal sudah terpasang aktif pada quiz ini")
		}
		log.Printf("[AssignmentService] ERROR insert assignment: question_id=%s quiz_id=%s err=%v",
			in.QuestionID, in.QuizID, err)
		return nil, err
	}
	return m, nil
}

func (s *AssignmentService) nextOrderTx(tx *gorm.DB, quizID uuid.UUID) (int, error) {
	var maxOrder *int
	if err := tx.Model(&model.QuizQuestionModel{}).
		Where("quiz_question_quiz_id = ? AND quiz_question_is_active = ?", quizID, true).
		Select("MAX(quiz_question_order)").
		Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	if maxOrder == nil {
		return 1, nil
	}
	return *maxOrder + 1, nil
}

/* =========================================================
   DETACH (soft delete)
========================================================= */

// Detach menonaktifkan assignment aktif untuk (question, quiz).
// Baris tidak dihapus dan order sisa TIDAK dirapatkan (gap boleh).
func (s *AssignmentService) Detach(ctx context.Context, questionID, quizID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&model.QuizQuestionModel{}).
		Where("quiz_question_question_id = ? AND quiz_question_quiz_id = ? AND quiz_question_is_active = ?",
			questionID, quizID, true).
		Update("quiz_question_is_active", false)
	if res.Error != nil {
		log.Printf("[AssignmentService] ERROR detach: question_id=%s quiz_id=%s err=%v",
			questionID, quizID, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.New(errs.KindNotFound, "Assignment aktif tidak ditemukan")
	}
	return nil
}

/* =========================================================
   REORDER
========================================================= */

type ReorderEntry struct {
	QuestionID uuid.UUID
	Order      int
}

// Reorder menerapkan order baru per entri. Entri yang tidak match baris
// aktif mana pun diabaikan (toleran untuk partial reorder dari UI).
func (s *AssignmentService) Reorder(ctx context.Context, quizID uuid.UUID, entries []ReorderEntry) (int, error) {
	updated := 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			res := tx.Model(&model.QuizQuestionModel{}).
				Where("quiz_question_quiz_id = ? AND quiz_question_question_id = ? AND quiz_question_is_active = ?",
					quizID, e.QuestionID, true).
				Update("quiz_question_order", e.Order)
			if res.Error != nil {
				return res.Error
			}
			updated += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

/* =========================================================
   LIST & STATS
========================================================= */

// ListByQuiz mengembalikan assignment aktif sebuah quiz, join soal + tag,
// urut by order (gap dibiarkan, urutan relatif).
func (s *AssignmentService) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]model.QuizQuestionModel, error) {
	var rows []model.QuizQuestionModel
	if err := s.DB.WithContext(ctx).
		Preload("Question").Preload("Tag").
		Where("quiz_question_quiz_id = ? AND quiz_question_is_active = ?", quizID, true).
		Order("quiz_question_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type TagStat struct {
	TagID         uuid.UUID `json:"tag_id" gorm:"column:tag_id"`
	TagName       string    `json:"tag_name" gorm:"column:tag_name"`
	QuestionCount int64     `json:"question_count" gorm:"column:question_count"`
	// AVG SQL otomatis mengecualikan NULL, sesuai semantik agregat standar.
	AvgPoints *float64 `json:"avg_points" gorm:"column:avg_points"`
}

// StatsByTag mengelompokkan assignment aktif per tag provenance.
func (s *AssignmentService) StatsByTag(ctx context.Context, quizID uuid.UUID) ([]TagStat, error) {
	var quizCount int64
	if err := s.DB.WithContext(ctx).Model(&model.QuizModel{}).
		Where("quiz_id = ?", quizID).Count(&quizCount).Error; err != nil {
		return nil, err
	}
	if quizCount == 0 {
		return nil, errs.New(errs.KindNotFound, "Quiz tidak ditemukan")
	}

	var stats []TagStat
	if err := s.DB.WithContext(ctx).
		Table("training_quiz_questions AS a").
		Select(`a.quiz_question_tag_id AS tag_id,
			t.training_tag_name AS tag_name,
			COUNT(*) AS question_count,
			AVG(a.quiz_question_points_override) AS avg_points`).
		Joins("JOIN training_tags t ON t.training_tag_id = a.quiz_question_tag_id").
		Where("a.quiz_question_quiz_id = ? AND a.quiz_question_is_active = ?", quizID, true).
		Group("a.quiz_question_tag_id, t.training_tag_name").
		Order("t.training_tag_name ASC").
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

/* =========================================================
   DB error helpers
========================================================= */

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "duplicate key")
}
