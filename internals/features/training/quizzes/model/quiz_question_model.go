// file: internals/features/training/quizzes/model/quiz_question_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	qmodel "hrisku_backend/internals/features/training/questions/model"
	tagmodel "hrisku_backend/internals/features/training/tags/model"
)

/* ============================================================================
   MODEL: training_quiz_questions (ledger penugasan soal → quiz via tag)

   Catatan:
   - Satu baris = soal X masuk quiz Y karena tag Z. Kolom tag merekam
     provenance (kenapa soal lolos seleksi), bukan fakta independen.
   - Soft delete = is_active=false; baris tidak pernah dihapus supaya
     jejak audit (added_at/added_by) tetap ada.
   - Keunikan pasangan (question_id, quiz_id) untuk baris AKTIF dijaga oleh
     partial unique index di DDL (lihat databases/migrate.go); cek di app
     layer hanya optimasi, bukan sumber kebenaran.
   - Order berlaku per quiz dan boleh bolong (relative, bukan contiguous).
============================================================================ */

type QuizQuestionModel struct {
	QuizQuestionID             uuid.UUID `gorm:"column:quiz_question_id;type:uuid;primaryKey" json:"quiz_question_id"`
	QuizQuestionQuizID         uuid.UUID `gorm:"column:quiz_question_quiz_id;type:uuid;not null;index:idx_quiz_questions_quiz" json:"quiz_question_quiz_id"`
	QuizQuestionQuestionID     uuid.UUID `gorm:"column:quiz_question_question_id;type:uuid;not null;index:idx_quiz_questions_question" json:"quiz_question_question_id"`
	QuizQuestionTagID          uuid.UUID `gorm:"column:quiz_question_tag_id;type:uuid;not null;index:idx_quiz_questions_tag" json:"quiz_question_tag_id"`
	QuizQuestionOrder          *int      `gorm:"column:quiz_question_order" json:"quiz_question_order,omitempty"`
	QuizQuestionPointsOverride *float64  `gorm:"column:quiz_question_points_override;type:numeric(6,2)" json:"quiz_question_points_override,omitempty"`
	// Tanpa tag default gorm — GORM men-skip bool false saat INSERT kalau
	// kolomnya ber-default, sehingga baris nonaktif tersimpan aktif.
	QuizQuestionIsActive bool `gorm:"column:quiz_question_is_active;not null;index:idx_quiz_questions_active" json:"quiz_question_is_active"`

	QuizQuestionAddedAt time.Time `gorm:"column:quiz_question_added_at;autoCreateTime" json:"quiz_question_added_at"`
	QuizQuestionAddedBy uuid.UUID `gorm:"column:quiz_question_added_by;type:uuid;not null" json:"quiz_question_added_by"`

	Question *qmodel.QuestionModel      `gorm:"foreignKey:QuizQuestionQuestionID;references:QuestionID" json:"question,omitempty"`
	Tag      *tagmodel.TrainingTagModel `gorm:"foreignKey:QuizQuestionTagID;references:TrainingTagID" json:"tag,omitempty"`
}

func (QuizQuestionModel) TableName() string { return "training_quiz_questions" }

func (m *QuizQuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuizQuestionID == uuid.Nil {
		m.QuizQuestionID = uuid.New()
	}
	return nil
}
