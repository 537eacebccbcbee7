// file: internals/databases/migrate.go
package database

import (
	"gorm.io/gorm"

	empmodel "hrisku_backend/internals/features/onboarding/employees/model"
	candmodel "hrisku_backend/internals/features/recruitment/candidates/model"
	jobmodel "hrisku_backend/internals/features/recruitment/job_postings/model"
	matmodel "hrisku_backend/internals/features/training/materials/model"
	questionmodel "hrisku_backend/internals/features/training/questions/model"
	quizmodel "hrisku_backend/internals/features/training/quizzes/model"
	tagmodel "hrisku_backend/internals/features/training/tags/model"
)

// MigrateAll menjalankan AutoMigrate + DDL tambahan.
//
// Partial unique index WAJIB ada sebagai penjaga utama invariant
// "maksimal satu assignment aktif per (question, quiz)" — cek
// read-then-insert di app layer bisa balapan (lihat service attach).
// Sintaks WHERE pada index valid di PostgreSQL dan SQLite (test).
func MigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&tagmodel.TrainingTagModel{},
		&questionmodel.QuestionModel{},
		&questionmodel.QuestionTagModel{},
		&quizmodel.QuizModel{},
		&quizmodel.QuizTagModel{},
		&quizmodel.QuizQuestionModel{},
		&matmodel.MaterialModel{},
		&matmodel.MaterialTagModel{},
		&matmodel.MaterialQuizModel{},
		&candmodel.CandidateModel{},
		&jobmodel.JobPostingModel{},
		&empmodel.EmployeeModel{},
		&empmodel.OnboardingTaskModel{},
	); err != nil {
		return err
	}

	ddl := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_quiz_questions_active_pair
		   ON training_quiz_questions (quiz_question_question_id, quiz_question_quiz_id)
		   WHERE quiz_question_is_active`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_material_quizzes_active_pair
		   ON training_material_quizzes (material_quiz_material_id, material_quiz_quiz_id)
		   WHERE material_quiz_is_active`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
