// file: internals/features/training/quizzes/service/service_test_helpers_test.go
package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "hrisku_backend/internals/databases"
	questionmodel "hrisku_backend/internals/features/training/questions/model"
	"hrisku_backend/internals/features/training/quizzes/model"
	tagmodel "hrisku_backend/internals/features/training/tags/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.MigrateAll(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedTag(t *testing.T, db *gorm.DB, name string) *tagmodel.TrainingTagModel {
	t.Helper()
	tag := &tagmodel.TrainingTagModel{TrainingTagName: name}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("seed tag %q: %v", name, err)
	}
	return tag
}

// seedQuestion membuat soal true_false aktif dan memasang tag yang diberikan.
func seedQuestion(t *testing.T, db *gorm.DB, text string, tags ...*tagmodel.TrainingTagModel) *questionmodel.QuestionModel {
	t.Helper()
	q := &questionmodel.QuestionModel{
		QuestionText:     text,
		QuestionType:     questionmodel.QuestionTypeTrueFalse,
		QuestionPoints:   1,
		QuestionIsActive: true,
	}
	if err := q.SetAnswerSingle("true"); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("seed question %q: %v", text, err)
	}
	for _, tag := range tags {
		if err := db.Create(&questionmodel.QuestionTagModel{
			QuestionTagQuestionID: q.QuestionID,
			QuestionTagTagID:      tag.TrainingTagID,
		}).Error; err != nil {
			t.Fatalf("seed question tag: %v", err)
		}
	}
	return q
}

func seedQuiz(t *testing.T, db *gorm.DB, title string, createdBy uuid.UUID) *model.QuizModel {
	t.Helper()
	quiz := &model.QuizModel{
		QuizTitle:           title,
		QuizDurationMinutes: 30,
		QuizPassingScore:    70,
		QuizStatus:          model.QuizStatusDraft,
		QuizCreatedBy:       createdBy,
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("seed quiz %q: %v", title, err)
	}
	return quiz
}
