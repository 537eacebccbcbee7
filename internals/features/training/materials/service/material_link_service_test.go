// file: internals/features/training/materials/service/material_link_service_test.go
package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "hrisku_backend/internals/databases"
	"hrisku_backend/internals/features/training/materials/model"
	quizmodel "hrisku_backend/internals/features/training/quizzes/model"
	tagmodel "hrisku_backend/internals/features/training/tags/model"
	"hrisku_backend/internals/helpers/errs"
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

func seedMaterial(t *testing.T, db *gorm.DB, title string, tags ...*tagmodel.TrainingTagModel) *model.MaterialModel {
	t.Helper()
	m := &model.MaterialModel{
		MaterialTitle:     title,
		MaterialCreatedBy: uuid.New(),
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed material %q: %v", title, err)
	}
	for _, tag := range tags {
		if err := db.Create(&model.MaterialTagModel{
			MaterialTagMaterialID: m.MaterialID,
			MaterialTagTagID:      tag.TrainingTagID,
		}).Error; err != nil {
			t.Fatalf("seed material tag: %v", err)
		}
	}
	return m
}

func seedQuiz(t *testing.T, db *gorm.DB, title string, tags ...*tagmodel.TrainingTagModel) *quizmodel.QuizModel {
	t.Helper()
	quiz := &quizmodel.QuizModel{
		QuizTitle:           title,
		QuizDurationMinutes: 20,
		QuizPassingScore:    70,
		QuizStatus:          quizmodel.QuizStatusActive,
		QuizCreatedBy:       uuid.New(),
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("seed quiz %q: %v", title, err)
	}
	for _, tag := range tags {
		if err := db.Create(&quizmodel.QuizTagModel{
			QuizTagQuizID: quiz.QuizID,
			QuizTagTagID:  tag.TrainingTagID,
		}).Error; err != nil {
			t.Fatalf("seed quiz tag: %v", err)
		}
	}
	return quiz
}

func TestLinkQuizSharedTag(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaterialLinkService(db)
	ctx := context.Background()

	shared := seedTag(t, db, "leadership")
	extra := seedTag(t, db, "finance")
	material := seedMaterial(t, db, "Materi Leadership", shared, extra)
	quiz := seedQuiz(t, db, "Quiz Leadership", shared)

	link, err := svc.LinkQuiz(ctx, material.MaterialID, quiz.QuizID, uuid.New())
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if !link.MaterialQuizIsActive {
		t.Fatal("link baru harus aktif")
	}

	quizzes, err := svc.ListQuizzes(ctx, material.MaterialID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quizzes) != 1 || quizzes[0].QuizID != quiz.QuizID {
		t.Fatalf("list quiz = %v, mau 1 quiz terpasang", quizzes)
	}
}

func TestLinkQuizTagMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaterialLinkService(db)

	tagM := seedTag(t, db, "sales")
	tagQ := seedTag(t, db, "engineering")
	material := seedMaterial(t, db, "Materi Sales", tagM)
	quiz := seedQuiz(t, db, "Quiz Engineering", tagQ)

	_, err := svc.LinkQuiz(context.Background(), material.MaterialID, quiz.QuizID, uuid.New())
	if !errs.IsKind(err, errs.KindTagMismatch) {
		t.Fatalf("tag disjoint harus TagMismatch, dapat %v", err)
	}

	// Details membawa daftar nama kedua sisi untuk diagnosa.
	e := err.(*errs.Error)
	mt, _ := e.Details["material_tags"].([]string)
	qt, _ := e.Details["quiz_tags"].([]string)
	if len(mt) != 1 || mt[0] != "sales" {
		t.Fatalf("material_tags = %v, mau [sales]", mt)
	}
	if len(qt) != 1 || qt[0] != "engineering" {
		t.Fatalf("quiz_tags = %v, mau [engineering]", qt)
	}
}

// Sisi tanpa tag kompatibel dengan apa pun — gate hanya menolak saat KEDUA
// sisi bertag dan irisannya kosong.
func TestLinkQuizEmptySideCompatible(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaterialLinkService(db)
	ctx := context.Background()

	tag := seedTag(t, db, "compliance")

	// Material bertag, quiz polos.
	m1 := seedMaterial(t, db, "Materi Bertag", tag)
	q1 := seedQuiz(t, db, "Quiz Polos")
	if _, err := svc.LinkQuiz(ctx, m1.MaterialID, q1.QuizID, uuid.New()); err != nil {
		t.Fatalf("quiz tanpa tag harus kompatibel: %v", err)
	}

	// Material polos, quiz bertag.
	m2 := seedMaterial(t, db, "Materi Polos")
	q2 := seedQuiz(t, db, "Quiz Bertag", tag)
	if _, err := svc.LinkQuiz(ctx, m2.MaterialID, q2.QuizID, uuid.New()); err != nil {
		t.Fatalf("material tanpa tag harus kompatibel: %v", err)
	}
}

func TestLinkQuizDuplicateActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaterialLinkService(db)
	ctx := context.Background()

	tag := seedTag(t, db, "onboard")
	material := seedMaterial(t, db, "Materi", tag)
	quiz := seedQuiz(t, db, "Quiz", tag)

	if _, err := svc.LinkQuiz(ctx, material.MaterialID, quiz.QuizID, uuid.New()); err != nil {
		t.Fatalf("link: %v", err)
	}
	if _, err := svc.LinkQuiz(ctx, material.MaterialID, quiz.QuizID, uuid.New()); !errs.IsKind(err, errs.KindConflict) {
		t.Fatalf("link duplikat aktif harus Conflict, dapat %v", err)
	}

	// Setelah unlink, link baru boleh dibuat lagi.
	if err := svc.UnlinkQuiz(ctx, material.MaterialID, quiz.QuizID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if _, err := svc.LinkQuiz(ctx, material.MaterialID, quiz.QuizID, uuid.New()); err != nil {
		t.Fatalf("re-link setelah unlink: %v", err)
	}
}

// Gate dicek SEKALI saat link dibuat: melepas tag sesudahnya tidak
// membatalkan link yang sudah ada.
func TestLinkSurvivesLaterTagEdits(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaterialLinkService(db)
	ctx := context.Background()

	tag := seedTag(t, db, "shared")
	material := seedMaterial(t, db, "Materi", tag)
	quiz := seedQuiz(t, db, "Quiz", tag)

	if _, err := svc.LinkQuiz(ctx, material.MaterialID, quiz.QuizID, uuid.New()); err != nil {
		t.Fatalf("link: %v", err)
	}

	// Lepas tag dari material — sekarang irisannya kosong.
	if err := db.Where("material_tag_material_id = ?", material.MaterialID).
		Delete(&model.MaterialTagModel{}).Error; err != nil {
		t.Fatalf("hapus tag material: %v", err)
	}

	quizzes, err := svc.ListQuizzes(ctx, material.MaterialID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quizzes) != 1 {
		t.Fatalf("link harus tetap hidup setelah edit tag, dapat %d quiz", len(quizzes))
	}
}

func TestUnlinkQuizNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaterialLinkService(db)

	err := svc.UnlinkQuiz(context.Background(), uuid.New(), uuid.New())
	if !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("unlink tanpa link aktif harus NotFound, dapat %v", err)
	}
}

func TestLinkQuizMissingEntities(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaterialLinkService(db)
	ctx := context.Background()

	tag := seedTag(t, db, "x")
	material := seedMaterial(t, db, "Materi", tag)

	if _, err := svc.LinkQuiz(ctx, uuid.New(), uuid.New(), uuid.New()); !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("material hilang harus NotFound, dapat %v", err)
	}
	if _, err := svc.LinkQuiz(ctx, material.MaterialID, uuid.New(), uuid.New()); !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("quiz hilang harus NotFound, dapat %v", err)
	}
}
