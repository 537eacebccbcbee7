// file: internals/features/training/quizzes/service/assignment_service_test.go
package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"hrisku_backend/internals/features/training/quizzes/model"
	"hrisku_backend/internals/helpers/errs"
)

func TestAttachAndDuplicateConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()
	actor := uuid.New()

	tag := seedTag(t, db, "golang")
	q := seedQuestion(t, db, "Go pakai GC?", tag)
	quiz := seedQuiz(t, db, "Quiz Backend", actor)

	in := AttachInput{
		QuestionID: q.QuestionID,
		QuizID:     quiz.QuizID,
		TagID:      tag.TrainingTagID,
		AddedBy:    actor,
	}
	m, err := svc.Attach(ctx, in)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if m.QuizQuestionOrder == nil || *m.QuizQuestionOrder != 1 {
		t.Fatalf("order pertama harus 1, dapat %v", m.QuizQuestionOrder)
	}
	if !m.QuizQuestionIsActive {
		t.Fatal("assignment baru harus aktif")
	}
	if m.QuizQuestionAddedBy != actor {
		t.Fatalf("added_by = %s, mau %s", m.QuizQuestionAddedBy, actor)
	}

	// Pasangan aktif yang sama ditolak.
	if _, err := svc.Attach(ctx, in); !errs.IsKind(err, errs.KindConflict) {
		t.Fatalf("duplikat aktif harus Conflict, dapat %v", err)
	}
}

func TestAttachRejectsTagNotCarried(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	actor := uuid.New()

	carried := seedTag(t, db, "sql")
	other := seedTag(t, db, "kubernetes")
	q := seedQuestion(t, db, "JOIN vs subquery", carried)
	quiz := seedQuiz(t, db, "Quiz Data", actor)

	_, err := svc.Attach(context.Background(), AttachInput{
		QuestionID: q.QuestionID,
		QuizID:     quiz.QuizID,
		TagID:      other.TrainingTagID,
		AddedBy:    actor,
	})
	if !errs.IsKind(err, errs.KindInvalidTag) {
		t.Fatalf("tag yang tidak dibawa soal harus InvalidTag, dapat %v", err)
	}
}

func TestDetachThenReattach(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()
	actor := uuid.New()

	tag := seedTag(t, db, "security")
	q := seedQuestion(t, db, "Apa itu CSRF?", tag)
	quiz := seedQuiz(t, db, "Quiz Security", actor)

	in := AttachInput{QuestionID: q.QuestionID, QuizID: quiz.QuizID, TagID: tag.TrainingTagID, AddedBy: actor}
	if _, err := svc.Attach(ctx, in); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := svc.Detach(ctx, q.QuestionID, quiz.QuizID); err != nil {
		t.Fatalf("detach: %v", err)
	}
	// Detach kedua: tidak ada baris aktif lagi.
	if err := svc.Detach(ctx, q.QuestionID, quiz.QuizID); !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("detach ulang harus NotFound, dapat %v", err)
	}

	// Pasangan yang sudah nonaktif boleh dipasang lagi.
	if _, err := svc.Attach(ctx, in); err != nil {
		t.Fatalf("re-attach setelah detach: %v", err)
	}

	// Jejak audit tetap: dua baris ledger, satu aktif.
	var total, active int64
	db.Model(&model.QuizQuestionModel{}).
		Where("quiz_question_question_id = ? AND quiz_question_quiz_id = ?", q.QuestionID, quiz.QuizID).
		Count(&total)
	db.Model(&model.QuizQuestionModel{}).
		Where("quiz_question_question_id = ? AND quiz_question_quiz_id = ? AND quiz_question_is_active = ?",
			q.QuestionID, quiz.QuizID, true).
		Count(&active)
	if total != 2 || active != 1 {
		t.Fatalf("ledger: total=%d active=%d, mau 2/1", total, active)
	}
}

// Partial unique index adalah penjaga terakhir: insert langsung (melewati
// service) untuk pasangan aktif yang sudah ada harus ditolak DB.
func TestActivePairUniqueIndexBackstop(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	actor := uuid.New()

	tag := seedTag(t, db, "network")
	q := seedQuestion(t, db, "TCP vs UDP", tag)
	quiz := seedQuiz(t, db, "Quiz Network", actor)

	if _, err := svc.Attach(context.Background(), AttachInput{
		QuestionID: q.QuestionID, QuizID: quiz.QuizID, TagID: tag.TrainingTagID, AddedBy: actor,
	}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	dup := &model.QuizQuestionModel{
		QuizQuestionQuizID:     quiz.QuizID,
		QuizQuestionQuestionID: q.QuestionID,
		QuizQuestionTagID:      tag.TrainingTagID,
		QuizQuestionIsActive:   true,
		QuizQuestionAddedBy:    actor,
	}
	if err := db.Create(dup).Error; err == nil {
		t.Fatal("insert langsung pasangan aktif duplikat harus ditolak index")
	}

	// Baris nonaktif untuk pasangan yang sama tetap boleh.
	inactive := &model.QuizQuestionModel{
		QuizQuestionQuizID:     quiz.QuizID,
		QuizQuestionQuestionID: q.QuestionID,
		QuizQuestionTagID:      tag.TrainingTagID,
		QuizQuestionIsActive:   false,
		QuizQuestionAddedBy:    actor,
	}
	if err := db.Create(inactive).Error; err != nil {
		t.Fatalf("baris nonaktif harusnya lolos index parsial: %v", err)
	}
}

// Baris ledger nonaktif harus tersimpan nonaktif apa adanya — insert
// historis tidak boleh "dipromosikan" jadi aktif, dan tidak boleh membuat
// attach sah untuk pasangan yang sama dianggap duplikat.
func TestInsertInactiveRowStaysInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	actor := uuid.New()

	tag := seedTag(t, db, "history")
	q := seedQuestion(t, db, "soal lama", tag)
	quiz := seedQuiz(t, db, "Quiz History", actor)

	old := &model.QuizQuestionModel{
		QuizQuestionQuizID:     quiz.QuizID,
		QuizQuestionQuestionID: q.QuestionID,
		QuizQuestionTagID:      tag.TrainingTagID,
		QuizQuestionIsActive:   false,
		QuizQuestionAddedBy:    actor,
	}
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("insert baris nonaktif: %v", err)
	}

	var stored model.QuizQuestionModel
	if err := db.First(&stored, "quiz_question_id = ?", old.QuizQuestionID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.QuizQuestionIsActive {
		t.Fatal("baris nonaktif tersimpan sebagai aktif")
	}

	// Pasangan yang sama harus bisa dipasang: tidak ada baris aktif.
	if _, err := svc.Attach(context.Background(), AttachInput{
		QuestionID: q.QuestionID, QuizID: quiz.QuizID, TagID: tag.TrainingTagID, AddedBy: actor,
	}); err != nil {
		t.Fatalf("attach setelah baris historis nonaktif: %v", err)
	}
}

// Dua attach serentak untuk pasangan yang sama: tepat satu menang, ledger
// berakhir dengan satu baris aktif.
func TestConcurrentAttachSamePair(t *testing.T) {
	db := newTestDB(t)
	// Satu koneksi supaya sqlite in-memory tidak mengembalikan error lock;
	// kedua goroutine tetap balapan di level service.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	svc := NewAssignmentService(db)
	actor := uuid.New()

	tag := seedTag(t, db, "race")
	q := seedQuestion(t, db, "soal rebutan", tag)
	quiz := seedQuiz(t, db, "Quiz Race", actor)

	in := AttachInput{
		QuestionID: q.QuestionID, QuizID: quiz.QuizID, TagID: tag.TrainingTagID, AddedBy: actor,
	}

	errsCh := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Attach(context.Background(), in)
			errsCh <- err
		}()
	}
	wg.Wait()
	close(errsCh)

	wins, losses := 0, 0
	for err := range errsCh {
		if err == nil {
			wins++
			continue
		}
		losses++
		if !errs.IsKind(err, errs.KindConflict) {
			t.Fatalf("attach yang kalah harus Conflict, dapat %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("wins=%d losses=%d, mau tepat satu pemenang", wins, losses)
	}

	var active int64
	db.Model(&model.QuizQuestionModel{}).
		Where("quiz_question_question_id = ? AND quiz_question_quiz_id = ? AND quiz_question_is_active = ?",
			q.QuestionID, quiz.QuizID, true).
		Count(&active)
	if active != 1 {
		t.Fatalf("baris aktif = %d, mau 1", active)
	}
}

func TestOrderKeepsGapsAfterDetach(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()
	actor := uuid.New()

	tag := seedTag(t, db, "devops")
	quiz := seedQuiz(t, db, "Quiz DevOps", actor)

	q1 := seedQuestion(t, db, "soal 1", tag)
	q2 := seedQuestion(t, db, "soal 2", tag)
	q3 := seedQuestion(t, db, "soal 3", tag)
	for _, q := range []uuid.UUID{q1.QuestionID, q2.QuestionID, q3.QuestionID} {
		if _, err := svc.Attach(ctx, AttachInput{
			QuestionID: q, QuizID: quiz.QuizID, TagID: tag.TrainingTagID, AddedBy: actor,
		}); err != nil {
			t.Fatalf("attach: %v", err)
		}
	}

	// Lepas soal di tengah; order 1 dan 3 TIDAK dirapatkan.
	if err := svc.Detach(ctx, q2.QuestionID, quiz.QuizID); err != nil {
		t.Fatalf("detach: %v", err)
	}

	rows, err := svc.ListByQuiz(ctx, quiz.QuizID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("isi aktif = %d, mau 2", len(rows))
	}
	if *rows[0].QuizQuestionOrder != 1 || *rows[1].QuizQuestionOrder != 3 {
		t.Fatalf("order harus [1 3], dapat [%d %d]",
			*rows[0].QuizQuestionOrder, *rows[1].QuizQuestionOrder)
	}

	// Attach berikutnya lanjut dari max order aktif (3), bukan mengisi gap.
	q4 := seedQuestion(t, db, "soal 4", tag)
	m, err := svc.Attach(ctx, AttachInput{
		QuestionID: q4.QuestionID, QuizID: quiz.QuizID, TagID: tag.TrainingTagID, AddedBy: actor,
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if *m.QuizQuestionOrder != 4 {
		t.Fatalf("order lanjutan = %d, mau 4", *m.QuizQuestionOrder)
	}
}

func TestReorderIgnoresUnknownEntries(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()
	actor := uuid.New()

	tag := seedTag(t, db, "culture")
	quiz := seedQuiz(t, db, "Quiz Culture", actor)
	q1 := seedQuestion(t, db, "soal A", tag)
	q2 := seedQuestion(t, db, "soal B", tag)
	for _, q := range []uuid.UUID{q1.QuestionID, q2.QuestionID} {
		if _, err := svc.Attach(ctx, AttachInput{
			QuestionID: q, QuizID: quiz.QuizID, TagID: tag.TrainingTagID, AddedBy: actor,
		}); err != nil {
			t.Fatalf("attach: %v", err)
		}
	}

	updated, err := svc.Reorder(ctx, quiz.QuizID, []ReorderEntry{
		{QuestionID: q1.QuestionID, Order: 2},
		{QuestionID: q2.QuestionID, Order: 1},
		{QuestionID: uuid.New(), Order: 9}, // tidak match baris mana pun
	})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if updated != 2 {
		t.Fatalf("updated = %d, mau 2", updated)
	}

	rows, err := svc.ListByQuiz(ctx, quiz.QuizID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows[0].QuizQuestionQuestionID != q2.QuestionID {
		t.Fatal("setelah reorder q2 harus di posisi pertama")
	}
}

func TestStatsByTagAveragesIgnoreNullOverrides(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()
	actor := uuid.New()

	tag := seedTag(t, db, "aggregates")
	quiz := seedQuiz(t, db, "Quiz Stats", actor)

	q1 := seedQuestion(t, db, "s1", tag)
	q2 := seedQuestion(t, db, "s2", tag)
	q3 := seedQuestion(t, db, "s3", tag)

	two, four := 2.0, 4.0
	cases := []struct {
		qid      uuid.UUID
		override *float64
	}{
		{q1.QuestionID, &two},
		{q2.QuestionID, nil},
		{q3.QuestionID, &four},
	}
	for _, cse := range cases {
		if _, err := svc.Attach(ctx, AttachInput{
			QuestionID:     cse.qid,
			QuizID:         quiz.QuizID,
			TagID:          tag.TrainingTagID,
			PointsOverride: cse.override,
			AddedBy:        actor,
		}); err != nil {
			t.Fatalf("attach: %v", err)
		}
	}

	stats, err := svc.StatsByTag(ctx, quiz.QuizID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("grup tag = %d, mau 1", len(stats))
	}
	s := stats[0]
	if s.QuestionCount != 3 {
		t.Fatalf("count = %d, mau 3 (NULL tetap dihitung)", s.QuestionCount)
	}
	// AVG mengecualikan NULL: (2+4)/2 = 3.
	if s.AvgPoints == nil || *s.AvgPoints != 3 {
		t.Fatalf("avg = %v, mau 3", s.AvgPoints)
	}
}

func TestStatsByTagQuizNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)

	if _, err := svc.StatsByTag(context.Background(), uuid.New()); !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("quiz hilang harus NotFound, dapat %v", err)
	}
}

func TestAttachValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db)
	ctx := context.Background()

	tag := seedTag(t, db, "misc")
	q := seedQuestion(t, db, "soal", tag)
	quiz := seedQuiz(t, db, "Quiz", uuid.New())

	// actor wajib
	if _, err := svc.Attach(ctx, AttachInput{
		QuestionID: q.QuestionID, QuizID: quiz.QuizID, TagID: tag.TrainingTagID,
	}); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("actor kosong harus Validation, dapat %v", err)
	}

	// points_override harus positif
	zero := 0.0
	if _, err := svc.Attach(ctx, AttachInput{
		QuestionID: q.QuestionID, QuizID: quiz.QuizID, TagID: tag.TrainingTagID,
		PointsOverride: &zero, AddedBy: uuid.New(),
	}); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("override 0 harus Validation, dapat %v", err)
	}
}
