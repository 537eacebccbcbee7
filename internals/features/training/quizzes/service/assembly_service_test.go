// file: internals/features/training/quizzes/service/assembly_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"hrisku_backend/internals/features/training/quizzes/model"
	"hrisku_backend/internals/helpers/errs"
)

func TestAutoAttachFillsUpToMaxPerTag(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssemblyService(db)
	ctx := context.Background()
	actor := uuid.New()

	tag := seedTag(t, db, "go-basics")
	quiz := seedQuiz(t, db, "Quiz Basics", actor)
	for i := 0; i < 5; i++ {
		seedQuestion(t, db, "soal", tag)
	}

	res, err := svc.AutoAttach(ctx, AutoAttachInput{
		QuizID:    quiz.QuizID,
		TagIDs:    []uuid.UUID{tag.TrainingTagID},
		MaxPerTag: 3,
		AddedBy:   actor,
	})
	if err != nil {
		t.Fatalf("auto attach: %v", err)
	}
	if res.TotalAdded != 3 || res.TotalFailed != 0 {
		t.Fatalf("added=%d failed=%d, mau 3/0", res.TotalAdded, res.TotalFailed)
	}

	// Jalankan lagi: 2 sisa kandidat masuk, yang sudah terpasang tersaring.
	res, err = svc.AutoAttach(ctx, AutoAttachInput{
		QuizID:    quiz.QuizID,
		TagIDs:    []uuid.UUID{tag.TrainingTagID},
		MaxPerTag: 10,
		AddedBy:   actor,
	})
	if err != nil {
		t.Fatalf("auto attach kedua: %v", err)
	}
	if res.TotalAdded != 2 {
		t.Fatalf("added kedua = %d, mau 2", res.TotalAdded)
	}
}

// Kandidat diambil urut ascending question_id, jadi dua run dengan data sama
// memilih soal yang sama.
func TestAutoAttachDeterministicSelection(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssemblyService(db)
	ctx := context.Background()
	actor := uuid.New()

	tag := seedTag(t, db, "ordered")
	q1 := seedQuestion(t, db, "a", tag)
	q2 := seedQuestion(t, db, "b", tag)
	q3 := seedQuestion(t, db, "c", tag)

	ids := []uuid.UUID{q1.QuestionID, q2.QuestionID, q3.QuestionID}
	lowest := ids[0]
	for _, id := range ids[1:] {
		if id.String() < lowest.String() {
			lowest = id
		}
	}

	quiz := seedQuiz(t, db, "Quiz Det", actor)
	res, err := svc.AutoAttach(ctx, AutoAttachInput{
		QuizID:    quiz.QuizID,
		TagIDs:    []uuid.UUID{tag.TrainingTagID},
		MaxPerTag: 1,
		AddedBy:   actor,
	})
	if err != nil {
		t.Fatalf("auto attach: %v", err)
	}
	if len(res.AddedQuestions) != 1 || res.AddedQuestions[0] != lowest {
		t.Fatalf("harus memilih question_id terkecil %s, dapat %v", lowest, res.AddedQuestions)
	}
}

func TestAutoAttachUnknownTag(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssemblyService(db)
	actor := uuid.New()
	quiz := seedQuiz(t, db, "Quiz", actor)

	_, err := svc.AutoAttach(context.Background(), AutoAttachInput{
		QuizID:  quiz.QuizID,
		TagIDs:  []uuid.UUID{uuid.New()},
		AddedBy: actor,
	})
	if !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("tag tidak dikenal harus NotFound, dapat %v", err)
	}
}

// Pool = UNION soal pembawa tag, bukan penjumlahan per tag: soal yang membawa
// dua tag yang diminta dihitung sekali.
func TestAssemblePoolIsUnionNotSum(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssemblyService(db)
	actor := uuid.New()

	tagA := seedTag(t, db, "tag-a")
	tagB := seedTag(t, db, "tag-b")

	// 4 soal hanya tag A, 3 soal dengan KEDUA tag → union 7, multiset 10.
	for i := 0; i < 4; i++ {
		seedQuestion(t, db, "only-a", tagA)
	}
	for i := 0; i < 3; i++ {
		seedQuestion(t, db, "both", tagA, tagB)
	}

	_, err := svc.AssembleRandomQuiz(context.Background(), AssembleQuizInput{
		Title:           "Quiz Union",
		DurationMinutes: 20,
		PassingScore:    60,
		TagIDs:          []uuid.UUID{tagA.TrainingTagID, tagB.TrainingTagID},
		TotalCount:      10,
		Creator:         actor,
	})
	if !errs.IsKind(err, errs.KindInsufficientQuestions) {
		t.Fatalf("pool 7 < 10 harus InsufficientQuestions, dapat %v", err)
	}
	var e *errs.Error
	if !asErr(err, &e) {
		t.Fatalf("harus *errs.Error, dapat %T", err)
	}
	if e.Details["found"] != 7 || e.Details["needed"] != 10 {
		t.Fatalf("details = %v, mau found=7 needed=10", e.Details)
	}
}

// Kegagalan cek pool membatalkan SELURUH transaksi: quiz dan tag link yang
// sudah sempat dibuat ikut hilang.
func TestAssembleRollsBackOnInsufficientPool(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssemblyService(db)
	actor := uuid.New()

	tag := seedTag(t, db, "sparse")
	seedQuestion(t, db, "satu-satunya", tag)

	_, err := svc.AssembleRandomQuiz(context.Background(), AssembleQuizInput{
		Title:           "Quiz Gagal",
		DurationMinutes: 15,
		PassingScore:    50,
		TagIDs:          []uuid.UUID{tag.TrainingTagID},
		TotalCount:      5,
		Creator:         actor,
	})
	if !errs.IsKind(err, errs.KindInsufficientQuestions) {
		t.Fatalf("mau InsufficientQuestions, dapat %v", err)
	}

	var quizCount, tagLinkCount int64
	db.Model(&model.QuizModel{}).Count(&quizCount)
	db.Model(&model.QuizTagModel{}).Count(&tagLinkCount)
	if quizCount != 0 || tagLinkCount != 0 {
		t.Fatalf("rollback bocor: quizzes=%d quiz_tags=%d, mau 0/0", quizCount, tagLinkCount)
	}
}

func TestAssembleNoCandidates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssemblyService(db)

	tag := seedTag(t, db, "empty-pool")

	_, err := svc.AssembleRandomQuiz(context.Background(), AssembleQuizInput{
		Title:           "Quiz Kosong",
		DurationMinutes: 10,
		PassingScore:    50,
		TagIDs:          []uuid.UUID{tag.TrainingTagID},
		TotalCount:      1,
		Creator:         uuid.New(),
	})
	if !errs.IsKind(err, errs.KindNoCandidates) {
		t.Fatalf("pool kosong harus NoCandidates, dapat %v", err)
	}
}

// Skenario minimum: 1 soal, 1 tag, minta 1 → quiz jadi, satu assignment,
// order mulai dari 1.
func TestAssembleSingleQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssemblyService(db)
	actor := uuid.New()

	tag := seedTag(t, db, "solo")
	q := seedQuestion(t, db, "soal tunggal", tag)

	res, err := svc.AssembleRandomQuiz(context.Background(), AssembleQuizInput{
		Title:           "Quiz Solo",
		DurationMinutes: 10,
		PassingScore:    80,
		TagIDs:          []uuid.UUID{tag.TrainingTagID},
		TotalCount:      1,
		Creator:         actor,
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if res.Quiz.QuizStatus != model.QuizStatusDraft {
		t.Fatalf("quiz hasil rakit harus draft, dapat %s", res.Quiz.QuizStatus)
	}
	if res.Quiz.QuizCreatedBy != actor {
		t.Fatalf("created_by = %s, mau %s", res.Quiz.QuizCreatedBy, actor)
	}
	if len(res.Assignments) != 1 {
		t.Fatalf("assignments = %d, mau 1", len(res.Assignments))
	}
	a := res.Assignments[0]
	if a.QuizQuestionQuestionID != q.QuestionID {
		t.Fatal("assignment harus menunjuk soal yang diseed")
	}
	if a.QuizQuestionOrder == nil || *a.QuizQuestionOrder != 1 {
		t.Fatalf("order = %v, mau 1", a.QuizQuestionOrder)
	}
	if a.QuizQuestionTagID != tag.TrainingTagID {
		t.Fatal("tag provenance harus tag yang diminta")
	}
	if a.QuizQuestionAddedBy != actor {
		t.Fatal("added_by ledger harus creator")
	}
}

func TestAssembleOrdersAreContiguousPermutation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssemblyService(db)
	actor := uuid.New()

	tag := seedTag(t, db, "perm")
	for i := 0; i < 6; i++ {
		seedQuestion(t, db, "soal", tag)
	}

	res, err := svc.AssembleRandomQuiz(context.Background(), AssembleQuizInput{
		Title:           "Quiz Permutasi",
		DurationMinutes: 30,
		PassingScore:    70,
		TagIDs:          []uuid.UUID{tag.TrainingTagID},
		TotalCount:      4,
		Creator:         actor,
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(res.Assignments) != 4 {
		t.Fatalf("assignments = %d, mau 4", len(res.Assignments))
	}

	seenOrder := map[int]bool{}
	seenQuestion := map[uuid.UUID]bool{}
	for _, a := range res.Assignments {
		if a.QuizQuestionOrder == nil {
			t.Fatal("order tidak boleh nil")
		}
		seenOrder[*a.QuizQuestionOrder] = true
		if seenQuestion[a.QuizQuestionQuestionID] {
			t.Fatal("soal tidak boleh terpilih dua kali")
		}
		seenQuestion[a.QuizQuestionQuestionID] = true
	}
	for want := 1; want <= 4; want++ {
		if !seenOrder[want] {
			t.Fatalf("order %d hilang; order harus permutasi 1..4", want)
		}
	}
}

func TestAssembleInputValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssemblyService(db)
	ctx := context.Background()
	tag := seedTag(t, db, "valid")

	base := AssembleQuizInput{
		Title:           "Quiz",
		DurationMinutes: 10,
		PassingScore:    50,
		TagIDs:          []uuid.UUID{tag.TrainingTagID},
		TotalCount:      1,
		Creator:         uuid.New(),
	}

	bad := base
	bad.Title = "  "
	if _, err := svc.AssembleRandomQuiz(ctx, bad); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("judul kosong harus Validation, dapat %v", err)
	}

	bad = base
	bad.DurationMinutes = 0
	if _, err := svc.AssembleRandomQuiz(ctx, bad); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("durasi 0 harus Validation, dapat %v", err)
	}

	bad = base
	bad.PassingScore = 101
	if _, err := svc.AssembleRandomQuiz(ctx, bad); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("passing 101 harus Validation, dapat %v", err)
	}

	bad = base
	bad.TagIDs = nil
	if _, err := svc.AssembleRandomQuiz(ctx, bad); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("tanpa tag harus Validation, dapat %v", err)
	}

	bad = base
	bad.Creator = uuid.Nil
	if _, err := svc.AssembleRandomQuiz(ctx, bad); !errs.IsKind(err, errs.KindValidation) {
		t.Fatalf("creator kosong harus Validation, dapat %v", err)
	}
}

func asErr(err error, target **errs.Error) bool {
	e, ok := err.(*errs.Error)
	if ok {
		*target = e
	}
	return ok
}
