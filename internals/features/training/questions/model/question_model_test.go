// file: internals/features/training/questions/model/question_model_test.go
package model

import (
	"testing"
)

func TestValidateShapeTrueFalse(t *testing.T) {
	q := &QuestionModel{
		QuestionText:   "Cuti tahunan bisa di-carry over?",
		QuestionType:   QuestionTypeTrueFalse,
		QuestionPoints: 1,
	}
	if err := q.SetAnswerSingle("True"); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if err := q.ValidateShape(); err != nil {
		t.Fatalf("true_false valid harus lolos: %v", err)
	}

	// Jawaban selain true/false ditolak.
	if err := q.SetAnswerSingle("ya"); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if err := q.ValidateShape(); err == nil {
		t.Fatal("jawaban 'ya' harus ditolak untuk true_false")
	}

	// true_false tidak boleh punya options.
	if err := q.SetChoices([]string{"true", "false"}); err == nil {
		t.Fatal("SetChoices pada true_false harus ditolak")
	}
}

func TestValidateShapeMultipleChoice(t *testing.T) {
	q := &QuestionModel{
		QuestionText:   "Berapa hari kerja per minggu?",
		QuestionType:   QuestionTypeMultipleChoice,
		QuestionPoints: 2,
	}
	if err := q.SetChoices([]string{"4", "5", "6"}); err != nil {
		t.Fatalf("set choices: %v", err)
	}
	if err := q.SetAnswerSingle("5"); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if err := q.ValidateShape(); err != nil {
		t.Fatalf("multiple_choice valid harus lolos: %v", err)
	}

	// Jawaban harus salah satu opsi.
	if err := q.SetAnswerSingle("7"); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if err := q.ValidateShape(); err == nil {
		t.Fatal("jawaban di luar options harus ditolak")
	}

	// Minimal 2 opsi.
	if err := q.SetChoices([]string{"5"}); err == nil {
		t.Fatal("satu opsi saja harus ditolak")
	}
}

func TestValidateShapeMultipleResponse(t *testing.T) {
	q := &QuestionModel{
		QuestionText:   "Mana saja benefit karyawan tetap?",
		QuestionType:   QuestionTypeMultipleResponse,
		QuestionPoints: 3,
	}
	if err := q.SetChoices([]string{"BPJS", "THR", "Saham", "Cuti"}); err != nil {
		t.Fatalf("set choices: %v", err)
	}
	if err := q.SetAnswerMultiple([]string{"BPJS", "THR", "THR"}); err != nil {
		t.Fatalf("set answers: %v", err)
	}
	if err := q.ValidateShape(); err != nil {
		t.Fatalf("multiple_response valid harus lolos: %v", err)
	}

	// Duplikat jawaban di-dedup saat disimpan.
	answers, err := q.AnswerSet()
	if err != nil {
		t.Fatalf("answer set: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("jawaban duplikat harus di-dedup, dapat %v", answers)
	}

	// Jawaban di luar options ditolak.
	if err := q.SetAnswerMultiple([]string{"BPJS", "Mobil Dinas"}); err != nil {
		t.Fatalf("set answers: %v", err)
	}
	if err := q.ValidateShape(); err == nil {
		t.Fatal("jawaban di luar options harus ditolak")
	}

	// SetAnswerSingle tidak berlaku untuk multiple_response.
	if err := q.SetAnswerSingle("BPJS"); err == nil {
		t.Fatal("SetAnswerSingle pada multiple_response harus ditolak")
	}
}

func TestValidateShapeRejectsBadBasics(t *testing.T) {
	base := func() *QuestionModel {
		q := &QuestionModel{
			QuestionText:   "Soal?",
			QuestionType:   QuestionTypeTrueFalse,
			QuestionPoints: 1,
		}
		_ = q.SetAnswerSingle("true")
		return q
	}

	q := base()
	q.QuestionText = "   "
	if err := q.ValidateShape(); err == nil {
		t.Fatal("text kosong harus ditolak")
	}

	q = base()
	q.QuestionPoints = 0
	if err := q.ValidateShape(); err == nil {
		t.Fatal("points 0 harus ditolak")
	}

	q = base()
	q.QuestionPoints = -1
	if err := q.ValidateShape(); err == nil {
		t.Fatal("points negatif harus ditolak")
	}

	q = base()
	q.QuestionType = "essay"
	if err := q.ValidateShape(); err == nil {
		t.Fatal("tipe di luar enum harus ditolak")
	}
}
