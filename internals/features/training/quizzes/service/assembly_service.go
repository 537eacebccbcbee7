// file: internals/features/training/quizzes/service/assembly_service.go
package service

import (
	"context"
	"log"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hrisku_backend/internals/features/training/quizzes/model"
	tagmodel "hrisku_backend/internals/features/training/tags/model"
	"hrisku_backend/internals/helpers/errs"
)

/* =========================================================
   SERVICE: perakitan quiz (bulk & random)
========================================================= */

type AssemblyService struct {
	DB     *gorm.DB
	Ledger *AssignmentService
}

func NewAssemblyService(db *gorm.DB) *AssemblyService {
	return &AssemblyService{DB: db, Ledger: NewAssignmentService(db)}
}

/* =========================================================
   AUTO-ATTACH BY TAGS (bulk, per-item error isolation)
========================================================= */

const DefaultMaxPerTag = 10

type AutoAttachInput struct {
	QuizID    uuid.UUID
	TagIDs    []uuid.UUID
	MaxPerTag int
	AddedBy   uuid.UUID
}

type AutoAttachItemError struct {
	QuestionID uuid.UUID `json:"question_id"`
	TagID      uuid.UUID `json:"tag_id"`
	Message    string    `json:"message"`
}

type AutoAttachResult struct {
	AddedQuestions []uuid.UUID           `json:"added_questions"`
	Errors         []AutoAttachItemError `json:"errors"`
	TotalAdded     int                   `json:"total_added"`
	TotalFailed    int                   `json:"total_failed"`
}

// AutoAttach memasang sampai MaxPerTag soal per tag ke quiz. Kandidat per
// tag: soal aktif pembawa tag yang belum punya assignment aktif di quiz
// ini, urut ascending question_id supaya hasil reproducible. Kegagalan
// per soal diisolasi — satu soal gagal tidak membatalkan batch.
func (s *AssemblyService) AutoAttach(ctx context.Context, in AutoAttachInput) (*AutoAttachResult, error) {
	if in.AddedBy == uuid.Nil {
		return nil, errs.New(errs.KindValidation, "added_by wajib diisi")
	}
	if len(in.TagIDs) == 0 {
		return nil, errs.New(errs.KindValidation, "tag_ids wajib diisi")
	}
	maxPerTag := in.MaxPerTag
	if maxPerTag <= 0 {
		maxPerTag = DefaultMaxPerTag
	}

	db := s.DB.WithContext(ctx)

	var quizCount int64
	if err := db.Model(&model.QuizModel{}).
		Where("quiz_id = ?", in.QuizID).Count(&quizCount).Error; err != nil {
		return nil, err
	}
	if quizCount == 0 {
		return nil, errs.New(errs.KindNotFound, "Quiz tidak ditemukan")
	}
	if err := s.ensureTagsExist(db, in.TagIDs); err != nil {
		return nil, err
	}

	res := &AutoAttachResult{
		AddedQuestions: []uuid.UUID{},
		Errors:         []AutoAttachItemError{},
	}

	for _, tagID := range in.TagIDs {
		// Query ulang tiap tag: soal yang baru saja terpasang lewat tag
		// sebelumnya otomatis tersaring oleh NOT EXISTS.
		var candidateIDs []uuid.UUID
		if err := db.
			Table("training_questions AS q").
			Joins("JOIN training_question_tags qt ON qt.question_tag_question_id = q.question_id").
			Where("qt.question_tag_tag_id = ?", tagID).
			Where("q.question_is_active = ? AND q.question_deleted_at IS NULL", true).
			Where(`NOT EXISTS (
				SELECT 1 FROM training_quiz_questions a
				WHERE a.quiz_question_question_id = q.question_id
				  AND a.quiz_question_quiz_id = ?
				  AND a.quiz_question_is_active = ?)`, in.QuizID, true).
			Order("q.question_id ASC").
			Limit(maxPerTag).
			Pluck("q.question_id", &candidateIDs).Error; err != nil {
			log.Printf("[AssemblyService] ERROR query candidates: quiz_id=%s tag_id=%s err=%v",
				in.QuizID, tagID, err)
			return nil, err
		}

		for _, qid := range candidateIDs {
			_, err := s.Ledger.Attach(ctx, AttachInput{
				QuestionID: qid,
				QuizID:     in.QuizID,
				TagID:      tagID,
				AddedBy:    in.AddedBy,
			})
			if err != nil {
				res.Errors = append(res.Errors, AutoAttachItemError{
					QuestionID: qid,
					TagID:      tagID,
					Message:    err.Error(),
				})
				continue
			}
			res.AddedQuestions = append(res.AddedQuestions, qid)
		}
	}

	res.TotalAdded = len(res.AddedQuestions)
	res.TotalFailed = len(res.Errors)
	return res, nil
}

/* =========================================================
   RANDOM QUIZ ASSEMBLY (all-or-nothing)
========================================================= */

type AssembleQuizInput struct {
	Title           string
	Description     *string
	DurationMinutes int
	PassingScore    float64
	TagIDs          []uuid.UUID
	TotalCount      int
	// Creator dipakai sebagai quiz_created_by sekaligus added_by ledger.
	Creator uuid.UUID
}

type AssembledQuiz struct {
	Quiz        model.QuizModel          `json:"quiz"`
	Assignments []model.QuizQuestionModel `json:"assignments"`
	QuestionIDs []uuid.UUID              `json:"question_ids"`
}

// AssembleRandomQuiz membuat quiz baru lalu mengisinya dengan TotalCount
// soal acak dari pool: UNION (bukan multiset) soal aktif pembawa salah
// satu tag — soal dengan dua tag yang diminta dihitung sekali. Seluruh
// operasi satu transaksi: gagal di cek pool → quiz + tag link ikut batal,
// tidak pernah ada quiz setengah terisi yang terlihat reader lain.
func (s *AssemblyService) AssembleRandomQuiz(ctx context.Context, in AssembleQuizInput) (*AssembledQuiz, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errs.New(errs.KindValidation, "quiz_title wajib diisi")
	}
	if in.DurationMinutes <= 0 {
		return nil, errs.New(errs.KindValidation, "quiz_duration_minutes harus > 0")
	}
	if in.PassingScore < 0 || in.PassingScore > 100 {
		return nil, errs.New(errs.KindValidation, "quiz_passing_score harus 0..100")
	}
	if in.TotalCount <= 0 {
		return nil, errs.New(errs.KindValidation, "question_count harus > 0")
	}
	if len(in.TagIDs) == 0 {
		return nil, errs.New(errs.KindValidation, "tag_ids wajib diisi")
	}
	if in.Creator == uuid.Nil {
		return nil, errs.New(errs.KindValidation, "creator wajib diisi")
	}

	db := s.DB.WithContext(ctx)
	if err := s.ensureTagsExist(db, in.TagIDs); err != nil {
		return nil, err
	}

	var quizID uuid.UUID
	selected := []uuid.UUID{}

	err := db.Transaction(func(tx *gorm.DB) error {
		quiz := &model.QuizModel{
			QuizTitle:           strings.TrimSpace(in.Title),
			QuizDescription:     in.Description,
			QuizDurationMinutes: in.DurationMinutes,
			QuizPassingScore:    in.PassingScore,
			QuizStatus:          model.QuizStatusDraft,
			QuizCreatedBy:       in.Creator,
		}
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		quizID = quiz.QuizID

		// Tag level quiz (terpisah dari provenance di ledger).
		for _, tagID := range in.TagIDs {
			if err := tx.Create(&model.QuizTagModel{
				QuizTagQuizID: quiz.QuizID,
				QuizTagTagID:  tagID,
			}).Error; err != nil {
				return err
			}
		}

		pool, err := s.candidatePoolTx(tx, in.TagIDs)
		if err != nil {
			return err
		}
		if len(pool) == 0 {
			return errs.New(errs.KindNoCandidates, "Tidak ada soal aktif yang membawa tag yang diminta")
		}
		if len(pool) < in.TotalCount {
			return errs.WithDetails(errs.KindInsufficientQuestions,
				"Jumlah soal pada pool kurang dari yang diminta",
				map[string]any{"found": len(pool), "needed": in.TotalCount})
		}

		// Shuffle uniform tanpa seed: tiap assembly menghasilkan permutasi
		// berbeda untuk pool yang sama.
		rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		for i, cand := range pool[:in.TotalCount] {
			order := i + 1 // order persist = posisi hasil shuffle, 1-indexed
			if err := tx.Create(&model.QuizQuestionModel{
				QuizQuestionQuizID:     quiz.QuizID,
				QuizQuestionQuestionID: cand.QuestionID,
				QuizQuestionTagID:      cand.TagID,
				QuizQuestionOrder:      &order,
				QuizQuestionIsActive:   true,
				QuizQuestionAddedBy:    in.Creator,
			}).Error; err != nil {
				return err
			}
			selected = append(selected, cand.QuestionID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var quiz model.QuizModel
	if err := db.Preload("Tags.Tag").First(&quiz, "quiz_id = ?", quizID).Error; err != nil {
		return nil, err
	}
	assignments, err := s.Ledger.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	log.Printf("[AssemblyService] AssembleRandomQuiz done. quiz_id=%s selected=%d tags=%d",
		quizID, len(selected), len(in.TagIDs))

	return &AssembledQuiz{
		Quiz:        quiz,
		Assignments: assignments,
		QuestionIDs: selected,
	}, nil
}

/* =========================================================
   Internal helpers
========================================================= */

type poolCandidate struct {
	QuestionID uuid.UUID `gorm:"column:question_id"`
	TagID      uuid.UUID `gorm:"column:tag_id"`
}

// candidatePoolTx membangun pool kandidat terdeduplikasi. Tiap soal muncul
// sekali dengan SATU tag pembawanya sebagai provenance (tag mana saja dari
// yang match sah — field tag merekam alasan, bukan partisi).
func (s *AssemblyService) candidatePoolTx(tx *gorm.DB, tagIDs []uuid.UUID) ([]poolCandidate, error) {
	var rows []poolCandidate
	if err := tx.
		Table("training_question_tags AS qt").
		Select("qt.question_tag_question_id AS question_id, qt.question_tag_tag_id AS tag_id").
		Joins("JOIN training_questions q ON q.question_id = qt.question_tag_question_id").
		Where("qt.question_tag_tag_id IN ?", tagIDs).
		Where("q.question_is_active = ? AND q.question_deleted_at IS NULL", true).
		Order("qt.question_tag_question_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(rows))
	pool := make([]poolCandidate, 0, len(rows))
	for _, r := range rows {
		if seen[r.QuestionID] {
			continue
		}
		seen[r.QuestionID] = true
		pool = append(pool, r)
	}
	return pool, nil
}

func (s *AssemblyService) ensureTagsExist(db *gorm.DB, tagIDs []uuid.UUID) error {
	var found []uuid.UUID
	if err := db.Model(&tagmodel.TrainingTagModel{}).
		Where("training_tag_id IN ?", tagIDs).
		Pluck("training_tag_id", &found).Error; err != nil {
		return err
	}
	exists := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}
	missing := []string{}
	for _, id := range tagIDs {
		if !exists[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errs.WithDetails(errs.KindNotFound, "Sebagian tag tidak ditemukan",
		map[string]any{"missing_tag_ids": missing})
}
