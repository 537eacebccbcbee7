// file: internals/features/training/questions/dto/question_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	model "hrisku_backend/internals/features/training/questions/model"
	tagdto "hrisku_backend/internals/features/training/tags/dto"
)

/* ==============================
   Helper: Tri-state updater
   - Absent  : tidak diupdate
   - null    : set kolom ke NULL
   - value   : set kolom ke value
============================== */

type UpdateField[T any] struct {
	set   bool
	null  bool
	value T
}

func (f *UpdateField[T]) UnmarshalJSON(b []byte) error {
	f.set = true
	if string(b) == "null" {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	return json.Unmarshal(b, &f.value)
}

func (f UpdateField[T]) ShouldUpdate() bool { return f.set }
func (f UpdateField[T]) IsNull() bool       { return f.set && f.null }
func (f UpdateField[T]) Val() T             { return f.value }

/* ==============================
   CREATE (POST /questions)
   - answer: string tunggal (multiple_choice/true_false)
     atau array (multiple_response); shape final divalidasi
     model.ValidateShape sebelum insert.
============================== */

type CreateQuestionRequest struct {
	QuestionText    string   `json:"question_text" validate:"required"`
	QuestionType    string   `json:"question_type" validate:"required,oneof=multiple_choice multiple_response true_false"`
	QuestionOptions []string `json:"question_options" validate:"omitempty,dive,min=1"`
	QuestionAnswer  *string  `json:"question_answer" validate:"omitempty"`
	QuestionAnswers []string `json:"question_answers" validate:"omitempty,dive,min=1"`
	QuestionPoints  *float64 `json:"question_points" validate:"omitempty,gt=0"`

	// Tag awal opsional, langsung dipasang setelah insert.
	TagIDs []uuid.UUID `json:"tag_ids" validate:"omitempty,dive,uuid4"`
}

func (r *CreateQuestionRequest) ToModel() (*model.QuestionModel, error) {
	m := &model.QuestionModel{
		QuestionText:     strings.TrimSpace(r.QuestionText),
		QuestionType:     model.QuestionType(r.QuestionType),
		QuestionPoints:   1,
		QuestionIsActive: true,
	}
	if r.QuestionPoints != nil {
		m.QuestionPoints = *r.QuestionPoints
	}

	if len(r.QuestionOptions) > 0 {
		if err := m.SetChoices(r.QuestionOptions); err != nil {
			return nil, err
		}
	}
	if m.IsMultipleResponse() {
		if err := m.SetAnswerMultiple(r.QuestionAnswers); err != nil {
			return nil, err
		}
	} else {
		answer := ""
		if r.QuestionAnswer != nil {
			answer = *r.QuestionAnswer
		}
		if err := m.SetAnswerSingle(answer); err != nil {
			return nil, err
		}
	}

	if err := m.ValidateShape(); err != nil {
		return nil, err
	}
	return m, nil
}

/* ==============================
   PATCH (PATCH /questions/:id)
============================== */

type PatchQuestionRequest struct {
	QuestionText     UpdateField[string]   `json:"question_text"`   // NOT NULL (abaikan jika null/empty)
	QuestionOptions  UpdateField[[]string] `json:"question_options"`
	QuestionAnswer   UpdateField[string]   `json:"question_answer"`
	QuestionAnswers  UpdateField[[]string] `json:"question_answers"`
	QuestionPoints   UpdateField[float64]  `json:"question_points"`
	QuestionIsActive UpdateField[bool]     `json:"question_is_active"`
}

// Apply menerapkan patch ke model lalu memvalidasi shape akhirnya.
// Tipe soal tidak bisa diganti lewat patch (buat soal baru saja).
func (p *PatchQuestionRequest) Apply(m *model.QuestionModel) error {
	if p.QuestionText.ShouldUpdate() && !p.QuestionText.IsNull() {
		if t := strings.TrimSpace(p.QuestionText.Val()); t != "" {
			m.QuestionText = t
		}
	}
	if p.QuestionOptions.ShouldUpdate() && !p.QuestionOptions.IsNull() {
		if err := m.SetChoices(p.QuestionOptions.Val()); err != nil {
			return err
		}
	}
	if p.QuestionAnswer.ShouldUpdate() && !p.QuestionAnswer.IsNull() {
		if err := m.SetAnswerSingle(p.QuestionAnswer.Val()); err != nil {
			return err
		}
	}
	if p.QuestionAnswers.ShouldUpdate() && !p.QuestionAnswers.IsNull() {
		if err := m.SetAnswerMultiple(p.QuestionAnswers.Val()); err != nil {
			return err
		}
	}
	if p.QuestionPoints.ShouldUpdate() && !p.QuestionPoints.IsNull() {
		m.QuestionPoints = p.QuestionPoints.Val()
	}
	if p.QuestionIsActive.ShouldUpdate() && !p.QuestionIsActive.IsNull() {
		m.QuestionIsActive = p.QuestionIsActive.Val()
	}
	return m.ValidateShape()
}

/* ==============================
   TAG ATTACH (POST /questions/:id/tags)
============================== */

type AttachQuestionTagRequest struct {
	TagID uuid.UUID `json:"tag_id" validate:"required,uuid4"`
}

/* ==============================
   RESPONSE DTOs
============================== */

type QuestionResponse struct {
	QuestionID       uuid.UUID `json:"question_id"`
	QuestionText     string    `json:"question_text"`
	QuestionType     string    `json:"question_type"`
	QuestionOptions  []string  `json:"question_options,omitempty"`
	QuestionAnswer   any       `json:"question_answer"`
	QuestionPoints   float64   `json:"question_points"`
	QuestionIsActive bool      `json:"question_is_active"`

	QuestionCreatedAt time.Time `json:"question_created_at"`
	QuestionUpdatedAt time.Time `json:"question_updated_at"`

	Tags []tagdto.TrainingTagResponse `json:"tags,omitempty"`
}

func FromModel(m *model.QuestionModel) QuestionResponse {
	resp := QuestionResponse{
		QuestionID:        m.QuestionID,
		QuestionText:      m.QuestionText,
		QuestionType:      m.QuestionType.String(),
		QuestionPoints:    m.QuestionPoints,
		QuestionIsActive:  m.QuestionIsActive,
		QuestionCreatedAt: m.QuestionCreatedAt,
		QuestionUpdatedAt: m.QuestionUpdatedAt,
	}

	if opts, err := m.Choices(); err == nil {
		resp.QuestionOptions = opts
	}
	// Jawaban diekspos apa adanya (string atau array) mengikuti tipe.
	var raw any
	if len(m.QuestionAnswer) > 0 {
		_ = json.Unmarshal(m.QuestionAnswer, &raw)
	}
	resp.QuestionAnswer = raw

	for i := range m.Tags {
		if m.Tags[i].Tag != nil {
			resp.Tags = append(resp.Tags, tagdto.FromModel(m.Tags[i].Tag))
		}
	}
	return resp
}

func FromModels(ms []model.QuestionModel) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
