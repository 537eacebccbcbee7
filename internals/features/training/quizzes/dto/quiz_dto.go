// file: internals/features/training/quizzes/dto/quiz_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "hrisku_backend/internals/features/training/quizzes/model"
	tagdto "hrisku_backend/internals/features/training/tags/dto"
)

/* ==============================
   Helpers
============================== */

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/*
==============================

	Helper: Tri-state updater
	- Absent  : tidak diupdate
	- null    : set kolom ke NULL
	- value   : set kolom ke value

==============================
*/
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
   CREATE (POST /quizzes)
============================== */

type CreateQuizRequest struct {
	QuizTitle           string  `json:"quiz_title" validate:"required,max=180"`
	QuizDescription     *string `json:"quiz_description" validate:"omitempty"`
	QuizDurationMinutes int     `json:"quiz_duration_minutes" validate:"required,gt=0"`
	QuizPassingScore    float64 `json:"quiz_passing_score" validate:"gte=0,lte=100"`

	TagIDs []uuid.UUID `json:"tag_ids" validate:"omitempty,dive,uuid4"`
}

// ToModel: builder model dari payload Create (timestamps oleh GORM).
// Quiz baru selalu draft; aktivasi lewat PATCH status.
func (r *CreateQuizRequest) ToModel(createdBy uuid.UUID) *model.QuizModel {
	return &model.QuizModel{
		QuizTitle:           strings.TrimSpace(r.QuizTitle),
		QuizDescription:     trimPtr(r.QuizDescription),
		QuizDurationMinutes: r.QuizDurationMinutes,
		QuizPassingScore:    r.QuizPassingScore,
		QuizStatus:          model.QuizStatusDraft,
		QuizCreatedBy:       createdBy,
	}
}

/* ==============================
   PATCH (PATCH /quizzes/:id)
============================== */

type PatchQuizRequest struct {
	QuizTitle           UpdateField[string]  `json:"quiz_title"`       // NOT NULL (abaikan jika null/empty)
	QuizDescription     UpdateField[string]  `json:"quiz_description"` // nullable
	QuizDurationMinutes UpdateField[int]     `json:"quiz_duration_minutes"`
	QuizPassingScore    UpdateField[float64] `json:"quiz_passing_score"`
	QuizStatus          UpdateField[string]  `json:"quiz_status"`
}

// ToUpdates: map untuk gorm.Model(&m).Updates(...)
func (p *PatchQuizRequest) ToUpdates() (map[string]any, error) {
	u := make(map[string]any, 5)

	if p.QuizTitle.ShouldUpdate() && !p.QuizTitle.IsNull() {
		if title := strings.TrimSpace(p.QuizTitle.Val()); title != "" {
			u["quiz_title"] = title
		}
	}
	if p.QuizDescription.ShouldUpdate() {
		if p.QuizDescription.IsNull() {
			u["quiz_description"] = gorm.Expr("NULL")
		} else if desc := strings.TrimSpace(p.QuizDescription.Val()); desc != "" {
			u["quiz_description"] = desc
		} else {
			u["quiz_description"] = gorm.Expr("NULL")
		}
	}
	if p.QuizDurationMinutes.ShouldUpdate() && !p.QuizDurationMinutes.IsNull() {
		if p.QuizDurationMinutes.Val() <= 0 {
			return nil, errInvalid("quiz_duration_minutes harus > 0")
		}
		u["quiz_duration_minutes"] = p.QuizDurationMinutes.Val()
	}
	if p.QuizPassingScore.ShouldUpdate() && !p.QuizPassingScore.IsNull() {
		v := p.QuizPassingScore.Val()
		if v < 0 || v > 100 {
			return nil, errInvalid("quiz_passing_score harus 0..100")
		}
		u["quiz_passing_score"] = v
	}
	if p.QuizStatus.ShouldUpdate() && !p.QuizStatus.IsNull() {
		st := model.QuizStatus(strings.TrimSpace(p.QuizStatus.Val()))
		if !st.Valid() {
			return nil, errInvalid("quiz_status harus draft/active/archived")
		}
		u["quiz_status"] = st.String()
	}
	return u, nil
}

type invalidPatchError struct{ msg string }

func (e *invalidPatchError) Error() string { return e.msg }
func errInvalid(msg string) error          { return &invalidPatchError{msg: msg} }

/* ==============================
   ASSIGNMENT (ledger soal → quiz)
============================== */

type AttachQuestionRequest struct {
	QuestionID     uuid.UUID `json:"question_id" validate:"required,uuid4"`
	TagID          uuid.UUID `json:"tag_id" validate:"required,uuid4"`
	Order          *int      `json:"order" validate:"omitempty,gt=0"`
	PointsOverride *float64  `json:"points_override" validate:"omitempty,gt=0"`
}

type ReorderItemRequest struct {
	QuestionID uuid.UUID `json:"question_id" validate:"required,uuid4"`
	Order      int       `json:"order" validate:"required,gt=0"`
}

type ReorderRequest struct {
	Items []ReorderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type AutoAttachRequest struct {
	TagIDs    []uuid.UUID `json:"tag_ids" validate:"required,min=1,dive,uuid4"`
	MaxPerTag int         `json:"max_per_tag" validate:"omitempty,gt=0"`
}

type AssembleQuizRequest struct {
	QuizTitle           string      `json:"quiz_title" validate:"required,max=180"`
	QuizDescription     *string     `json:"quiz_description" validate:"omitempty"`
	QuizDurationMinutes int         `json:"quiz_duration_minutes" validate:"required,gt=0"`
	QuizPassingScore    float64     `json:"quiz_passing_score" validate:"gte=0,lte=100"`
	TagIDs              []uuid.UUID `json:"tag_ids" validate:"required,min=1,dive,uuid4"`
	QuestionCount       int         `json:"question_count" validate:"required,gt=0"`
}

/* ==============================
   RESPONSE DTOs
============================== */

type QuizResponse struct {
	QuizID              uuid.UUID `json:"quiz_id"`
	QuizTitle           string    `json:"quiz_title"`
	QuizDescription     *string   `json:"quiz_description,omitempty"`
	QuizDurationMinutes int       `json:"quiz_duration_minutes"`
	QuizPassingScore    float64   `json:"quiz_passing_score"`
	QuizStatus          string    `json:"quiz_status"`
	QuizCreatedBy       uuid.UUID `json:"quiz_created_by"`

	QuizCreatedAt time.Time  `json:"quiz_created_at"`
	QuizUpdatedAt time.Time  `json:"quiz_updated_at"`
	QuizDeletedAt *time.Time `json:"quiz_deleted_at,omitempty"`

	Tags []tagdto.TrainingTagResponse `json:"tags,omitempty"`
}

type QuizAssignmentResponse struct {
	QuizQuestionID             uuid.UUID `json:"quiz_question_id"`
	QuizQuestionQuizID         uuid.UUID `json:"quiz_question_quiz_id"`
	QuizQuestionQuestionID     uuid.UUID `json:"quiz_question_question_id"`
	QuizQuestionTagID          uuid.UUID `json:"quiz_question_tag_id"`
	QuizQuestionTagName        *string   `json:"quiz_question_tag_name,omitempty"`
	QuizQuestionOrder          *int      `json:"quiz_question_order,omitempty"`
	QuizQuestionPointsOverride *float64  `json:"quiz_question_points_override,omitempty"`
	QuizQuestionIsActive       bool      `json:"quiz_question_is_active"`
	QuizQuestionAddedAt        time.Time `json:"quiz_question_added_at"`
	QuizQuestionAddedBy        uuid.UUID `json:"quiz_question_added_by"`

	QuestionText *string `json:"question_text,omitempty"`
}

/* ==============================
   MAPPERS
============================== */

func FromModel(m *model.QuizModel) QuizResponse {
	var deletedAt *time.Time
	if m.QuizDeletedAt.Valid {
		t := m.QuizDeletedAt.Time
		deletedAt = &t
	}
	resp := QuizResponse{
		QuizID:              m.QuizID,
		QuizTitle:           m.QuizTitle,
		QuizDescription:     m.QuizDescription,
		QuizDurationMinutes: m.QuizDurationMinutes,
		QuizPassingScore:    m.QuizPassingScore,
		QuizStatus:          m.QuizStatus.String(),
		QuizCreatedBy:       m.QuizCreatedBy,
		QuizCreatedAt:       m.QuizCreatedAt,
		QuizUpdatedAt:       m.QuizUpdatedAt,
		QuizDeletedAt:       deletedAt,
	}
	for i := range m.Tags {
		if m.Tags[i].Tag != nil {
			resp.Tags = append(resp.Tags, tagdto.FromModel(m.Tags[i].Tag))
		}
	}
	return resp
}

func FromModels(ms []model.QuizModel) []QuizResponse {
	out := make([]QuizResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

func FromAssignmentModel(m *model.QuizQuestionModel) QuizAssignmentResponse {
	resp := QuizAssignmentResponse{
		QuizQuestionID:             m.QuizQuestionID,
		QuizQuestionQuizID:         m.QuizQuestionQuizID,
		QuizQuestionQuestionID:     m.QuizQuestionQuestionID,
		QuizQuestionTagID:          m.QuizQuestionTagID,
		QuizQuestionOrder:          m.QuizQuestionOrder,
		QuizQuestionPointsOverride: m.QuizQuestionPointsOverride,
		QuizQuestionIsActive:       m.QuizQuestionIsActive,
		QuizQuestionAddedAt:        m.QuizQuestionAddedAt,
		QuizQuestionAddedBy:        m.QuizQuestionAddedBy,
	}
	if m.Tag != nil {
		name := m.Tag.TrainingTagName
		resp.QuizQuestionTagName = &name
	}
	if m.Question != nil {
		text := m.Question.QuestionText
		resp.QuestionText = &text
	}
	return resp
}

func FromAssignmentModels(ms []model.QuizQuestionModel) []QuizAssignmentResponse {
	out := make([]QuizAssignmentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromAssignmentModel(&ms[i]))
	}
	return out
}
