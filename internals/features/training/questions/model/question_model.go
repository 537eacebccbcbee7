// file: internals/features/training/questions/model/question_model.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	tagmodel "hrisku_backend/internals/features/training/tags/model"
)

/* ============================================================================
   ENUM-like: question_type
============================================================================ */

type QuestionType string

const (
	QuestionTypeMultipleChoice   QuestionType = "multiple_choice"
	QuestionTypeMultipleResponse QuestionType = "multiple_response"
	QuestionTypeTrueFalse        QuestionType = "true_false"
)

func (t QuestionType) String() string { return string(t) }
func (t QuestionType) Valid() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeMultipleResponse || t == QuestionTypeTrueFalse
}

func (t *QuestionType) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = QuestionType(v)
	case []byte:
		*t = QuestionType(string(v))
	default:
		return fmt.Errorf("unsupported type for QuestionType: %T", value)
	}
	if !t.Valid() {
		return fmt.Errorf("invalid QuestionType: %q", *t)
	}
	return nil
}

func (t QuestionType) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	if !t.Valid() {
		return nil, fmt.Errorf("invalid QuestionType: %q", t)
	}
	return string(t), nil
}

/* ============================================================================
   MODEL: training_questions
   - question_options: jsonb array string (NULL untuk true_false)
   - question_answer : jsonb string (single) atau array string (multiple_response)
============================================================================ */

type QuestionModel struct {
	QuestionID       uuid.UUID      `gorm:"column:question_id;type:uuid;primaryKey" json:"question_id"`
	QuestionText     string         `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionType     QuestionType   `gorm:"column:question_type;type:varchar(20);not null;index:idx_questions_type" json:"question_type"`
	QuestionOptions  datatypes.JSON `gorm:"column:question_options;type:jsonb" json:"question_options,omitempty"`
	QuestionAnswer   datatypes.JSON `gorm:"column:question_answer;type:jsonb;not null" json:"question_answer"`
	QuestionPoints   float64        `gorm:"column:question_points;type:numeric(6,2);not null;default:1" json:"question_points"`
	QuestionIsActive bool           `gorm:"column:question_is_active;not null;index:idx_questions_active" json:"question_is_active"`

	QuestionCreatedAt time.Time      `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time      `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at"`
	QuestionDeletedAt gorm.DeletedAt `gorm:"column:question_deleted_at;index" json:"question_deleted_at,omitempty"`

	Tags []QuestionTagModel `gorm:"foreignKey:QuestionTagQuestionID;references:QuestionID" json:"tags,omitempty"`
}

func (QuestionModel) TableName() string { return "training_questions" }

func (m *QuestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionID == uuid.Nil {
		m.QuestionID = uuid.New()
	}
	return nil
}

/* ============================================================================
   Helpers bentuk options/answer (divalidasi sekali di boundary, bukan
   ad hoc di tiap read site)
============================================================================ */

func (m *QuestionModel) IsTrueFalse() bool        { return m.QuestionType == QuestionTypeTrueFalse }
func (m *QuestionModel) IsMultipleResponse() bool { return m.QuestionType == QuestionTypeMultipleResponse }

// SetChoices menyimpan daftar opsi (wajib untuk multiple_choice/multiple_response).
func (m *QuestionModel) SetChoices(options []string) error {
	if m.IsTrueFalse() {
		return errors.New("true_false tidak memakai options")
	}
	if len(options) < 2 {
		return errors.New("minimal 2 opsi diperlukan")
	}
	for _, op := range options {
		if strings.TrimSpace(op) == "" {
			return errors.New("option text tidak boleh kosong")
		}
	}
	b, _ := json.Marshal(options)
	m.QuestionOptions = datatypes.JSON(b)
	return nil
}

// Choices membaca daftar opsi (nil untuk true_false).
func (m *QuestionModel) Choices() ([]string, error) {
	if len(m.QuestionOptions) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(m.QuestionOptions, &out); err != nil {
		return nil, fmt.Errorf("question_options bukan array JSON: %w", err)
	}
	return out, nil
}

// SetAnswerSingle untuk multiple_choice / true_false.
func (m *QuestionModel) SetAnswerSingle(answer string) error {
	if m.IsMultipleResponse() {
		return errors.New("multiple_response memakai himpunan jawaban, bukan single")
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return errors.New("jawaban tidak boleh kosong")
	}
	b, _ := json.Marshal(answer)
	m.QuestionAnswer = datatypes.JSON(b)
	return nil
}

// SetAnswerMultiple untuk multiple_response.
func (m *QuestionModel) SetAnswerMultiple(answers []string) error {
	if !m.IsMultipleResponse() {
		return errors.New("hanya multiple_response yang memakai himpunan jawaban")
	}
	if len(answers) == 0 {
		return errors.New("minimal 1 jawaban benar")
	}
	seen := map[string]bool{}
	clean := make([]string, 0, len(answers))
	for _, a := range answers {
		a = strings.TrimSpace(a)
		if a == "" {
			return errors.New("jawaban tidak boleh kosong")
		}
		if seen[a] {
			continue
		}
		seen[a] = true
		clean = append(clean, a)
	}
	b, _ := json.Marshal(clean)
	m.QuestionAnswer = datatypes.JSON(b)
	return nil
}

// AnswerSet mengembalikan jawaban sebagai slice (1 elemen untuk tipe single).
func (m *QuestionModel) AnswerSet() ([]string, error) {
	if len(m.QuestionAnswer) == 0 {
		return nil, errors.New("question_answer kosong")
	}
	if m.IsMultipleResponse() {
		var arr []string
		if err := json.Unmarshal(m.QuestionAnswer, &arr); err != nil {
			return nil, fmt.Errorf("question_answer bukan array JSON: %w", err)
		}
		return arr, nil
	}
	var s string
	if err := json.Unmarshal(m.QuestionAnswer, &s); err != nil {
		return nil, fmt.Errorf("question_answer bukan string JSON: %w", err)
	}
	return []string{s}, nil
}

// ValidateShape meniru CHECK constraint di DB supaya cepat fail di app layer.
func (m *QuestionModel) ValidateShape() error {
	if !m.QuestionType.Valid() {
		return fmt.Errorf("question_type harus salah satu: multiple_choice, multiple_response, true_false")
	}
	if strings.TrimSpace(m.QuestionText) == "" {
		return errors.New("question_text wajib diisi")
	}
	if m.QuestionPoints <= 0 {
		return errors.New("question_points harus > 0")
	}

	opts, err := m.Choices()
	if err != nil {
		return err
	}
	answers, err := m.AnswerSet()
	if err != nil {
		return err
	}

	switch m.QuestionType {
	case QuestionTypeTrueFalse:
		if len(opts) != 0 {
			return errors.New("true_false: options harus NULL/kosong")
		}
		a := strings.ToLower(answers[0])
		if a != "true" && a != "false" {
			return errors.New("true_false: jawaban harus 'true' atau 'false'")
		}
	case QuestionTypeMultipleChoice:
		if len(opts) < 2 {
			return errors.New("multiple_choice: minimal 2 opsi")
		}
		if !containsString(opts, answers[0]) {
			return errors.New("multiple_choice: jawaban tidak ada pada options")
		}
	case QuestionTypeMultipleResponse:
		if len(opts) < 2 {
			return errors.New("multiple_response: minimal 2 opsi")
		}
		if len(answers) == 0 {
			return errors.New("multiple_response: minimal 1 jawaban benar")
		}
		for _, a := range answers {
			if !containsString(opts, a) {
				return fmt.Errorf("multiple_response: jawaban %q tidak ada pada options", a)
			}
		}
	}
	return nil
}

// HasTag melaporkan apakah relasi tag (preloaded) memuat tagID.
func (m *QuestionModel) HasTag(tagID uuid.UUID) bool {
	for i := range m.Tags {
		if m.Tags[i].QuestionTagTagID == tagID {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

/* ============================================================================
   MODEL: training_question_tags (m2m question ↔ tag)
============================================================================ */

type QuestionTagModel struct {
	QuestionTagID         uuid.UUID `gorm:"column:question_tag_id;type:uuid;primaryKey" json:"question_tag_id"`
	QuestionTagQuestionID uuid.UUID `gorm:"column:question_tag_question_id;type:uuid;not null;uniqueIndex:uq_question_tags_pair,priority:1;index:idx_question_tags_question" json:"question_tag_question_id"`
	QuestionTagTagID      uuid.UUID `gorm:"column:question_tag_tag_id;type:uuid;not null;uniqueIndex:uq_question_tags_pair,priority:2;index:idx_question_tags_tag" json:"question_tag_tag_id"`
	QuestionTagCreatedAt  time.Time `gorm:"column:question_tag_created_at;autoCreateTime" json:"question_tag_created_at"`

	Tag *tagmodel.TrainingTagModel `gorm:"foreignKey:QuestionTagTagID;references:TrainingTagID" json:"tag,omitempty"`
}

func (QuestionTagModel) TableName() string { return "training_question_tags" }

func (m *QuestionTagModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuestionTagID == uuid.Nil {
		m.QuestionTagID = uuid.New()
	}
	return nil
}
