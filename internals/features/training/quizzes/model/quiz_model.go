// file: internals/features/training/quizzes/model/quiz_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tagmodel "hrisku_backend/internals/features/training/tags/model"
)

/* ============================================================================
   ENUM-like: quiz_status ('draft' | 'active' | 'archived')
============================================================================ */

type QuizStatus string

const (
	QuizStatusDraft    QuizStatus = "draft"
	QuizStatusActive   QuizStatus = "active"
	QuizStatusArchived QuizStatus = "archived"
)

func (s QuizStatus) String() string { return string(s) }
func (s QuizStatus) Valid() bool {
	return s == QuizStatusDraft || s == QuizStatusActive || s == QuizStatusArchived
}

func (s *QuizStatus) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*s = ""
		return nil
	case string:
		*s = QuizStatus(v)
	case []byte:
		*s = QuizStatus(string(v))
	default:
		return fmt.Errorf("unsupported type for QuizStatus: %T", value)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid QuizStatus: %q", *s)
	}
	return nil
}

func (s QuizStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid QuizStatus: %q", s)
	}
	return string(s), nil
}

/* ============================================================================
   MODEL: training_quizzes
============================================================================ */

type QuizModel struct {
	QuizID              uuid.UUID  `gorm:"column:quiz_id;type:uuid;primaryKey" json:"quiz_id"`
	QuizTitle           string     `gorm:"column:quiz_title;type:varchar(180);not null" json:"quiz_title"`
	QuizDescription     *string    `gorm:"column:quiz_description" json:"quiz_description,omitempty"`
	QuizDurationMinutes int        `gorm:"column:quiz_duration_minutes;not null" json:"quiz_duration_minutes"`
	QuizPassingScore    float64    `gorm:"column:quiz_passing_score;type:numeric(5,2);not null" json:"quiz_passing_score"`
	QuizStatus          QuizStatus `gorm:"column:quiz_status;type:varchar(10);not null;default:'draft';index:idx_quizzes_status" json:"quiz_status"`
	QuizCreatedBy       uuid.UUID  `gorm:"column:quiz_created_by;type:uuid;not null" json:"quiz_created_by"`

	QuizCreatedAt time.Time      `gorm:"column:quiz_created_at;autoCreateTime" json:"quiz_created_at"`
	QuizUpdatedAt time.Time      `gorm:"column:quiz_updated_at;autoUpdateTime" json:"quiz_updated_at"`
	QuizDeletedAt gorm.DeletedAt `gorm:"column:quiz_deleted_at;index" json:"quiz_deleted_at,omitempty"`

	Tags []QuizTagModel `gorm:"foreignKey:QuizTagQuizID;references:QuizID" json:"tags,omitempty"`
}

func (QuizModel) TableName() string { return "training_quizzes" }

func (m *QuizModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuizID == uuid.Nil {
		m.QuizID = uuid.New()
	}
	return nil
}

/* ============================================================================
   MODEL: training_quiz_tags (m2m quiz ↔ tag, terpisah dari ledger)
============================================================================ */

type QuizTagModel struct {
	QuizTagID        uuid.UUID `gorm:"column:quiz_tag_id;type:uuid;primaryKey" json:"quiz_tag_id"`
	QuizTagQuizID    uuid.UUID `gorm:"column:quiz_tag_quiz_id;type:uuid;not null;uniqueIndex:uq_quiz_tags_pair,priority:1;index:idx_quiz_tags_quiz" json:"quiz_tag_quiz_id"`
	QuizTagTagID     uuid.UUID `gorm:"column:quiz_tag_tag_id;type:uuid;not null;uniqueIndex:uq_quiz_tags_pair,priority:2;index:idx_quiz_tags_tag" json:"quiz_tag_tag_id"`
	QuizTagCreatedAt time.Time `gorm:"column:quiz_tag_created_at;autoCreateTime" json:"quiz_tag_created_at"`

	Tag *tagmodel.TrainingTagModel `gorm:"foreignKey:QuizTagTagID;references:TrainingTagID" json:"tag,omitempty"`
}

func (QuizTagModel) TableName() string { return "training_quiz_tags" }

func (m *QuizTagModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuizTagID == uuid.Nil {
		m.QuizTagID = uuid.New()
	}
	return nil
}
