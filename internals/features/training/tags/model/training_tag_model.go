// file: internals/features/training/tags/model/training_tag_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainingTagModel struct {
	TrainingTagID        uuid.UUID `gorm:"column:training_tag_id;type:uuid;primaryKey" json:"training_tag_id"`
	TrainingTagName      string    `gorm:"column:training_tag_name;type:varchar(80);not null;uniqueIndex:uq_training_tags_name" json:"training_tag_name"`
	TrainingTagCreatedAt time.Time `gorm:"column:training_tag_created_at;autoCreateTime" json:"training_tag_created_at"`
	TrainingTagUpdatedAt time.Time `gorm:"column:training_tag_updated_at;autoUpdateTime" json:"training_tag_updated_at"`
}

func (TrainingTagModel) TableName() string { return "training_tags" }

func (m *TrainingTagModel) BeforeCreate(tx *gorm.DB) error {
	if m.TrainingTagID == uuid.Nil {
		m.TrainingTagID = uuid.New()
	}
	return nil
}

// Nama tag dinormalisasi (trim + lowercase) supaya unique index sekaligus
// menjadi guard case-insensitive.
func (m *TrainingTagModel) BeforeSave(tx *gorm.DB) error {
	m.TrainingTagName = strings.ToLower(strings.TrimSpace(m.TrainingTagName))
	return nil
}
