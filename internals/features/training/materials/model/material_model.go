// file: internals/features/training/materials/model/material_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tagmodel "hrisku_backend/internals/features/training/tags/model"
)

type MaterialModel struct {
	MaterialID          uuid.UUID `gorm:"column:material_id;type:uuid;primaryKey" json:"material_id"`
	MaterialTitle       string    `gorm:"column:material_title;type:varchar(180);not null" json:"material_title"`
	MaterialDescription *string   `gorm:"column:material_description" json:"material_description,omitempty"`
	// Konten (video/pdf) disimpan di object storage eksternal; di sini cukup URL-nya.
	MaterialContentURL *string   `gorm:"column:material_content_url;type:text" json:"material_content_url,omitempty"`
	MaterialCreatedBy  uuid.UUID `gorm:"column:material_created_by;type:uuid;not null" json:"material_created_by"`

	MaterialCreatedAt time.Time      `gorm:"column:material_created_at;autoCreateTime" json:"material_created_at"`
	MaterialUpdatedAt time.Time      `gorm:"column:material_updated_at;autoUpdateTime" json:"material_updated_at"`
	MaterialDeletedAt gorm.DeletedAt `gorm:"column:material_deleted_at;index" json:"material_deleted_at,omitempty"`

	Tags []MaterialTagModel `gorm:"foreignKey:MaterialTagMaterialID;references:MaterialID" json:"tags,omitempty"`
}

func (MaterialModel) TableName() string { return "training_materials" }

func (m *MaterialModel) BeforeCreate(tx *gorm.DB) error {
	if m.MaterialID == uuid.Nil {
		m.MaterialID = uuid.New()
	}
	return nil
}

/* ============================================================================
   MODEL: training_material_tags (m2m material ↔ tag)
============================================================================ */

type MaterialTagModel struct {
	MaterialTagID         uuid.UUID `gorm:"column:material_tag_id;type:uuid;primaryKey" json:"material_tag_id"`
	MaterialTagMaterialID uuid.UUID `gorm:"column:material_tag_material_id;type:uuid;not null;uniqueIndex:uq_material_tags_pair,priority:1;index:idx_material_tags_material" json:"material_tag_material_id"`
	MaterialTagTagID      uuid.UUID `gorm:"column:material_tag_tag_id;type:uuid;not null;uniqueIndex:uq_material_tags_pair,priority:2;index:idx_material_tags_tag" json:"material_tag_tag_id"`
	MaterialTagCreatedAt  time.Time `gorm:"column:material_tag_created_at;autoCreateTime" json:"material_tag_created_at"`

	Tag *tagmodel.TrainingTagModel `gorm:"foreignKey:MaterialTagTagID;references:TrainingTagID" json:"tag,omitempty"`
}

func (MaterialTagModel) TableName() string { return "training_material_tags" }

func (m *MaterialTagModel) BeforeCreate(tx *gorm.DB) error {
	if m.MaterialTagID == uuid.Nil {
		m.MaterialTagID = uuid.New()
	}
	return nil
}

/* ============================================================================
   MODEL: training_material_quizzes (link material ↔ quiz)

   Gate kecocokan tag dicek SEKALI saat link dibuat; edit tag sesudahnya
   tidak membatalkan link. Keunikan pasangan aktif dijaga partial unique
   index di DDL.
============================================================================ */

type MaterialQuizModel struct {
	MaterialQuizID         uuid.UUID `gorm:"column:material_quiz_id;type:uuid;primaryKey" json:"material_quiz_id"`
	MaterialQuizMaterialID uuid.UUID `gorm:"column:material_quiz_material_id;type:uuid;not null;index:idx_material_quizzes_material" json:"material_quiz_material_id"`
	MaterialQuizQuizID     uuid.UUID `gorm:"column:material_quiz_quiz_id;type:uuid;not null;index:idx_material_quizzes_quiz" json:"material_quiz_quiz_id"`
	MaterialQuizIsActive   bool      `gorm:"column:material_quiz_is_active;not null" json:"material_quiz_is_active"`
	MaterialQuizCreatedAt  time.Time `gorm:"column:material_quiz_created_at;autoCreateTime" json:"material_quiz_created_at"`
	MaterialQuizCreatedBy  uuid.UUID `gorm:"column:material_quiz_created_by;type:uuid;not null" json:"material_quiz_created_by"`
}

func (MaterialQuizModel) TableName() string { return "training_material_quizzes" }

func (m *MaterialQuizModel) BeforeCreate(tx *gorm.DB) error {
	if m.MaterialQuizID == uuid.Nil {
		m.MaterialQuizID = uuid.New()
	}
	return nil
}
