// file: internals/features/training/materials/dto/material_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "hrisku_backend/internals/features/training/materials/model"
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
   CREATE (POST /materials)
============================== */

type CreateMaterialRequest struct {
	MaterialTitle       string  `json:"material_title" validate:"required,max=180"`
	MaterialDescription *string `json:"material_description" validate:"omitempty"`
	MaterialContentURL  *string `json:"material_content_url" validate:"omitempty,url"`

	TagIDs []uuid.UUID `json:"tag_ids" validate:"omitempty,dive,uuid4"`
}

func (r *CreateMaterialRequest) ToModel(createdBy uuid.UUID) *model.MaterialModel {
	return &model.MaterialModel{
		MaterialTitle:       strings.TrimSpace(r.MaterialTitle),
		MaterialDescription: trimPtr(r.MaterialDescription),
		MaterialContentURL:  trimPtr(r.MaterialContentURL),
		MaterialCreatedBy:   createdBy,
	}
}

/* ==============================
   PATCH (PATCH /materials/:id)
============================== */

type PatchMaterialRequest struct {
	MaterialTitle       UpdateField[string] `json:"material_title"`       // NOT NULL (abaikan jika null/empty)
	MaterialDescription UpdateField[string] `json:"material_description"` // nullable
	MaterialContentURL  UpdateField[string] `json:"material_content_url"` // nullable
}

func (p *PatchMaterialRequest) ToUpdates() map[string]any {
	u := make(map[string]any, 3)

	if p.MaterialTitle.ShouldUpdate() && !p.MaterialTitle.IsNull() {
		if t := strings.TrimSpace(p.MaterialTitle.Val()); t != "" {
			u["material_title"] = t
		}
	}
	if p.MaterialDescription.ShouldUpdate() {
		if p.MaterialDescription.IsNull() {
			u["material_description"] = gorm.Expr("NULL")
		} else if d := strings.TrimSpace(p.MaterialDescription.Val()); d != "" {
			u["material_description"] = d
		} else {
			u["material_description"] = gorm.Expr("NULL")
		}
	}
	if p.MaterialContentURL.ShouldUpdate() {
		if p.MaterialContentURL.IsNull() {
			u["material_content_url"] = gorm.Expr("NULL")
		} else if v := strings.TrimSpace(p.MaterialContentURL.Val()); v != "" {
			u["material_content_url"] = v
		} else {
			u["material_content_url"] = gorm.Expr("NULL")
		}
	}
	return u
}

/* ==============================
   TAG & QUIZ LINK
============================== */

type AttachMaterialTagRequest struct {
	TagID uuid.UUID `json:"tag_id" validate:"required,uuid4"`
}

type LinkQuizRequest struct {
	QuizID uuid.UUID `json:"quiz_id" validate:"required,uuid4"`
}

/* ==============================
   RESPONSE DTOs
============================== */

type MaterialResponse struct {
	MaterialID          uuid.UUID `json:"material_id"`
	MaterialTitle       string    `json:"material_title"`
	MaterialDescription *string   `json:"material_description,omitempty"`
	MaterialContentURL  *string   `json:"material_content_url,omitempty"`
	MaterialCreatedBy   uuid.UUID `json:"material_created_by"`

	MaterialCreatedAt time.Time  `json:"material_created_at"`
	MaterialUpdatedAt time.Time  `json:"material_updated_at"`
	MaterialDeletedAt *time.Time `json:"material_deleted_at,omitempty"`

	Tags []tagdto.TrainingTagResponse `json:"tags,omitempty"`
}

func FromModel(m *model.MaterialModel) MaterialResponse {
	var deletedAt *time.Time
	if m.MaterialDeletedAt.Valid {
		t := m.MaterialDeletedAt.Time
		deletedAt = &t
	}
	resp := MaterialResponse{
		MaterialID:          m.MaterialID,
		MaterialTitle:       m.MaterialTitle,
		MaterialDescription: m.MaterialDescription,
		MaterialContentURL:  m.MaterialContentURL,
		MaterialCreatedBy:   m.MaterialCreatedBy,
		MaterialCreatedAt:   m.MaterialCreatedAt,
		MaterialUpdatedAt:   m.MaterialUpdatedAt,
		MaterialDeletedAt:   deletedAt,
	}
	for i := range m.Tags {
		if m.Tags[i].Tag != nil {
			resp.Tags = append(resp.Tags, tagdto.FromModel(m.Tags[i].Tag))
		}
	}
	return resp
}

func FromModels(ms []model.MaterialModel) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
