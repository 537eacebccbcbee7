// file: internals/features/training/tags/dto/training_tag_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "hrisku_backend/internals/features/training/tags/model"
)

/* ==============================
   CREATE (POST /tags)
============================== */

type CreateTrainingTagRequest struct {
	TrainingTagName string `json:"training_tag_name" validate:"required,min=2,max=80"`
}

func (r *CreateTrainingTagRequest) ToModel() *model.TrainingTagModel {
	return &model.TrainingTagModel{
		TrainingTagName: strings.TrimSpace(r.TrainingTagName),
	}
}

/* ==============================
   UPDATE (PUT /tags/:id)
============================== */

type UpdateTrainingTagRequest struct {
	TrainingTagName string `json:"training_tag_name" validate:"required,min=2,max=80"`
}

/* ==============================
   RESPONSE
============================== */

type TrainingTagResponse struct {
	TrainingTagID        uuid.UUID `json:"training_tag_id"`
	TrainingTagName      string    `json:"training_tag_name"`
	TrainingTagCreatedAt time.Time `json:"training_tag_created_at"`
	TrainingTagUpdatedAt time.Time `json:"training_tag_updated_at"`
}

func FromModel(m *model.TrainingTagModel) TrainingTagResponse {
	return TrainingTagResponse{
		TrainingTagID:        m.TrainingTagID,
		TrainingTagName:      m.TrainingTagName,
		TrainingTagCreatedAt: m.TrainingTagCreatedAt,
		TrainingTagUpdatedAt: m.TrainingTagUpdatedAt,
	}
}

func FromModels(ms []model.TrainingTagModel) []TrainingTagResponse {
	out := make([]TrainingTagResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
