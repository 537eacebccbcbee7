// file: internals/features/training/quizzes/controller/quiz_assignment_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "hrisku_backend/internals/features/training/quizzes/dto"
	service "hrisku_backend/internals/features/training/quizzes/service"
	helper "hrisku_backend/internals/helpers"
	helperAuth "hrisku_backend/internals/helpers/auth"
)

/* =========================================================
   CONTROLLER: isi quiz (ledger + perakitan)
========================================================= */

type QuizAssignmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Ledger    *service.AssignmentService
	Assembly  *service.AssemblyService
}

func NewQuizAssignmentController(db *gorm.DB) *QuizAssignmentController {
	return &QuizAssignmentController{
		DB:        db,
		Validator: validator.New(),
		Ledger:    service.NewAssignmentService(db),
		Assembly:  service.NewAssemblyService(db),
	}
}

func (ctrl *QuizAssignmentController) actor(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return uuid.Nil, fe
		}
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	return id, nil
}

/* =======================
   Handlers
======================= */

// POST /quizzes/:id/questions — attach manual satu soal
func (ctrl *QuizAssignmentController) Attach(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var body dto.AttachQuestionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, err := ctrl.actor(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	m, err := ctrl.Ledger.Attach(c.Context(), service.AttachInput{
		QuestionID:     body.QuestionID,
		QuizID:         quizID,
		TagID:          body.TagID,
		Order:          body.Order,
		PointsOverride: body.PointsOverride,
		AddedBy:        actorID,
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonCreated(c, "Soal terpasang pada quiz", dto.FromAssignmentModel(m))
}

// DELETE /quizzes/:id/questions/:question_id — detach (soft)
func (ctrl *QuizAssignmentController) Detach(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	questionID, err := uuid.Parse(strings.TrimSpace(c.Params("question_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "question_id tidak valid")
	}

	if err := ctrl.Ledger.Detach(c.Context(), questionID, quizID); err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Soal dilepas dari quiz", fiber.Map{
		"quiz_id":     quizID,
		"question_id": questionID,
	})
}

// GET /quizzes/:id/questions — daftar isi quiz urut by order
func (ctrl *QuizAssignmentController) List(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	rows, err := ctrl.Ledger.ListByQuiz(c.Context(), quizID)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromAssignmentModels(rows))
}

// PUT /quizzes/:id/questions/order — reorder sebagian/seluruh isi quiz
func (ctrl *QuizAssignmentController) Reorder(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var body dto.ReorderRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	entries := make([]service.ReorderEntry, 0, len(body.Items))
	for _, it := range body.Items {
		entries = append(entries, service.ReorderEntry{
			QuestionID: it.QuestionID,
			Order:      it.Order,
		})
	}

	updated, err := ctrl.Ledger.Reorder(c.Context(), quizID, entries)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Urutan soal diperbarui", fiber.Map{
		"quiz_id": quizID,
		"updated": updated,
	})
}

// GET /quizzes/:id/questions/stats — agregat per tag provenance
func (ctrl *QuizAssignmentController) StatsByTag(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	stats, err := ctrl.Ledger.StatsByTag(c.Context(), quizID)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", stats)
}

// POST /quizzes/:id/questions/auto — bulk attach by tags
func (ctrl *QuizAssignmentController) AutoAttach(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var body dto.AutoAttachRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, err := ctrl.actor(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	res, err := ctrl.Assembly.AutoAttach(c.Context(), service.AutoAttachInput{
		QuizID:    quizID,
		TagIDs:    body.TagIDs,
		MaxPerTag: body.MaxPerTag,
		AddedBy:   actorID,
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Auto-attach selesai", res)
}

// POST /quizzes/assemble — buat quiz baru + isi acak dari pool tag
func (ctrl *QuizAssignmentController) AssembleRandom(c *fiber.Ctx) error {
	var body dto.AssembleQuizRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, err := ctrl.actor(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	res, err := ctrl.Assembly.AssembleRandomQuiz(c.Context(), service.AssembleQuizInput{
		Title:           body.QuizTitle,
		Description:     body.QuizDescription,
		DurationMinutes: body.QuizDurationMinutes,
		PassingScore:    body.QuizPassingScore,
		TagIDs:          body.TagIDs,
		TotalCount:      body.QuestionCount,
		Creator:         actorID,
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonCreated(c, "Quiz berhasil dirakit", fiber.Map{
		"quiz":         dto.FromModel(&res.Quiz),
		"assignments":  dto.FromAssignmentModels(res.Assignments),
		"question_ids": res.QuestionIDs,
	})
}
