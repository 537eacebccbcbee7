package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	questioncontroller "hrisku_backend/internals/features/training/questions/controller"
)

/*
Catatan:
- Mount parent router dengan prefix /api/a dan middleware RequireHR.
- Base group di sini: /api/a/training/questions
*/

func QuestionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := questioncontroller.NewQuestionController(db)
	g := r.Group("/training/questions") // -> /api/a/training/questions

	g.Get("/", ctrl.GetAll)     // GET    /api/a/training/questions?tag_id=&type=&active=&q=
	g.Get("/list", ctrl.GetAll) // alias
	g.Get("/:id", ctrl.GetByID) // GET    /api/a/training/questions/:id
	g.Post("/", ctrl.Create)    // POST   /api/a/training/questions
	g.Patch("/:id", ctrl.Patch) // PATCH  /api/a/training/questions/:id
	g.Delete("/:id", ctrl.Delete)

	// tag soal
	g.Post("/:id/tags", ctrl.AttachTag)           // POST   /api/a/training/questions/:id/tags
	g.Delete("/:id/tags/:tag_id", ctrl.DetachTag) // DELETE /api/a/training/questions/:id/tags/:tag_id
}
