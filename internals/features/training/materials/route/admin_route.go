package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	materialcontroller "hrisku_backend/internals/features/training/materials/controller"
)

/*
Catatan:
- Mount parent router dengan prefix /api/a dan middleware RequireHR.
- Base group di sini: /api/a/training/materials
*/

func MaterialAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := materialcontroller.NewMaterialController(db)
	g := r.Group("/training/materials") // -> /api/a/training/materials

	g.Get("/", ctrl.GetAll)     // GET    /api/a/training/materials?tag_id=&q=
	g.Get("/list", ctrl.GetAll) // alias
	g.Get("/:id", ctrl.GetByID) // GET    /api/a/training/materials/:id
	g.Post("/", ctrl.Create)    // POST   /api/a/training/materials
	g.Patch("/:id", ctrl.Patch) // PATCH  /api/a/training/materials/:id
	g.Delete("/:id", ctrl.Delete)

	// tag materi
	g.Post("/:id/tags", ctrl.AttachTag)           // POST   /api/a/training/materials/:id/tags
	g.Delete("/:id/tags/:tag_id", ctrl.DetachTag) // DELETE /api/a/training/materials/:id/tags/:tag_id

	// link quiz (gate kecocokan tag dicek di service)
	g.Get("/:id/quizzes", ctrl.ListQuizzes)           // GET    /api/a/training/materials/:id/quizzes
	g.Post("/:id/quizzes", ctrl.LinkQuiz)             // POST   /api/a/training/materials/:id/quizzes
	g.Delete("/:id/quizzes/:quiz_id", ctrl.UnlinkQuiz) // DELETE /api/a/training/materials/:id/quizzes/:quiz_id
}
