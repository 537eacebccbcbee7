package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tagcontroller "hrisku_backend/internals/features/training/tags/controller"
)

/*
Catatan:
- Mount parent router dengan prefix /api/a dan middleware RequireHR.
- Base group di sini: /api/a/training/tags
*/

func TrainingTagAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := tagcontroller.NewTrainingTagController(db)
	g := r.Group("/training/tags") // -> /api/a/training/tags

	g.Get("/", ctrl.GetAll)       // GET    /api/a/training/tags?q=&page=&per_page=
	g.Get("/list", ctrl.GetAll)   // alias
	g.Get("/:id", ctrl.GetByID)   // GET    /api/a/training/tags/:id
	g.Post("/", ctrl.Create)      // POST   /api/a/training/tags
	g.Put("/:id", ctrl.Update)    // PUT    /api/a/training/tags/:id
	g.Delete("/:id", ctrl.Delete) // DELETE /api/a/training/tags/:id
}
