package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	materialcontroller "hrisku_backend/internals/features/training/materials/controller"
)

/*
Catatan:
- Mount parent router dengan prefix /api/u (semua karyawan login).
- Read-only: karyawan membaca materi dan quiz yang terpasang.
*/

func MaterialUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := materialcontroller.NewMaterialController(db)
	g := r.Group("/training/materials") // -> /api/u/training/materials

	g.Get("/", ctrl.GetAll)                 // GET /api/u/training/materials?tag_id=&q=
	g.Get("/:id", ctrl.GetByID)             // GET /api/u/training/materials/:id
	g.Get("/:id/quizzes", ctrl.ListQuizzes) // GET /api/u/training/materials/:id/quizzes
}
