package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	candidatecontroller "hrisku_backend/internals/features/recruitment/candidates/controller"
)

/*
Catatan:
- Mount parent router dengan prefix /api/a dan middleware RequireHR.
- Base group di sini: /api/a/recruitment/candidates
*/

func CandidateAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := candidatecontroller.NewCandidateController(db)
	g := r.Group("/recruitment/candidates") // -> /api/a/recruitment/candidates

	g.Get("/", ctrl.GetAll)                 // GET    ?status=&job_posting_id=&q=
	g.Get("/list", ctrl.GetAll)             // alias
	g.Get("/:id", ctrl.GetByID)             // GET    /:id
	g.Post("/", ctrl.Create)                // POST
	g.Put("/:id/status", ctrl.UpdateStatus) // PUT    /:id/status
	g.Delete("/:id", ctrl.Delete)           // DELETE /:id
}
