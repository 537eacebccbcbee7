package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	jobcontroller "hrisku_backend/internals/features/recruitment/job_postings/controller"
)

/*
Catatan:
- Mount parent router dengan prefix /api/a dan middleware RequireHR.
- Base group di sini: /api/a/recruitment/job-postings
*/

func JobPostingAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := jobcontroller.NewJobPostingController(db)
	g := r.Group("/recruitment/job-postings") // -> /api/a/recruitment/job-postings

	g.Get("/", ctrl.GetAll)                  // GET    ?status=&q=
	g.Get("/list", ctrl.GetAll)              // alias
	g.Get("/:id", ctrl.GetByID)              // GET    /:id
	g.Post("/", ctrl.Create)                 // POST
	g.Put("/:id/status", ctrl.UpdateStatus)  // PUT    /:id/status
	g.Delete("/:id", ctrl.Delete)            // DELETE /:id
}
