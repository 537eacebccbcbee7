package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	employeecontroller "hrisku_backend/internals/features/onboarding/employees/controller"
	"hrisku_backend/internals/helpers/mailer"
)

/*
Catatan:
- Mount parent router dengan prefix /api/a dan middleware RequireHR.
- Base group di sini: /api/a/onboarding/employees
*/

func EmployeeAdminRoutes(r fiber.Router, db *gorm.DB, m mailer.Mailer) {
	ctrl := employeecontroller.NewEmployeeController(db, m)
	g := r.Group("/onboarding/employees") // -> /api/a/onboarding/employees

	g.Get("/", ctrl.GetAll)                 // GET    ?q=
	g.Get("/list", ctrl.GetAll)             // alias
	g.Post("/", ctrl.Create)                // POST   daftar langsung
	g.Post("/hire", ctrl.HireFromCandidate) // POST   promosi kandidat
	g.Get("/:id", ctrl.GetByID)             // GET    /:id (+ checklist)
	g.Delete("/:id", ctrl.Delete)           // DELETE /:id

	g.Put("/:id/tasks/:task_id/toggle", ctrl.ToggleTask) // PUT toggle task
}
