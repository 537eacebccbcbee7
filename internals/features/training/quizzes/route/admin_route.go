package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizcontroller "hrisku_backend/internals/features/training/quizzes/controller"
)

/*
Catatan:
- Mount parent router dengan prefix /api/a dan middleware RequireHR.
- Base group di sini: /api/a/training/quizzes
*/

func QuizAdminRoutes(r fiber.Router, db *gorm.DB) {
	// ============================
	// QUIZZES (master)
	// ============================
	ctrl := quizcontroller.NewQuizController(db)
	g := r.Group("/training/quizzes") // -> /api/a/training/quizzes

	g.Get("/", ctrl.GetAll)     // GET    /api/a/training/quizzes?status=&q=
	g.Get("/list", ctrl.GetAll) // alias
	g.Post("/", ctrl.Create)    // POST   /api/a/training/quizzes

	// ============================
	// PERAKITAN (ledger + assembly)
	// ============================
	asgCtrl := quizcontroller.NewQuizAssignmentController(db)

	g.Post("/assemble", asgCtrl.AssembleRandom) // POST /api/a/training/quizzes/assemble

	g.Get("/:id", ctrl.GetByID)   // GET    /api/a/training/quizzes/:id
	g.Patch("/:id", ctrl.Patch)   // PATCH  /api/a/training/quizzes/:id
	g.Delete("/:id", ctrl.Delete) // DELETE /api/a/training/quizzes/:id

	g.Get("/:id/questions", asgCtrl.List)                       // GET    isi quiz urut by order
	g.Post("/:id/questions", asgCtrl.Attach)                    // POST   attach manual
	g.Delete("/:id/questions/:question_id", asgCtrl.Detach)     // DELETE detach (soft)
	g.Put("/:id/questions/order", asgCtrl.Reorder)              // PUT    reorder
	g.Get("/:id/questions/stats", asgCtrl.StatsByTag)           // GET    agregat per tag
	g.Post("/:id/questions/auto", asgCtrl.AutoAttach)           // POST   bulk attach by tags
}
