package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizcontroller "hrisku_backend/internals/features/training/quizzes/controller"
)

/*
Catatan:
- Mount parent router dengan prefix /api/u (semua karyawan login).
- Read-only: karyawan melihat quiz & isinya, tidak mengubah.
*/

func QuizUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := quizcontroller.NewQuizController(db)
	asgCtrl := quizcontroller.NewQuizAssignmentController(db)
	g := r.Group("/training/quizzes") // -> /api/u/training/quizzes

	g.Get("/", ctrl.GetAll)               // GET /api/u/training/quizzes?status=active
	g.Get("/:id", ctrl.GetByID)           // GET /api/u/training/quizzes/:id
	g.Get("/:id/questions", asgCtrl.List) // GET /api/u/training/quizzes/:id/questions
}
