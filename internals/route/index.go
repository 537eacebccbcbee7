// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hrisku_backend/internals/constants"
	"hrisku_backend/internals/middlewares"

	employeeroute "hrisku_backend/internals/features/onboarding/employees/route"
	candidateroute "hrisku_backend/internals/features/recruitment/candidates/route"
	jobroute "hrisku_backend/internals/features/recruitment/job_postings/route"
	materialroute "hrisku_backend/internals/features/training/materials/route"
	questionroute "hrisku_backend/internals/features/training/questions/route"
	quizroute "hrisku_backend/internals/features/training/quizzes/route"
	tagroute "hrisku_backend/internals/features/training/tags/route"

	"hrisku_backend/internals/helpers/mailer"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, mail mailer.Mailer) {
	startTime = time.Now()

	// ===================== BASE =====================
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})

	// ===================== GROUPS =====================

	// PRIVATE (semua karyawan login)
	log.Println("[INFO] Setting up PRIVATE group (/api/u)...")
	private := app.Group("/api/u", middlewares.AuthJWT())

	// ADMIN (HR/admin/owner)
	log.Println("[INFO] Setting up ADMIN group (/api/a, Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		middlewares.AuthJWT(),
		middlewares.RequireRoles(constants.HRRoles...),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Training routes...")
	tagroute.TrainingTagAdminRoutes(admin, db)
	questionroute.QuestionAdminRoutes(admin, db)
	quizroute.QuizAdminRoutes(admin, db)
	quizroute.QuizUserRoutes(private, db)
	materialroute.MaterialAdminRoutes(admin, db)
	materialroute.MaterialUserRoutes(private, db)

	log.Println("[INFO] Mounting Recruitment routes...")
	jobroute.JobPostingAdminRoutes(admin, db)
	candidateroute.CandidateAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Onboarding routes...")
	employeeroute.EmployeeAdminRoutes(admin, db, mail)
}
