package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/invigilate/internal/app/controllers"
	"github.com/yigit/invigilate/internal/app/models/dto"
	"github.com/yigit/invigilate/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	facultyController *controllers.FacultyController,
	timetableController *controllers.TimetableController,
	examController *controllers.ExamController,
	dutyController *controllers.DutyController,
	requestController *controllers.RequestController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	v1.POST("/auth/login", authController.Login)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	admin := authenticated.Group("")
	admin.Use(authMiddleware.AdminRequired())

	authenticated.GET("/auth/me", authController.Me)

	faculty := authenticated.Group("/faculty")
	{
		faculty.GET("", facultyController.ListFaculty)
		faculty.GET("/:id", facultyController.GetFaculty)
	}
	admin.POST("/faculty", facultyController.CreateFaculty)

	authenticated.GET("/timetable/:facultyId", timetableController.GetTimetable)
	admin.POST("/timetable/import", timetableController.ImportTimetable)

	exams := authenticated.Group("/exams")
	{
		exams.GET("", examController.ListExams)
		exams.GET("/:id", examController.GetExam)
	}
	examsAdmin := admin.Group("/exams")
	{
		examsAdmin.POST("", examController.CreateExam)
		examsAdmin.PUT("/:id", examController.UpdateExam)
		examsAdmin.DELETE("/:id", examController.DeleteExam)
	}

	duties := authenticated.Group("/duties")
	{
		duties.GET("/exam/:examId", dutyController.GetDutiesForExam)
		duties.GET("/faculty/:facultyId", authMiddleware.SelfOrAdmin("facultyId"), dutyController.GetDutiesForFaculty)
	}
	dutiesAdmin := admin.Group("/duties")
	{
		dutiesAdmin.POST("", dutyController.CreateDuty)
		dutiesAdmin.POST("/assign", dutyController.AssignDuties)
		dutiesAdmin.POST("/auto-assign", dutyController.AutoAssign)
		dutiesAdmin.GET("/all", dutyController.ListAllDuties)
		dutiesAdmin.PATCH("/:id/status", dutyController.UpdateDutyStatus)
	}

	// Ownership of single requests and faculty listings is checked by the
	// request service.
	requests := authenticated.Group("/requests")
	{
		requests.POST("", requestController.CreateRequest)
		requests.GET("/:id", requestController.GetRequest)
		requests.GET("/faculty/:facultyId", requestController.GetRequestsForFaculty)
	}
	requestsAdmin := admin.Group("/requests")
	{
		requestsAdmin.GET("", requestController.ListRequests)
		requestsAdmin.PUT("/:id", requestController.DecideRequest)
	}
}
