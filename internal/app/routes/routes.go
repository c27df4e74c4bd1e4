package routes

import (
	"net/http"

	"github.com/ccasilihan/gradebook/internal/app/controllers"
	"github.com/ccasilihan/gradebook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all application routes. The paths mirror the ones
// the existing frontend calls, so they stay flat and unversioned.
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	gradeController *controllers.GradeController,
	otpController *controllers.OTPController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Account routes ---
	students := router.Group("/students")
	{
		students.POST("/register", studentController.Register)
		students.POST("/login", studentController.Login)

		authed := students.Group("")
		authed.Use(authMiddleware.JWTAuth())
		{
			authed.GET("/view", studentController.Profile)
			authed.PUT("/changePass", studentController.ChangePassword)
			authed.PUT("/update", studentController.UpdateProfile)
			authed.DELETE("/delete", studentController.DeleteAccount)
		}
	}

	// --- Course and grade routes (all authenticated) ---
	courseGrades := router.Group("/course-grades")
	courseGrades.Use(authMiddleware.JWTAuth())
	{
		courseGrades.POST("/addcourses", courseController.AddCourse)
		courseGrades.PUT("/updatecourses", courseController.UpdateCourse)
		courseGrades.GET("/viewcourses", courseController.ViewCourses)
		courseGrades.DELETE("/deletecourses", courseController.DeleteCourse)

		courseGrades.POST("/addgrades", gradeController.AddGrade)
		courseGrades.PUT("/updategrades", gradeController.UpdateGrade)
		courseGrades.GET("/viewgrades", gradeController.ViewGrades)
		courseGrades.DELETE("/deletegrades", gradeController.DeleteGrade)
	}

	// --- Verification code routes (public, used before an account exists) ---
	otpSender := router.Group("/otpSender")
	{
		otpSender.POST("/send-email", otpController.SendEmail)
		otpSender.POST("/verify-otp", otpController.VerifyOTP)
	}
}
