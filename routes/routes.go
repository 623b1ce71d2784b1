package routes

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"quizquest/handlers"
	"quizquest/middleware"
	"quizquest/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	studentHandler *handlers.StudentHandler,
	reportHandler *handlers.ReportHandler,
	connectionHandler *handlers.ConnectionHandler,
	courseHandler *handlers.CourseHandler,
	settingsHandler *handlers.SettingsHandler,
	timerHandler *handlers.TimerHandler,
	timerService *services.TimerService,
	jwtSecret string,
) {
	api := router.Group("/api")
	{
		// Public routes
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// Quizzes
			quizzes := protected.Group("/quizzes")
			{
				quizzes.POST("/save", quizHandler.SaveQuiz)
				quizzes.GET("/teacher/:teacherId", quizHandler.GetTeacherQuizzes)
				quizzes.GET("/:id", quizHandler.GetQuiz)
				quizzes.PUT("/update/:quizId", quizHandler.UpdateQuiz)
				quizzes.DELETE("/delete/:quizId", quizHandler.DeleteQuiz)
			}

			// Roster
			students := protected.Group("/students")
			{
				students.GET("/teacher/:teacherId", studentHandler.GetTeacherStudents)
				students.GET("/search", studentHandler.SearchStudents)
				students.POST("/add", studentHandler.AddStudent)
				students.PUT("/update/:studentId", studentHandler.UpdateStudent)
				students.PUT("/bulk-update", studentHandler.BulkUpdate)
				students.DELETE("/delete/:studentId", studentHandler.DeleteStudent)
			}

			// Reports
			reports := protected.Group("/reports")
			{
				reports.GET("/teacher/:teacherId", reportHandler.GetTeacherReports)
				reports.GET("/analytics/:teacherId", reportHandler.GetAnalytics)
				reports.POST("/add", reportHandler.AddReport)
				reports.PUT("/update/:reportId", reportHandler.UpdateReport)
				reports.DELETE("/delete/:reportId", reportHandler.DeleteReport)
			}

			// Connections
			connections := protected.Group("/connections")
			{
				connections.POST("/request", connectionHandler.Request)
				connections.POST("/respond", connectionHandler.Respond)
				connections.DELETE("/remove/:connectionId", connectionHandler.Remove)
				connections.GET("/stats/:teacherId", connectionHandler.Stats)
				connections.GET("/pending/:teacherId", connectionHandler.PendingForTeacher)
				connections.GET("/linked/:teacherId", connectionHandler.LinkedForTeacher)
				connections.GET("/find/:studentId/:teacherId", connectionHandler.Find)
			}

			// Student-facing
			student := protected.Group("/student")
			{
				student.GET("/teachers/:studentId", connectionHandler.TeachersForStudent)
				student.GET("/quizzes/:studentId", quizHandler.GetStudentQuizzes)
				student.GET("/reports/:studentId", reportHandler.GetStudentReports)
				student.GET("/dashboard/:studentId", reportHandler.GetStudentDashboard)
				student.GET("/connections/pending/:studentId", connectionHandler.PendingForStudent)
				student.POST("/quiz/attempt", reportHandler.SubmitAttempt)
				student.PUT("/profile/:studentId", authHandler.UpdateProfile)
			}

			protected.GET("/teachers/search", authHandler.SearchTeachers)

			// Courses and topics
			courses := protected.Group("/courses")
			{
				courses.GET("/teacher/:teacherId", courseHandler.GetTeacherCourses)
				courses.POST("/create", courseHandler.CreateCourse)
				courses.DELETE("/:courseId", courseHandler.DeleteCourse)
			}
			topics := protected.Group("/topics")
			{
				topics.GET("/course/:courseId", courseHandler.GetCourseTopics)
				topics.GET("/teacher/:teacherId", courseHandler.GetTeacherTopics)
				topics.POST("/create", courseHandler.CreateTopic)
				topics.DELETE("/:topicId", courseHandler.DeleteTopic)
			}

			// Settings
			settings := protected.Group("/settings")
			{
				settings.GET("/teacher/:teacherId", settingsHandler.GetSettings)
				settings.PUT("/update/:teacherId", settingsHandler.UpdateSettings)
				settings.POST("/reset/:teacherId", settingsHandler.ResetSettings)
			}

			// Attempt timers
			quiz := protected.Group("/quiz")
			{
				quiz.POST("/start-timer", timerHandler.StartTimer)
				quiz.GET("/remaining-time/:quizId/:studentId", timerHandler.GetRemainingTime)
			}
		}
	}

	// WebSocket endpoint streaming the attempt countdown once per second
	router.GET("/ws/timer/:quizId/:studentId", func(c *gin.Context) {
		quizID, err := strconv.ParseUint(c.Param("quizId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid quiz ID"})
			return
		}
		studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid student ID"})
			return
		}

		// A timer must exist before a client may subscribe to it
		if _, err := timerService.RemainingTime(c.Request.Context(), uint(quizID), uint(studentID)); err != nil {
			log.Printf("Timer subscription refused for quiz %d, student %d: %v", quizID, studentID, err)
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No active timer for this quiz attempt"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for quiz %d, student %d: %v", quizID, studentID, err)
			return
		}

		go streamTimer(conn, timerService, uint(quizID), uint(studentID))
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

type timerTick struct {
	RemainingTime int    `json:"remainingTime"`
	FormattedTime string `json:"formattedTime"`
	Expired       bool   `json:"expired"`
}

// streamTimer pushes the countdown to the client every second until the timer
// expires, is cleared by a submission, or the client disconnects.
func streamTimer(conn *websocket.Conn, timerService *services.TimerService, quizID, studentID uint) {
	defer conn.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Drain reads so close frames from the client are processed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := context.Background()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			remaining, err := timerService.RemainingTime(ctx, quizID, studentID)
			if err != nil {
				// Timer cleared (attempt submitted) or expired out of Redis
				conn.WriteJSON(timerTick{RemainingTime: 0, FormattedTime: services.FormatTime(0), Expired: true})
				return
			}

			tick := timerTick{
				RemainingTime: remaining,
				FormattedTime: services.FormatTime(remaining),
				Expired:       remaining == 0,
			}
			if err := conn.WriteJSON(tick); err != nil {
				return
			}
			if tick.Expired {
				return
			}
		}
	}
}
