package main

import (
	"log"

	"quizquest/config"
	"quizquest/handlers"
	"quizquest/middleware"
	"quizquest/models"
	"quizquest/routes"
	"quizquest/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Student{},
		&models.Report{},
		&models.Connection{},
		&models.Course{},
		&models.Topic{},
		&models.Settings{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	quizService := services.NewQuizService(db)
	studentService := services.NewStudentService(db)
	reportService := services.NewReportService(db)
	connectionService := services.NewConnectionService(db)
	courseService := services.NewCourseService(db)
	settingsService := services.NewSettingsService(db)
	timerService := services.NewTimerService(redisClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	studentHandler := handlers.NewStudentHandler(studentService)
	reportHandler := handlers.NewReportHandler(reportService, quizService, connectionService, timerService)
	connectionHandler := handlers.NewConnectionHandler(connectionService)
	courseHandler := handlers.NewCourseHandler(courseService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	timerHandler := handlers.NewTimerHandler(timerService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(
		router,
		authHandler,
		quizHandler,
		studentHandler,
		reportHandler,
		connectionHandler,
		courseHandler,
		settingsHandler,
		timerHandler,
		timerService,
		cfg.JWTSecret,
	)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
