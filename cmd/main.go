package main

import (
	"fmt"
	"os"
	"time"

	"github.com/studyforge/studyforge-backend/internal/db"
	"github.com/studyforge/studyforge-backend/internal/handlers"
	"github.com/studyforge/studyforge-backend/internal/logger"
	"github.com/studyforge/studyforge-backend/internal/platform/openrouter"
	"github.com/studyforge/studyforge-backend/internal/platform/pdf"
	"github.com/studyforge/studyforge-backend/internal/repos"
	"github.com/studyforge/studyforge-backend/internal/server"
	"github.com/studyforge/studyforge-backend/internal/services"
	"github.com/studyforge/studyforge-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables...")
	apiKey := utils.GetEnv("OPENROUTER_API_KEY", "", log)
	baseURL := utils.GetEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1", log)
	appURL := utils.GetEnv("APP_URL", "http://localhost:8080", log)
	sqlitePath := utils.GetEnv("SQLITE_PATH", "studyforge.db", log)
	exportDir := utils.GetEnv("EXPORT_DIR", "exports", log)
	llmTimeout := utils.GetEnvAsInt("LLM_TIMEOUT_SECONDS", 120, log)
	pdfTimeout := utils.GetEnvAsInt("PDF_TIMEOUT_SECONDS", 60, log)
	port := utils.GetEnv("PORT", "8080", log)

	// SQLite
	sqliteService, err := db.NewSQLiteService(sqlitePath, log)
	if err != nil {
		log.Error("SQLite init failed", "error", err)
		os.Exit(1)
	}
	if err := sqliteService.AutoMigrateAll(); err != nil {
		log.Error("SQLite auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := sqliteService.DB()

	// Repos
	log.Info("Setting up repos...")
	topicRepo := repos.NewTopicRepo(theDB, log)
	aiCallLogRepo := repos.NewAICallLogRepo(theDB, log)

	// Services
	log.Info("Setting up services...")
	llmClient, err := openrouter.NewClient(openrouter.Config{
		APIKey:  apiKey,
		BaseURL: baseURL,
		AppURL:  appURL,
		Title:   "StudyForge",
		Timeout: time.Duration(llmTimeout) * time.Second,
	}, log, aiCallLogRepo)
	if err != nil {
		log.Error("Could not init OpenRouter client", "error", err)
		os.Exit(1)
	}
	pdfRenderer := pdf.NewRenderer(time.Duration(pdfTimeout)*time.Second, log)

	generationService := services.NewGenerationService(theDB, log, topicRepo, llmClient)
	topicService := services.NewTopicService(theDB, log, topicRepo)
	exportService, err := services.NewExportService(theDB, log, exportDir, pdfRenderer)
	if err != nil {
		log.Error("Could not init export service", "error", err)
		os.Exit(1)
	}

	// Handlers
	log.Info("Setting up handlers...")
	contentHandler := handlers.NewContentHandler(log, generationService, exportService)
	topicsHandler := handlers.NewTopicsHandler(log, topicService)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		ContentHandler: contentHandler,
		TopicsHandler:  topicsHandler,
		ExportDir:      exportDir,
	})

	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
