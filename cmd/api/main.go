package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alfredoptarigan/ats-resume-checker/internal/config"
	"alfredoptarigan/ats-resume-checker/internal/handlers"
	"alfredoptarigan/ats-resume-checker/internal/repositories"
	"alfredoptarigan/ats-resume-checker/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository()
	log.Println("✅ Session repository initialized")

	// Initialize services
	rasterizer, closeRasterizer, err := services.NewRasterizer(rasterOptions(cfg.Raster))
	if err != nil {
		log.Fatalf("❌ Failed to initialize rasterizer: %v", err)
	}
	defer closeRasterizer()
	preprocessor := services.NewDocumentPreprocessor(rasterizer)
	uploadReader := services.NewUploadReader(cfg.Storage.MaxFileSize)
	reportGenerator := services.NewReportGenerator(services.NewChromedpRenderer(
		cfg.Report.ChromePath,
		cfg.Report.Timeout,
		cfg.Report.MaxConcurrency,
	))
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	gateway, err := services.NewGeminiGateway(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature,
		services.WithRateLimit(cfg.Gemini.RateLimit, cfg.Gemini.RateBurst),
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	pipeline := services.NewEvaluationPipeline(gateway, services.NewPipelineMetrics(prometheus.DefaultRegisterer))
	log.Println("✅ Gemini AI initialized successfully")

	// Start session janitor
	janitor := services.NewJanitor(sessionRepo, cfg.Session.TTL, cfg.Session.SweepInterval)
	janitor.Start(ctx)

	// Initialize Handlers
	sessionHandler := handlers.NewSessionHandler(sessionRepo)
	uploadHandler := handlers.NewUploadHandler(sessionRepo, uploadReader, preprocessor)
	evaluationHandler := handlers.NewEvaluationHandler(sessionRepo, pipeline, reportGenerator)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Checker API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	handlers.UseMiddleware(app, handlers.NewMetricsBuilder(prometheus.DefaultRegisterer))

	// Routes
	handlers.RegisterRoutes(app, sessionHandler, uploadHandler, evaluationHandler)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		janitor.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s (%s)\n", addr, cfg.Server.Env)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func rasterOptions(cfg config.RasterConfig) services.RasterOptions {
	return services.RasterOptions{
		Backend:      cfg.Backend,
		PdftoppmPath: cfg.PdftoppmPath,
		DPI:          cfg.DPI,
		JPEGQuality:  cfg.JPEGQuality,
		Workers:      cfg.Workers,
		Timeout:      cfg.Timeout,
	}
}
