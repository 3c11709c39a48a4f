package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"alfredoptarigan/ats-resume-checker/internal/config"
	"alfredoptarigan/ats-resume-checker/internal/models"
	"alfredoptarigan/ats-resume-checker/internal/services"
)

func main() {
	resumePath := flag.String("resume", "", "path to the resume PDF")
	jdPath := flag.String("jd", "", "path to a text file holding the job description")
	actionsFlag := flag.String("actions", "evaluation", "comma-separated actions to run, or \"all\"")
	question := flag.String("question", "", "optional question for the chatbot")
	reportPath := flag.String("report", "", "write a PDF report here after the run")
	flag.Parse()

	log.Println("🚀 Starting resume check...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if *resumePath == "" || *jdPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		log.Fatalf("❌ Failed to read resume: %v", err)
	}
	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		log.Fatalf("❌ Failed to read job description: %v", err)
	}

	actions, err := parseActions(*actionsFlag)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx := context.Background()

	// Initialize services
	rasterizer, closeRasterizer, err := services.NewRasterizer(services.RasterOptions{
		Backend:      cfg.Raster.Backend,
		PdftoppmPath: cfg.Raster.PdftoppmPath,
		DPI:          cfg.Raster.DPI,
		JPEGQuality:  cfg.Raster.JPEGQuality,
		Workers:      1,
		Timeout:      cfg.Raster.Timeout,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize rasterizer: %v", err)
	}
	defer closeRasterizer()
	preprocessor := services.NewDocumentPreprocessor(rasterizer)
	gateway, err := services.NewGeminiGateway(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature,
		services.WithRateLimit(cfg.Gemini.RateLimit, cfg.Gemini.RateBurst),
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}
	pipeline := services.NewEvaluationPipeline(gateway, nil)

	// Preprocess the resume once for every action
	log.Printf("📖 Rendering first page of %s...", *resumePath)
	payload, err := preprocessor.RenderFirstPage(ctx, resumeBytes)
	if err != nil {
		log.Fatalf("❌ Failed to preprocess resume: %v", err)
	}

	session := models.NewSession()
	session.SetResume(*resumePath, payload, preprocessor.ExtractFirstPageText(resumeBytes))
	session.SetJobDescription(string(jdBytes))

	failCount := 0
	for _, action := range actions {
		result, err := pipeline.RunAction(ctx, session, action)
		if err != nil {
			log.Printf("❌ %s failed: %v", action, err)
			failCount++
			continue
		}
		printResult(result)
	}

	if strings.TrimSpace(*question) != "" {
		result, err := pipeline.Ask(ctx, session, *question)
		if err != nil {
			log.Printf("❌ Question failed: %v", err)
			failCount++
		} else {
			printResult(result)
		}
	}

	if *reportPath != "" {
		reports := services.NewReportGenerator(services.NewChromedpRenderer(
			cfg.Report.ChromePath,
			cfg.Report.Timeout,
			cfg.Report.MaxConcurrency,
		))
		pdfBytes, err := reports.Export(ctx, session)
		if err != nil {
			log.Printf("❌ Failed to export report: %v", err)
			failCount++
		} else if err := os.WriteFile(*reportPath, pdfBytes, 0o644); err != nil {
			log.Printf("❌ Failed to write report: %v", err)
			failCount++
		} else {
			log.Printf("📄 Report written to %s", *reportPath)
		}
	}

	if failCount > 0 {
		log.Printf("⚠️  %d step(s) failed. Please check the logs above.", failCount)
		os.Exit(1)
	}

	log.Println("✅ Resume check completed successfully!")
}

func parseActions(value string) ([]services.Action, error) {
	if strings.TrimSpace(value) == "all" {
		var actions []services.Action
		for _, t := range services.Catalog() {
			if t.Action != services.ActionQuestion {
				actions = append(actions, t.Action)
			}
		}
		return actions, nil
	}

	var actions []services.Action
	for _, name := range strings.Split(value, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		action, err := services.ParseAction(name)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	if len(actions) == 0 {
		return nil, fmt.Errorf("no actions given")
	}
	return actions, nil
}

func printResult(result *models.ActionResult) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println(result.Title)
	fmt.Println(strings.Repeat("=", 60))

	if result.Evaluation != nil {
		for _, m := range result.Evaluation.Metrics() {
			fmt.Printf("%-20s %d\n", m.Label+":", m.Value)
		}
		fmt.Printf("%-20s %s\n", "Match band:", services.MatchBand(result.Evaluation.MatchPercentage))
		return
	}
	if result.Warning != "" {
		fmt.Println("⚠️ ", result.Warning)
	}
	fmt.Println(result.Text)
}
