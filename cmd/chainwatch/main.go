package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"chainwatch/config"
	inputredis "chainwatch/internal/input/redis"
	"chainwatch/internal/logger"
	"chainwatch/internal/metrics"
	"chainwatch/internal/monitor"
	"chainwatch/internal/output/alerthttp"
	"chainwatch/internal/output/alertjson"
	"chainwatch/internal/output/alertkafka"
	"chainwatch/internal/pipeline"
	"chainwatch/internal/rules"
	"chainwatch/pkg/models"
)

func findConfigFile(configArg string) string {
	if configArg != "" {
		path := configArg
		if _, err := os.Stat(path); err == nil {
			return path
		}
		log.Printf("Warning: config file not found at %s, trying default locations", path)
	}

	if _, err := os.Stat("chainwatch.yml"); err == nil {
		return "chainwatch.yml"
	}

	exePath, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exePath)
		path := filepath.Join(exeDir, "chainwatch.yml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "chainwatch.yml"
}

func applyDefaults(cfg *config.Config) {
	if cfg.ChainWatch.Monitor.ID == "" {
		cfg.ChainWatch.Monitor.ID = "risk_monitor_001"
	}

	if cfg.ChainWatch.Input.Redis.Addr == "" {
		cfg.ChainWatch.Input.Redis.Addr = "127.0.0.1:6379"
	}
	if cfg.ChainWatch.Input.Redis.Key == "" {
		cfg.ChainWatch.Input.Redis.Key = "disruption_events"
	}
	if cfg.ChainWatch.Input.Redis.BlockTimeout == 0 {
		cfg.ChainWatch.Input.Redis.BlockTimeout = 5 * time.Second
	}

	if cfg.ChainWatch.Pipeline.BatchSize <= 0 {
		cfg.ChainWatch.Pipeline.BatchSize = 100
	}
	if cfg.ChainWatch.Pipeline.FlushInterval <= 0 {
		cfg.ChainWatch.Pipeline.FlushInterval = 2 * time.Second
	}
	if cfg.ChainWatch.Pipeline.ReportInterval < 0 {
		cfg.ChainWatch.Pipeline.ReportInterval = 0
	}

	if cfg.ChainWatch.Alerts.Output.Mode == "" {
		cfg.ChainWatch.Alerts.Output.Mode = "file"
	}
	if cfg.ChainWatch.Alerts.Output.File.Path == "" {
		cfg.ChainWatch.Alerts.Output.File.Path = "output/alerts.jsonl"
	}
	if cfg.ChainWatch.Alerts.Output.Kafka.Topic == "" {
		cfg.ChainWatch.Alerts.Output.Kafka.Topic = "disruption.alerts"
	}

	if cfg.ChainWatch.Metrics.Addr == "" {
		cfg.ChainWatch.Metrics.Addr = ":9090"
	}

	if cfg.ChainWatch.Logging.Level == "" {
		cfg.ChainWatch.Logging.Level = "info"
	}
}

func runServe(args []string) {
	configArg := ""
	if len(args) > 0 {
		configArg = args[0]
	}

	configPath := findConfigFile(configArg)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyDefaults(cfg)

	if err := logger.Init(cfg.ChainWatch.Logging.Enabled, cfg.ChainWatch.Logging.Level, cfg.ChainWatch.Logging.File, cfg.ChainWatch.Logging.Console); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.Infof("ChainWatch starting")
	logger.Infof("Config loaded from: %s", configPath)

	consumer, err := inputredis.NewConsumer(inputredis.Config{
		Addr:         cfg.ChainWatch.Input.Redis.Addr,
		Password:     cfg.ChainWatch.Input.Redis.Password,
		DB:           cfg.ChainWatch.Input.Redis.DB,
		Key:          cfg.ChainWatch.Input.Redis.Key,
		BlockTimeout: cfg.ChainWatch.Input.Redis.BlockTimeout,
	})
	if err != nil {
		logger.Errorf("Failed to create Redis consumer: %v", err)
		log.Fatalf("Failed to create Redis consumer: %v", err)
	}

	var engine rules.Engine
	if cfg.ChainWatch.Rules.Enabled {
		if strings.TrimSpace(cfg.ChainWatch.Rules.Path) == "" {
			logger.Warnf("Rules enabled but rules.path is empty; watch tagging disabled")
		} else {
			sigmaEngine, stats, err := rules.NewSigmaEngine(cfg.ChainWatch.Rules.Path)
			if err != nil {
				logger.Errorf("Failed to load watch rules from %s: %v", cfg.ChainWatch.Rules.Path, err)
				log.Fatalf("Failed to load watch rules: %v", err)
			}
			engine = sigmaEngine
			logger.Infof("Watch rules loaded: loaded=%d skipped_complex=%d skipped_datasource=%d skipped_invalid=%d files=%d",
				stats.Loaded,
				stats.SkippedComplex,
				stats.SkippedDatasource,
				stats.SkippedInvalid,
				stats.TotalFiles,
			)
			if stats.Loaded == 0 {
				logger.Warnf("No compatible watch rules loaded; tagging is effectively disabled")
			}
		}
	}

	var alertWriter pipeline.AlertWriter
	switch cfg.ChainWatch.Alerts.Output.Mode {
	case "file":
		w, err := alertjson.NewWriter(cfg.ChainWatch.Alerts.Output.File.Path)
		if err != nil {
			logger.Errorf("Failed to create alert file writer: %v", err)
			log.Fatalf("Failed to create alert file writer: %v", err)
		}
		alertWriter = w
		logger.Infof("Alert output mode: file (%s)", cfg.ChainWatch.Alerts.Output.File.Path)
	case "http":
		w, err := alerthttp.NewWriter(alerthttp.Config{
			URL:     cfg.ChainWatch.Alerts.Output.HTTP.URL,
			Timeout: cfg.ChainWatch.Alerts.Output.HTTP.Timeout,
			Headers: cfg.ChainWatch.Alerts.Output.HTTP.Headers,
		})
		if err != nil {
			logger.Errorf("Failed to create alert HTTP writer: %v", err)
			log.Fatalf("Failed to create alert HTTP writer: %v", err)
		}
		alertWriter = w
		logger.Infof("Alert output mode: http (%s)", cfg.ChainWatch.Alerts.Output.HTTP.URL)
	case "kafka":
		w, err := alertkafka.NewWriter(alertkafka.Config{
			Brokers: cfg.ChainWatch.Alerts.Output.Kafka.Brokers,
			Topic:   cfg.ChainWatch.Alerts.Output.Kafka.Topic,
			Timeout: cfg.ChainWatch.Alerts.Output.Kafka.Timeout,
		})
		if err != nil {
			logger.Errorf("Failed to create alert Kafka writer: %v", err)
			log.Fatalf("Failed to create alert Kafka writer: %v", err)
		}
		alertWriter = w
		logger.Infof("Alert output mode: kafka (%s)", cfg.ChainWatch.Alerts.Output.Kafka.Topic)
	default:
		log.Fatalf("Unknown alert output mode: %s", cfg.ChainWatch.Alerts.Output.Mode)
	}

	mon := monitor.New(monitor.Config{
		ID:        cfg.ChainWatch.Monitor.ID,
		Rules:     engine,
		Observers: []monitor.Observer{monitor.LogObserver{}, metrics.MonitorObserver{}},
	})

	if cfg.ChainWatch.Metrics.Enabled {
		go func() {
			logger.Infof("Metrics listening on %s", cfg.ChainWatch.Metrics.Addr)
			if err := metrics.Serve(cfg.ChainWatch.Metrics.Addr); err != nil {
				logger.Errorf("Metrics server error: %v", err)
			}
		}()
	}

	pipe := pipeline.NewDisruptionPipeline(
		consumer,
		mon,
		alertWriter,
		cfg.ChainWatch.Pipeline.BatchSize,
		cfg.ChainWatch.Pipeline.FlushInterval,
		cfg.ChainWatch.Pipeline.ReportInterval,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := pipe.Run(ctx); err != nil && err != context.Canceled {
			logger.Errorf("Pipeline error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Infof("Shutting down")
	cancel()
	time.Sleep(1 * time.Second)

	if err := pipe.Close(); err != nil {
		logger.Errorf("Error closing pipeline: %v", err)
	}

	logger.Infof("ChainWatch stopped")
}

func runDemo() {
	if err := logger.Init(true, "info", "", true); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	fmt.Println("Supply Chain Disruption Response System - Demo")
	fmt.Println(strings.Repeat("=", 60))

	mon := monitor.New(monitor.Config{
		Observers: []monitor.Observer{monitor.LogObserver{}},
	})

	fmt.Println("\nProcessing Disruptions...")
	fmt.Println()
	for _, d := range sampleDisruptions() {
		alert, err := mon.Ingest(d)
		if err != nil {
			fmt.Printf("ingest %s failed: %v\n", d.ID, err)
			continue
		}

		fmt.Println(alert.Disruption.Title)
		fmt.Printf("   Severity: %s\n", alert.Disruption.Severity)
		fmt.Printf("   Risk Score: %.2f/100\n", alert.RiskAssessment.RiskScore)
		fmt.Printf("   Urgency: %s\n", alert.Urgency)
		fmt.Printf("   Estimated Cost: %s\n", formatUSD(alert.RiskAssessment.TotalEstimatedCost))
		fmt.Printf("   Top Recommendation: %s\n", alert.RecommendedActions[0])
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 60))
	report := mon.SummaryReport()
	fmt.Println("\nSUMMARY REPORT")
	fmt.Printf("Total Active Disruptions: %d\n", report.Summary.TotalActiveDisruptions)
	fmt.Printf("Critical Alerts: %d\n", report.Summary.CriticalAlerts)
	fmt.Printf("High Alerts: %d\n", report.Summary.HighAlerts)
	fmt.Printf("Total Estimated Cost: %s\n", formatUSD(report.Summary.TotalEstimatedCost))
}

// formatUSD renders a dollar amount with thousands separators for the
// demo output. Machine consumers get the raw number in the report.
func formatUSD(v float64) string {
	neg := v < 0
	v = math.Abs(v)

	whole := int64(v)
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), cents)
}

func sampleDisruptions() []models.Disruption {
	now := time.Now()
	return []models.Disruption{
		{
			ID:                  "DISRUPT_001",
			Type:                models.TypeWeather,
			Title:               "Hurricane Milton Approaching Florida Coast",
			Description:         "Category 4 hurricane expected to impact major shipping ports",
			Severity:            models.SeverityCritical,
			Location:            "Florida, USA",
			AffectedRegions:     []string{"Southeast US", "Gulf Coast"},
			AffectedSuppliers:   []string{"Port of Miami", "Jacksonville Port Authority"},
			EstimatedImpactDays: 7,
			EstimatedCostPerDay: 500000,
			Timestamp:           now,
			Source:              "National Weather Service",
			Confidence:          0.95,
		},
		{
			ID:                  "DISRUPT_002",
			Type:                models.TypeSupplier,
			Title:               "Semiconductor Manufacturer Maintenance Shutdown",
			Description:         "Taiwan-based chip supplier scheduled maintenance",
			Severity:            models.SeverityMedium,
			Location:            "Taiwan",
			AffectedRegions:     []string{"Asia Pacific", "North America"},
			AffectedSuppliers:   []string{"TSMC Fab 18"},
			EstimatedImpactDays: 14,
			EstimatedCostPerDay: 75000,
			Timestamp:           now,
			Source:              "Supplier Communication",
			Confidence:          1.0,
		},
		{
			ID:                  "DISRUPT_003",
			Type:                models.TypeTransportation,
			Title:               "Suez Canal Traffic Delays",
			Description:         "Container ship experiencing mechanical issues causing backlog",
			Severity:            models.SeverityHigh,
			Location:            "Suez Canal, Egypt",
			AffectedRegions:     []string{"Europe", "Asia", "Middle East"},
			AffectedSuppliers:   []string{"Multiple shipping lines"},
			EstimatedImpactDays: 3,
			EstimatedCostPerDay: 250000,
			Timestamp:           now,
			Source:              "Maritime Traffic Monitor",
			Confidence:          0.85,
		},
		{
			ID:                  "DISRUPT_004",
			Type:                models.TypeGeopolitical,
			Title:               "Port Strike in Los Angeles",
			Description:         "Dockworkers union strike affecting West Coast operations",
			Severity:            models.SeverityCritical,
			Location:            "Los Angeles, California",
			AffectedRegions:     []string{"West Coast US"},
			AffectedSuppliers:   []string{"Port of LA", "Port of Long Beach"},
			EstimatedImpactDays: 10,
			EstimatedCostPerDay: 800000,
			Timestamp:           now,
			Source:              "Labor Relations Board",
			Confidence:          0.90,
		},
	}
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			runServe(os.Args[2:])
			return
		case "demo":
			runDemo()
			return
		default:
			// Backward-compatible mode: first arg is config path.
			runServe(os.Args[1:])
			return
		}
	}

	runServe(nil)
}
