package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financial-news-classifier/internal/classifier/config"
	delivery "financial-news-classifier/internal/classifier/delivery/http"
	"financial-news-classifier/internal/classifier/repository"
	"financial-news-classifier/internal/classifier/service"
	"financial-news-classifier/pkg/logger"
	"financial-news-classifier/pkg/postgres"
	"financial-news-classifier/pkg/redis"
	"financial-news-classifier/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var (
	configPath string
	inputFile  string
	outputFile string
	feedURL    string
	maxItems   int
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Classifies a CSV file of news articles",
	Run:   runProcess,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the classification API server",
	Run:   runServe,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Builds an input CSV from an RSS feed",
	Run:   runFetch,
}

type dependencies struct {
	cfg       *config.Config
	logger    *logger.Logger
	analyzer  service.AnalyzerService
	processor service.ProcessorService
}

func buildDependencies(cfg *config.Config, appLogger *logger.Logger) (*dependencies, error) {
	// Initialize AI provider
	var (
		aiRepo repository.AIRepository
		err    error
	)
	switch cfg.AI.Provider {
	case "", "ollama":
		backoff := repository.NewBackoffPolicy(cfg.Ollama.MaxRetries, cfg.Ollama.RetryDelay)
		aiRepo, err = repository.NewOllamaRepository(cfg, appLogger, backoff)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Ollama repository: %w", err)
		}
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		aiRepo, err = repository.NewGeminiRepository(cfg, appLogger, genAiClient)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini repository: %w", err)
		}
	default:
		return nil, fmt.Errorf("invalid AI provider: %s", cfg.AI.Provider)
	}

	// Optional persistence
	var analysisRepo repository.NewsAnalysisRepository
	if cfg.Processing.PersistResults {
		db, err := postgres.NewDB(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		analysisRepo = repository.NewNewsAnalysisRepository(db.DB)
	}

	// Optional cross-run result cache
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
	}

	// Optional Telegram notifier
	var telegramNotifier telegram.Notifier
	if cfg.Processing.NotifyTelegram {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Telegram notifier: %w", err)
		}
	}

	analyzerSvc := service.NewAnalyzerService(cfg, appLogger, aiRepo)
	processorSvc := service.NewProcessorService(
		cfg,
		appLogger,
		analyzerSvc,
		repository.NewArticleRepository(),
		analysisRepo,
		redisClient,
		telegramNotifier,
	)

	return &dependencies{
		cfg:       cfg,
		logger:    appLogger,
		analyzer:  analyzerSvc,
		processor: processorSvc,
	}, nil
}

func setup() (*config.Config, *logger.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	return cfg, appLogger
}

func runProcess(cmd *cobra.Command, args []string) {
	cfg, appLogger := setup()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting financial news classification", logger.StringField("name", cfg.App.Name))

	deps, err := buildDependencies(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize dependencies", logger.ErrorField(err))
	}

	input := inputFile
	if input == "" {
		input = cfg.CSV.InputFile
	}
	output := outputFile
	if output == "" {
		output = cfg.CSV.OutputFile
	}
	if output == "" {
		output = fmt.Sprintf("processed_articles_%s.csv", time.Now().Format("20060102_150405"))
	}

	if _, err := deps.processor.ProcessFile(context.Background(), input, output); err != nil {
		appLogger.Error("Processing completed with errors", logger.ErrorField(err))
		os.Exit(1)
	}

	appLogger.Info("Processing completed successfully", logger.StringField("output", output))
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := setup()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Classifier Service", logger.StringField("name", cfg.App.Name))

	deps, err := buildDependencies(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize dependencies", logger.ErrorField(err))
	}

	// Optional scheduled batch runs
	var cronRunner *cron.Cron
	if cfg.Scheduler.Cron != "" {
		cronRunner = cron.New()
		_, err := cronRunner.AddFunc(cfg.Scheduler.Cron, func() {
			output := cfg.CSV.OutputFile
			if output == "" {
				output = fmt.Sprintf("processed_articles_%s.csv", time.Now().Format("20060102_150405"))
			}
			if _, err := deps.processor.ProcessFile(context.Background(), cfg.CSV.InputFile, output); err != nil {
				appLogger.Error("Scheduled batch run failed", logger.ErrorField(err))
			}
		})
		if err != nil {
			appLogger.Fatal("Invalid cron expression", logger.ErrorField(err))
		}
		cronRunner.Start()
		appLogger.Info("Scheduled batch runs enabled", logger.StringField("cron", cfg.Scheduler.Cron))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	analyzeHandler := delivery.NewAnalyzeHandler(cfg, deps.analyzer, deps.processor, appLogger)
	apiV1 := e.Group("/api/v1")
	analyzeHandler.RegisterRoutes(apiV1)

	healthHandler := delivery.NewHealthHandler(deps.analyzer)
	healthHandler.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down classifier service...")
	if cronRunner != nil {
		cronRunner.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to shut down server", logger.ErrorField(err))
	}
	appLogger.Info("Classifier service stopped.")
}

func runFetch(cmd *cobra.Command, args []string) {
	cfg, appLogger := setup()
	defer func() { _ = appLogger.Sync() }()

	if feedURL == "" {
		appLogger.Fatal("A feed URL is required")
	}

	output := outputFile
	if output == "" {
		output = cfg.CSV.InputFile
	}
	if output == "" {
		output = "news_articles.csv"
	}

	feedRepo := repository.NewFeedRepository(appLogger)
	articles, err := feedRepo.FetchArticles(context.Background(), feedURL, maxItems)
	if err != nil {
		appLogger.Fatal("Failed to fetch feed", logger.ErrorField(err))
	}

	articleRepo := repository.NewArticleRepository()
	if err := articleRepo.WriteArticles(output, articles); err != nil {
		appLogger.Fatal("Failed to write articles", logger.ErrorField(err))
	}

	appLogger.Info("Articles saved",
		logger.StringField("output", output),
		logger.IntField("count", len(articles)),
	)
}

func main() {
	rootCmd := &cobra.Command{Use: "classifier-service"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-classifier.yaml", "Path to the configuration file")

	processCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file (defaults to csv.input_file)")
	processCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (defaults to csv.output_file)")

	fetchCmd.Flags().StringVarP(&feedURL, "feed", "f", "", "RSS feed URL")
	fetchCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (defaults to csv.input_file)")
	fetchCmd.Flags().IntVarP(&maxItems, "max", "m", 25, "Maximum number of articles to fetch")

	rootCmd.AddCommand(processCmd, serveCmd, fetchCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing classifier-service CLI: %s\n", err)
		os.Exit(1)
	}
}
