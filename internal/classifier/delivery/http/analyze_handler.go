package http

import (
	"net/http"

	"financial-news-classifier/internal/classifier/config"
	"financial-news-classifier/internal/classifier/dto"
	"financial-news-classifier/internal/classifier/service"
	"financial-news-classifier/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyzeHandler handles HTTP requests for ad-hoc analysis and batch runs.
type AnalyzeHandler struct {
	cfg       *config.Config
	analyzer  service.AnalyzerService
	processor service.ProcessorService
	logger    *logger.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(cfg *config.Config, analyzer service.AnalyzerService, processor service.ProcessorService, logger *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{cfg: cfg, analyzer: analyzer, processor: processor, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalyzeHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze", h.Analyze)
	g.POST("/process", h.Process)
}

// Analyze classifies a single article from the request body.
func (h *AnalyzeHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	result := h.analyzer.Analyze(c.Request().Context(), req.Article)

	resp := dto.AnalyzeResponse{
		Category:        string(result.Category),
		ConfidenceScore: result.ConfidenceScore,
		Success:         result.Success,
		ProcessingTime:  result.ProcessingTime,
	}
	if h.cfg.Processing.TrackSentiment {
		resp.Sentiment = string(result.Sentiment)
	}

	return c.JSON(http.StatusOK, resp)
}

// Process triggers a batch run over a CSV file. Paths default to the
// configured input and output files.
func (h *AnalyzeHandler) Process(c echo.Context) error {
	var req dto.ProcessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	inputPath := req.InputFile
	if inputPath == "" {
		inputPath = h.cfg.CSV.InputFile
	}
	outputPath := req.OutputFile
	if outputPath == "" {
		outputPath = h.cfg.CSV.OutputFile
	}

	stats, err := h.processor.ProcessFile(c.Request().Context(), inputPath, outputPath)
	if err != nil {
		h.logger.Error("Batch run failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, dto.ProcessResponse{Statistics: stats})
}

// HealthHandler reports the liveness of the service and its model backend.
type HealthHandler struct {
	analyzer service.AnalyzerService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(analyzer service.AnalyzerService) *HealthHandler {
	return &HealthHandler{analyzer: analyzer}
}

// RegisterRoutes registers the health route on the Echo instance.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// Health proxies the model backend connectivity probe.
func (h *HealthHandler) Health(c echo.Context) error {
	if err := h.analyzer.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unhealthy", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
