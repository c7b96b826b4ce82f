package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/archive"
	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/metrics"
	"github.com/assessment-report-engine/internal/middleware"
	"github.com/assessment-report-engine/internal/report"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Server represents the HTTP server
type Server struct {
	configManager domain.ConfigManager
	engine        *report.Engine
	store         archive.Store
	gatherer      prometheus.Gatherer
	logger        *logrus.Logger
	router        *gin.Engine
	server        *http.Server
}

// Options carries the optional collaborators of the HTTP server
type Options struct {
	Store    archive.Store // nil disables the archive endpoints
	Gatherer prometheus.Gatherer
	Metrics  *metrics.Metrics
}

// NewServer creates a new HTTP server instance
func NewServer(configManager domain.ConfigManager, engine *report.Engine, logger *logrus.Logger, opts Options) *Server {
	cfg := configManager.GetConfig()

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.AuditLogger(logger))
	router.Use(middleware.Metrics(opts.Metrics))
	router.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	server := &Server{
		configManager: configManager,
		engine:        engine,
		store:         opts.Store,
		gatherer:      gatherer,
		logger:        logger,
		router:        router,
	}

	server.setupRoutes()

	return server
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is canceled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/reports", s.handleGenerateReport)
		v1.GET("/reports", s.handleListReports)
		v1.GET("/reports/:id", s.handleGetReport)
		v1.DELETE("/reports/:id", s.handleDeleteReport)
		v1.POST("/assessments/validate", s.handleValidateAssessment)
		v1.POST("/care/costs", s.handleCareCosts)
	}
}

// GenerateReportRequest is the body of POST /api/v1/reports
type GenerateReportRequest struct {
	Assessment *domain.AssessmentRecord `json:"assessment"`
	Options    *domain.ReportOptions    `json:"options,omitempty"`
	Save       *bool                    `json:"save,omitempty"` // defaults to true when an archive is configured
}

// CareCostsRequest is the body of POST /api/v1/care/costs
type CareCostsRequest struct {
	Tasks []domain.CareTask `json:"tasks"`
}

func (s *Server) handleHealth(c *gin.Context) {
	status := "healthy"
	archiveStatus := "disabled"
	if s.store != nil {
		archiveStatus = "ok"
		if _, err := s.store.Count(c.Request.Context()); err != nil {
			archiveStatus = "unavailable"
			status = "degraded"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"archive":   archiveStatus,
		"timestamp": time.Now().UTC(),
		"version":   Version,
	})
}

func (s *Server) handleGenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "invalid request body", err.Error())
		return
	}
	if req.Assessment == nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "assessment is required", "")
		return
	}

	opts := s.engine.DefaultOptions()
	if req.Options != nil {
		opts = s.engine.MergeOptions(*req.Options)
	}

	generated, err := s.engine.Generate(c.Request.Context(), req.Assessment, opts)
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailed) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      domain.NewReportError(domain.ErrValidation, "assessment failed validation", err.Error(), s.correlationID(c)),
				"validation": s.engine.Validate(req.Assessment),
			})
			return
		}
		s.respondError(c, http.StatusBadRequest, domain.ErrGeneration, "report generation failed", err.Error())
		return
	}

	save := s.store != nil
	if req.Save != nil {
		save = save && *req.Save
	}
	if save {
		if err := s.store.Save(c.Request.Context(), archive.FromReport(generated)); err != nil {
			s.logger.WithError(err).WithField("report_id", generated.ID).Error("Failed to archive report")
			s.respondError(c, http.StatusInternalServerError, domain.ErrStorage, "failed to archive report", err.Error())
			return
		}
	}

	c.JSON(http.StatusCreated, generated)
}

func (s *Server) handleListReports(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	limit, err := queryInt(c, "limit", 20)
	if err != nil || limit <= 0 || limit > 500 {
		s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "limit must be between 1 and 500", "")
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "offset must be non-negative", "")
		return
	}

	ctx := c.Request.Context()
	reports, err := s.store.List(ctx, limit, offset)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, domain.ErrStorage, "failed to list reports", err.Error())
		return
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, domain.ErrStorage, "failed to count reports", err.Error())
		return
	}
	if reports == nil {
		reports = []*archive.StoredReport{}
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func (s *Server) handleGetReport(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	stored, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.storeError(c, err)
		return
	}

	if c.Query("raw") == "true" {
		c.Data(http.StatusOK, contentType(stored.Format), []byte(stored.Content))
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (s *Server) handleDeleteReport(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleValidateAssessment(c *gin.Context) {
	var record domain.AssessmentRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "invalid assessment", err.Error())
		return
	}
	c.JSON(http.StatusOK, s.engine.Validate(&record))
}

func (s *Server) handleCareCosts(c *gin.Context) {
	var req CareCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "invalid request body", err.Error())
		return
	}
	c.JSON(http.StatusOK, s.engine.CareCosts(req.Tasks))
}

func (s *Server) requireStore(c *gin.Context) bool {
	if s.store == nil {
		s.respondError(c, http.StatusServiceUnavailable, domain.ErrStorage, "report archive is disabled", "")
		return false
	}
	return true
}

func (s *Server) storeError(c *gin.Context, err error) {
	if errors.Is(err, archive.ErrNotFound) {
		s.respondError(c, http.StatusNotFound, domain.ErrNotFound, "report not found", "")
		return
	}
	s.respondError(c, http.StatusInternalServerError, domain.ErrStorage, "archive operation failed", err.Error())
}

func (s *Server) respondError(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, gin.H{"error": domain.NewReportError(code, message, details, s.correlationID(c))})
}

func (s *Server) correlationID(c *gin.Context) string {
	return c.GetString(middleware.CorrelationIDKey)
}


func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func contentType(format string) string {
	switch domain.OutputFormat(format) {
	case domain.FormatHTML:
		return "text/html; charset=utf-8"
	case domain.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
