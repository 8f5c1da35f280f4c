package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ccbj/ccbj-forms/internal/money"
)

// Config holds server configuration
type Config struct {
	Address      string
	Locale       string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server is the form validation HTTP API
type Server struct {
	config    *Config
	router    *gin.Engine
	logger    *zap.Logger
	formatter *money.Formatter
}

// NewServer creates a new API server. logger may be nil.
func NewServer(config *Config, logger *zap.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))

	s := &Server{
		config:    config,
		router:    router,
		logger:    logger,
		formatter: money.NewFormatter(config.Locale),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		// Field validators
		v1.POST("/validate/date-range", s.handleDateRange)
		v1.POST("/validate/:kind", s.handleValidate)

		// Currency
		v1.POST("/currency/format", s.handleCurrencyFormat)
		v1.POST("/currency/parse", s.handleCurrencyParse)

		// Input masks
		v1.POST("/mask/:kind", s.handleMask)

		// Whole forms
		v1.POST("/bolsistas/validate", s.handleBolsistaValidate)
		v1.POST("/contratos/filter/validate", s.handleFilterValidate)
		v1.POST("/contratos/status/validate", s.handleStatusChangeValidate)

		// Documents
		v1.POST("/documentos/placeholders", s.handlePlaceholders)
		v1.POST("/documentos/info", s.handleDocumentInfo)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("address", s.config.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
