package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/AgentOS/bridge/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/domain/service"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/infrastructure/tracing"
	httpProvider "github.com/GriffinCanCode/AgentOS/bridge/internal/providers/http"
	httpclient "github.com/GriffinCanCode/AgentOS/bridge/internal/providers/http/client"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/relay"
)

// IPCPath is the WebSocket route; it bypasses response compression
const IPCPath = "/ipc"

// Server wraps the HTTP server and dependencies
type Server struct {
	config   *config.Config
	logger   *logging.Logger
	router   *gin.Engine
	handler  http.Handler
	registry *service.Registry
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer

	httpServer *http.Server
}

// NewServer wires the relay, the command registry and the boundary
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	logger.Info("Initializing HTTP bridge",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Duration("transport_timeout", cfg.Transport.Timeout()),
		zap.Bool("transport_proxy", cfg.Transport.Proxy != ""),
	)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(promRegistry)

	tracer := tracing.New("bridge", logger.Logger)

	transport := httpclient.NewClient(httpclient.Config{
		Timeout: cfg.Transport.Timeout(),
		Proxy:   cfg.Transport.Proxy,
		Logger:  logger.Logger,
	})
	provider := httpProvider.NewProvider(relay.New(transport)).
		WithMetrics(metrics).
		WithLogger(logger.Logger)

	registry := service.NewRegistry()
	if err := registry.Register(provider); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to register http provider: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
	}
	router.Use(middleware.CORS(corsCfg))

	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rateCfg := middleware.DefaultRateLimitConfig()
		rateCfg.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rateCfg.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rateCfg))
	}

	handlers := apihttp.NewHandlers(registry, metrics, logger.Logger)
	wsHandler := ws.NewHandler(registry, metrics, logger.Logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/commands", handlers.ListCommands)
	router.POST("/invoke/:command", handlers.Invoke)
	router.POST("/logs", handlers.StreamLogs)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))
	router.GET("/metrics/summary", handlers.GetMetricsSummary)

	router.GET(IPCPath, wsHandler.HandleConnection)

	// Hijacked websocket connections must not sit behind the gzip writer
	mux := http.NewServeMux()
	mux.Handle(IPCPath, router)
	mux.Handle("/", gzhttp.GzipHandler(router))

	logger.Info("Server initialized successfully",
		zap.Int("commands", len(provider.Definition().Tools)),
	)

	return &Server{
		config:   cfg,
		logger:   logger,
		router:   router,
		handler:  mux,
		registry: registry,
		metrics:  metrics,
		tracer:   tracer,
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var err error
	if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
		s.logger.Error("HTTP server shutdown failed", zap.Error(shutdownErr))
		err = fmt.Errorf("failed to shut down http server: %w", shutdownErr)
	}

	s.tracer.Close()
	_ = s.logger.Sync()

	return err
}
