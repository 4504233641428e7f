package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jarvisgw/internal/handlers"
	"jarvisgw/internal/integrations/completion"
	"jarvisgw/internal/manager"
	"jarvisgw/internal/middleware"
	"jarvisgw/internal/utils"
	"jarvisgw/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

type App struct {
	manager     *manager.Manager
	logger      *utils.Logger
	wsHub       *middleware.Hub
	rateLimiter *middleware.RateLimiter
	provider    completion.Provider
}

var app *App

var (
	configPath string
	portFlag   int
)

var rootCmd = &cobra.Command{
	Use:   "jarvisgw",
	Short: "JARVIS unified gateway",
	Long: `jarvisgw serves the JARVIS REST API and realtime broadcast channel.

Environment Variables:
  PORT                     Listen port (default 8000)
  WORKSPACE_BASE           Workspace root holding CORE/, skills and configs
  ALLOWED_ORIGINS          Comma separated browser origins, "*" for any
  ANTHROPIC_API_KEY        Enables live content generation
  JARVIS_COMPLETION_MODEL  Completion model name
  JARVIS_CONFIG            YAML config file (overridden by --config)`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := manager.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = portFlag
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		return run(cfg)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().IntVarP(&portFlag, "port", "p", 0, "listen port (overrides config and PORT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jarvisgw:", err)
		os.Exit(1)
	}
}

// newApp wires the manager, hub and completion provider for cfg.
func newApp(cfg *manager.Config, logger *utils.Logger, opts ...manager.Option) *App {
	opts = append([]manager.Option{manager.WithLogger(logger)}, opts...)
	mgr := manager.New(cfg, opts...)
	hub := middleware.NewHub(logger, cfg.AllowedOrigins)
	mgr.SetBroadcaster(hub)

	var provider completion.Provider
	if cfg.Completion.Demo() {
		logger.Write("ANTHROPIC_API_KEY not set; content generation runs in demo mode")
	} else {
		provider = completion.NewAnthropic(completion.Config{
			APIKey:    cfg.Completion.APIKey,
			BaseURL:   cfg.Completion.BaseURL,
			Model:     cfg.Completion.Model,
			MaxTokens: cfg.Completion.MaxTokens,
		})
	}

	return &App{
		manager:     mgr,
		logger:      logger,
		wsHub:       hub,
		rateLimiter: middleware.NewRateLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimitPerMinute)), cfg.RateLimitBurst),
		provider:    provider,
	}
}

func run(cfg *manager.Config) error {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = utils.NewPaths(cfg.WorkspaceBase).LogFile()
	}
	logger := utils.NewLogger(logFile, cfg.LogStdout)
	defer logger.Close()

	gin.DefaultWriter = utils.LogWriter{Log: logger}
	gin.DefaultErrorWriter = utils.LogWriter{Log: logger}

	app = newApp(cfg, logger)
	if !app.manager.Paths.Exists() {
		logger.Writef("Workspace %s not found; catalogs will be empty", cfg.WorkspaceBase)
	}

	r := setupRouter()
	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   90 * time.Second,
		MaxHeaderBytes: 1 << 20,
		ErrorLog:       log.New(utils.LogWriter{Log: logger}, "", 0),
	}

	app.manager.StartTelemetryMonitor()

	serveErr := make(chan error, 1)
	go func() {
		logger.Writef("Starting %s on %s", version.String(), srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		logger.Write("Shutting down server...")
	case err := <-serveErr:
		runErr = fmt.Errorf("server failed to start: %w", err)
	}

	app.manager.StopTelemetryMonitor()
	app.rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && runErr == nil {
		runErr = fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Write("Server exited")
	return runErr
}

func setupRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLoggerWithOptions(app.manager.Config.VerboseHTTP))

	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(app.manager.Config.AllowedOrigins))
	r.Use(app.rateLimiter.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.NewGatewayHandlers(app.manager, app.provider).RegisterRoutes(r)

	r.GET("/ws", app.wsHub.HandleWebSocket())

	return r
}
