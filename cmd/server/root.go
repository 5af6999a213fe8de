package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/nsm-example/internal/auth"
	"github.com/iliyamo/nsm-example/internal/config"
	"github.com/iliyamo/nsm-example/internal/database"
	"github.com/iliyamo/nsm-example/internal/handler"
	"github.com/iliyamo/nsm-example/internal/logging"
	"github.com/iliyamo/nsm-example/internal/queue"
	"github.com/iliyamo/nsm-example/internal/repository"
	"github.com/iliyamo/nsm-example/internal/router"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nsm-example",
		Short:         "Example web server for NSM-managed projects",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd)
		},
	}

	cmd.Flags().String("host", "", "Listen host; overrides APP_HOST and the port file")
	cmd.Flags().Int("port", 0, "Listen port; overrides APP_PORT and the port file")
	cmd.Flags().String("ports-file", "", "Path to the NSM port file (Env: NSM_PORTS_FILE)")
	cmd.Flags().String("env-file", ".env", "Optional dotenv file loaded before reading the environment")
	cmd.Flags().String("log-level", "", "Logging level: debug, info, warn, error (Env: LOG_LEVEL)")
	return cmd
}

// loadConfig reads the dotenv file and the environment, then applies any
// flag the user actually set.  A missing dotenv file is not an error.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	envFile, _ := flags.GetString("env-file")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cfg := config.Load()
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
		if cfg.Port < 1 || cfg.Port > 65535 {
			return config.Config{}, fmt.Errorf("invalid --port %d: must be within 1..65535", cfg.Port)
		}
	}
	if flags.Changed("ports-file") {
		cfg.PortsFile, _ = flags.GetString("ports-file")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	zlog, slogLog, syncLog := logging.New(cfg.IsProd(), cfg.LogLevel)
	defer func() { _ = syncLog() }()

	ports, err := config.LoadPorts(cfg.PortsFile)
	if err != nil {
		zlog.Warn("NSM: failed to read port configuration, using defaults", zap.Error(err))
	} else {
		zlog.Info("NSM: port configuration", zap.Int("http", ports.HTTP), zap.Int("https", ports.HTTPS), zap.String("host", ports.Host))
	}
	if !cfg.PortValid() {
		zlog.Warn("APP_PORT out of range, using port file value", zap.Int("port", cfg.Port), zap.Int("fallback", ports.HTTP))
	}
	addr := cfg.ResolveAddr(ports)

	checks := map[string]handler.Check{}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		zlog.Info("redis unavailable; rate limiting and response cache disabled")
	}

	store, db, err := openStore(ctx, zlog)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checks["database"] = db.PingContext
	}

	notifier, stopEvents := startEvents(ctx, zlog)
	defer stopEvents()

	admin, err := auth.NewAdmin(config.LoadAuthConfig())
	if err != nil {
		return err
	}
	if admin == nil {
		zlog.Info("auth disabled; task mutations are open")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.RegisterRoutes(e, router.Deps{
		Cfg:       cfg,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
		Redis:     rdb,
		Admin:     admin,
		Log:       zlog,
		SlogLog:   slogLog,
		App:       handler.NewAppHandler(cfg, checks),
		Echo:      handler.NewEchoHandler(notifier),
		Tasks:     handler.NewTaskHandler(store, notifier),
		Auth:      handler.NewAuthHandler(admin),
	})

	nsm := "Disabled"
	if config.NSMEnabled() {
		nsm = "Enabled"
	}
	zlog.Info("server starting",
		zap.String("addr", addr),
		zap.String("domain", cfg.Domain),
		zap.String("nsm", nsm),
		zap.String("env", cfg.Env))

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zlog.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	notifier.Wait()
	return nil
}

// openStore returns the MySQL task store when DB_HOST is set and reachable,
// otherwise the in-memory one.  db is nil for the in-memory store.
func openStore(ctx context.Context, log *zap.Logger) (repository.TaskStore, *sql.DB, error) {
	dbCfg := config.LoadDatabaseConfig()
	if !dbCfg.Enabled() {
		return repository.NewMemoryTaskRepo(), nil, nil
	}
	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		log.Warn("database unavailable, using in-memory task store", zap.String("host", dbCfg.Host), zap.Error(err))
		return repository.NewMemoryTaskRepo(), nil, nil
	}
	return repository.NewTaskRepo(db), db, nil
}

// startEvents wires the event publisher and, if requested, the consumer.
// The returned func releases the AMQP connection.
func startEvents(ctx context.Context, log *zap.Logger) (*queue.Notifier, func()) {
	qCfg := config.LoadQueueConfig()
	if !qCfg.Enabled {
		return queue.NewNotifier(nil, log, 0), func() {}
	}

	pub := queue.NewAMQPPublisher(qCfg.URL, qCfg.Queue)
	if qCfg.ConsumerEnabled {
		c := &queue.Consumer{URL: qCfg.URL, Queue: qCfg.Queue, LogDir: qCfg.LogDir, Log: log}
		go func() {
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("event consumer stopped", zap.Error(err))
			}
		}()
	}
	log.Info("events enabled", zap.String("queue", qCfg.Queue), zap.Bool("consumer", qCfg.ConsumerEnabled))
	return queue.NewNotifier(pub, log, 5*time.Second), func() { _ = pub.Close() }
}

