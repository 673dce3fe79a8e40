// Package server initializes and runs the report API: it opens the database
// pool, wires repositories, services and the HTTP router, and handles
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/escc-report-api/internal/dbx"
	"github.com/dmitrijs2005/escc-report-api/internal/logging"
	"github.com/dmitrijs2005/escc-report-api/internal/server/config"
	"github.com/dmitrijs2005/escc-report-api/internal/server/httpapi"
	"github.com/dmitrijs2005/escc-report-api/internal/server/metrics"
	"github.com/dmitrijs2005/escc-report-api/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/escc-report-api/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	syncLogger func() error
	db         *sql.DB
	server     *httpapi.Server
}

// openDB is a seam for tests.
var openDB = dbx.Open

func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, syncLogger, err := logging.New(logOut, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	rm, err := repomanager.New(c.DBDriver)
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, c.DBDriver, c.DatabaseDSN, dbx.PoolOptions{
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxIdleTime: c.DBConnMaxIdleTime,
		ConnectTimeout:  c.DBConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	mt := metrics.New()
	mt.WatchDB(db, "escc")

	us := services.NewUserService(db, rm, c, mt, logger.With("module", "users"))
	js := services.NewJobService(db, rm, c, mt, logger.With("module", "jobs"))

	gin.SetMode(gin.ReleaseMode)
	h := httpapi.NewHandler(us, js, db, logger)
	router := httpapi.NewRouter(c, h, mt, logger)

	return &App{
		config:     c,
		logger:     logger,
		syncLogger: syncLogger,
		db:         db,
		server:     httpapi.NewServer(c.HTTPAddr, router, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DBDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
	_ = app.syncLogger()
}
