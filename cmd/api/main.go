/*
Package main - SICOSS Processing Service Entry Point

==============================================================================
FILE: cmd/api/main.go
==============================================================================

DESCRIPTION:
    Entry point for the SICOSS payroll-declaration computation service. Loads
    the ambient application configuration, connects to the roster database,
    seeds the runtime SicossConfig from internal/sicossconfig, wires the
    pipeline (extract -> consolidate -> calculate -> cap -> validate ->
    aggregate -> persist) and starts the HTTP API.

ARCHITECTURE:
    main() -> LoadAppConfig -> logger.Setup -> database.NewConnection
           -> sicossconfig.Loader.Load -> sicosspipeline.New -> api.NewRouter
           -> ListenAndServe
                                                                 |
    exit <- srv.Shutdown <- SIGINT/SIGTERM <- -------------------'

==============================================================================
*/
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sicoss/internal/api"
	"sicoss/internal/config"
	"sicoss/internal/database"
	"sicoss/internal/extract"
	"sicoss/internal/logger"
	"sicoss/internal/sicossconfig"
	"sicoss/internal/sicosspersist"
	"sicoss/internal/sicosspipeline"
)

func main() {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("Failed to load application configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Env)

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.DBDriver)
	if err != nil {
		appLogger.Fatalf("Failed to connect to database: %v", err)
	}

	initialConfig, err := sicossconfig.NewLoader(cfg.SicossConfigDir).Load()
	if err != nil {
		appLogger.Fatalf("Failed to load SICOSS configuration from %s: %v", cfg.SicossConfigDir, err)
	}
	appLogger.Infof("Loaded SICOSS configuration (version_sistema=%s)", initialConfig.VersionSistema)

	extractor := extract.New(db)
	persister := sicosspersist.New(db, cfg.PersistBatchSize)
	pipeline := sicosspipeline.New(extractor, persister, cfg.MaxConcurrentEmployees, appLogger)
	lock := sicosspipeline.NewPeriodLock()
	store := api.NewConfigStore(initialConfig)

	router := setupRouter(cfg, db, appLogger, pipeline, lock, store)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Infof("Starting SICOSS server on port %d in %s mode", cfg.ServerPort, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatalf("Server forced to shutdown: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}

	appLogger.Info("Server exited properly")
}

func setupRouter(
	cfg *config.AppConfig,
	db *gorm.DB,
	appLogger *logrus.Logger,
	pipeline *sicosspipeline.Pipeline,
	lock *sicosspipeline.PeriodLock,
	store *api.ConfigStore,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// CORS is configured per-group inside api.Router.Setup, since it needs
	// cfg.CORSAllowedOrigins which only Router has at construction time.
	router.Use(logger.GinLogger(appLogger))
	router.Use(gin.Recovery())

	apiRouter := api.NewRouter(db, cfg, pipeline, lock, store, appLogger)
	apiRouter.Setup(router.Group("/api/v1"))

	return router
}
