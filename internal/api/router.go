/*
Package api - SICOSS HTTP API router

FILE: internal/api/router.go

Router wires the three SICOSS endpoint groups (health, process, config) onto
a gin.RouterGroup. Grounded on the teacher's router.go Router{db, appConfig}
+ Setup(routerGroup) shape, trimmed to this domain's three handlers -- no
auth middleware chain, since spec.md's Non-goals explicitly exclude
authorization/multi-tenancy.
*/
package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sicoss/internal/config"
	"sicoss/internal/sicosspipeline"
)

// Router sets up all SICOSS API routes.
type Router struct {
	db        *gorm.DB
	appConfig *config.AppConfig
	pipeline  *sicosspipeline.Pipeline
	lock      *sicosspipeline.PeriodLock
	store     *ConfigStore
	log       *logrus.Logger
}

// NewRouter builds a Router with its handler dependencies.
func NewRouter(db *gorm.DB, appConfig *config.AppConfig, pipeline *sicosspipeline.Pipeline, lock *sicosspipeline.PeriodLock, store *ConfigStore, log *logrus.Logger) *Router {
	return &Router{db: db, appConfig: appConfig, pipeline: pipeline, lock: lock, store: store, log: log}
}

// Setup configures all routes on routerGroup.
func (r *Router) Setup(routerGroup *gin.RouterGroup) {
	if r.appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(r.appConfig.CORSAllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	routerGroup.Use(cors.New(corsConfig))

	healthHandler := NewHealthHandler(r.db)
	routerGroup.GET("/health", healthHandler.HealthCheck)

	processHandler := NewProcessHandler(r.pipeline, r.lock, r.store.Get, r.log)
	processHandler.RegisterRoutes(routerGroup)

	configHandler := NewConfigHandler(r.store)
	configHandler.RegisterRoutes(routerGroup)
}
