/*
Package api - SICOSS HTTP API handlers

FILE: internal/api/health_handler.go

Liveness/readiness endpoints for orchestration health checks, grounded on
the teacher's health_handler.go shape (HealthCheck/ReadyCheck/LivenessCheck).
*/
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler implements the GET /health endpoint of §6.3.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler builds a HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck reports basic liveness plus a database ping.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbOK := true
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		dbOK = false
	}

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":    map[bool]string{true: "ok", false: "degraded"}[dbOK],
		"database":  dbOK,
		"timestamp": time.Now().Unix(),
		"service":   "sicoss",
	})
}
