/*
Package logger - Structured logging configuration and HTTP request logging

==============================================================================
FILE: internal/logger/logger.go
==============================================================================

DESCRIPTION:
    Configures structured logging using logrus. Provides environment-based
    log level configuration and Gin middleware for HTTP request/response
    logging with latency, status codes, client IPs, and error details.
    Pipeline stages log through the same *logrus.Logger, with nro_legaj and
    periodo_fiscal as the standard structured fields for a processing run.

LOG LEVELS (from most to least severe):
    - Error: System errors, failed operations (500+ status codes)
    - Warn: Potential issues, client errors (400-499 status codes)
    - Info: Normal operations, successful requests (200-399 status codes)
    - Debug: Detailed debugging information (development only)

==============================================================================
*/

package logger

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Setup initializes the logger with a given environment.
func Setup(env string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	if env == "development" {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// GinLogger returns a gin.HandlerFunc for logging HTTP requests.
func GinLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		entry := log.WithFields(logrus.Fields{
			"latency":    time.Since(start),
			"method":     c.Request.Method,
			"status":     c.Writer.Status(),
			"ip":         c.ClientIP(),
			"uri":        path,
			"user_agent": c.Request.UserAgent(),
			"errors":     c.Errors.ByType(gin.ErrorTypePrivate).String(),
		})

		if c.Writer.Status() >= 500 {
			entry.Error()
		} else if c.Writer.Status() >= 400 {
			entry.Warn()
		} else {
			entry.Info()
		}
	}
}
