package controllers

import (
	"context"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	pingDB      func(ctx context.Context) error
	cacheStatus func(ctx context.Context) (map[string]interface{}, error)
}

func NewHealthController(pingDB func(ctx context.Context) error, cacheStatus func(ctx context.Context) (map[string]interface{}, error)) *HealthController {
	return &HealthController{pingDB: pingDB, cacheStatus: cacheStatus}
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Healio API is running"
// @Router /health [get]
func (hc *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "Healio API is running",
	})
}

// Database godoc
// @Summary Database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Database reachable"
// @Failure 503 {object} map[string]interface{} "Database unreachable"
// @Router /debug/database [get]
func (hc *HealthController) Database(c *gin.Context) {
	if err := hc.pingDB(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"database_health": false,
			"error":           err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"database_health": true,
		"goroutines":      runtime.NumGoroutine(),
	})
}

// Cache godoc
// @Summary Summary cache status
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Cache status"
// @Failure 503 {object} map[string]interface{} "Cache unreachable"
// @Router /debug/cache [get]
func (hc *HealthController) Cache(c *gin.Context) {
	status, err := hc.cacheStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"cache_health": false,
			"error":        err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cache_health": true,
		"cache":        status,
	})
}
