package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthHandler reports the liveness of the service and its backends.
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Check)
}

// Check returns 200 when the process is up. Backend checks are reported
// per component so a degraded dependency does not mask the others.
func (h *HealthHandler) Check(c *gin.Context) {
	components := gin.H{}

	dbStatus := "ok"
	if h.db != nil {
		if sqlDB, err := h.db.DB(); err != nil {
			dbStatus = "error"
		} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			dbStatus = "error"
		}
	} else {
		dbStatus = "not configured"
	}
	components["database"] = dbStatus

	redisStatus := "ok"
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error"
		}
	} else {
		redisStatus = "not configured"
	}
	components["redis"] = redisStatus

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"components": components,
	})
}
