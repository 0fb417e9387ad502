package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Bastianbone18/trasera/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health godoc
// @Summary Estado de la API
// @Description Verifica la conexión a la base de datos y a Redis.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/health [get]
func Health(db *gorm.DB, rdb *redis.Client, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		body := gin.H{
			"environment": env,
			"timestamp":   time.Now().UTC(),
			"db":          dbStatus,
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			} else if n, err := worker.DLQLength(ctx, rdb, worker.QueueEmail); err == nil {
				dlq := gin.H{"size": n}
				if last, err := worker.DLQPeek(ctx, rdb, worker.QueueEmail, 1); err == nil && len(last) == 1 {
					dlq["lastReason"] = last[0].Reason
					dlq["lastFailedAt"] = last[0].FailedAt
				}
				body["dlq"] = dlq
			}
		}
		body["redis"] = redisStatus

		status := http.StatusOK
		body["status"] = "API Ecommerce funcionando"
		if dbStatus != "connected" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
			body["status"] = "degradado"
		}
		c.JSON(status, body)
	}
}
