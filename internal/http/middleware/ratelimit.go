package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"rps_arena/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

// InitRedisRateLimiter подключает redis для лимитирования запросов.
// Без адреса лимитер выключен и middleware пропускает всё.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		logger.Warn("REDIS_ADDR не задан - лимитер запросов выключен")
		return
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis недоступен - лимитер запросов выключен", "error", err)
		rdb = nil
	}
}

// RateLimit - фиксированное окно на ip и путь
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rl:%s:%s", c.ClientIP(), c.FullPath())

		ctx := c.Request.Context()
		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// redis упал - пропускаем, лимитер не должен ронять сервис
			c.Next()
			return
		}
		if n == 1 {
			rdb.Expire(ctx, key, window)
		}

		if n > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
