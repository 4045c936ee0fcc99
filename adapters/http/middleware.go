package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/auth"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

const basicChallenge = `Basic realm="Protected API"`

// ErrorMiddleware is the single place errors become responses. Handlers push
// failures with c.Error; everything unrecognized falls back to a 500 with the
// original message. Outside production the cause is exposed as details.
func ErrorMiddleware(log logger.Logger, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal(err.Error(), err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", basicChallenge)
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed", appErr,
				zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
		} else {
			log.Warn("request rejected",
				zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path),
				zap.Int("status", status), zap.String("reason", appErr.Message))
		}

		body := appErr.ToJSON()
		if env != "production" && appErr.Err != nil {
			body["details"] = appErr.Err.Error()
		}
		c.JSON(status, body)
	}
}

// BasicAuthMiddleware gates mutating routes. Rejections never reach a use
// case and always carry the Basic challenge header.
func BasicAuthMiddleware(gate auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Authenticate(c.GetHeader("Authorization")); err != nil {
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				appErr = apperror.NewAuthError(err)
			}
			c.Header("WWW-Authenticate", basicChallenge)
			c.AbortWithStatusJSON(http.StatusUnauthorized, appErr.ToJSON())
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware is a fixed-window per-IP counter in Redis. A nil client
// or a Redis failure lets the request through.
func RateLimitMiddleware(rdb *redis.Client, max int, window time.Duration, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || max <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limiter unavailable, letting request through", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(max) {
			appErr := apperror.NewRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, appErr.ToJSON())
			return
		}
		c.Next()
	}
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
