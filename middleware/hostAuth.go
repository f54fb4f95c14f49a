package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"stayloft/catalog"
	"stayloft/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const authCacheTTL = time.Hour

// JWTAuthHostMiddleware validates the dashboard JWT for hosts, with a
// sliding Redis cache keyed by the token hash so repeat requests skip
// signature validation and the directory lookup. Cache failures are
// soft: the request falls through to full token validation.
func JWTAuthHostMiddleware(hosts catalog.HostDirectory, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + computedHash

		// Check the authorization cache.
		if cachedHostID, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cachedHostID != "" {
			// Refresh TTL (sliding expiration) and proceed.
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("hostID", cachedHostID)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		// Cache miss: validate the token and look up the host.
		hostID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || hostID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if hosts.HostByID(hostID) == nil {
			logger.Error("Host not found when validating token", zap.String("hostID", hostID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Host not found"})
			return
		}

		// Successful validation: cache the host for this token hash.
		if err := authCache.Set(ctx, cacheKey, hostID, authCacheTTL).Err(); err != nil {
			logger.Error("Failed to set auth cache", zap.Error(err))
		}

		c.Set("hostID", hostID)
		c.Next()
	}
}
