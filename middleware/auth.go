package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	profileRepo "meetspace/database/repository/profile"
	"meetspace/utils"
)

// AuthMiddleware validates the Bearer token and resolves the caller's
// identity. The token hash is checked against the auth cache first and
// the profile document on a miss, so a restarted cache does not log
// everyone out.
func AuthMiddleware(profiles profileRepo.ProfileRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session revoked"})
					return
				}
				authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL)
				c.Set("userID", userID)
				c.Next()
				return
			}
			if err != redis.Nil {
				utils.GetLogger().Warn("auth cache lookup failed, falling back to store")
			}
		}

		profile, err := profiles.GetByID(ctx, userID)
		if err != nil || profile.TokenHash == "" || profile.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session revoked"})
			return
		}

		if authCache != nil {
			authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL)
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// UserID returns the authenticated user's ID set by AuthMiddleware,
// or "" when the request is unauthenticated.
func UserID(c *gin.Context) string {
	id, _ := c.Get("userID")
	s, _ := id.(string)
	return s
}
