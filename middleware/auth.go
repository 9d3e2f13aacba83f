package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	contractorRepo "reparaya/database/repository/contractor"
	"reparaya/utils"
)

const (
	authCachePrefix = "auth:contractor:"
	authCacheTTL    = 15 * time.Minute
)

// JWTAuthContractorMiddleware validates the JWT token for contractors with
// Redis caching. On success the contractor ID is placed in the gin context
// under "contractorID".
func JWTAuthContractorMiddleware(repo contractorRepo.ContractorRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Extract the contractor ID from the token.
		contractorID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || contractorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Compute the token hash.
		computedHash := utils.HashToken(tokenString)
		cacheKey := authCachePrefix + computedHash

		// Check the authorization cache.
		authCache := utils.GetAuthCacheClient()
		if cached, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cached == "1" {
			// Refresh TTL (sliding expiration) and proceed.
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("contractorID", contractorID)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		// Cache miss: query the contractor repository.
		contractor, err := repo.GetByID(ctx, contractorID)
		if err != nil || contractor == nil {
			logger.Error("Contractor not found when validating token", zap.String("contractorID", contractorID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Contractor not found"})
			return
		}

		// Validate the token hash.
		if computedHash != contractor.TokenHash {
			logger.Error("Token hash mismatch", zap.String("contractorID", contractorID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		// Successful validation: cache the token hash.
		if err := authCache.Set(ctx, cacheKey, "1", authCacheTTL).Err(); err != nil {
			logger.Error("Failed to set auth cache", zap.Error(err))
		}

		c.Set("contractorID", contractorID)
		c.Next()
	}
}
