package server

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// CORS allows every origin, method and header; the service is consumed by
// browser clients on arbitrary hosts.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RateLimiter keeps a sliding window of request timestamps per client and
// rejects clients exceeding the per-window maximum.
type RateLimiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	requests    map[string][]time.Time
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[string][]time.Time),
	}
}

// Allow records a request for client and reports whether it is under the
// limit.
func (limiter *RateLimiter) Allow(client string) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-limiter.window)

	recent := limiter.requests[client]
	for len(recent) > 0 && recent[0].Before(cutoff) {
		recent = recent[1:]
	}

	if len(recent) >= limiter.maxRequests {
		limiter.requests[client] = recent
		return false
	}

	limiter.requests[client] = append(recent, now)
	return true
}

func (limiter *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// PortfolioAuth validates the signed-header handshake used by the portfolio
// frontend: a base64 "secret:timestamp" token, a sha256(token+salt) hash and
// the timestamp itself, which must fall within the configured window.
func PortfolioAuth(salt string, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Portfolio-Auth")
		hash := c.GetHeader("X-Portfolio-Hash")
		timestamp := c.GetHeader("X-Portfolio-Timestamp")
		if token == "" || hash == "" || timestamp == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "missing authentication headers",
				"required": []string{"X-Portfolio-Auth", "X-Portfolio-Hash", "X-Portfolio-Timestamp"},
			})
			return
		}

		if reason, ok := validateAuth(token, hash, timestamp, salt, window); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":  "authentication failed",
				"reason": reason,
			})
			return
		}
		c.Next()
	}
}

func validateAuth(token, hash, timestampStr, salt string, window time.Duration) (string, bool) {
	timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return "invalid timestamp", false
	}
	now := time.Now().UnixMilli()
	if now-timestamp > window.Milliseconds() {
		return "request expired", false
	}

	payload, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "invalid auth token encoding", false
	}
	parts := strings.Split(string(payload), ":")
	if len(parts) != 2 {
		return "invalid auth token format", false
	}
	tokenTime, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || tokenTime != timestamp {
		return "timestamp mismatch", false
	}

	if hash != HashWithSalt(string(payload), salt) {
		return "invalid hash", false
	}
	return "", true
}

// HashWithSalt must match the frontend's signing implementation.
func HashWithSalt(data, salt string) string {
	sum := sha256.Sum256([]byte(data + salt))
	return hex.EncodeToString(sum[:])
}
