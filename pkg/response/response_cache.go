package response

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	. "memoapp/pkg/config"
	. "memoapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ResponseCache caches GET responses for short windows
type ResponseCache struct {
	cache   *cache.Cache
	config  map[string]ResponseCacheConfig
	logger  *zap.Logger
	metrics *AppMetrics
}

// CachedResponse stored representation of a cached response
type CachedResponse struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	Body       []byte              `json:"body"`
	Timestamp  time.Time           `json:"timestamp"`
}

// NewResponseCache creates a new response cache instance
func NewResponseCache(logger *zap.Logger, metrics *AppMetrics) *ResponseCache {
	c := cache.New(5*time.Minute, 10*time.Minute)

	configs := map[string]ResponseCacheConfig{
		"/api/memos": {
			TTL:     3 * time.Second,
			Enabled: true,
		},
		"default": {
			TTL:     1 * time.Second,
			Enabled: true,
		},
	}

	return &ResponseCache{
		cache:   c,
		config:  configs,
		logger:  logger,
		metrics: metrics,
	}
}

// CacheMiddleware serves cached bodies for repeated GETs within the TTL.
// It must run after authentication: entries are keyed by user id, and an
// unauthenticated request is never cached or served from cache.
func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		config, exists := rc.config[path]
		if !exists {
			config = rc.config["default"]
		}

		if !config.Enabled {
			c.Next()
			return
		}

		userID, authenticated := c.Get("x-user-id")

		if !authenticated {
			c.Next()
			return
		}

		cacheKey := rc.generateCacheKey(c, path, userID)

		if cachedResp, found := rc.cache.Get(cacheKey); found {
			cached := cachedResp.(CachedResponse)

			if time.Since(cached.Timestamp) < config.TTL {
				_, span := CreateChildSpan(c.Request.Context(), "cache.response.hit", []attribute.KeyValue{
					attribute.String("cache.key", cacheKey),
					attribute.String("cache.path", path),
					attribute.String("cache.age", time.Since(cached.Timestamp).String()),
					attribute.String("cache.source", "memory"),
				})
				defer span.End()

				span.SetAttributes(
					attribute.Int("cache.status_code", cached.StatusCode),
					attribute.Int("cache.body_size", len(cached.Body)),
					attribute.String("cache.ttl", config.TTL.String()),
				)

				if rc.metrics != nil {
					rc.metrics.RecordCacheHit(c.Request.Context(), path)
				}

				rc.logger.Debug("Cache hit",
					zap.String("path", path),
					zap.String("cache_key", cacheKey),
					zap.Duration("age", time.Since(cached.Timestamp)))

				for key, values := range cached.Headers {
					for _, value := range values {
						c.Header(key, value)
					}
				}

				c.Header("X-Cache", "HIT")
				c.Header("X-Cache-Age", fmt.Sprintf("%.0f", time.Since(cached.Timestamp).Seconds()))

				c.Data(cached.StatusCode, "application/json", cached.Body)
				c.Abort()
				return
			} else {
				rc.cache.Delete(cacheKey)
			}
		}

		ctx, span := CreateChildSpan(c.Request.Context(), "cache.response.miss", []attribute.KeyValue{
			attribute.String("cache.key", cacheKey),
			attribute.String("cache.path", path),
			attribute.String("cache.source", "memory"),
		})
		defer span.End()

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(c.Request.Context(), path)
		}

		rc.logger.Debug("Cache miss",
			zap.String("path", path),
			zap.String("cache_key", cacheKey))

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if writer.statusCode >= 200 && writer.statusCode < 300 {
			_, cacheSpan := CreateChildSpan(ctx, "cache.response.store", []attribute.KeyValue{
				attribute.String("cache.key", cacheKey),
				attribute.String("cache.path", path),
				attribute.String("cache.source", "memory"),
				attribute.Int("cache.status_code", writer.statusCode),
				attribute.Int("cache.body_size", len(writer.body.Bytes())),
				attribute.String("cache.ttl", config.TTL.String()),
			})
			cacheSpan.End()

			cachedResp := CachedResponse{
				StatusCode: writer.statusCode,
				Headers:    writer.Header(),
				Body:       writer.body.Bytes(),
				Timestamp:  time.Now(),
			}

			rc.cache.Set(cacheKey, cachedResp, config.TTL)

			c.Header("X-Cache", "MISS")
		}
	}
}

// generateCacheKey builds a key from path, query and the authenticated user.
// Identity comes from the verified token, never from request headers, so one
// user's entries cannot be addressed by another.
func (rc *ResponseCache) generateCacheKey(c *gin.Context, path string, userID any) string {
	keyParts := []string{path}

	if c.Request.URL.RawQuery != "" {
		keyParts = append(keyParts, c.Request.URL.RawQuery)
	}

	keyParts = append(keyParts, fmt.Sprintf("user_%v", userID))

	keyString := strings.Join(keyParts, "|")
	hash := md5.Sum([]byte(keyString))

	return fmt.Sprintf("cache:%s:%x", path, hash)
}

// InvalidateCache drops cached entries for a user under a path
func (rc *ResponseCache) InvalidateCache(userID int, path string) {
	keys := rc.cache.Items()

	for key := range keys {
		if strings.Contains(key, fmt.Sprintf("user_%d", userID)) && strings.Contains(key, path) {
			rc.cache.Delete(key)
			rc.logger.Debug("Cache invalidated",
				zap.String("key", key),
				zap.Int("user_id", userID),
				zap.String("path", path))
		}
	}
}

// InvalidateAllCache flushes every cached response
func (rc *ResponseCache) InvalidateAllCache() {
	rc.cache.Flush()
	rc.logger.Info("All cache invalidated")
}

// SetConfig allows configuring cache for specific endpoints
func (rc *ResponseCache) SetConfig(path string, config ResponseCacheConfig) {
	rc.config[path] = config
}

// GetStats returns cache statistics
func (rc *ResponseCache) GetStats() map[string]interface{} {
	stats := make(map[string]interface{})

	activeEntries := rc.cache.ItemCount()

	stats["active_entries"] = activeEntries
	stats["configs"] = len(rc.config)

	return stats
}

// responseWriter tees the handler output so it can be stored
type responseWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
