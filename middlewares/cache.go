package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gezana/restaurant-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CacheStore caches GET responses in Redis. A nil store is a valid
// pass-through, so callers never need to branch on configuration.
type CacheStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheStoreFromEnv connects to REDIS_ADDR. Returns nil (caching
// disabled) when the variable is unset or the server cannot be reached.
func NewCacheStoreFromEnv() *CacheStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		utils.ErrorLogger.Printf("Redis unavailable at %s, caching disabled: %v", addr, err)
		return nil
	}

	ttl := 5 * time.Minute
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	utils.InfoLogger.Printf("Response cache enabled (redis %s, ttl %s)", addr, ttl)
	return &CacheStore{client: client, ttl: ttl}
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func cacheKey(c *gin.Context) string {
	return "cache:" + c.Request.URL.Path + "?" + c.Request.URL.RawQuery
}

// Cache serves GET responses from Redis when present and stores 200
// responses on the way out.
func (cs *CacheStore) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cs == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cacheKey(c)

		if raw, err := cs.client.Get(ctx, key).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(raw, &cached) == nil {
				c.Header("X-Cache", "HIT")
				c.Data(cached.Status, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}
		payload, err := json.Marshal(cachedResponse{
			Status:      writer.Status(),
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := cs.client.Set(ctx, key, payload, cs.ttl).Err(); err != nil {
			utils.ErrorLogger.Printf("Failed to cache %s: %v", key, err)
		}
	}
}

// Invalidate drops every cached entry under the given path prefix. Called
// by the admin mutation handlers.
func (cs *CacheStore) Invalidate(pathPrefix string) {
	if cs == nil {
		return
	}
	ctx := context.Background()
	iter := cs.client.Scan(ctx, 0, "cache:"+pathPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		cs.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.ErrorLogger.Printf("Cache invalidation failed for %s: %v", pathPrefix, err)
	}
}
