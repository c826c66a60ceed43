/*
 *    Copyright 2025 Jeff Galyan
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package middleware

import (
	"math"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	q "github.com/jrgalyan/quokka"
)

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	Rate            float64
	Burst           int
	CleanupInterval time.Duration
	StaleAfter      time.Duration
	KeyFunc         func(*q.Request) string
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	lastSeen time.Time
}

// RateLimit enforces a per-client token bucket limit on a lock-free
// concurrent map: reads of a client's bucket never contend with writers
// touching a different client's entry, which a single sync.Mutex-guarded
// map would serialize.
func RateLimit(cfg RateLimitConfig) q.Middleware {
	if cfg.Rate <= 0 {
		cfg.Rate = 10
	}
	if cfg.Burst < 1 {
		cfg.Burst = 20
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 5 * time.Minute
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = defaultKeyFunc
	}

	clients := xsync.NewMapOf[string, *bucket]()

	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			clients.Range(func(key string, b *bucket) bool {
				b.mu.Lock()
				stale := now.Sub(b.lastSeen) > cfg.StaleAfter
				b.mu.Unlock()
				if stale {
					clients.Delete(key)
				}
				return true
			})
		}
	}()

	return func(next q.Next) q.Handler {
		return func(req *q.Request) (*q.Response, error) {
			key := cfg.KeyFunc(req)
			now := time.Now()

			b, _ := clients.LoadOrCompute(key, func() *bucket {
				return &bucket{tokens: float64(cfg.Burst), lastSeen: now}
			})

			b.mu.Lock()
			elapsed := now.Sub(b.lastSeen).Seconds()
			b.tokens += elapsed * cfg.Rate
			if b.tokens > float64(cfg.Burst) {
				b.tokens = float64(cfg.Burst)
			}
			b.lastSeen = now

			if b.tokens < 1 {
				retryAfter := int(math.Ceil((1 - b.tokens) / cfg.Rate))
				b.mu.Unlock()
				rateLimitErr := q.NewCustomError(429, "rate limit exceeded")
				resp, _ := q.JSON(rateLimitErr.Status(), rateLimitErr.Respond())
				return resp.WithHeader("Retry-After", strconv.Itoa(retryAfter)), nil
			}
			b.tokens--
			b.mu.Unlock()

			return next(req)
		}
	}
}

func defaultKeyFunc(req *q.Request) string {
	if xff := req.Header("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(req.Raw().RemoteAddr)
	if err != nil {
		return req.Raw().RemoteAddr
	}
	return host
}
