// file: middlewares/rate_limit.go
package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func getLimiter(ip string, r rate.Limit, burst int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(r, burst)
		visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func init() {
	// 定期清理长时间不活跃的 IP，防止表无限增长
	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, v := range visitors {
				if time.Since(v.lastSeen) > 3*time.Minute {
					delete(visitors, ip)
				}
			}
			mu.Unlock()
		}
	}()
}

// RateLimitMiddleware 按来源 IP 限速，主要挂在 Flag 提交接口上防爆破
func RateLimitMiddleware(r rate.Limit, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := getLimiter(c.ClientIP(), r, burst)
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"code": 4029, "msg": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
