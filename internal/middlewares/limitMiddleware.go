package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"cybershield/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterPool tracks one limiter per client IP for one limiter class.
type limiterPool struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func newLimiterPool(limit rate.Limit, burst int) *limiterPool {
	return &limiterPool{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
	}
}

var (
	// globalPool matches the original deployment shape: ~100 requests per
	// minute per IP, with a small burst.
	globalPool = newLimiterPool(rate.Limit(100.0/60.0), 10)

	// otpPool is the stricter limiter on the OTP endpoints: 5 requests per
	// 15 minutes per IP. OTP codes are not a security boundary on their own;
	// expiry plus this limiter is the actual control.
	otpPool = newLimiterPool(rate.Limit(5.0/(15.0*60.0)), 5)
)

func (p *limiterPool) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, exists := p.visitors[ip]
	if !exists {
		v = &visitor{rate.NewLimiter(p.limit, p.burst), time.Now()}
		p.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (p *limiterPool) cleanup(maxIdle time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ip, v := range p.visitors {
		if time.Since(v.lastSeen) > maxIdle {
			delete(p.visitors, ip)
		}
	}
}

// CleanupVisitors evicts idle per-IP limiters. Run as a goroutine from main.
func CleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		globalPool.cleanup(3 * time.Minute)
		otpPool.cleanup(30 * time.Minute)
	}
}

func limitWith(pool *limiterPool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			utils.SendJSONError(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if !pool.get(ip).Allow() {
			utils.SendJSONError(w, "Too many requests, please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimit is the global per-IP limiter applied to every route.
func RateLimit(next http.Handler) http.Handler {
	return limitWith(globalPool, next)
}

// OTPRateLimit is the stricter limiter wrapped around the OTP endpoints.
func OTPRateLimit(next http.Handler) http.Handler {
	return limitWith(otpPool, next)
}
