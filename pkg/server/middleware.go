package server

import (
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/observability"
)

// observe reports requests to the HTTP hooks, labelled by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

// clientIdle is how long a client's bucket is kept without traffic.
const clientIdle = 10 * time.Minute

type clientEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// clientLimiter holds one token bucket per remote address.
type clientLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*clientEntry
	swept   time.Time
	now     func() time.Time
}

func newClientLimiter(perSecond float64, burst int) *clientLimiter {
	return &clientLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		clients: make(map[string]*clientEntry),
		now:     time.Now,
	}
}

func (l *clientLimiter) get(addr string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.swept) > clientIdle {
		for k, e := range l.clients {
			if now.Sub(e.seen) > clientIdle {
				delete(l.clients, k)
			}
		}
		l.swept = now
	}

	e, ok := l.clients[addr]
	if !ok {
		e = &clientEntry{lim: rate.NewLimiter(l.limit, l.burst)}
		l.clients[addr] = e
	}
	e.seen = now
	return e.lim
}

func (l *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lim := l.get(r.RemoteAddr)
		res := lim.ReserveN(l.now(), 1)
		if !res.OK() {
			l.reject(w, r, 1)
			return
		}
		if d := res.DelayFrom(l.now()); d > 0 {
			res.CancelAt(l.now())
			l.reject(w, r, int(math.Ceil(d.Seconds())))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *clientLimiter) reject(w http.ResponseWriter, r *http.Request, retryAfter int) {
	if retryAfter < 1 {
		retryAfter = 1
	}
	observability.HTTP().OnRateLimited(r.Context(), r.RemoteAddr)
	rl := &errors.RateLimitedError{RetryAfter: retryAfter}
	w.Header().Set("Retry-After", itoa(retryAfter))
	writeJSON(w, http.StatusTooManyRequests, errorBody{Error: apiError{
		Code:    string(rl.Code()),
		Message: rl.Error(),
	}})
}
