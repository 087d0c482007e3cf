package simulator

import (
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// latency suspends every request for a duration drawn uniformly from
// [min, max], simulating a network round trip.
func latency(min, max time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if max > 0 {
				delay := min
				if span := max - min; span > 0 {
					delay += time.Duration(rand.Int63n(int64(span)))
				}
				select {
				case <-time.After(delay):
				case <-r.Context().Done():
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// faults short-circuits requests with the configured probability, answering
// with a 5xx before any handler touches data. This exists to exercise error
// rendering paths, not to be fixed.
func faults(errorRate float64) func(http.Handler) http.Handler {
	injected := []int{
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if errorRate > 0 && rand.Float64() < errorRate {
				status := injected[rand.Intn(len(injected))]
				writeError(w, status, "simulated backend failure")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// throttle applies a token-bucket rate limit, answering 429 when exhausted.
func throttle(rps float64) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
