package apiclient

import (
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Backoff computes the delay before retry number attempt (zero-based: the
// delay before the first retry is Delay(0)). Implementations must be safe for
// concurrent use.
type Backoff interface {
	Delay(attempt int) time.Duration
}

// ExponentialBackoff waits min(Base*2^attempt, Cap) plus up to JitterFactor
// of that amount drawn uniformly at random.
type ExponentialBackoff struct {
	Base         time.Duration
	Cap          time.Duration
	JitterFactor float64
	// Rand returns a float in [0, 1). Nil means math/rand/v2.Float64.
	Rand func() float64
}

// Delay implements Backoff.
func (e ExponentialBackoff) Delay(attempt int) time.Duration {
	base := e.Base
	if base <= 0 {
		base = time.Second
	}
	limit := e.Cap
	if limit <= 0 {
		limit = 10 * time.Second
	}
	if attempt < 0 {
		attempt = 0
	}

	delay := float64(limit)
	// 2^62 overflows time.Duration well before this, so large attempts go straight to the cap.
	if attempt < 62 {
		delay = math.Min(float64(base)*math.Pow(2, float64(attempt)), float64(limit))
	}

	if e.JitterFactor > 0 {
		r := rand.Float64
		if e.Rand != nil {
			r = e.Rand
		}
		delay += r() * e.JitterFactor * delay
	}
	return time.Duration(delay)
}

// DefaultBackoff returns 1s doubling per attempt, capped at 10s, plus up to 30% jitter.
func DefaultBackoff() ExponentialBackoff {
	return ExponentialBackoff{
		Base:         time.Second,
		Cap:          10 * time.Second,
		JitterFactor: 0.3,
	}
}

// NewSeededBackoff is DefaultBackoff with a deterministic jitter source.
// Two backoffs built from the same seed yield the same delay sequence.
func NewSeededBackoff(seed uint64) ExponentialBackoff {
	b := DefaultBackoff()
	b.Rand = lockedRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	return b
}

func lockedRand(r *rand.Rand) func() float64 {
	var mu sync.Mutex
	return func() float64 {
		mu.Lock()
		defer mu.Unlock()
		return r.Float64()
	}
}

// maxRetryAfterSeconds is the largest delta that fits in a time.Duration.
const maxRetryAfterSeconds = math.MaxInt64 / int64(time.Second)

// parseRetryAfter reads a Retry-After header given either as delta seconds or
// as an HTTP date relative to now. Deltas too large for a time.Duration are
// ignored so the caller falls back to its own backoff.
func parseRetryAfter(h http.Header, now time.Time) (time.Duration, bool) {
	value := strings.TrimSpace(h.Get("Retry-After"))
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		if secs < 0 || secs > maxRetryAfterSeconds {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(value); err == nil {
		d := at.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}
