package apiclient_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hookbase/hookbase-go/pkg/apiclient"
)

func TestExponentialBackoff_NoJitter(t *testing.T) {
	t.Parallel()

	b := apiclient.ExponentialBackoff{Base: time.Second, Cap: 10 * time.Second}
	want := []time.Duration{
		time.Second,      // 2^0
		2 * time.Second,  // 2^1
		4 * time.Second,  // 2^2
		8 * time.Second,  // 2^3
		10 * time.Second, // capped
		10 * time.Second,
	}
	for attempt, w := range want {
		assert.Equal(t, w, b.Delay(attempt), "attempt %d", attempt)
	}

	assert.Equal(t, time.Second, b.Delay(-1))
	assert.Equal(t, 10*time.Second, b.Delay(500))
}

func TestExponentialBackoff_ZeroValueDefaults(t *testing.T) {
	t.Parallel()

	var b apiclient.ExponentialBackoff
	assert.Equal(t, time.Second, b.Delay(0))
	assert.Equal(t, 10*time.Second, b.Delay(10))
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	t.Parallel()

	b := apiclient.DefaultBackoff()
	for attempt := range 6 {
		base := min(time.Duration(1<<attempt)*time.Second, 10*time.Second)
		for range 200 {
			d := b.Delay(attempt)
			assert.GreaterOrEqual(t, d, base)
			assert.LessOrEqual(t, d, base+time.Duration(0.3*float64(base)))
		}
	}
}

func TestExponentialBackoff_FixedRand(t *testing.T) {
	t.Parallel()

	b := apiclient.DefaultBackoff()
	b.Rand = func() float64 { return 0.5 }

	assert.Equal(t, 1150*time.Millisecond, b.Delay(0))
	assert.Equal(t, 2300*time.Millisecond, b.Delay(1))
	assert.Equal(t, 11500*time.Millisecond, b.Delay(7))
}

func TestNewSeededBackoff_Deterministic(t *testing.T) {
	t.Parallel()

	a := apiclient.NewSeededBackoff(42)
	b := apiclient.NewSeededBackoff(42)
	c := apiclient.NewSeededBackoff(7)

	var differs bool
	for attempt := range 5 {
		da, db, dc := a.Delay(attempt), b.Delay(attempt), c.Delay(attempt)
		assert.Equal(t, da, db)
		if da != dc {
			differs = true
		}
	}
	assert.True(t, differs, "different seeds should produce different jitter")
}
