package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errRelay = errors.New("relay down")

func newTestBreaker() (*CircuitBreaker, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 2, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return now }
	return cb, &now
}

func fail() error { return errRelay }
func ok() error   { return nil }

func TestCircuitBreaker_AbreTrasFallos(t *testing.T) {
	cb, _ := newTestBreaker()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errRelay)
	}
	assert.Equal(t, CBOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_ExitoReiniciaConteo(t *testing.T) {
	cb, _ := newTestBreaker()

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	assert.NoError(t, cb.Execute(ok))
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_SemiAbiertoCierra(t *testing.T) {
	cb, now := newTestBreaker()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}

	*now = now.Add(time.Minute)
	assert.Equal(t, CBHalfOpen, cb.State())

	assert.NoError(t, cb.Execute(ok))
	assert.Equal(t, CBHalfOpen, cb.State())
	assert.NoError(t, cb.Execute(ok))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_SemiAbiertoReabre(t *testing.T) {
	cb, now := newTestBreaker()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}

	*now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, cb.Execute(fail), errRelay)
	assert.Equal(t, CBOpen, cb.State())
	assert.Equal(t, "open", cb.State().String())
}
