package infra

import (
	"errors"
	"net/smtp"
	"os"
	"path/filepath"
	"testing"

	"github.com/Bastianbone18/trasera/internal/config"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailer_Enabled(t *testing.T) {
	assert.False(t, NewMailer(&config.Config{}, NewCircuitBreaker(CircuitBreakerConfig{})).Enabled())
	assert.True(t, NewMailer(&config.Config{SMTPHost: "smtp.example.com"}, NewCircuitBreaker(CircuitBreakerConfig{})).Enabled())
}

func TestMailer_SendRecibo(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPUser: "tienda@example.com"}
	m := NewMailer(cfg, NewCircuitBreaker(CircuitBreakerConfig{}))

	var got *email.Email
	var gotAddr string
	m.send = func(e *email.Email, addr string, _ smtp.Auth) error {
		got, gotAddr = e, addr
		return nil
	}

	pdf := filepath.Join(t.TempDir(), "recibo.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.3"), 0o644))

	require.NoError(t, m.SendRecibo("ana@example.com", "Tu orden", "Gracias", pdf))
	require.NotNil(t, got)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "tienda@example.com", got.From)
	assert.Equal(t, []string{"ana@example.com"}, got.To)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "recibo.pdf", got.Attachments[0].Filename)
}

func TestMailer_BreakerCortaEnvios(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.example.com", SMTPPort: 25}
	m := NewMailer(cfg, NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1}))
	calls := 0
	m.send = func(*email.Email, string, smtp.Auth) error {
		calls++
		return errors.New("connection refused")
	}

	assert.Error(t, m.SendRecibo("a@example.com", "s", "b", ""))
	assert.ErrorIs(t, m.SendRecibo("a@example.com", "s", "b", ""), ErrCircuitOpen)
	assert.Equal(t, 1, calls)
}
