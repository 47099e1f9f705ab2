package model

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// CaptchaGate tracks the human-verification state of one registration
// form. When no site key is configured the gate is disabled and always
// passes. When enabled, a submission may proceed only with a verified
// token, and every completed attempt invalidates the token: widget tokens
// are single-use.
type CaptchaGate struct {
	mu         sync.Mutex
	enabled    bool
	token      string
	generation int
}

// NewCaptchaGate creates a gate. enabled mirrors the presence of a
// configured site key.
func NewCaptchaGate(enabled bool) *CaptchaGate {
	return &CaptchaGate{enabled: enabled}
}

// Enabled reports whether verification is required at all
func (g *CaptchaGate) Enabled() bool {
	return g.enabled
}

// OnVerify records the token reported by the verification widget
func (g *CaptchaGate) OnVerify(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = token
}

// Reset drops the current token and bumps the generation counter, forcing
// the widget to re-render for a fresh token.
func (g *CaptchaGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = ""
	g.generation++
}

// Generation returns the widget render generation
func (g *CaptchaGate) Generation() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation
}

// Consume hands out the verified token for exactly one submission
// attempt. A disabled gate passes with an empty token. An enabled gate
// without a verified token blocks.
func (g *CaptchaGate) Consume() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.enabled {
		return "", nil
	}
	if g.token == "" {
		return "", goerr.Wrap(ErrCaptchaRequired, "no verified captcha token")
	}
	token := g.token
	g.token = ""
	return token, nil
}
