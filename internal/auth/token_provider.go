package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TokenProvider is a Provider backed by an IdP-issued bearer token. It
// verifies the token against the IdP's JWKS on start and again on every
// refresh interval, and reports signed-in while the token validates. An empty
// token, an expired token, or a verification failure reports signed-out.
type TokenProvider struct {
	mu      sync.Mutex
	current *Principal
	started bool
	subs    map[int]func(*Principal)
	nextSub int

	verifier Verifier
	token    string
	interval time.Duration
	logger   *slog.Logger
}

// NewTokenProvider creates a provider for the given session token. The token
// may be empty; the provider then reports signed-out until the process is
// restarted with one.
func NewTokenProvider(verifier Verifier, token string, refresh time.Duration, logger *slog.Logger) *TokenProvider {
	return &TokenProvider{
		subs:     make(map[int]func(*Principal)),
		verifier: verifier,
		token:    token,
		interval: refresh,
		logger:   logger.With("component", "auth_provider"),
	}
}

// Subscribe registers fn, invokes it with the current state before returning,
// and returns the unsubscribe function. After unsubscribe returns, fn is
// never invoked again.
func (p *TokenProvider) Subscribe(fn func(*Principal)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	// Immediate delivery of the current state, matching every later
	// notification: under the provider lock, so no transition can interleave.
	fn(p.current)

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// Run evaluates the session state now and then on every refresh interval
// until ctx is cancelled. It is the only writer of the session signal.
func (p *TokenProvider) Run(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.setState(nil)
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// refresh re-verifies the session token and publishes the resulting state.
func (p *TokenProvider) refresh(ctx context.Context) {
	if p.token == "" {
		p.setState(nil)
		return
	}
	token, err := p.verifier.Verify(ctx, p.token)
	if err != nil {
		p.logger.Warn("session token verification failed", "error", err)
		p.setState(nil)
		return
	}
	principal := &Principal{}
	if sub, ok := token.Subject(); ok {
		principal.Subject = sub
	}
	var name string
	if err := token.Get("name", &name); err == nil {
		principal.Name = name
	}
	p.setState(principal)
}

// setState publishes the new state to all subscribers when it changed.
func (p *TokenProvider) setState(principal *Principal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if sameState(p.current, principal) {
		return
	}
	p.current = principal
	for _, fn := range p.subs {
		fn(principal)
	}
}

func sameState(a, b *Principal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
