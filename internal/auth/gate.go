package auth

import (
	"net/http"
	"sync"
)

// Gate translates the provider's session signal into a navigation-level
// allow/redirect decision. It holds a single boolean, false until the
// provider's first callback, updated only by that callback and read-only
// everywhere else.
type Gate struct {
	mu            sync.RWMutex
	authenticated bool
	unsubscribe   func()
}

// NewGate returns an unbound gate. Until Bind, Authenticated reports false.
func NewGate() *Gate {
	return &Gate{}
}

// Bind subscribes the gate to the provider. The provider delivers the current
// state during Subscribe, so the gate is up to date when Bind returns.
// Binding an already-bound gate is a no-op.
func (g *Gate) Bind(p Provider) {
	unsubscribe := p.Subscribe(func(principal *Principal) {
		g.mu.Lock()
		g.authenticated = principal != nil
		g.mu.Unlock()
	})

	g.mu.Lock()
	if g.unsubscribe != nil {
		g.mu.Unlock()
		unsubscribe()
		return
	}
	g.unsubscribe = unsubscribe
	g.mu.Unlock()
}

// Release drops the provider subscription. It releases at most once; further
// calls are no-ops.
func (g *Gate) Release() {
	g.mu.Lock()
	unsubscribe := g.unsubscribe
	g.unsubscribe = nil
	g.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Authenticated reports the current session state.
func (g *Gate) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authenticated
}

// Require is a middleware that redirects unauthenticated requests to the
// login view. The decision is re-evaluated on every request, so a provider
// sign-out takes effect without any navigation on the gate's side.
func (g *Gate) Require(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.Authenticated() {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
