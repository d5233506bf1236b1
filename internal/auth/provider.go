// Package auth holds the session gate and the auth provider collaborator
// contract. The provider owns the single current-session signal; the gate
// derives its boolean from it and makes the allow/redirect routing decision.
package auth

// Principal describes the signed-in subject reported by the auth provider.
type Principal struct {
	Subject string
	Name    string
}

// Provider is the external authentication collaborator. Subscribe registers a
// callback that receives the current state immediately and again on every
// state transition: a non-nil Principal while signed in, nil while signed out.
//
// The returned unsubscribe function releases the subscription; the callback
// must never be invoked after unsubscribe returns.
type Provider interface {
	Subscribe(fn func(p *Principal)) (unsubscribe func())
}
