package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a scriptable auth provider: it delivers the current state
// on subscribe and lets tests emit transitions.
type fakeProvider struct {
	current      *Principal
	subscriber   func(*Principal)
	unsubscribed int
}

func (f *fakeProvider) Subscribe(fn func(p *Principal)) (unsubscribe func()) {
	f.subscriber = fn
	fn(f.current)
	return func() {
		f.unsubscribed++
		f.subscriber = nil
	}
}

func (f *fakeProvider) emit(p *Principal) {
	f.current = p
	if f.subscriber != nil {
		f.subscriber(p)
	}
}

func Test_Gate_StartsUnauthenticated(t *testing.T) {
	gate := NewGate()
	assert.False(t, gate.Authenticated(), "gate should be false before any provider callback")
}

func Test_Gate_FollowsProviderSignal(t *testing.T) {
	// given
	provider := &fakeProvider{current: &Principal{Subject: "user-1"}}
	gate := NewGate()

	// when: bind delivers the current state immediately
	gate.Bind(provider)

	// then
	assert.True(t, gate.Authenticated())

	// when: provider reports signed-out
	provider.emit(nil)

	// then: the flip is synchronous with respect to the next read
	assert.False(t, gate.Authenticated())

	// when: provider reports signed-in again
	provider.emit(&Principal{Subject: "user-1"})

	// then
	assert.True(t, gate.Authenticated())
}

func Test_Gate_ReleaseUnsubscribesOnce(t *testing.T) {
	// given
	provider := &fakeProvider{current: &Principal{Subject: "user-1"}}
	gate := NewGate()
	gate.Bind(provider)

	// when
	gate.Release()
	gate.Release()

	// then
	assert.Equal(t, 1, provider.unsubscribed, "subscription should be released exactly once")
	assert.Nil(t, provider.subscriber, "callback must never fire after release")
}

func Test_Gate_Require(t *testing.T) {
	testCases := []struct {
		name           string
		principal      *Principal
		expectedCode   int
		expectedTarget string
	}{
		{
			name:         "authenticated request passes through",
			principal:    &Principal{Subject: "user-1"},
			expectedCode: http.StatusOK,
		},
		{
			name:           "unauthenticated request redirects to login",
			principal:      nil,
			expectedCode:   http.StatusFound,
			expectedTarget: "/login",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			provider := &fakeProvider{current: tc.principal}
			gate := NewGate()
			gate.Bind(provider)

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			protected := gate.Require("/login")(next)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			// when
			protected.ServeHTTP(rr, req)

			// then
			require.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedTarget != "" {
				assert.Equal(t, tc.expectedTarget, rr.Header().Get("Location"))
			}
		})
	}
}

func Test_Gate_RequireReevaluatesPerRequest(t *testing.T) {
	// given
	provider := &fakeProvider{current: &Principal{Subject: "user-1"}}
	gate := NewGate()
	gate.Bind(provider)

	protected := gate.Require("/login")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// when: first request while signed in
	rr := httptest.NewRecorder()
	protected.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	// and: the provider signs out, no navigation in between
	provider.emit(nil)

	// then: the very next request is redirected
	rr = httptest.NewRecorder()
	protected.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rr.Code)
}
