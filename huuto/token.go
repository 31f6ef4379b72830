package huuto

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultExpiryMargin is subtracted from a token's remaining lifetime when
// deciding whether it is still usable, so a token close to expiry is never
// raced against an in-flight request.
const DefaultExpiryMargin = 30 * time.Second

// loginFunc performs the actual login call against the API.
type loginFunc func(ctx context.Context, creds Credentials) (SessionToken, error)

// TokenManager owns the single cached session token for one client. Every
// token decision goes through it, and the check-login-persist sequence runs
// under one lock so concurrent callers share at most one login.
type TokenManager struct {
	store  CredentialStore
	login  loginFunc
	margin time.Duration
	now    func() time.Time
	logger zerolog.Logger

	mu     sync.Mutex
	cached *SessionToken
}

func newTokenManager(store CredentialStore, login loginFunc, logger zerolog.Logger) *TokenManager {
	return &TokenManager{
		store:  store,
		login:  login,
		margin: DefaultExpiryMargin,
		now:    time.Now,
		logger: logger,
	}
}

// Token returns a valid session token. A cached token that is still inside
// its validity window is returned without any network calls; otherwise one
// login is performed and the new token persisted before it is returned.
func (m *TokenManager) Token(ctx context.Context) (SessionToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if m.cached != nil && m.cached.Valid(now, m.margin) {
		return *m.cached, nil
	}

	creds, stored, err := m.store.Load()
	if err != nil {
		return SessionToken{}, err
	}
	if creds.Username == "" || creds.Password == "" {
		return SessionToken{}, ErrCredentialsInvalid
	}
	if stored != nil && stored.Valid(now, m.margin) {
		m.cached = stored
		return *stored, nil
	}

	m.logger.Debug().Msg("Session token missing or expired, logging in")
	return m.loginLocked(ctx, creds)
}

// Refresh discards the current session and performs a fresh login, ignoring
// any stored token. Used when the API rejects a token that has not expired.
func (m *TokenManager) Refresh(ctx context.Context) (SessionToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cached = nil
	creds, _, err := m.store.Load()
	if err != nil {
		return SessionToken{}, err
	}
	if creds.Username == "" || creds.Password == "" {
		return SessionToken{}, ErrCredentialsInvalid
	}
	return m.loginLocked(ctx, creds)
}

// loginLocked performs the login-persist-cache sequence. Callers hold m.mu.
func (m *TokenManager) loginLocked(ctx context.Context, creds Credentials) (SessionToken, error) {
	token, err := m.login(ctx, creds)
	if err != nil {
		m.cached = nil
		return SessionToken{}, err
	}
	if err := m.store.Save(token); err != nil {
		return SessionToken{}, fmt.Errorf("persist session token: %w", err)
	}
	m.cached = &token

	m.logger.Info().
		Str("user_id", token.UserID).
		Time("expires", token.ExpiresAt).
		Msg("Authenticated with Huuto.net")

	return token, nil
}

// Invalidate drops the cached token so the next call re-authenticates. Used
// when the API rejects a token the client still believed to be valid.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.cached = nil
	m.mu.Unlock()
}

// UserID returns the numeric Huuto.net user id bound to the current session.
func (m *TokenManager) UserID(ctx context.Context) (string, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	if token.UserID == "" {
		return "", fmt.Errorf("session token has no user id")
	}
	return token.UserID, nil
}
