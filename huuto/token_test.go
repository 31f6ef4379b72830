package huuto

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authBody(token string, expires time.Time, userID string) string {
	return fmt.Sprintf(
		`{"authentication":{"token":{"id":%q,"startTime":%q,"expires":%q}},"links":{"user":"https://api.huuto.net/1.1/users/%s"}}`,
		token, time.Now().UTC().Format(time.RFC3339), expires.UTC().Format(time.RFC3339), userID)
}

// newAuthServer serves POST /authentication and counts login attempts.
func newAuthServer(t *testing.T, logins *int32, status int, expires time.Time) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/authentication" {
			atomic.AddInt32(logins, 1)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "someone", r.PostFormValue("username"))
			assert.Equal(t, "hunter2", r.PostFormValue("password"))

			if status != http.StatusCreated {
				http.Error(w, `{"errors":"Invalid username or password"}`, status)
				return
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, authBody("issued-token", expires, "123456"))
			return
		}
		http.NotFound(w, r)
	}))
}

func newTestClient(t *testing.T, serverURL, credFile string, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(serverURL, NewFileStore(credFile), zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestTokenFreshTokenMakesNoNetworkCalls(t *testing.T) {
	var logins int32
	server := newAuthServer(t, &logins, http.StatusCreated, time.Now().Add(time.Hour))
	defer server.Close()

	expiry := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	credFile := writeCredFile(t, fmt.Sprintf(
		"username = someone\npassword = hunter2\ntoken = cached\ntoken_expiry = %s\nuser_id = 123456\n", expiry))

	client := newTestClient(t, server.URL, credFile)

	token, err := client.Tokens().Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", token.Value)
	assert.Equal(t, int32(0), atomic.LoadInt32(&logins))

	// Second call hits the in-memory cache, still no network.
	token, err = client.Tokens().Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", token.Value)
	assert.Equal(t, int32(0), atomic.LoadInt32(&logins))
}

func TestTokenExpiredTriggersSingleLogin(t *testing.T) {
	var logins int32
	newExpiry := time.Now().Add(time.Hour)
	server := newAuthServer(t, &logins, http.StatusCreated, newExpiry)
	defer server.Close()

	staleExpiry := time.Now().Add(-10 * time.Second).UTC().Format(time.RFC3339)
	credFile := writeCredFile(t, fmt.Sprintf(
		"username = someone\npassword = hunter2\ntoken = abc\ntoken_expiry = %s\n", staleExpiry))

	client := newTestClient(t, server.URL, credFile)

	token, err := client.Tokens().Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token.Value)
	assert.Equal(t, "123456", token.UserID)
	assert.True(t, token.ExpiresAt.After(time.Now()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&logins))

	// The new token was persisted before Token returned.
	_, stored, err := NewFileStore(credFile).Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "issued-token", stored.Value)
	assert.True(t, stored.ExpiresAt.After(time.Now()))
}

func TestTokenNearExpiryCountsAsExpired(t *testing.T) {
	var logins int32
	server := newAuthServer(t, &logins, http.StatusCreated, time.Now().Add(time.Hour))
	defer server.Close()

	// Expires in 10s, inside the 30s safety margin.
	nearExpiry := time.Now().Add(10 * time.Second).UTC().Format(time.RFC3339)
	credFile := writeCredFile(t, fmt.Sprintf(
		"username = someone\npassword = hunter2\ntoken = nearly-dead\ntoken_expiry = %s\n", nearExpiry))

	client := newTestClient(t, server.URL, credFile)

	token, err := client.Tokens().Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token.Value)
	assert.Equal(t, int32(1), atomic.LoadInt32(&logins))
}

func TestTokenLoginRejected(t *testing.T) {
	var logins int32
	server := newAuthServer(t, &logins, http.StatusBadRequest, time.Time{})
	defer server.Close()

	credFile := writeCredFile(t, "username = someone\npassword = hunter2\n")
	client := newTestClient(t, server.URL, credFile)

	_, err := client.Tokens().Token(context.Background())
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Contains(t, err.Error(), "Invalid username or password")

	// Nothing was persisted for the failed attempt.
	_, stored, loadErr := NewFileStore(credFile).Load()
	require.NoError(t, loadErr)
	assert.Nil(t, stored)
}

func TestTokenConcurrentCallersShareOneLogin(t *testing.T) {
	var logins int32
	server := newAuthServer(t, &logins, http.StatusCreated, time.Now().Add(time.Hour))
	defer server.Close()

	staleExpiry := time.Now().Add(-time.Minute).UTC().Format(time.RFC3339)
	credFile := writeCredFile(t, fmt.Sprintf(
		"username = someone\npassword = hunter2\ntoken = stale\ntoken_expiry = %s\n", staleExpiry))

	client := newTestClient(t, server.URL, credFile)

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	tokens := make([]SessionToken, callers)

	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens[i], errs[i] = client.Tokens().Token(context.Background())
		}()
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "issued-token", tokens[i].Value)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&logins))
}

func TestTokenInvalidateReloadsFromStore(t *testing.T) {
	var logins int32
	server := newAuthServer(t, &logins, http.StatusCreated, time.Now().Add(time.Hour))
	defer server.Close()

	credFile := writeCredFile(t, "username = someone\npassword = hunter2\n")
	client := newTestClient(t, server.URL, credFile)

	_, err := client.Tokens().Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&logins))

	client.Tokens().Invalidate()

	// The persisted token is still fresh, so invalidation alone does not
	// force a login; the store copy is picked up again.
	_, err = client.Tokens().Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&logins))
}

type emptyStore struct{}

func (emptyStore) Load() (Credentials, *SessionToken, error) { return Credentials{}, nil, nil }
func (emptyStore) Save(SessionToken) error                   { return nil }

func TestTokenEmptyCredentials(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1", emptyStore{}, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.Tokens().Token(context.Background())
	require.ErrorIs(t, err, ErrCredentialsInvalid)
}

func TestTokenMissingCredentialFile(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", t.TempDir()+"/absent.ini")
	_, err := client.Tokens().Token(context.Background())
	require.ErrorIs(t, err, ErrConfigMissing)
}
