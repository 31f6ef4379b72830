package huuto

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
	authRetry  bool
	margin     time.Duration
	now        func() time.Time
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client, replacing the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithAuthRetry controls whether a 401/403 on an authenticated call forces a
// token refresh and a single retry. Enabled by default; there is never more
// than one retry.
func WithAuthRetry(enabled bool) Option {
	return func(o *clientOptions) {
		o.authRetry = enabled
	}
}

// WithExpiryMargin overrides the safety margin applied to token expiry.
func WithExpiryMargin(margin time.Duration) Option {
	return func(o *clientOptions) {
		if margin > 0 {
			o.margin = margin
		}
	}
}

// WithNow overrides the clock used for token expiry decisions (testing).
func WithNow(now func() time.Time) Option {
	return func(o *clientOptions) {
		if now != nil {
			o.now = now
		}
	}
}
