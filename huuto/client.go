package huuto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public Huuto.net API root.
const DefaultBaseURL = "https://api.huuto.net/1.1"

// tokenHeader carries the session token on authenticated calls.
const tokenHeader = "X-HuutoApiToken"

// Client is a Huuto.net API client. One client instance owns one credential
// resource; individual calls are safe to issue from concurrent goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	tokens     *TokenManager
	authRetry  bool
}

// NewClient creates a Huuto.net client backed by the given credential store.
// An empty baseURL selects the public API.
func NewClient(baseURL string, store CredentialStore, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	options := clientOptions{
		timeout:   30 * time.Second,
		authRetry: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	client := &Client{
		baseURL:   baseURL,
		logger:    logger,
		authRetry: options.authRetry,
	}
	if options.httpClient != nil {
		client.httpClient = options.httpClient
	} else {
		client.httpClient = &http.Client{Timeout: options.timeout}
	}

	client.tokens = newTokenManager(store, client.authenticate, logger)
	if options.margin > 0 {
		client.tokens.margin = options.margin
	}
	if options.now != nil {
		client.tokens.now = options.now
	}

	return client, nil
}

// Tokens exposes the token manager, e.g. to force re-authentication.
func (c *Client) Tokens() *TokenManager {
	return c.tokens
}

// Endpoints lists all methods and their API endpoints (GET /).
func (c *Client) Endpoints(ctx context.Context) (json.RawMessage, error) {
	return c.Do(ctx, CallSpec{Method: http.MethodGet, Path: "/"})
}

// Do builds, authenticates and sends one API call, returning the raw
// response body on success. An empty body is valid for some operations,
// such as item and image deletion.
func (c *Client) Do(ctx context.Context, spec CallSpec) ([]byte, error) {
	body, _, err := c.do(ctx, spec, c.authRetry)
	return body, err
}

func (c *Client) do(ctx context.Context, spec CallSpec, retryAuth bool) ([]byte, int, error) {
	req, err := c.buildRequest(ctx, spec)
	if err != nil {
		return nil, 0, err
	}

	if spec.RequiresAuth {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, 0, err
		}
		req.Header.Set(tokenHeader, token.Value)
	}

	c.logger.Debug().
		Str("method", spec.Method).
		Str("url", req.URL.String()).
		Msg("Huuto API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &APIError{Kind: KindTransportError, Method: spec.Method, Path: spec.Path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &APIError{
			Kind:       KindTransportError,
			StatusCode: resp.StatusCode,
			Method:     spec.Method,
			Path:       spec.Path,
			Err:        err,
		}
	}

	if spec.accepted(resp.StatusCode) {
		return payload, resp.StatusCode, nil
	}

	apiErr := classify(resp.StatusCode, spec, payload)
	if apiErr.Kind == KindAuthRejected && spec.RequiresAuth && retryAuth {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("path", spec.Path).
			Msg("Token rejected, refreshing and retrying once")
		if _, err := c.tokens.Refresh(ctx); err != nil {
			return nil, resp.StatusCode, err
		}
		return c.do(ctx, spec, false)
	}
	return nil, resp.StatusCode, apiErr
}

// classify maps a non-accepted status code to an APIError.
func classify(status int, spec CallSpec, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Method:     spec.Method,
		Path:       spec.Path,
		Body:       body,
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.Kind = KindAuthRejected
	case status >= 400 && status < 500:
		apiErr.Kind = KindClientError
	default:
		apiErr.Kind = KindServerError
	}
	return apiErr
}

// getJSON dispatches the call and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, spec CallSpec, out any) error {
	body, err := c.Do(ctx, spec)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", spec.Method, spec.Path, err)
	}
	return nil
}

// userLinkPattern extracts the numeric user id from the authentication
// response's user link. Huuto user ids are 3-8 digits.
var userLinkPattern = regexp.MustCompile(`/([0-9]{3,8})`)

// authResponse is the shape of a successful POST /authentication.
type authResponse struct {
	Authentication struct {
		Token struct {
			ID        string `json:"id"`
			StartTime string `json:"startTime"`
			Expires   string `json:"expires"`
		} `json:"token"`
	} `json:"authentication"`
	Links Links `json:"links"`
}

// authenticate performs the login call. The endpoint only accepts form data
// and answers 201 Created on success.
func (c *Client) authenticate(ctx context.Context, creds Credentials) (SessionToken, error) {
	spec := CallSpec{
		Method: http.MethodPost,
		Path:   "/authentication",
		Body: Params{
			"username": creds.Username,
			"password": creds.Password,
		},
		Accept: []int{http.StatusOK, http.StatusCreated},
	}

	body, _, err := c.do(ctx, spec, false)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Kind != KindTransportError {
			reason := strings.TrimSpace(string(apiErr.Body))
			if reason == "" {
				reason = http.StatusText(apiErr.StatusCode)
			}
			return SessionToken{}, fmt.Errorf("%w: status %d: %s", ErrAuthenticationFailed, apiErr.StatusCode, reason)
		}
		return SessionToken{}, err
	}

	var parsed authResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return SessionToken{}, fmt.Errorf("decode authentication response: %w", err)
	}
	if parsed.Authentication.Token.ID == "" {
		return SessionToken{}, fmt.Errorf("%w: response contained no token", ErrAuthenticationFailed)
	}

	expires, err := ParseTime(parsed.Authentication.Token.Expires)
	if err != nil {
		return SessionToken{}, fmt.Errorf("parse token expiry %q: %w", parsed.Authentication.Token.Expires, err)
	}

	token := SessionToken{
		Value:     parsed.Authentication.Token.ID,
		ExpiresAt: expires,
	}
	if issued, err := ParseTime(parsed.Authentication.Token.StartTime); err == nil {
		token.IssuedAt = issued
	}
	if m := userLinkPattern.FindStringSubmatch(parsed.Links["user"]); m != nil {
		token.UserID = m[1]
	}

	return token, nil
}
