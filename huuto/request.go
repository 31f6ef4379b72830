package huuto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// CallSpec describes one logical API call before it is serialized to HTTP.
// Endpoint wrappers construct a CallSpec and hand it to the dispatcher.
type CallSpec struct {
	Method     string
	Path       string // template with {name} placeholders, e.g. "/items/{itemID}/bids"
	PathParams map[string]string
	Query      Params
	Body       Params
	// BodyJSON marshals the body as JSON. The API requires JSON for bodies
	// containing arrays; the authentication endpoint only accepts form data.
	BodyJSON     bool
	RequiresAuth bool
	// Accept lists status codes treated as success. Empty means 200 only;
	// some endpoints answer 201 or 204.
	Accept []int
}

// accepted reports whether the status code counts as success for this call.
func (s CallSpec) accepted(code int) bool {
	if len(s.Accept) == 0 {
		return code == http.StatusOK
	}
	for _, c := range s.Accept {
		if c == code {
			return true
		}
	}
	return false
}

// expandPath substitutes {name} placeholders from params into the template.
// Every placeholder must have a non-empty value.
func expandPath(template string, params map[string]string) (string, error) {
	var b strings.Builder
	rest := template
	for {
		i := strings.IndexByte(rest, '{')
		if i < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		j := strings.IndexByte(rest[i:], '}')
		if j < 0 {
			return "", fmt.Errorf("%w: unterminated placeholder in %q", ErrMissingPathParam, template)
		}
		name := rest[i+1 : i+j]
		value, ok := params[name]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingPathParam, name)
		}
		b.WriteString(rest[:i])
		b.WriteString(url.PathEscape(value))
		rest = rest[i+j+1:]
	}
}

// buildRequest turns a CallSpec into a transport-ready *http.Request.
func (c *Client) buildRequest(ctx context.Context, spec CallSpec) (*http.Request, error) {
	path, err := expandPath(spec.Path, spec.PathParams)
	if err != nil {
		return nil, err
	}

	requestURL := c.baseURL + path
	if len(spec.Query) > 0 {
		vals, err := spec.Query.Values()
		if err != nil {
			return nil, err
		}
		if encoded := vals.Encode(); encoded != "" {
			requestURL += "?" + encoded
		}
	}

	var body io.Reader
	contentType := ""
	if len(spec.Body) > 0 {
		if spec.BodyJSON {
			payload, err := spec.Body.JSONBody()
			if err != nil {
				return nil, err
			}
			buf, err := json.Marshal(payload)
			if err != nil {
				return nil, fmt.Errorf("marshal request body: %w", err)
			}
			body = bytes.NewReader(buf)
			contentType = "application/json"
		} else {
			vals, err := spec.Body.Values()
			if err != nil {
				return nil, err
			}
			body = strings.NewReader(vals.Encode())
			contentType = "application/x-www-form-urlencoded"
		}
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}
