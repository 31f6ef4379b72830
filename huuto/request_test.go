package huuto

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	t.Run("substitutes placeholders", func(t *testing.T) {
		path, err := expandPath("/items/{itemID}/images/{imageID}", map[string]string{
			"itemID":  "450185678",
			"imageID": "12",
		})
		require.NoError(t, err)
		assert.Equal(t, "/items/450185678/images/12", path)
	})

	t.Run("escapes values", func(t *testing.T) {
		path, err := expandPath("/users/{userID}/", map[string]string{"userID": "a/b"})
		require.NoError(t, err)
		assert.Equal(t, "/users/a%2Fb/", path)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := expandPath("/items/{itemID}/bids", nil)
		require.ErrorIs(t, err, ErrMissingPathParam)
		assert.Contains(t, err.Error(), "itemID")
	})

	t.Run("empty value counts as missing", func(t *testing.T) {
		_, err := expandPath("/items/{itemID}/", map[string]string{"itemID": ""})
		require.ErrorIs(t, err, ErrMissingPathParam)
	})

	t.Run("unterminated placeholder", func(t *testing.T) {
		_, err := expandPath("/items/{itemID", map[string]string{"itemID": "1"})
		require.ErrorIs(t, err, ErrMissingPathParam)
	})
}

func TestCallSpecAccepted(t *testing.T) {
	spec := CallSpec{}
	assert.True(t, spec.accepted(200))
	assert.False(t, spec.accepted(201))

	spec.Accept = []int{200, 201, 204}
	assert.True(t, spec.accepted(201))
	assert.True(t, spec.accepted(204))
	assert.False(t, spec.accepted(400))
}

func TestBuildRequest(t *testing.T) {
	client := &Client{baseURL: "http://api.test/1.1"}
	ctx := context.Background()

	t.Run("query parameters", func(t *testing.T) {
		req, err := client.buildRequest(ctx, CallSpec{
			Method: http.MethodGet,
			Path:   "/items",
			Query:  Params{"words": "kitara", "page": 2, "status": nil},
		})
		require.NoError(t, err)

		assert.Equal(t, "kitara", req.URL.Query().Get("words"))
		assert.Equal(t, "2", req.URL.Query().Get("page"))
		_, hasStatus := req.URL.Query()["status"]
		assert.False(t, hasStatus)
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
	})

	t.Run("form body", func(t *testing.T) {
		req, err := client.buildRequest(ctx, CallSpec{
			Method: http.MethodPost,
			Path:   "/authentication",
			Body:   Params{"username": "user", "password": "pass"},
		})
		require.NoError(t, err)

		assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "username=user")
		assert.Contains(t, string(body), "password=pass")
	})

	t.Run("json body", func(t *testing.T) {
		req, err := client.buildRequest(ctx, CallSpec{
			Method:   http.MethodPost,
			Path:     "/items",
			Body:     Params{"title": "Testi", "paymentMethods": []string{"cash"}, "republish": Bool(true)},
			BodyJSON: true,
		})
		require.NoError(t, err)

		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "Testi", body["title"])
		assert.Equal(t, []any{"cash"}, body["paymentMethods"])
		assert.Equal(t, float64(1), body["republish"])
	})

	t.Run("missing path parameter", func(t *testing.T) {
		_, err := client.buildRequest(ctx, CallSpec{
			Method: http.MethodGet,
			Path:   "/items/{itemID}/",
		})
		require.ErrorIs(t, err, ErrMissingPathParam)
	})
}
