package huuto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// ItemImages retrieves the images attached to an item.
func (c *Client) ItemImages(ctx context.Context, itemID int64) (*ImageList, error) {
	spec := CallSpec{
		Method:     http.MethodGet,
		Path:       "/items/{itemID}/images",
		PathParams: itemPath(itemID),
	}
	var out ImageList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddItemImage uploads an image to an item as a multipart form. The item
// must exist and be in draft or preview status; creating a draft first is the
// documented way to attach images before filling in other fields.
func (c *Client) AddItemImage(ctx context.Context, itemID int64, filename string, image io.Reader) (json.RawMessage, error) {
	path, err := expandPath("/items/{itemID}/images", itemPath(itemID))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create multipart form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart form: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set(tokenHeader, token.Value)

	c.logger.Debug().
		Str("method", http.MethodPost).
		Str("url", req.URL.String()).
		Str("file", filename).
		Msg("Huuto API image upload")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransportError, Method: http.MethodPost, Path: path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransportError, StatusCode: resp.StatusCode, Method: http.MethodPost, Path: path, Err: err}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, classify(resp.StatusCode, CallSpec{Method: http.MethodPost, Path: path}, payload)
	}
	return payload, nil
}

// DeleteItemImage removes an image from an item. The API answers 204 with an
// empty body.
func (c *Client) DeleteItemImage(ctx context.Context, itemID, imageID int64) error {
	spec := CallSpec{
		Method: http.MethodDelete,
		Path:   "/items/{itemID}/images/{imageID}",
		PathParams: map[string]string{
			"itemID":  strconv.FormatInt(itemID, 10),
			"imageID": strconv.FormatInt(imageID, 10),
		},
		RequiresAuth: true,
		Accept:       []int{http.StatusNoContent},
	}
	_, err := c.Do(ctx, spec)
	return err
}
