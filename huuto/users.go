package huuto

import (
	"context"
	"encoding/json"
	"net/http"
)

// SalesParams carries the filters for listing the caller's own items.
type SalesParams struct {
	Page   *int
	Status *string // all, open, closed, waiting, draft
	// Sold and Republished are effective only together with status open or
	// closed.
	Sold        *bool
	Republished *bool
	Sort        *string // bidders, closing-time, current-price, list-time
}

// userSpec builds a CallSpec for a user-scoped endpoint, resolving the user
// id from the current session.
func (c *Client) userSpec(ctx context.Context, method, suffix string, query Params) (CallSpec, error) {
	userID, err := c.tokens.UserID(ctx)
	if err != nil {
		return CallSpec{}, err
	}
	return CallSpec{
		Method:       method,
		Path:         "/users/{userID}" + suffix,
		PathParams:   map[string]string{"userID": userID},
		Query:        query,
		RequiresAuth: true,
	}, nil
}

// User retrieves the authenticated user's account information. LastLogin and
// Address are only visible to the account itself.
func (c *Client) User(ctx context.Context) (*User, error) {
	spec, err := c.userSpec(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return nil, err
	}
	var out User
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserSettings retrieves the user-specific parameter requirements for item
// creation: which parameters are allowed or required and their legal values.
// The shape varies by account type, so the payload is returned raw.
func (c *Client) UserSettings(ctx context.Context) (json.RawMessage, error) {
	spec, err := c.userSpec(ctx, http.MethodGet, "/settings", nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, spec)
}

// UserFeedback retrieves the feedback left for the user.
func (c *Client) UserFeedback(ctx context.Context) (json.RawMessage, error) {
	spec, err := c.userSpec(ctx, http.MethodGet, "/feedbacks", nil)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, spec)
}

// UserFavorites retrieves the user's favorite items ("muistilista").
func (c *Client) UserFavorites(ctx context.Context) (*ItemList, error) {
	spec, err := c.userSpec(ctx, http.MethodGet, "/favorites", nil)
	if err != nil {
		return nil, err
	}
	var out ItemList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddFavorite adds an item to the user's favorite list. The API answers 201.
// There is no documented way to remove a favorite through the API.
func (c *Client) AddFavorite(ctx context.Context, itemID int64) error {
	spec, err := c.userSpec(ctx, http.MethodPost, "/favorites", nil)
	if err != nil {
		return err
	}
	spec.Body = Params{"itemid": itemID}
	spec.Accept = []int{http.StatusCreated}
	_, err = c.Do(ctx, spec)
	return err
}

// Purchases retrieves items the user has bid on or bought. Status is one of
// open, closed, processing or all.
//
// The upstream documentation also describes a post_id filter; the server
// accepts and ignores it. It is passed through unchanged when set, since the
// defect is upstream's to fix.
func (c *Client) Purchases(ctx context.Context, status string, postID *int64) (*ItemList, error) {
	query := Params{
		"status":  status,
		"post_id": postID,
	}
	spec, err := c.userSpec(ctx, http.MethodGet, "/purchases", query)
	if err != nil {
		return nil, err
	}
	var out ItemList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sales retrieves items created by the user.
func (c *Client) Sales(ctx context.Context, params SalesParams) (*ItemList, error) {
	query := Params{
		"page":        params.Page,
		"status":      params.Status,
		"sold":        params.Sold,
		"sort":        params.Sort,
		"republished": params.Republished,
	}
	spec, err := c.userSpec(ctx, http.MethodGet, "/sales", query)
	if err != nil {
		return nil, err
	}
	var out ItemList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
