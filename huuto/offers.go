package huuto

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// ItemOffers retrieves the price offers made on an item.
func (c *Client) ItemOffers(ctx context.Context, itemID int64) (*OfferList, error) {
	spec := CallSpec{
		Method:     http.MethodGet,
		Path:       "/items/{itemID}/offers",
		PathParams: itemPath(itemID),
	}
	var out OfferList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOffer posts a price offer (hintaehdotus) on an item. The message is
// limited to 255 characters by the API.
func (c *Client) CreateOffer(ctx context.Context, itemID int64, amount float64, message string) (json.RawMessage, error) {
	spec := CallSpec{
		Method:     http.MethodPost,
		Path:       "/items/{itemID}/offers",
		PathParams: itemPath(itemID),
		Body: Params{
			"offer":   amount,
			"message": message,
		},
		RequiresAuth: true,
		Accept:       []int{http.StatusOK, http.StatusCreated},
	}
	return c.Do(ctx, spec)
}

// AnswerOffer updates an offer's status. Sellers accept or refuse offers;
// the offering user may cancel their own offer as long as the seller has not
// answered it yet.
func (c *Client) AnswerOffer(ctx context.Context, itemID, offerID int64, status string) (json.RawMessage, error) {
	spec := CallSpec{
		Method: http.MethodPut,
		Path:   "/items/{itemID}/offer/{offerID}",
		PathParams: map[string]string{
			"itemID":  strconv.FormatInt(itemID, 10),
			"offerID": strconv.FormatInt(offerID, 10),
		},
		Body:         Params{"status": status},
		RequiresAuth: true,
		Accept:       []int{http.StatusOK, http.StatusCreated},
	}
	return c.Do(ctx, spec)
}
