package huuto

import (
	"context"
	"encoding/json"
	"net/http"
)

// BidParams carries the attributes for placing a bid.
type BidParams struct {
	// Amount is the bid in euros. With automation on it is the maximum the
	// bidder is willing to pay and the API bids on their behalf.
	Amount   float64
	Automate *bool
	// QuantityMin and QuantityMax apply to buy-now items selling more than
	// one unit and are required for those.
	QuantityMin *int
	QuantityMax *int
}

// ItemBids retrieves the bids placed on an item.
func (c *Client) ItemBids(ctx context.Context, itemID int64) (*BidList, error) {
	spec := CallSpec{
		Method:     http.MethodGet,
		Path:       "/items/{itemID}/bids",
		PathParams: itemPath(itemID),
	}
	var out BidList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceBid places a bid on an item.
func (c *Client) PlaceBid(ctx context.Context, itemID int64, params BidParams) (json.RawMessage, error) {
	spec := CallSpec{
		Method:     http.MethodPost,
		Path:       "/items/{itemID}/bids",
		PathParams: itemPath(itemID),
		Body: Params{
			"itemid":      itemID,
			"bid":         params.Amount,
			"automate":    params.Automate,
			"quantityMin": params.QuantityMin,
			"quantityMax": params.QuantityMax,
		},
		RequiresAuth: true,
		Accept:       []int{http.StatusOK, http.StatusCreated},
	}
	return c.Do(ctx, spec)
}
