package huuto

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// itemTimeLayout is the format the API expects for listTime and closingTime.
const itemTimeLayout = "2006-01-02 15:04:05"

// maxItemConcurrency limits parallel item fetches in ItemsByID.
const maxItemConcurrency = 10

func itemPath(itemID int64) map[string]string {
	return map[string]string{"itemID": strconv.FormatInt(itemID, 10)}
}

// ItemParams carries the attributes for creating or editing an item. Nil
// fields are omitted from the API call entirely.
//
// DeliveryMethods currently cannot be set through the API; the server accepts
// the field but the result is always empty. It is passed through unchanged.
type ItemParams struct {
	BuyNowPrice            *float64 // required when SaleMethod is "buy-now"
	CategoryID             *int64
	ClosingTime            *string  // "2006-01-02 15:04:05", paired with ListTime
	Condition              *string  // new, like-new, good, acceptable, weak
	DeliveryMethods        []string // pickup, shipment
	DeliveryTerms          *string
	Description            *string
	IdentificationRequired *bool
	IsLocationAbroad       *bool
	ListTime               *string
	MarginalTax            *bool
	MinimumFeedback        *int
	MinimumIncrease        *float64 // auction only
	OffersAllowed          *bool
	OpenDays               *int     // alternative to ListTime/ClosingTime
	OriginalID             *int64   // republish a closed item as a draft copy
	PaymentMethods         []string // wire-transfer, cash, mobile-pay
	PaymentTerms           *string
	PostalCode             *string
	Quantity               *int
	Republish              *bool
	SaleMethod             *string  // auction, buy-now
	StartingPrice          *float64 // required when SaleMethod is "auction"
	Status                 *string  // draft, preview
	Title                  *string  // max 60 chars
	VAT                    *int     // 0-100, company accounts
}

func (p ItemParams) params() Params {
	return Params{
		"buyNowPrice":            p.BuyNowPrice,
		"categoryId":             p.CategoryID,
		"closingTime":            p.ClosingTime,
		"condition":              p.Condition,
		"deliveryMethods":        p.DeliveryMethods,
		"deliveryTerms":          p.DeliveryTerms,
		"description":            p.Description,
		"identificationRequired": p.IdentificationRequired,
		"isLocationAbroad":       p.IsLocationAbroad,
		"listTime":               p.ListTime,
		"marginalTax":            p.MarginalTax,
		"minimumFeedback":        p.MinimumFeedback,
		"minimumIncrease":        p.MinimumIncrease,
		"offersAllowed":          p.OffersAllowed,
		"openDays":               p.OpenDays,
		"originalId":             p.OriginalID,
		"paymentMethods":         p.PaymentMethods,
		"paymentTerms":           p.PaymentTerms,
		"postalCode":             p.PostalCode,
		"quantity":               p.Quantity,
		"republish":              p.Republish,
		"saleMethod":             p.SaleMethod,
		"startingPrice":          p.StartingPrice,
		"status":                 p.Status,
		"title":                  p.Title,
		"vat":                    p.VAT,
	}
}

var (
	itemConditions      = []string{"new", "like-new", "good", "acceptable", "weak"}
	itemDeliveryMethods = []string{"pickup", "shipment"}
	itemPaymentMethods  = []string{"wire-transfer", "cash", "mobile-pay"}
	itemCreateStatuses  = []string{"draft", "preview"}
)

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// validate enforces the cross-field rules the API documents for item
// creation, so obvious mistakes fail before a network round trip.
func (p ItemParams) validate() error {
	if p.Condition != nil && !oneOf(*p.Condition, itemConditions) {
		return fmt.Errorf("condition must be one of %v", itemConditions)
	}
	for _, m := range p.DeliveryMethods {
		if !oneOf(m, itemDeliveryMethods) {
			return fmt.Errorf("delivery method %q must be one of %v", m, itemDeliveryMethods)
		}
	}
	for _, m := range p.PaymentMethods {
		if !oneOf(m, itemPaymentMethods) {
			return fmt.Errorf("payment method %q must be one of %v", m, itemPaymentMethods)
		}
	}
	if p.ListTime != nil {
		if _, err := time.Parse(itemTimeLayout, *p.ListTime); err != nil {
			return fmt.Errorf("listTime must be formatted as %q", itemTimeLayout)
		}
	}
	if p.ClosingTime != nil {
		if _, err := time.Parse(itemTimeLayout, *p.ClosingTime); err != nil {
			return fmt.Errorf("closingTime must be formatted as %q", itemTimeLayout)
		}
	}
	if (p.ListTime != nil) != (p.ClosingTime != nil) {
		return fmt.Errorf("listTime and closingTime must be set together")
	}
	if (p.ListTime != nil) == (p.OpenDays != nil) {
		return fmt.Errorf("set either listTime/closingTime or openDays")
	}
	if p.IsLocationAbroad != nil && !*p.IsLocationAbroad && p.PostalCode == nil {
		return fmt.Errorf("postalCode is required when the item is located in Finland")
	}
	if p.SaleMethod == nil {
		return fmt.Errorf("saleMethod is required")
	}
	switch *p.SaleMethod {
	case "buy-now":
		if p.BuyNowPrice == nil {
			return fmt.Errorf("buyNowPrice is required when saleMethod is buy-now")
		}
		if p.MinimumIncrease != nil {
			return fmt.Errorf("minimumIncrease is only available for auctions")
		}
	case "auction":
		if p.StartingPrice == nil {
			return fmt.Errorf("startingPrice is required when saleMethod is auction")
		}
	default:
		return fmt.Errorf("saleMethod must be auction or buy-now")
	}
	if p.Status != nil && !oneOf(*p.Status, itemCreateStatuses) {
		return fmt.Errorf("status must be one of %v", itemCreateStatuses)
	}
	if p.VAT != nil && (*p.VAT < 0 || *p.VAT > 100) {
		return fmt.Errorf("vat must be between 0 and 100")
	}
	return nil
}

// CreateItem creates a new item. Items are created in preview status by
// default and must be published separately; a draft needs no other fields.
// The body goes as JSON since it may contain array-valued attributes.
func (c *Client) CreateItem(ctx context.Context, params ItemParams) (*Item, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	spec := CallSpec{
		Method:       http.MethodPost,
		Path:         "/items",
		Body:         params.params(),
		BodyJSON:     true,
		RequiresAuth: true,
		Accept:       []int{http.StatusOK, http.StatusCreated},
	}
	var out Item
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditItem updates an item. Items can only be edited in draft or preview
// status. Items created in preview status are not visible in the web UI and
// must be read back with OwnItem.
func (c *Client) EditItem(ctx context.Context, itemID int64, params ItemParams) (*Item, error) {
	spec := CallSpec{
		Method:       http.MethodPut,
		Path:         "/items/{itemID}/",
		PathParams:   itemPath(itemID),
		Body:         params.params(),
		RequiresAuth: true,
		Accept:       []int{http.StatusOK, http.StatusCreated},
	}
	var out Item
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) setItemStatus(ctx context.Context, itemID int64, status string) (*Item, error) {
	spec := CallSpec{
		Method:       http.MethodPut,
		Path:         "/items/{itemID}/",
		PathParams:   itemPath(itemID),
		Body:         Params{"status": status},
		RequiresAuth: true,
		Accept:       []int{http.StatusOK, http.StatusCreated},
	}
	var out Item
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PreviewItem moves an item to preview status. All saved data is validated by
// the API at this point; a previewed item can then be published.
func (c *Client) PreviewItem(ctx context.Context, itemID int64) (*Item, error) {
	return c.setItemStatus(ctx, itemID, "preview")
}

// PublishItem publishes an item and makes it available for selling.
func (c *Client) PublishItem(ctx context.Context, itemID int64) (*Item, error) {
	return c.setItemStatus(ctx, itemID, "published")
}

// CloseItem closes an item. The highest bidder wins if the item's other
// conditions are met.
func (c *Client) CloseItem(ctx context.Context, itemID int64) (*Item, error) {
	return c.setItemStatus(ctx, itemID, "closed")
}

// Item retrieves a public item.
func (c *Client) Item(ctx context.Context, itemID int64) (*Item, error) {
	spec := CallSpec{
		Method:     http.MethodGet,
		Path:       "/items/{itemID}/",
		PathParams: itemPath(itemID),
	}
	var out Item
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OwnItem retrieves one of the caller's own items, including drafts and
// previews that are not publicly visible.
func (c *Client) OwnItem(ctx context.Context, itemID int64) (*Item, error) {
	spec := CallSpec{
		Method:       http.MethodGet,
		Path:         "/items/{itemID}/",
		PathParams:   itemPath(itemID),
		RequiresAuth: true,
	}
	var out Item
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteItem deletes an item. Only items in draft status can be deleted; the
// API answers 204 with an empty body.
func (c *Client) DeleteItem(ctx context.Context, itemID int64) error {
	spec := CallSpec{
		Method:       http.MethodDelete,
		Path:         "/items/{itemID}/",
		PathParams:   itemPath(itemID),
		RequiresAuth: true,
		Accept:       []int{http.StatusNoContent},
	}
	_, err := c.Do(ctx, spec)
	return err
}

// ItemsByID fetches several items concurrently. The result preserves input
// order; the first failed fetch cancels the rest.
func (c *Client) ItemsByID(ctx context.Context, itemIDs []int64) ([]*Item, error) {
	items := make([]*Item, len(itemIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxItemConcurrency)

	for i, id := range itemIDs {
		i, id := i, id
		g.Go(func() error {
			item, err := c.Item(ctx, id)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
