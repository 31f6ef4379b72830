package huuto

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// SearchParams carries the item search filters. Nil fields are omitted from
// the query entirely.
//
// Enum-valued filters are validated client-side: the API silently ignores a
// misspelled value without any feedback, so catching typos here is the only
// way the caller ever learns about them.
type SearchParams struct {
	AddTime        *string // past-day, past-2days, past-5days, past-week
	Area           *string // city, municipality or zipcode
	BidderNro      *int64
	Category       []int64 // joined with dashes per the API's category syntax
	Classification *string // none, new, like-new, good, acceptable, weak
	ClosingTime    *string // next-day, next-2days, next-5days, next-week
	FeedbackLimit  *int
	Limit          *int // 50 or 500
	Page           *int
	PriceMax       *float64
	PriceMin       *float64
	SellerType     *string // company, user
	SellerNro      *int64
	SellStyle      *string // all, auction, buy-now
	Sort           *string // hits, newest, closing, lowprice, highprice, bidders, title
	Status         *string // open, closed
	Words          *string
}

var (
	searchAddTimes        = []string{"past-day", "past-2days", "past-5days", "past-week"}
	searchClassifications = []string{"none", "new", "like-new", "good", "acceptable", "weak"}
	searchClosingTimes    = []string{"next-day", "next-2days", "next-5days", "next-week"}
	searchSellStyles      = []string{"all", "auction", "buy-now"}
	searchSorts           = []string{"hits", "newest", "closing", "lowprice", "highprice", "bidders", "title"}
)

func (p SearchParams) validate() error {
	if p.AddTime != nil && !oneOf(*p.AddTime, searchAddTimes) {
		return fmt.Errorf("addtime must be one of %v", searchAddTimes)
	}
	if p.Classification != nil && !oneOf(*p.Classification, searchClassifications) {
		return fmt.Errorf("classification must be one of %v", searchClassifications)
	}
	if p.ClosingTime != nil && !oneOf(*p.ClosingTime, searchClosingTimes) {
		return fmt.Errorf("closingtime must be one of %v", searchClosingTimes)
	}
	if p.Limit != nil && *p.Limit != 50 && *p.Limit != 500 {
		return fmt.Errorf("limit must be 50 or 500")
	}
	if p.SellStyle != nil && !oneOf(*p.SellStyle, searchSellStyles) {
		return fmt.Errorf("sellstyle must be one of %v", searchSellStyles)
	}
	if p.Sort != nil && !oneOf(*p.Sort, searchSorts) {
		return fmt.Errorf("sort must be one of %v", searchSorts)
	}
	return nil
}

func (p SearchParams) params() Params {
	params := Params{
		"addtime":        p.AddTime,
		"area":           p.Area,
		"biddernro":      p.BidderNro,
		"classification": p.Classification,
		"closingtime":    p.ClosingTime,
		"feedback_limit": p.FeedbackLimit,
		"limit":          p.Limit,
		"page":           p.Page,
		"price_max":      p.PriceMax,
		"price_min":      p.PriceMin,
		"seller_type":    p.SellerType,
		"sellernro":      p.SellerNro,
		"sellstyle":      p.SellStyle,
		"sort":           p.Sort,
		"status":         p.Status,
		"words":          p.Words,
	}
	// The category filter is a single expression, not a repeated key: the
	// API joins multiple category ids with dashes (e.g. "1-2-3").
	if len(p.Category) > 0 {
		ids := make([]string, len(p.Category))
		for i, id := range p.Category {
			ids[i] = strconv.FormatInt(id, 10)
		}
		params["category"] = strings.Join(ids, "-")
	}
	return params
}

// SearchItems searches open and closed items.
func (c *Client) SearchItems(ctx context.Context, params SearchParams) (*ItemList, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	spec := CallSpec{
		Method: http.MethodGet,
		Path:   "/items",
		Query:  params.params(),
	}
	var out ItemList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
