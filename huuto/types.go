package huuto

import (
	"fmt"
	"time"
)

// Links holds the hypermedia links the API attaches to most resources.
type Links map[string]string

// apiTimeLayouts lists the timestamp formats the API has been observed to
// return. Offsets appear both with and without a colon.
var apiTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
}

// ParseTime parses a timestamp in any of the API's formats.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// Category is one node of Huuto's three-level category tree.
type Category struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	ItemCount     int        `json:"itemCount"`
	Subcategories []Category `json:"categories,omitempty"`
	Links         Links      `json:"links,omitempty"`
}

// CategoryList is the envelope for category listings.
type CategoryList struct {
	Categories []Category `json:"categories"`
	Links      Links      `json:"links,omitempty"`
}

// Image describes one image attached to an item.
type Image struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Links Links  `json:"links,omitempty"`
}

// ImageList is the envelope for item image listings.
type ImageList struct {
	Images []Image `json:"images"`
	Links  Links   `json:"links,omitempty"`
}

// Item is a Huuto.net listing. Only the commonly used attributes are typed;
// endpoint-specific extras stay in the raw payload.
type Item struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Seller        string   `json:"seller"`
	SellerID      int64    `json:"sellerId"`
	CurrentPrice  float64  `json:"currentPrice"`
	BuyNowPrice   float64  `json:"buyNowPrice"`
	StartingPrice float64  `json:"startingPrice"`
	SaleMethod    string   `json:"saleMethod"`
	Condition     string   `json:"condition"`
	Status        string   `json:"status"`
	Quantity      int      `json:"quantity"`
	BidderCount   int      `json:"bidderCount"`
	OfferCount    int      `json:"offerCount"`
	ListTime      string   `json:"listTime"`
	ClosingTime   string   `json:"closingTime"`
	PostalCode    string   `json:"postalCode"`
	Location      string   `json:"location"`
	Images        []Image  `json:"images,omitempty"`
	Links         Links    `json:"links,omitempty"`
}

// ItemList is the envelope for item listings and search results.
type ItemList struct {
	Items       []Item `json:"items"`
	TotalCount  int    `json:"totalCount"`
	CurrentPage int    `json:"currentPage"`
	Links       Links  `json:"links,omitempty"`
}

// Bid is one bid placed on an item.
type Bid struct {
	Bidder   string  `json:"bidder"`
	BidderID int64   `json:"bidderId"`
	Amount   float64 `json:"amount"`
	Time     string  `json:"time"`
	Links    Links   `json:"links,omitempty"`
}

// BidList is the envelope for item bid listings.
type BidList struct {
	Bids  []Bid `json:"bids"`
	Links Links `json:"links,omitempty"`
}

// Offer is one price offer (hintaehdotus) made on an item.
type Offer struct {
	ID      int64   `json:"id"`
	User    string  `json:"user"`
	Amount  float64 `json:"offer"`
	Message string  `json:"message"`
	Status  string  `json:"status"`
	Links   Links   `json:"links,omitempty"`
}

// OfferList is the envelope for item offer listings.
type OfferList struct {
	Offers []Offer `json:"offers"`
	Links  Links   `json:"links,omitempty"`
}

// Question is one buyer question with the seller's answer, if any.
type Question struct {
	ID       int64  `json:"id"`
	User     string `json:"user"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Time     string `json:"time"`
	Links    Links  `json:"links,omitempty"`
}

// QuestionList is the envelope for item question listings.
type QuestionList struct {
	Questions []Question `json:"questions"`
	Links     Links      `json:"links,omitempty"`
}

// User is a Huuto.net account. LastLogin and Address are only visible to the
// account itself (and, for Address, to trade counterparts).
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	Location       string `json:"location"`
	FeedbackPoints int    `json:"feedbackPoints"`
	Registered     string `json:"registered"`
	LastLogin      string `json:"lastLogin"`
	IsCompany      bool   `json:"isCompany"`
	Links          Links  `json:"links,omitempty"`
}
