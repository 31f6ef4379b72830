package huuto

import (
	"context"
	"net/http"
	"strconv"
)

func categoryPath(categoryID int64) map[string]string {
	return map[string]string{"categoryID": strconv.FormatInt(categoryID, 10)}
}

// Categories retrieves the category tree. Huuto has a three-level category
// system; maxDepth (1-3) controls how many levels one call returns.
func (c *Client) Categories(ctx context.Context, maxDepth int) (*CategoryList, error) {
	spec := CallSpec{
		Method: http.MethodGet,
		Path:   "/categories",
		Query:  Params{"max-depth": maxDepth},
	}
	var out CategoryList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Category retrieves a single category.
func (c *Client) Category(ctx context.Context, categoryID int64) (*Category, error) {
	spec := CallSpec{
		Method:     http.MethodGet,
		Path:       "/categories/{categoryID}",
		PathParams: categoryPath(categoryID),
	}
	var out Category
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Subcategories retrieves the direct subcategories of a category.
func (c *Client) Subcategories(ctx context.Context, categoryID int64) (*CategoryList, error) {
	spec := CallSpec{
		Method:     http.MethodGet,
		Path:       "/categories/{categoryID}/subcategories",
		PathParams: categoryPath(categoryID),
	}
	var out CategoryList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CategoryItems retrieves one page of a category's open items.
func (c *Client) CategoryItems(ctx context.Context, categoryID int64, page int) (*ItemList, error) {
	spec := CallSpec{
		Method:     http.MethodGet,
		Path:       "/categories/{categoryID}/items",
		PathParams: categoryPath(categoryID),
		Query:      Params{"page": page},
	}
	var out ItemList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
