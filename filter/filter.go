// Package filter compiles expression-language filters and evaluates them
// against search results, so callers can narrow listings client-side beyond
// what the API's own query parameters support.
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/vheikkila/huutogo/huuto"
)

// Filter is a compiled item filter, safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable filter. The expression
// must evaluate to a boolean, e.g. `CurrentPrice < 20 && contains(Title, "lp")`.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // Allow item properties
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one item. Items whose evaluation errors
// out are treated as non-matching.
func (f *Filter) Match(item huuto.Item) bool {
	result, err := expr.Run(f.program, runtimeEnvironment(item))
	if err != nil {
		return false
	}
	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Apply returns the items matching the filter, preserving input order.
func (f *Filter) Apply(items []huuto.Item) []huuto.Item {
	matches := make([]huuto.Item, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			matches = append(matches, item)
		}
	}
	return matches
}

// helperFunctions creates the static helper functions used during compilation
func helperFunctions() map[string]any {
	env := make(map[string]any, 16)
	addHelperFunctions(env)
	return env
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Date helpers
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	env["now"] = time.Now
}

// runtimeEnvironment creates the runtime environment for filter evaluation
func runtimeEnvironment(item huuto.Item) map[string]any {
	env := make(map[string]any, 32)

	addHelperFunctions(env)

	env["Item"] = item

	// Item-specific helpers using closures
	env["closesWithin"] = closesWithinFunc(item.ClosingTime)
	env["hasImages"] = func() bool { return len(item.Images) > 0 }

	// Direct item properties for convenience
	env["ID"] = item.ID
	env["Title"] = item.Title
	env["Category"] = item.Category
	env["Description"] = item.Description
	env["Seller"] = item.Seller
	env["SellerID"] = item.SellerID
	env["CurrentPrice"] = item.CurrentPrice
	env["BuyNowPrice"] = item.BuyNowPrice
	env["StartingPrice"] = item.StartingPrice
	env["SaleMethod"] = item.SaleMethod
	env["Condition"] = item.Condition
	env["Status"] = item.Status
	env["Quantity"] = item.Quantity
	env["BidderCount"] = item.BidderCount
	env["OfferCount"] = item.OfferCount
	env["ListTime"] = item.ListTime
	env["ClosingTime"] = item.ClosingTime
	env["PostalCode"] = item.PostalCode
	env["Location"] = item.Location

	return env
}

// closesWithinFunc matches items whose auction closes within the given number
// of hours. Items without a parseable closing time never match.
func closesWithinFunc(closingTime string) func(int) bool {
	return func(hours int) bool {
		t, err := huuto.ParseTime(closingTime)
		if err != nil {
			return false
		}
		until := time.Until(t)
		return until > 0 && until <= time.Duration(hours)*time.Hour
	}
}
