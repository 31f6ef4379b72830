package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vheikkila/huutogo/filter"
	"github.com/vheikkila/huutogo/huuto"
)

var (
	searchCategory []int64
	searchPriceMin float64
	searchPriceMax float64
	searchStatus   string
	searchSort     string
	searchArea     string
	searchLimit    int
	searchPage     int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [words...]",
	Short: "Search items on the marketplace",
	Long: `Search open and closed items. API-side filters are passed as flags;
--filter and --preset apply an expression filter to the results client-side,
e.g. 'CurrentPrice < 20 && closesWithin(6)'.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int64SliceVar(&searchCategory, "category", nil, "restrict to category ids")
	searchCmd.Flags().Float64Var(&searchPriceMin, "price-min", 0, "minimum price in euros")
	searchCmd.Flags().Float64Var(&searchPriceMax, "price-max", 0, "maximum price in euros")
	searchCmd.Flags().StringVar(&searchStatus, "status", "", "item status (open, closed)")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "sort order (hits, newest, closing, lowprice, highprice, bidders, title)")
	searchCmd.Flags().StringVar(&searchArea, "area", "", "city, municipality or zipcode")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "results per page (50 or 500)")
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "result page")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the results")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	params := huuto.SearchParams{Category: searchCategory}
	if len(args) > 0 {
		params.Words = huuto.String(strings.Join(args, " "))
	}
	if cmd.Flags().Changed("price-min") {
		params.PriceMin = huuto.Float(searchPriceMin)
	}
	if cmd.Flags().Changed("price-max") {
		params.PriceMax = huuto.Float(searchPriceMax)
	}
	if searchStatus != "" {
		params.Status = huuto.String(searchStatus)
	}
	if searchSort != "" {
		params.Sort = huuto.String(searchSort)
	}
	if searchArea != "" {
		params.Area = huuto.String(searchArea)
	}
	if cmd.Flags().Changed("limit") {
		params.Limit = huuto.Int(searchLimit)
	} else if cfg.Search.DefaultLimit > 0 {
		params.Limit = huuto.Int(cfg.Search.DefaultLimit)
	}
	if cmd.Flags().Changed("page") {
		params.Page = huuto.Int(searchPage)
	}

	logger.Info().Strs("words", args).Msg("Searching items")

	ctx := context.Background()
	result, err := client.SearchItems(ctx, params)
	if err != nil {
		return err
	}
	items := result.Items

	// Apply the client-side expression filter, if any
	expression, ok, err := getFilterExpression()
	if err != nil {
		return err
	}
	if ok {
		f, err := filter.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		items = f.Apply(items)
	}

	if len(items) == 0 {
		fmt.Println("No items found.")
		return nil
	}

	fmt.Printf("\nFound %d items:\n", len(items))
	fmt.Println(strings.Repeat("-", 80))
	for _, item := range items {
		printItem(item)
	}

	return nil
}

func printItem(item huuto.Item) {
	fmt.Printf("• %s (#%d)\n", item.Title, item.ID)
	fmt.Printf("  %.2f € | %s | %s", item.CurrentPrice, item.SaleMethod, item.Status)
	if item.BidderCount > 0 {
		fmt.Printf(" | %d bidders", item.BidderCount)
	}
	fmt.Println()
	if item.ClosingTime != "" {
		fmt.Printf("  Closes: %s\n", item.ClosingTime)
	}
	if item.Location != "" {
		fmt.Printf("  Location: %s\n", item.Location)
	}
}
