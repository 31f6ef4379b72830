package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vheikkila/huutogo/huuto"
)

var (
	bidAutomate    bool
	bidQuantityMin int
	bidQuantityMax int
)

// bidCmd represents the bid command
var bidCmd = &cobra.Command{
	Use:   "bid <item-id> <amount>",
	Short: "Place a bid on an item",
	Long: `Place a bid on an open auction. With --automate the amount is the
maximum you are willing to pay and the marketplace bids on your behalf.`,
	Args: cobra.ExactArgs(2),
	RunE: runBid,
}

func init() {
	bidCmd.Flags().BoolVar(&bidAutomate, "automate", false, "let the marketplace bid up to the amount automatically")
	bidCmd.Flags().IntVar(&bidQuantityMin, "quantity-min", 0, "minimum quantity for multi-unit buy-now items")
	bidCmd.Flags().IntVar(&bidQuantityMax, "quantity-max", 0, "maximum quantity for multi-unit buy-now items")

	rootCmd.AddCommand(bidCmd)
}

func runBid(cmd *cobra.Command, args []string) error {
	itemID, err := parseItemID(args[0])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}

	params := huuto.BidParams{Amount: amount}
	if cmd.Flags().Changed("automate") {
		params.Automate = huuto.Bool(bidAutomate)
	}
	if cmd.Flags().Changed("quantity-min") {
		params.QuantityMin = huuto.Int(bidQuantityMin)
	}
	if cmd.Flags().Changed("quantity-max") {
		params.QuantityMax = huuto.Int(bidQuantityMax)
	}

	if _, err := client.PlaceBid(context.Background(), itemID, params); err != nil {
		return err
	}

	logger.Info().Int64("item_id", itemID).Float64("amount", amount).Msg("Bid placed")
	return nil
}
