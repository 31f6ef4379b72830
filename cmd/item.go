package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// itemCmd groups the item subcommands
var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Inspect and manage individual items",
}

var itemGetCmd = &cobra.Command{
	Use:   "get <item-id>",
	Short: "Show an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		item, err := client.Item(context.Background(), itemID)
		if err != nil {
			return err
		}
		printItem(*item)
		if item.Description != "" {
			fmt.Printf("  %s\n", item.Description)
		}
		return nil
	},
}

var itemBidsCmd = &cobra.Command{
	Use:   "bids <item-id>",
	Short: "List the bids placed on an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		bids, err := client.ItemBids(context.Background(), itemID)
		if err != nil {
			return err
		}
		if len(bids.Bids) == 0 {
			fmt.Println("No bids.")
			return nil
		}
		for _, bid := range bids.Bids {
			fmt.Printf("• %.2f € by %s at %s\n", bid.Amount, bid.Bidder, bid.Time)
		}
		return nil
	},
}

var itemPublishCmd = &cobra.Command{
	Use:   "publish <item-id>",
	Short: "Publish a previewed item for sale",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatusChange("published"),
}

var itemPreviewCmd = &cobra.Command{
	Use:   "preview <item-id>",
	Short: "Move a draft item to preview",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatusChange("preview"),
}

var itemCloseCmd = &cobra.Command{
	Use:   "close <item-id>",
	Short: "Close an open item",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatusChange("closed"),
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Delete a draft item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		if err := client.DeleteItem(context.Background(), itemID); err != nil {
			return err
		}
		logger.Info().Int64("item_id", itemID).Msg("Item deleted")
		return nil
	},
}

func init() {
	itemCmd.AddCommand(itemGetCmd)
	itemCmd.AddCommand(itemBidsCmd)
	itemCmd.AddCommand(itemPreviewCmd)
	itemCmd.AddCommand(itemPublishCmd)
	itemCmd.AddCommand(itemCloseCmd)
	itemCmd.AddCommand(itemDeleteCmd)
	rootCmd.AddCommand(itemCmd)
}

func parseItemID(arg string) (int64, error) {
	itemID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}
	return itemID, nil
}

// runStatusChange builds a RunE that moves an item to the given status.
func runStatusChange(status string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		itemID, err := parseItemID(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		switch status {
		case "preview":
			_, err = client.PreviewItem(ctx, itemID)
		case "published":
			_, err = client.PublishItem(ctx, itemID)
		case "closed":
			_, err = client.CloseItem(ctx, itemID)
		}
		if err != nil {
			return err
		}
		logger.Info().Int64("item_id", itemID).Str("status", status).Msg("Item status changed")
		return nil
	}
}
