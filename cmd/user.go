package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vheikkila/huutogo/huuto"
)

var (
	salesStatus     string
	purchasesStatus string
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated account",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := client.User(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%s (#%d)\n", user.Username, user.ID)
		if user.Location != "" {
			fmt.Printf("- Location: %s\n", user.Location)
		}
		fmt.Printf("- Feedback points: %d\n", user.FeedbackPoints)
		if user.Registered != "" {
			fmt.Printf("- Registered: %s\n", user.Registered)
		}
		return nil
	},
}

// salesCmd represents the sales command
var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "List your own items",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := huuto.SalesParams{}
		if salesStatus != "" {
			params.Status = huuto.String(salesStatus)
		}
		result, err := client.Sales(context.Background(), params)
		if err != nil {
			return err
		}
		printItemList(result)
		return nil
	},
}

// purchasesCmd represents the purchases command
var purchasesCmd = &cobra.Command{
	Use:   "purchases",
	Short: "List items you have bid on or bought",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.Purchases(context.Background(), purchasesStatus, nil)
		if err != nil {
			return err
		}
		printItemList(result)
		return nil
	},
}

// favoritesCmd represents the favorites command
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List your favorite items",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.UserFavorites(context.Background())
		if err != nil {
			return err
		}
		printItemList(result)
		return nil
	},
}

func init() {
	salesCmd.Flags().StringVar(&salesStatus, "status", "", "item status (all, open, closed, waiting, draft)")
	purchasesCmd.Flags().StringVar(&purchasesStatus, "status", "all", "purchase status (open, closed, processing, all)")

	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(salesCmd)
	rootCmd.AddCommand(purchasesCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func printItemList(list *huuto.ItemList) {
	if len(list.Items) == 0 {
		fmt.Println("No items.")
		return
	}
	for _, item := range list.Items {
		printItem(item)
	}
	if list.TotalCount > len(list.Items) {
		fmt.Printf("(%d of %d items)\n", len(list.Items), list.TotalCount)
	}
}
