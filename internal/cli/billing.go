package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newBillingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Subscription and billing commands",
	}

	cmd.AddCommand(newBillingPlansCmd())
	cmd.AddCommand(newBillingCheckoutCmd())
	cmd.AddCommand(newBillingCancelCmd())

	return cmd
}

func newBillingPlansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List available subscription plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Billing().Plans(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			t := NewTable("ID", "NAME", "PRICE", "SESSIONS", "FEATURES")
			for _, p := range plans {
				price := fmt.Sprintf("%.2f %s/%s", float64(p.PriceCents)/100, strings.ToUpper(p.Currency), p.Interval)
				limit := "unlimited"
				if p.UsageLimit != nil {
					limit = strconv.Itoa(*p.UsageLimit)
				}
				t.AddRow(p.ID, p.Name, price, limit, truncate(strings.Join(p.Features, ", "), 50))
			}
			t.Render()
			return nil
		},
	}
}

func newBillingCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <plan-id>",
		Short: "Start a checkout for a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkout, err := apiClient.Billing().Checkout(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Println("Open this URL in your browser to complete the purchase:")
			fmt.Println(checkout.URL)
			return nil
		},
	}
}

func newBillingCancelCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel your subscription at period end",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer := promptInput("Cancel your subscription at the end of the current period? [y/N]: ")
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Println("Aborted")
					return nil
				}
			}

			if err := apiClient.Billing().Cancel(context.Background()); err != nil {
				return err
			}

			fmt.Println("Cancellation requested. Access continues until the end of the paid period.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")

	return cmd
}
