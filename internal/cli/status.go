package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show subscription and usage summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			status, err := apiClient.Billing().Status(ctx)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(status)
			}

			fmt.Println("Paddock Subscription")
			fmt.Println(strings.Repeat("=", 40))
			fmt.Printf("  Plan:           %s\n", status.Plan)
			fmt.Printf("  Status:         %s\n", formatStatus(status.Status))
			if status.IsActive {
				fmt.Printf("  Days remaining: %d\n", status.DaysRemaining)
			} else {
				fmt.Println("  Subscription inactive: saving sessions is disabled")
			}
			if status.UsageLimit != nil {
				fmt.Printf("  Usage:          %d / %d sessions (%.0f%%)\n",
					status.UsageCount, *status.UsageLimit, status.UsagePercentage)
				if status.HasReachedUsageLimit {
					fmt.Println("  Usage limit reached: upgrade to keep saving")
				}
			} else {
				fmt.Printf("  Usage:          %d sessions (unlimited)\n", status.UsageCount)
			}
			return nil
		},
	}
}
