package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/paddock/pkg/client"
)

func newMotorcycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "motorcycle",
		Aliases: []string{"bike"},
		Short:   "Motorcycle management commands",
	}

	cmd.AddCommand(newMotorcycleListCmd())
	cmd.AddCommand(newMotorcycleAddCmd())
	cmd.AddCommand(newMotorcycleRemoveCmd())

	return cmd
}

func newMotorcycleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List motorcycles visible to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			motorcycles, err := apiClient.Motorcycles().List(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(motorcycles)
			}

			if len(motorcycles) == 0 {
				fmt.Println("No motorcycles")
				return nil
			}

			t := NewTable("ID", "MAKE", "MODEL", "YEAR", "NICKNAME", "SHARED")
			for _, m := range motorcycles {
				year := ""
				if m.Year > 0 {
					year = strconv.Itoa(m.Year)
				}
				shared := ""
				if m.TeamID != nil {
					shared = fmt.Sprintf("team %d", *m.TeamID)
				}
				t.AddRow(
					strconv.FormatInt(m.ID, 10),
					m.Make,
					m.Model,
					year,
					truncate(m.Nickname, 20),
					shared,
				)
			}
			t.Render()
			return nil
		},
	}
}

func newMotorcycleAddCmd() *cobra.Command {
	var year int
	var nickname, notes string
	var teamID int64

	cmd := &cobra.Command{
		Use:   "add <make> <model>",
		Short: "Register a motorcycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.SaveMotorcycleRequest{
				Make:     args[0],
				Model:    args[1],
				Year:     year,
				Nickname: nickname,
				Notes:    notes,
			}
			if teamID > 0 {
				req.TeamID = &teamID
			}

			m, err := apiClient.Motorcycles().Create(context.Background(), req)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(m)
			}

			fmt.Printf("Motorcycle %s %s registered (ID %d)\n", m.Make, m.Model, m.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "model year")
	cmd.Flags().StringVar(&nickname, "nickname", "", "nickname")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	cmd.Flags().Int64Var(&teamID, "team", 0, "share with team ID")

	return cmd
}

func newMotorcycleRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a motorcycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid motorcycle ID: %s", args[0])
			}

			if err := apiClient.Motorcycles().Delete(context.Background(), id); err != nil {
				return err
			}

			fmt.Println("Motorcycle deleted")
			return nil
		},
	}
}
