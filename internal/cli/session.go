package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/paddock/pkg/client"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Track session commands",
	}

	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionSaveCmd())
	cmd.AddCommand(newSessionShowCmd())

	return cmd
}

func newSessionListCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Sessions().List(context.Background(), &client.ListOptions{
				Page:     page,
				PageSize: pageSize,
			})
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			if len(result.Data) == 0 {
				fmt.Println("No sessions")
				return nil
			}

			t := NewTable("ID", "DATE", "TRACK", "EVENT", "TYPE", "BEST LAP")
			for _, s := range result.Data {
				best := ""
				if s.LapTimeBest != nil {
					best = *s.LapTimeBest
				}
				t.AddRow(
					strconv.FormatInt(s.ID, 10),
					s.SessionDate.Format("2006-01-02"),
					truncate(s.Track, 24),
					truncate(s.EventName, 24),
					s.SessionType,
					best,
				)
			}
			t.Render()

			fmt.Printf("\nPage %d of %d (%d sessions)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "items per page")

	return cmd
}

func newSessionSaveCmd() *cobra.Command {
	var (
		motorcycleID                 int64
		event, track, sessionType    string
		date, bestLap, notes         string
		tirePressureF, tirePressureR float64
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Record a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionDate := time.Now()
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
				}
				sessionDate = parsed
			}

			req := client.SaveSessionRequest{
				MotorcycleID: motorcycleID,
				EventName:    event,
				Track:        track,
				SessionType:  sessionType,
				SessionDate:  sessionDate,
				Notes:        notes,
			}
			if bestLap != "" {
				req.LapTimeBest = &bestLap
			}
			if tirePressureF > 0 {
				req.Setup.TirePressureF = &tirePressureF
			}
			if tirePressureR > 0 {
				req.Setup.TirePressureR = &tirePressureR
			}

			sess, err := apiClient.Sessions().Save(context.Background(), req)
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && apiErr.IsEntitlementError() {
					return fmt.Errorf("%s. Run 'paddock billing plans' to upgrade", apiErr.Message)
				}
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(sess)
			}

			fmt.Printf("Session saved (ID %d)\n", sess.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&motorcycleID, "motorcycle", 0, "motorcycle ID")
	cmd.Flags().StringVar(&event, "event", "", "event name")
	cmd.Flags().StringVar(&track, "track", "", "track name")
	cmd.Flags().StringVar(&sessionType, "type", "trackday", "session type: practice, qualifying, race, trackday, test")
	cmd.Flags().StringVar(&date, "date", "", "session date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&bestLap, "best-lap", "", "best lap time")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	cmd.Flags().Float64Var(&tirePressureF, "tire-front", 0, "front tire pressure")
	cmd.Flags().Float64Var(&tirePressureR, "tire-rear", 0, "rear tire pressure")

	_ = cmd.MarkFlagRequired("motorcycle")
	_ = cmd.MarkFlagRequired("track")

	return cmd
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session with its setup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session ID: %s", args[0])
			}

			sess, err := apiClient.Sessions().Get(context.Background(), id)
			if err != nil {
				return err
			}

			return printOutput(sess)
		},
	}
}
