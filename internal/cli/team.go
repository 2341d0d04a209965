package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/paddock/pkg/client"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team management commands",
	}

	cmd.AddCommand(newTeamListCmd())
	cmd.AddCommand(newTeamCreateCmd())
	cmd.AddCommand(newTeamMembersCmd())
	cmd.AddCommand(newTeamInviteCmd())
	cmd.AddCommand(newTeamInvitationsCmd())
	cmd.AddCommand(newTeamAcceptCmd())
	cmd.AddCommand(newTeamRemoveCmd())

	return cmd
}

func newTeamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams you belong to",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := apiClient.Teams().List(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(teams)
			}

			if len(teams) == 0 {
				fmt.Println("No teams")
				return nil
			}

			t := NewTable("ID", "NAME", "OWNER", "STATUS")
			for _, team := range teams {
				status := "inactive"
				if team.IsActive {
					status = "active"
				}
				t.AddRow(
					strconv.FormatInt(team.ID, 10),
					truncate(team.Name, 30),
					strconv.FormatInt(team.OwnerID, 10),
					formatStatus(status),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newTeamCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a team (requires the premier plan)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := apiClient.Teams().Create(context.Background(), client.CreateTeamRequest{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(team)
			}

			fmt.Printf("Team %q created (ID %d)\n", team.Name, team.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "team description")

	return cmd
}

func newTeamMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <team-id>",
		Short: "List the members of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid team ID: %s", args[0])
			}

			members, err := apiClient.Teams().Members(context.Background(), teamID)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(members)
			}

			t := NewTable("USER", "EMAIL", "ROLE", "STATUS")
			for _, m := range members {
				t.AddRow(
					strconv.FormatInt(m.UserID, 10),
					truncate(m.UserEmail, 40),
					m.Role,
					formatStatus(m.Status),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newTeamInviteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invite <team-id> <email>",
		Short: "Invite a user to a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid team ID: %s", args[0])
			}

			invitation, err := apiClient.Teams().Invite(context.Background(), teamID, args[1])
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(invitation)
			}

			fmt.Printf("Invitation sent to %s (expires %s)\n",
				invitation.Email, invitation.ExpiresAt.Format("2006-01-02"))
			return nil
		},
	}
}

func newTeamInvitationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invitations <team-id>",
		Short: "List pending invitations of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid team ID: %s", args[0])
			}

			invitations, err := apiClient.Teams().Invitations(context.Background(), teamID)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(invitations)
			}

			if len(invitations) == 0 {
				fmt.Println("No pending invitations")
				return nil
			}

			t := NewTable("ID", "EMAIL", "STATUS", "EXPIRES")
			for _, inv := range invitations {
				t.AddRow(
					strconv.FormatInt(inv.ID, 10),
					truncate(inv.Email, 40),
					formatStatus(inv.Status),
					inv.ExpiresAt.Format("2006-01-02"),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newTeamAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <token>",
		Short: "Accept a team invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			membership, err := apiClient.Teams().AcceptInvitation(context.Background(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(membership)
			}

			fmt.Printf("Joined team %d as %s\n", membership.TeamID, membership.Role)
			return nil
		},
	}
}

func newTeamRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <team-id> <user-id>",
		Short: "Remove a member from a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid team ID: %s", args[0])
			}
			userID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID: %s", args[1])
			}

			if err := apiClient.Teams().RemoveMember(context.Background(), teamID, userID); err != nil {
				return err
			}

			fmt.Println("Member removed")
			return nil
		},
	}
}
