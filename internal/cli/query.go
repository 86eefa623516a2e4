package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/census/internal/wire"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the ingested census",
	Long:  "Read-side reports over the active census: rosters, common friends, and favourite foods",
}

var queryRosterCmd = &cobra.Command{
	Use:   "roster [organization]",
	Short: "List the people employed by an organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roster, err := wire.QueryService().OrganizationRoster(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		if len(roster.Members) == 0 {
			fmt.Printf("%s has no registered employees\n", roster.Organization)
			return nil
		}

		fmt.Printf("%s (%d employees):\n", roster.Organization, len(roster.Members))
		for _, name := range roster.Members {
			fmt.Printf("  - %s\n", name)
		}
		return nil
	},
}

var queryCommonFriendsCmd = &cobra.Command{
	Use:   "common-friends [guid] [guid]...",
	Short: "Show the friends two or more people have in common",
	Long:  "List the given people plus the living, brown-eyed friends every one of them shares.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := wire.QueryService().CommonFriends(context.Background(), args)
		if err != nil {
			return fmt.Errorf("failed to load common friends: %w", err)
		}

		for _, individual := range report.Individuals {
			fmt.Printf("%s (age %d)\n", individual.Name, individual.Age)
			fmt.Printf("  Address: %s\n", individual.Address)
			fmt.Printf("  Phone:   %s\n", individual.Phone)
		}
		fmt.Println()

		if len(report.CommonFriends) == 0 {
			fmt.Println("No common friends (alive, brown eyes)")
			return nil
		}
		fmt.Printf("Common friends (alive, brown eyes):\n")
		for _, name := range report.CommonFriends {
			fmt.Printf("  - %s\n", name)
		}
		return nil
	},
}

var queryFoodsCmd = &cobra.Command{
	Use:   "foods [guid]",
	Short: "Show a person's favourite foods grouped by kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := wire.QueryService().FavouriteFoods(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load favourite foods: %w", err)
		}

		fmt.Printf("%s (age %d)\n", report.Name, report.Age)
		if len(report.Foods) == 0 {
			fmt.Println("  No favourite foods recorded")
			return nil
		}
		for _, label := range []string{"fruits", "vegetables", "unclassifieds"} {
			foods, ok := report.Foods[label]
			if !ok {
				continue
			}
			fmt.Printf("  %s: %s\n", label, strings.Join(foods, ", "))
		}
		return nil
	},
}

func init() {
	queryCmd.AddCommand(queryRosterCmd)
	queryCmd.AddCommand(queryCommonFriendsCmd)
	queryCmd.AddCommand(queryFoodsCmd)
}

// QueryCmd returns the query command
func QueryCmd() *cobra.Command {
	return queryCmd
}
