package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/census/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show ingestion history and store counts",
		Long: `Display the state of the census store:
- Counts of organizations, active individuals, and reference data
- The ledger of ingested file pairs, most recent first`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := wire.QueryService().Status(context.Background())
			if err != nil {
				return fmt.Errorf("failed to load status: %w", err)
			}

			if len(report.Snapshots) == 0 {
				fmt.Println("Census Status - Empty")
				fmt.Println()
				fmt.Println("No file pairs have been ingested yet.")
				fmt.Println("Run `census ingest` to load the configured dataset.")
				return nil
			}

			fmt.Println("Census Status")
			fmt.Println()
			fmt.Printf("Organizations:      %d\n", report.Organizations)
			fmt.Printf("Active individuals: %d\n", report.ActiveIndividuals)
			fmt.Printf("Eye colors:         %d\n", report.EyeColors)
			fmt.Printf("Genders:            %d\n", report.Genders)
			fmt.Printf("Tags:               %d\n", report.Tags)
			fmt.Printf("Foods:              %d\n", report.Foods)
			fmt.Println()

			fmt.Printf("Ingested snapshots (%d):\n", len(report.Snapshots))
			for _, snapshot := range report.Snapshots {
				fmt.Printf("  %s  %s / %s\n",
					snapshot.IngestedAt, snapshot.OrganizationsHash, snapshot.PopulationHash)
			}
			return nil
		},
	}
}
