package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WillCS/uqplanner/internal/config"
	"github.com/WillCS/uqplanner/internal/ingest"
	"github.com/WillCS/uqplanner/internal/logging"
)

var termsLive bool

// termsResult is the --json shape of the terms command.
type termsResult struct {
	Semesters     []ingest.SemesterOption `json:"semesters"`
	Campuses      []ingest.Campus         `json:"campuses"`
	DeliveryModes []ingest.DeliveryMode   `json:"deliveryModes"`
	Active        []ingest.Semester       `json:"active,omitempty"`
}

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "List the terms, campuses and delivery modes plans can use",
	Long: `List the terms, campuses and delivery modes plans can use.

With --live the feed is also asked which semesters it currently serves.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result := termsResult{
			Semesters:     ingest.SemesterOptions,
			Campuses:      ingest.Campuses,
			DeliveryModes: ingest.DeliveryModes,
		}

		if termsLive {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			logger := logging.Stderr(settings.LogLevel, verbose)
			client := ingest.NewClient(settings.FeedURL, settings.FeedTimeout, logger)
			active, err := client.ActiveSemesters(context.Background())
			if err != nil {
				return err
			}
			result.Active = active
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Terms")
		rows := make([][]string, 0, len(result.Semesters))
		for _, s := range result.Semesters {
			rows = append(rows, []string{s.Name, strconv.Itoa(s.Year), strconv.Itoa(s.Number), strings.Join(s.DeliveryModes, ", ")})
		}
		PrintTable([]string{"Name", "Year", "Semester", "Modes"}, rows)

		PrintSection("Campuses")
		for _, c := range result.Campuses {
			PrintLabelValue(c.Code, c.Name)
		}

		PrintSection("Delivery modes")
		for _, m := range result.DeliveryModes {
			PrintLabelValue(m.ID, m.Name)
		}

		if termsLive {
			PrintSection("Served by the feed")
			if len(result.Active) == 0 {
				PrintEmptyState("No semesters reported")
				return nil
			}
			for _, s := range result.Active {
				status := "inactive"
				if s.Active {
					status = "active"
				}
				PrintLabelValue(formatTerm(s.Year, s.Semester), status)
			}
		}
		return nil
	},
}

func init() {
	termsCmd.Flags().BoolVar(&termsLive, "live", false, "Also query the feed for the semesters it serves")
}
