package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WillCS/uqplanner/internal/engine"
)

var (
	exportPlan   string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the plan's classes to an iCalendar file",
	Long: `Write every week of every selected class to an iCalendar (.ics) file.

The file is named after the plan unless -o is given; "-o -" writes to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.ExportPlan(context.Background(), &engine.ExportPlanRequest{PlanID: exportPlan})
		if err != nil {
			return err
		}

		if exportOutput == "-" {
			_, err := stdout.Write(result.Data)
			return err
		}

		path := exportOutput
		if path == "" {
			path = result.FileName
		}
		if err := os.WriteFile(path, result.Data, 0644); err != nil {
			return fmt.Errorf("failed to write calendar: %w", err)
		}

		if jsonOutput {
			return outputJSON(map[string]any{
				"planId": result.PlanID,
				"path":   path,
				"events": result.Events,
			})
		}
		PrintSuccess(fmt.Sprintf("Wrote %s to %s", PrintCount(result.Events, "event", "events"), path))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPlan, "plan", "", "Plan id or name (default: current plan)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: <plan name>.ics)")
}
