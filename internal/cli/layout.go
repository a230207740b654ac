package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WillCS/uqplanner/internal/conflict"
	"github.com/WillCS/uqplanner/internal/engine"
	"github.com/WillCS/uqplanner/internal/layout"
)

var (
	layoutPlan  string
	clashesPlan string
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show the week with overlapping classes side by side",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Layout(context.Background(), &engine.LayoutRequest{PlanID: layoutPlan})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Week")
		for _, day := range result.Days {
			PrintSubsection(day.Day.String())
			if len(day.Sessions) == 0 {
				PrintEmptyState("  No classes")
				continue
			}
			PrintList(placedLines(day.Sessions), 2)
		}
		return nil
	},
}

var clashesCmd = &cobra.Command{
	Use:   "clashes",
	Short: "List selected classes that meet at the same time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Clashes(context.Background(), &engine.ClashesRequest{PlanID: clashesPlan})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Clashes")
		if len(result.Clashes) == 0 {
			PrintSuccess("No clashes")
			return nil
		}
		PrintList(clashLines(result.Clashes), 1)
		return nil
	},
}

func placedLines(placed []layout.Placed) []string {
	lines := make([]string, 0, len(placed))
	for _, p := range placed {
		line := fmt.Sprintf("%s  %s", p.Session, formatTimes(p.Session.Occurrence))
		if p.Placement.Clustered {
			line += fmt.Sprintf("  [%.0f%% from left, %.0f%% wide]", p.Placement.LeftPercent, p.Placement.WidthPercent)
		}
		lines = append(lines, line)
	}
	return lines
}

func clashLines(clashes []conflict.Clash) []string {
	lines := make([]string, 0, len(clashes))
	for _, c := range clashes {
		lines = append(lines, fmt.Sprintf("%s (%s) with %s (%s)",
			c.A, formatTimes(c.A.Occurrence), c.B, formatTimes(c.B.Occurrence)))
	}
	return lines
}

func init() {
	layoutCmd.Flags().StringVar(&layoutPlan, "plan", "", "Plan id or name (default: current plan)")
	clashesCmd.Flags().StringVar(&clashesPlan, "plan", "", "Plan id or name (default: current plan)")
}
