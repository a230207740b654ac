package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WillCS/uqplanner/internal/engine"
	"github.com/WillCS/uqplanner/internal/planner"
)

var (
	optimizePlan         string
	optimizeMinDays      int
	optimizeMaxDays      int
	optimizeLectureClash bool
	optimizeMaxNodes     int
	optimizeApply        bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [listings-file]",
	Short: "Find streams that fit in the fewest days",
	Long: `Search for one stream per class so that nothing overlaps and every class
falls within as few weekdays as possible.

Listings come from the current plan, the plan named by --plan, or a JSON or
YAML listings file. Use --apply to save the result to the plan.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.OptimizeRequest{
			PlanID:              optimizePlan,
			MinDays:             optimizeMinDays,
			MaxDays:             optimizeMaxDays,
			AllowLectureOverlap: optimizeLectureClash,
			MaxNodes:            optimizeMaxNodes,
			Apply:               optimizeApply,
		}
		if len(args) == 1 {
			req.ListingsFile = args[0]
		}

		result, err := eng.Optimize(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		printSchedule(result.Schedule, req.MaxDays)
		if result.Applied {
			PrintSuccess(fmt.Sprintf("Applied to plan %s", result.PlanID))
		}
		return nil
	},
}

func printSchedule(s *planner.Schedule, maxDays int) {
	PrintSection("Timetable")
	if s.Truncated {
		PrintWarning(fmt.Sprintf("Search stopped early after %s", PrintCount(s.NodesVisited, "node", "nodes")))
	}
	if !s.Found {
		if maxDays == 0 {
			maxDays = planner.MaxWeekdays
		}
		PrintEmptyState(fmt.Sprintf("No clash-free timetable within %s", PrintCount(maxDays, "day", "days")))
		return
	}

	PrintLabelValue("Days", formatDays(s.Days))
	PrintLabelValue("Searched", PrintCount(s.NodesVisited, "node", "nodes"))
	fmt.Fprintln(stdout)

	rows := make([][]string, 0, len(s.Choices))
	for _, c := range s.Choices {
		rows = append(rows, []string{
			c.Scheduled().String(),
			formatTimes(c.Occurrence),
			c.Occurrence.Location,
		})
	}
	PrintTable([]string{"Class", "Time", "Location"}, rows)
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizePlan, "plan", "", "Plan id or name (default: current plan)")
	optimizeCmd.Flags().IntVar(&optimizeMinDays, "min-days", 0, "Fewest days to try (default 1)")
	optimizeCmd.Flags().IntVar(&optimizeMaxDays, "max-days", 0, "Most days to allow (default 5)")
	optimizeCmd.Flags().BoolVar(&optimizeLectureClash, "allow-lecture-overlap", false, "Let lectures overlap other classes")
	optimizeCmd.Flags().IntVar(&optimizeMaxNodes, "max-nodes", 0, "Stop after this many search nodes (default: UQPLANNER_SEARCH_MAX_NODES)")
	optimizeCmd.Flags().BoolVar(&optimizeApply, "apply", false, "Save the selections to the plan")
}
