package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/WillCS/uqplanner/internal/engine"
	"github.com/WillCS/uqplanner/internal/state"
)

var (
	planYear        int
	planSemester    int
	planKeepCurrent bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage timetable plans",
	Long: `Create, inspect and edit timetable plans.

Commands act on the current plan unless --plan names another one, by id,
id prefix or name.`,
}

var planNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a plan and make it current",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.NewPlanRequest{
			Year:        planYear,
			Semester:    planSemester,
			KeepCurrent: planKeepCurrent,
		}
		if len(args) == 1 {
			req.Name = args[0]
		}

		result, err := eng.NewPlan(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Created plan %q (%s)", result.Plan.Name, result.Plan.ID))
		return nil
	},
}

var planLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all plans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.ListPlans(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Plans")
		if len(result.Plans) == 0 {
			PrintEmptyState("No plans found. Create one with 'uqplanner plan new'")
			return nil
		}

		rows := make([][]string, 0, len(result.Plans))
		for _, p := range result.Plans {
			marker := ""
			if p.Current {
				marker = "*"
			}
			rows = append(rows, []string{
				marker,
				p.Name,
				formatTerm(p.Year, p.Semester),
				PrintCount(len(p.Listings), "course", "courses"),
				p.ID,
			})
		}
		PrintTable([]string{"", "Name", "Term", "Courses", "ID"}, rows)
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show [plan]",
	Short: "Show a plan's courses and selected streams",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		ref := ""
		if len(args) == 1 {
			ref = args[0]
		}
		result, err := eng.ShowPlan(context.Background(), ref)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		printPlan(result.Plan, result.Current)
		return nil
	},
}

var planUseCmd = &cobra.Command{
	Use:   "use <plan>",
	Short: "Make a plan current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.UsePlan(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Current plan set to %q", result.Plan.Name))
		return nil
	},
}

var planRmCmd = &cobra.Command{
	Use:   "rm <plan>",
	Short: "Delete a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.DeletePlan(context.Background(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Deleted plan %s", result.PlanID))
		if result.WasCurrent {
			PrintWarning("No plan is current now; pick one with 'uqplanner plan use'")
		}
		return nil
	},
}

var planRenameCmd = &cobra.Command{
	Use:   "rename [name]",
	Short: "Rename a plan (no name restores the default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.RenamePlanRequest{PlanID: planRef}
		if len(args) == 1 {
			req.Name = args[0]
		}
		result, err := eng.RenamePlan(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Renamed plan to %q", result.Plan.Name))
		return nil
	},
}

var planSemesterCmd = &cobra.Command{
	Use:   "semester <year> <semester>",
	Short: "Move a plan to another term, clearing its courses",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: invalid year %q", engine.ErrValidation, args[0])
		}
		semester, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: invalid semester %q", engine.ErrValidation, args[1])
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.SetSemester(context.Background(), &engine.SetSemesterRequest{
			PlanID:   planRef,
			Year:     year,
			Semester: semester,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Plan %q now covers %s", result.Plan.Name, formatTerm(year, semester)))
		return nil
	},
}

func printPlan(p state.Plan, current bool) {
	PrintSection(p.Name)
	PrintLabelValue("ID", p.ID)
	PrintLabelValue("Term", formatTerm(p.Year, p.Semester))
	PrintLabelValue("Last edited", p.LastEdited.Local().Format(time.DateTime))
	if current {
		PrintLabelValue("Current", "yes")
	}
	fmt.Fprintln(stdout)

	if len(p.Listings) == 0 {
		PrintEmptyState("No courses yet. Add one with 'uqplanner plan add <course>'")
		return
	}

	var rows [][]string
	for _, l := range p.Listings {
		for _, c := range l.Components {
			stream, ok := p.Selections[l.Name][c.Name]
			if !ok {
				rows = append(rows, []string{l.Name, c.Name, "-", "", ""})
				continue
			}
			scheduled, err := l.Scheduled(c.Name, stream)
			if err != nil {
				rows = append(rows, []string{l.Name, c.Name, "?", err.Error(), ""})
				continue
			}
			for i, s := range scheduled {
				label := fmt.Sprintf("%02d of %d", s.StreamIndex+1, len(c.Streams))
				if i > 0 {
					label = ""
				}
				rows = append(rows, []string{l.Name, c.Name, label, formatTimes(s.Occurrence), s.Occurrence.Location})
			}
		}
	}
	PrintTable([]string{"Course", "Class", "Stream", "Time", "Location"}, rows)
}

func formatTerm(year, semester int) string {
	if semester == 3 {
		return fmt.Sprintf("%d Summer", year)
	}
	return fmt.Sprintf("%d Semester %d", year, semester)
}

func init() {
	planNewCmd.Flags().IntVar(&planYear, "year", 0, "Year (default: UQPLANNER_DEFAULT_YEAR)")
	planNewCmd.Flags().IntVar(&planSemester, "semester", 0, "Semester 1, 2 or 3 for summer (default: UQPLANNER_DEFAULT_SEMESTER)")
	planNewCmd.Flags().BoolVar(&planKeepCurrent, "keep-current", false, "Do not switch to the new plan")

	planRenameCmd.Flags().StringVar(&planRef, "plan", "", "Plan id or name (default: current plan)")
	planSemesterCmd.Flags().StringVar(&planRef, "plan", "", "Plan id or name (default: current plan)")

	planCmd.AddCommand(planNewCmd)
	planCmd.AddCommand(planLsCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planUseCmd)
	planCmd.AddCommand(planRmCmd)
	planCmd.AddCommand(planRenameCmd)
	planCmd.AddCommand(planSemesterCmd)
}
