package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/WillCS/uqplanner/internal/engine"
)

var (
	// planRef is shared by every plan subcommand that edits one plan
	planRef string

	addCampus     string
	addMode       string
	refreshDryRun bool
)

var planAddCmd = &cobra.Command{
	Use:   "add <course>...",
	Short: "Fetch courses and add them to a plan",
	Long: `Fetch each course's classes for the plan's term and add it to the plan,
selecting the first stream of every class.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		ctx := context.Background()
		results := make([]*engine.ListingResult, 0, len(args))
		for _, code := range args {
			result, err := eng.AddListing(ctx, &engine.AddListingRequest{
				PlanID:     planRef,
				CourseCode: code,
				Campus:     addCampus,
				Mode:       addMode,
			})
			if err != nil {
				return err
			}
			results = append(results, result)
		}

		if jsonOutput {
			return outputJSON(results)
		}
		for _, r := range results {
			if !r.Added {
				PrintWarning(fmt.Sprintf("%s is already in the plan", r.Listing.Name))
				continue
			}
			PrintSuccess(fmt.Sprintf("Added %s (%s)", r.Listing.Name,
				PrintCount(len(r.Listing.Components), "class", "classes")))
		}
		return nil
	},
}

var planRemoveCmd = &cobra.Command{
	Use:   "remove <course>",
	Short: "Remove a course from a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.RemoveListing(context.Background(), &engine.RemoveListingRequest{
			PlanID:  planRef,
			Listing: args[0],
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Removed %s from %q", args[0], result.Plan.Name))
		return nil
	},
}

var planSelectCmd = &cobra.Command{
	Use:   "select <course> <class> <stream>",
	Short: "Choose a stream for one class",
	Long: `Choose a stream for one class of a course. Streams are numbered from 1,
so "select CSSE1001 TUT1 3" picks TUT103.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		stream, err := parseStream(args[2])
		if err != nil {
			return err
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Select(context.Background(), &engine.SelectRequest{
			PlanID:    planRef,
			Listing:   args[0],
			Component: args[1],
			Stream:    stream,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Selected %s %s%02d", args[0], args[1], stream+1))
		return nil
	},
}

var planRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch a plan's courses again and update changed ones",
	Long: `Fetch every course in the plan again. Courses whose classes changed are
replaced and their selections reset to the first stream.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.RefreshPlan(context.Background(), &engine.RefreshPlanRequest{
			PlanID: planRef,
			DryRun: refreshDryRun,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection("Refresh")
		for _, name := range slices.Sorted(maps.Keys(result.Failed)) {
			PrintWarning(fmt.Sprintf("%s: %s", name, result.Failed[name]))
		}
		if len(result.Changed) == 0 {
			PrintSuccess("All courses are up to date")
			return nil
		}
		verb := "Updated"
		if result.DryRun {
			verb = "Would update"
		}
		PrintSuccess(fmt.Sprintf("%s %s", verb, PrintCount(len(result.Changed), "course", "courses")))
		PrintList(result.Changed, 1)
		return nil
	},
}

func init() {
	planAddCmd.Flags().StringVar(&planRef, "plan", "", "Plan id or name (default: current plan)")
	planAddCmd.Flags().StringVar(&addCampus, "campus", "", "Campus code (default: UQPLANNER_DEFAULT_CAMPUS)")
	planAddCmd.Flags().StringVar(&addMode, "mode", "", "Delivery mode IN, EX or FD (default: UQPLANNER_DEFAULT_MODE)")

	planRemoveCmd.Flags().StringVar(&planRef, "plan", "", "Plan id or name (default: current plan)")
	planSelectCmd.Flags().StringVar(&planRef, "plan", "", "Plan id or name (default: current plan)")

	planRefreshCmd.Flags().StringVar(&planRef, "plan", "", "Plan id or name (default: current plan)")
	planRefreshCmd.Flags().BoolVar(&refreshDryRun, "dry-run", false, "Report changes without saving them")

	planCmd.AddCommand(planAddCmd)
	planCmd.AddCommand(planRemoveCmd)
	planCmd.AddCommand(planSelectCmd)
	planCmd.AddCommand(planRefreshCmd)
}
