package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/serenby/mindwell/internal/analytics"
	"github.com/serenby/mindwell/internal/scales"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show check-in statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		svc := analytics.NewService(st)
		ctx := context.Background()

		if all {
			return printAdminStats(ctx, svc)
		}
		return printUserStats(ctx, svc)
	},
}

func init() {
	statsCmd.Flags().Bool("all", false, "Aggregate across all users (requires MINDWELL_ADMIN=1)")
}

func printUserStats(ctx context.Context, svc *analytics.Service) error {
	stats, err := svc.UserStats(ctx, defaultUserID)
	if err != nil {
		return fmt.Errorf("user stats: %w", err)
	}

	if stats.TotalDaily == 0 && stats.TotalWeekly == 0 {
		fmt.Println("No check-ins recorded yet.")
		return nil
	}

	fmt.Printf("Daily check-ins:     %d\n", stats.TotalDaily)
	fmt.Printf("Weekly reflections:  %d\n", stats.TotalWeekly)
	fmt.Printf("Current streak:      %d day(s)\n", stats.Streak)
	if stats.AvgAnxiety > 0 {
		fmt.Printf("Average anxiety:     %.1f/10\n", stats.AvgAnxiety)
	}
	if stats.AvgStress > 0 {
		fmt.Printf("Average stress:      %.1f/10\n", stats.AvgStress)
	}
	if stats.AvgSleep > 0 {
		fmt.Printf("Average sleep:       %.1f h\n", stats.AvgSleep)
	}
	if stats.LastSeverity > 0 {
		fmt.Printf("Last severity:       %d/10 (%s)\n",
			stats.LastSeverity, scales.CategoryFor(stats.LastSeverity))
	}
	if stats.SevenDayAvg > 0 {
		fmt.Printf("7-day severity avg:  %.1f\n", stats.SevenDayAvg)
	}
	if stats.ThirtyDayAvg > 0 {
		fmt.Printf("30-day severity avg: %.1f\n", stats.ThirtyDayAvg)
	}
	return nil
}

func printAdminStats(ctx context.Context, svc *analytics.Service) error {
	privileged := os.Getenv("MINDWELL_ADMIN") == "1"

	stats, err := svc.AdminStats(ctx, privileged)
	if err != nil {
		return fmt.Errorf("admin stats: %w", err)
	}

	fmt.Printf("Users:              %d\n", stats.TotalUsers)
	fmt.Printf("Daily check-ins:    %d\n", stats.TotalDaily)
	fmt.Printf("Weekly reflections: %d\n", stats.TotalWeekly)
	fmt.Printf("Predictions:        %d\n", stats.TotalPredictions)
	if stats.AvgAnxiety > 0 {
		fmt.Printf("Average anxiety:    %.1f/10\n", stats.AvgAnxiety)
	}

	if len(stats.SeverityDistribution) > 0 {
		fmt.Println("\nSeverity distribution")
		for _, cat := range []scales.Category{scales.CategoryLow, scales.CategoryModerate, scales.CategoryHigh} {
			fmt.Printf("  %-9s %d\n", cat, stats.SeverityDistribution[cat])
		}
	}

	if len(stats.FeedbackByReaction) > 0 {
		fmt.Println("\nAdvice feedback")
		reactions := make([]string, 0, len(stats.FeedbackByReaction))
		for r := range stats.FeedbackByReaction {
			reactions = append(reactions, r)
		}
		sort.Strings(reactions)
		for _, r := range reactions {
			fmt.Printf("  %-12s %d\n", r, stats.FeedbackByReaction[r])
		}
	}
	return nil
}
