package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		preds, err := st.PredictionRepo().Recent(context.Background(), defaultUserID, limit)
		if err != nil {
			return fmt.Errorf("list predictions: %w", err)
		}

		if len(preds) == 0 {
			fmt.Println("No check-ins recorded yet.")
			return nil
		}

		fmt.Printf("%-17s  %-6s  %-8s  %-9s  %-10s  %s\n",
			"When", "Kind", "Severity", "Class", "Confidence", "Pipeline")
		for _, p := range preds {
			kind := "daily"
			if p.WeeklyID != nil {
				kind = "weekly"
			}
			fmt.Printf("%-17s  %-6s  %5d/10  %-9s  %9.0f%%  %s\n",
				p.CreatedAt.Local().Format("2006-01-02 15:04"),
				kind, p.SeverityLevel, p.ClassName, p.Confidence*100, p.PipelineVersion)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of predictions to show")
}
