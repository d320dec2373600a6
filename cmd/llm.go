package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/serenby/mindwell/internal/llm"
	"github.com/serenby/mindwell/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		events, err := st.EventRepo().RecentByType(ctx, defaultUserID, store.EventLLMRequest, limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-16s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, e := range events {
			if purpose != "" && payloadString(e.Payload, "purpose") != purpose {
				continue
			}
			ok := "✓"
			if !payloadBool(e.Payload, "success") {
				ok = "✗"
			}
			model := payloadString(e.Payload, "model")
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-5d  %-19s  %-16s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				payloadString(e.Payload, "purpose"),
				model,
				payloadInt(e.Payload, "input_tokens"),
				payloadInt(e.Payload, "output_tokens"),
				payloadInt(e.Payload, "latency_ms"),
				ok,
			)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		events, err := st.EventRepo().RecentByType(ctx, defaultUserID, store.EventLLMRequest, 10000)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		type usage struct {
			calls     int
			in, out   int
			latencyMs int
		}
		byPurpose := map[string]*usage{}
		byModel := map[string]*usage{}
		var purposes, models []string

		for _, e := range events {
			p := payloadString(e.Payload, "purpose")
			m := payloadString(e.Payload, "model")
			if byPurpose[p] == nil {
				byPurpose[p] = &usage{}
				purposes = append(purposes, p)
			}
			if byModel[m] == nil {
				byModel[m] = &usage{}
				models = append(models, m)
			}
			for _, u := range []*usage{byPurpose[p], byModel[m]} {
				u.calls++
				u.in += payloadInt(e.Payload, "input_tokens")
				u.out += payloadInt(e.Payload, "output_tokens")
				u.latencyMs += payloadInt(e.Payload, "latency_ms")
			}
		}

		// Usage by purpose.
		fmt.Println("Usage by Purpose")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		fmt.Println(strings.Repeat("─", 72))

		var totalCalls, totalIn, totalOut int
		for _, p := range purposes {
			u := byPurpose[p]
			fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
				p, u.calls, u.in, u.out, u.in+u.out, u.latencyMs/u.calls)
			totalCalls += u.calls
			totalIn += u.in
			totalOut += u.out
		}

		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n",
			"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)

		// Cost by model.
		fmt.Println()
		fmt.Println("Estimated Cost (USD)")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n",
			"Model", "Calls", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 72))

		var totalCost float64
		var unknownModels []string
		for _, m := range models {
			u := byModel[m]
			cost := llm.LookupCost(m)
			if cost == nil {
				unknownModels = append(unknownModels, m)
				fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
					truncate(m, 32), u.calls, u.in, u.out, "?")
				continue
			}
			c := cost.Cost(u.in, u.out)
			totalCost += c
			fmt.Printf("%-32s  %6d  %10d  %10d  %9s\n",
				truncate(m, 32), u.calls, u.in, u.out, formatCost(c))
		}

		fmt.Println(strings.Repeat("─", 72))
		label := "TOTAL"
		if len(unknownModels) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6s  %10s  %10s  %9s\n",
			label, "", "", "", formatCost(totalCost))

		if len(unknownModels) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
		}

		return nil
	},
}

func payloadString(p map[string]any, key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

func payloadBool(p map[string]any, key string) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return false
}

// payloadInt handles the float64 that JSON decoding produces for
// numeric fields.
func payloadInt(p map[string]any, key string) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. recommendations)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
