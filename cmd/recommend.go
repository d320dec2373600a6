package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/serenby/mindwell/internal/llm"
	"github.com/serenby/mindwell/internal/recommend"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print LLM-generated wellbeing suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), defaultUserID)
		if err != nil {
			return fmt.Errorf("no LLM provider configured: %w", err)
		}

		// No profile yet is fine; the prompt simply carries less context.
		profile, err := st.ProfileRepo().Get(ctx, defaultUserID)
		if err != nil {
			profile = nil
		}

		recent, err := st.PredictionRepo().Recent(ctx, defaultUserID, 7)
		if err != nil {
			return fmt.Errorf("load predictions: %w", err)
		}

		items, err := recommend.NewService(provider).Generate(ctx, profile, recent)
		if err != nil {
			return fmt.Errorf("generate recommendations: %w", err)
		}

		for i, item := range items {
			fmt.Printf("%d. %s\n", i+1, item)
		}
		fmt.Println("\nThese are general wellbeing suggestions, not medical advice.")
		return nil
	},
}
