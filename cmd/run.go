package cmd

import (
	"fmt"
	"os"

	"github.com/serenby/mindwell/internal/analytics"
	"github.com/serenby/mindwell/internal/app"
	"github.com/serenby/mindwell/internal/checkin"
	"github.com/serenby/mindwell/internal/interview"
	"github.com/serenby/mindwell/internal/llm"
	"github.com/serenby/mindwell/internal/predict"
	"github.com/serenby/mindwell/internal/recommend"
	"github.com/serenby/mindwell/internal/store"
	"github.com/spf13/cobra"
)

// defaultUserID identifies the single local user. The schema keys
// everything by user so a future multi-profile mode stays cheap.
const defaultUserID int64 = 1

// newDispatcher builds the lazily-loading prediction dispatcher for
// the model artifact next to the database.
func newDispatcher(dbPath string) *predict.Dispatcher {
	return predict.NewDispatcher(func() (predict.Scorer, error) {
		m, err := predict.LoadModel(predict.DefaultModelPath(dbPath))
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	dispatcher := newDispatcher(dbPath)

	svc := checkin.NewService(
		st.ProfileRepo(),
		st.CheckinRepo(),
		st.PredictionRepo(),
		st.EventRepo(),
		dispatcher,
	)

	opts := app.Options{
		Store:     st,
		Checkin:   svc,
		Sessions:  interview.NewRegistry(),
		Analytics: analytics.NewService(st),
		UserID:    defaultUserID,
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), defaultUserID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Recommendations will be unavailable.")
	} else {
		opts.Recommender = recommend.NewService(provider)
	}

	return app.Run(opts)
}
