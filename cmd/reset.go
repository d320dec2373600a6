package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/serenby/mindwell/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the profile and all check-in history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			fmt.Print("This deletes your profile, check-ins, and predictions. Type 'reset' to confirm: ")
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			if strings.TrimSpace(line) != "reset" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		if err := st.CheckinRepo().DeleteAll(ctx, defaultUserID); err != nil {
			return fmt.Errorf("delete check-ins: %w", err)
		}
		if err := st.ProfileRepo().Delete(ctx, defaultUserID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		if err := st.EventRepo().Append(ctx, defaultUserID, store.EventReset, nil); err != nil {
			return fmt.Errorf("record reset: %w", err)
		}

		fmt.Println("All data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
