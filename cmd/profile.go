package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/serenby/mindwell/internal/checkin"
	"github.com/serenby/mindwell/internal/scales"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the stored profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		p, err := st.ProfileRepo().Get(context.Background(), defaultUserID)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if p == nil {
			fmt.Println("No profile yet. Run mindwell and complete the profile setup.")
			return nil
		}

		printField := func(label, value string) {
			if value != "" {
				fmt.Printf("%-22s %s\n", label, value)
			}
		}
		printField("Age", intValue(p.Age))
		printField("Gender", scales.LabelFor(scales.Genders, p.Gender))
		printField("Occupation", scales.LabelFor(scales.Occupations, p.Occupation))
		printField("Family status", scales.LabelFor(scales.FamilyStatuses, p.FamilyStatus))
		printField("Sleep (hours)", floatValue(p.SleepHours))
		printField("Activity", scales.LabelFor(scales.ActivityLevels, p.Activity))
		printField("Diet", scales.LabelFor(scales.DietRatings, p.DietRating))
		printField("Alcohol (drinks/wk)", intValue(p.AlcoholDrinks))
		printField("Caffeine (cups/day)", intValue(p.CaffeineCups))
		printField("Smoking", scales.LabelFor(scales.SmokingHabits, p.Smoking))
		printField("Baseline stress", intValue(p.BaselineStress))
		printField("Family history", boolValue(p.FamilyHistory))
		printField("Therapy", scales.LabelFor(scales.TherapyFrequencies, p.Therapy))
		printField("Recent life events", p.LifeEvents)
		printField("Medication", boolValue(p.MedicationUse))
		printField("Baseline heart rate", intValue(p.BaselineHeartRate))
		printField("Baseline breathing", intValue(p.BaselineBreathing))
		printField("Sweating level", intValue(p.SweatingLevel))
		printField("Dizziness", scales.LabelFor(scales.DizzinessFrequencies, p.DizzinessFreq))
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update individual profile fields without re-running onboarding.

The baseline vitals (--medication, --heart-rate, --breathing,
--sweating, --dizziness) feed the weekly prediction alongside the
onboarding answers.`,
	Example: `  mindwell profile set --heart-rate 68 --breathing 14
  mindwell profile set --medication yes --dizziness sometimes
  mindwell profile set --sleep 7.5 --caffeine 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		update, err := profileUpdateFromFlags(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		dbPath, _ := resolveDBPath(cmd)
		svc := checkin.NewService(
			st.ProfileRepo(),
			st.CheckinRepo(),
			st.PredictionRepo(),
			st.EventRepo(),
			newDispatcher(dbPath),
		)

		if _, err := svc.UpdateProfile(context.Background(), defaultUserID, update); err != nil {
			return err
		}
		fmt.Println("Profile updated.")
		return nil
	},
}

// profileUpdateFromFlags maps the changed flags onto a partial update.
func profileUpdateFromFlags(cmd *cobra.Command) (checkin.ProfileUpdate, error) {
	var u checkin.ProfileUpdate
	flags := cmd.Flags()
	any := false

	if flags.Changed("sleep") {
		v, _ := flags.GetFloat64("sleep")
		u.SleepHours = &v
		any = true
	}
	if flags.Changed("caffeine") {
		v, _ := flags.GetInt("caffeine")
		u.CaffeineCups = &v
		any = true
	}
	if flags.Changed("alcohol") {
		v, _ := flags.GetInt("alcohol")
		u.AlcoholDrinks = &v
		any = true
	}
	if flags.Changed("stress") {
		v, _ := flags.GetInt("stress")
		u.BaselineStress = &v
		any = true
	}
	if flags.Changed("therapy") {
		v, _ := flags.GetString("therapy")
		u.Therapy = &v
		any = true
	}
	if flags.Changed("life-events") {
		v, _ := flags.GetString("life-events")
		u.LifeEvents = &v
		any = true
	}
	if flags.Changed("medication") {
		v, _ := flags.GetString("medication")
		b, err := parseYesNo(v)
		if err != nil {
			return u, err
		}
		u.MedicationUse = &b
		any = true
	}
	if flags.Changed("heart-rate") {
		v, _ := flags.GetInt("heart-rate")
		u.BaselineHeartRate = &v
		any = true
	}
	if flags.Changed("breathing") {
		v, _ := flags.GetInt("breathing")
		u.BaselineBreathing = &v
		any = true
	}
	if flags.Changed("sweating") {
		v, _ := flags.GetInt("sweating")
		u.SweatingLevel = &v
		any = true
	}
	if flags.Changed("dizziness") {
		v, _ := flags.GetString("dizziness")
		u.DizzinessFreq = &v
		any = true
	}

	if !any {
		return u, fmt.Errorf("nothing to update; pass at least one field flag (see mindwell profile set --help)")
	}
	return u, nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	}
	return false, fmt.Errorf("expected yes or no, got %q", s)
}

func intValue(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d", *p)
}

func floatValue(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *p)
}

func boolValue(p *bool) string {
	if p == nil {
		return ""
	}
	if *p {
		return "Yes"
	}
	return "No"
}

func init() {
	f := profileSetCmd.Flags()
	f.Float64("sleep", 0, "Typical sleep hours per night")
	f.Int("caffeine", 0, "Caffeinated drinks per day")
	f.Int("alcohol", 0, "Alcoholic drinks per week")
	f.Int("stress", 0, "Baseline stress level (1-10)")
	f.String("therapy", "", "Therapy frequency (no|rarely|monthly|bi_weekly|weekly)")
	f.String("life-events", "", "Recent significant life events")
	f.String("medication", "", "Taking anxiety medication (yes|no)")
	f.Int("heart-rate", 0, "Resting heart rate (bpm)")
	f.Int("breathing", 0, "Resting breathing rate (breaths/min)")
	f.Int("sweating", 0, "Typical sweating level (1-5)")
	f.String("dizziness", "", "Dizziness frequency (never|rarely|sometimes|often)")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
