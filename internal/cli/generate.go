package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/export"
	"alcyxob/fitness-coach/internal/planning"

	"github.com/spf13/cobra"
)

var (
	generateProfile string
	generateCatalog string
	generateSeed    uint64
	generateStart   string
	generateFormat  string
	generateOut     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a training plan from a profile file",
	Long: `Generate builds a complete plan from a YAML or JSON profile using the same engine as the server.
The plan is printed as text or JSON, or written as an ICS calendar or XLSX workbook.`,
	Example: `  planctl generate --profile athlete.yaml --seed 7
  planctl generate --profile athlete.yaml --start 2026-01-05 --format ics --out plan.ics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if generateStart != "" {
			start, err := time.Parse(time.DateOnly, generateStart)
			if err != nil {
				return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
			}
			now = start
		}

		profile, err := loadProfile(generateProfile)
		if err != nil {
			return err
		}
		pool, err := loadCatalog(generateCatalog)
		if err != nil {
			return err
		}

		seed := generateSeed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
		generator := planning.NewGenerator(pool, rand.New(rand.NewPCG(seed, seed)),
			planning.WithClock(func() time.Time { return now }),
			planning.WithLogger(logger))

		gen, err := generator.Generate(profile)
		if err != nil {
			return err
		}
		return writePlan(cmd.OutOrStdout(), gen, now)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateProfile, "profile", "p", "", "profile file (YAML or JSON)")
	generateCmd.Flags().StringVar(&generateCatalog, "catalog", "", "exercise catalog file; defaults to the built-in catalog")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "random seed for exercise selection; 0 picks one")
	generateCmd.Flags().StringVar(&generateStart, "start", "", "plan start date, YYYY-MM-DD; defaults to today")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "text", "output format: text, json, ics or xlsx")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "write to this file instead of stdout")
	_ = generateCmd.MarkFlagRequired("profile")
}

func writePlan(stdout io.Writer, gen *planning.Generation, now time.Time) error {
	var data []byte
	switch strings.ToLower(generateFormat) {
	case "text":
		data = []byte(renderPlan(gen))
	case "json":
		b, err := json.MarshalIndent(gen.Plan, "", "  ")
		if err != nil {
			return err
		}
		data = append(b, '\n')
	default:
		format, err := export.ParseFormat(generateFormat)
		if err != nil {
			return err
		}
		if data, err = export.Render(format, gen.Plan, now); err != nil {
			return err
		}
	}

	if generateOut == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(generateOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", generateOut, err)
	}
	fmt.Fprintf(stdout, "Wrote %s (%d weeks, %d workouts)\n", generateOut, gen.Plan.TotalWeeks, len(gen.Plan.Workouts()))
	return nil
}

// renderPlan prints one styled header per week followed by its workouts.
func renderPlan(gen *planning.Generation) string {
	plan := gen.Plan
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", keyStyle.Render(plan.Name))
	fmt.Fprintf(&b, "%s\n", subtleStyle.Render(fmt.Sprintf("%s to %s, %d sessions per week",
		plan.StartDate.Format(time.DateOnly), plan.EndDate.Format(time.DateOnly), plan.SessionsPerWeek)))

	for _, week := range plan.Weeks {
		header := fmt.Sprintf("Week %d  %s  %s intensity  %d min", week.WeekNumber, week.Phase, week.Intensity, week.VolumeMinutes)
		b.WriteString(weekStyle.Render(header))
		if week.IsDeload {
			b.WriteString(" " + deloadStyle.Render("deload"))
		}
		b.WriteString("\n")
		for _, w := range week.Workouts {
			b.WriteString(renderWorkout(w))
		}
	}

	for _, warning := range gen.Warnings {
		fmt.Fprintf(&b, "%s\n", warnStyle.Render("warning: "+warning))
	}
	return b.String()
}

func renderWorkout(w domain.Workout) string {
	var b strings.Builder
	line := fmt.Sprintf("  %s %s  %s (%d min)", w.ScheduledDate.Format(time.DateOnly), w.Day, w.Name, w.DurationMinutes)
	if w.IsKeyWorkout {
		line = keyStyle.Render(line + " *")
	}
	b.WriteString(line + "\n")
	for _, ex := range w.Exercises {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("      %d. %s %s", ex.Order, ex.ExerciseName, export.Prescription(ex))) + "\n")
	}
	return b.String()
}
