package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"alcyxob/fitness-coach/internal/planning"

	"github.com/spf13/cobra"
)

var phasesWeeks int

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "Show the periodization of a plan length",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writePhases(cmd.OutOrStdout(), phasesWeeks)
	},
}

func init() {
	phasesCmd.Flags().IntVarP(&phasesWeeks, "weeks", "w", planning.DefaultPlanWeeks, "plan length in weeks")
}

func writePhases(out io.Writer, total int) error {
	segments, err := planning.PlanPhases(total)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, weekStyle.Render(fmt.Sprintf("%d-week plan", total)))
	for _, s := range segments {
		fmt.Fprintf(out, "  %-10s weeks %d-%d\n", s.Phase, s.StartWeek, s.EndWeek)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WEEK\tPHASE\tINTENSITY\tDELOAD")
	for week := 1; week <= total; week++ {
		phase := planning.PhaseForWeek(segments, week)
		deload := ""
		if planning.IsDeloadWeek(week, total) {
			deload = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", week, phase, planning.WeekIntensity(phase, week, total), deload)
	}
	return w.Flush()
}
