package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		rep := d.ctrl.Stats()
		g := rep.Global
		fmt.Fprintf(out, "%d words, %d answers, %d known (%d%%)\n",
			g.TotalItems, g.TotalAnswers, g.KnownAnswers, g.Percent)
		if len(rep.Lessons) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-8s  %6s  %9s  %6s  %8s  %8s  %8s\n",
			"Lesson", "Words", "Practiced", "Known", "Unknown", "% Known", "Progress")
		fmt.Fprintln(out, strings.Repeat("─", 66))
		for _, ls := range rep.Lessons {
			fmt.Fprintf(out, "%-8d  %6d  %9d  %6d  %8d  %7d%%  %7d%%\n",
				ls.Lesson, ls.Total, ls.Practiced, ls.Known, ls.Unknown, ls.PercentKnown, ls.Progress)
		}
		return nil
	},
}
