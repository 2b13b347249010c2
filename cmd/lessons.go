package cmd

import (
	"fmt"

	"github.com/abhisek/lexis/internal/mastery"
	"github.com/spf13/cobra"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons with their word counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		lessons := d.ctrl.Lessons()
		if len(lessons) == 0 {
			fmt.Fprintln(out, "No vocabulary yet. Run `lexis import <file>` first.")
			return nil
		}

		counts := d.ctrl.LessonCounts()
		report := d.ctrl.Stats()
		for _, l := range lessons {
			ls, _ := report.Lesson(l)
			fmt.Fprintf(out, "Lesson %-4d %5d words  %s\n", l, counts[l], mastery.ResolveDisplayState(ls))
		}
		return nil
	},
}
