package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the vocabulary with a word list",
	Long: `Import a word list with one word per line:

  headword;forms;translation;lesson

Importing replaces the current vocabulary and clears all practice results.
Rows that cannot be read are skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		report, err := d.ctrl.Import(cmd.Context(), string(data))
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		quiet, _ := cmd.Flags().GetBool("quiet")
		if !quiet {
			for _, w := range report.Warnings {
				fmt.Fprintln(out, "skipped", w.String())
			}
		}
		fmt.Fprintf(out, "Imported %d words in %d lessons", report.Imported, len(report.Lessons))
		if n := len(report.Warnings); n > 0 {
			fmt.Fprintf(out, ", %d rows skipped", n)
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolP("quiet", "q", false, "Do not list skipped rows")
}
