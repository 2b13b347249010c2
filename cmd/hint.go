package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/lexis/internal/hints"
	"github.com/abhisek/lexis/internal/llm"
	"github.com/spf13/cobra"
)

var hintCmd = &cobra.Command{
	Use:   "hint <headword>",
	Short: "Ask the LLM for a memory aid for one word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		input, ok := lookupWord(d, args[0])
		if !ok {
			return fmt.Errorf("%q is not in the vocabulary", args[0])
		}

		svc, err := newHintService(cmd, d)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		h, err := svc.Generate(llm.WithPurpose(cmd.Context(), llm.PurposeHintCommand), input)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %s\n", input.Headword, input.Translation)
		fmt.Fprintln(out, h.Mnemonic)
		if h.Note != "" {
			fmt.Fprintln(out, "cf.", h.Note)
		}
		return nil
	},
}

// lookupWord finds headword case-insensitively.
func lookupWord(d *deps, headword string) (hints.Input, bool) {
	for _, it := range d.ctrl.Vocabulary() {
		if strings.EqualFold(it.Headword, strings.TrimSpace(headword)) {
			return hints.Input{
				Headword:    it.Headword,
				Forms:       it.FormsText(),
				Translation: it.Translation,
				Lesson:      it.Lesson,
			}, true
		}
	}
	return hints.Input{}, false
}
