package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/lexis/internal/app"
	"github.com/abhisek/lexis/internal/hints"
	"github.com/abhisek/lexis/internal/llm"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	opts := app.Options{
		Controller: d.ctrl,
		Logger:     d.log,
	}

	svc, err := newHintService(cmd, d)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Memory aids will be unavailable.")
	} else {
		defer svc.Cancel()
		opts.Hints = svc
	}

	return app.Run(opts)
}

// errNoProvider is returned when no LLM configuration or API key is found.
var errNoProvider = errors.New("set LEXIS_LLM_PROVIDER or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY")

func newHintService(cmd *cobra.Command, d *deps) (*hints.Service, error) {
	cfg, ok := llm.ResolveConfig()
	if !ok {
		return nil, errNoProvider
	}
	provider, err := llm.NewProvider(cmd.Context(), cfg, d.store.EventRepo(), d.log)
	if err != nil {
		return nil, err
	}
	d.log.Info("llm provider ready", "provider", cfg.Provider, "model", provider.ModelID())
	return hints.NewService(provider, hints.DefaultConfig(), d.log), nil
}
