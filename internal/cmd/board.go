package cmd

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/taskboard/internal/api"
	"github.com/Iron-Ham/taskboard/internal/config"
	"github.com/Iron-Ham/taskboard/internal/errors"
	"github.com/Iron-Ham/taskboard/internal/logging"
	"github.com/Iron-Ham/taskboard/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the task board",
	Long: `Open the task board TUI against the configured API.
This is what running taskboard without a subcommand does.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

func runBoard(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return fmt.Errorf("the board needs an interactive terminal; stdin and stdout must be a TTY")
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	logger, err := newLogger(cfg.Logging, logging.DefaultDir())
	if err != nil {
		return errors.Wrap(err, "failed to open log")
	}
	defer func() { _ = logger.Close() }()

	client := newClient(cfg, logger)
	logger.Info("starting board",
		"base_url", client.BaseURL(),
		"version", api.Version,
		"timeout_seconds", cfg.API.TimeoutSeconds,
	)

	app := tui.New(client, tui.Options{
		Context: cmd.Context(),
		Logger:  logger,
		TUI:     cfg.TUI,
	})
	if err := app.Run(); err != nil {
		logger.Error("tui exited with error", "error", err.Error())
		if path := logger.Path(); path != "" {
			return fmt.Errorf("TUI error (see %s): %w", path, err)
		}
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("board closed")
	return nil
}

// newLogger opens the debug log in dir, or returns a no-op logger when
// logging is disabled.
func newLogger(cfg config.LoggingConfig, dir string) (*logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.NewLogger(dir, cfg.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	})
}

func newClient(cfg *config.Config, logger *logging.Logger) *api.Client {
	return api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout()),
		api.WithLogger(logger),
	)
}
