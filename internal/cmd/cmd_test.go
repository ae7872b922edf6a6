package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/taskboard/internal/config"
	"github.com/Iron-Ham/taskboard/internal/errors"
	"github.com/Iron-Ham/taskboard/internal/logging"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// writeLog creates a debug log in a temp dir by running fn against a real logger.
func writeLog(t *testing.T, fn func(l *logging.Logger)) string {
	t.Helper()
	dir := t.TempDir()
	logger, err := logging.NewLogger(dir, "debug", logging.DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	fn(logger)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return filepath.Join(dir, logging.FileName)
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "taskboard" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "taskboard")
	}

	cmdMap := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		cmdMap[c.Name()] = true
	}
	for _, expected := range []string{"board", "logs", "config"} {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}

	for _, flag := range []string{"config", "api-url", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent flag --%s", flag)
		}
	}
}

func TestSetVersion(t *testing.T) {
	orig := rootCmd.Version
	defer SetVersion(orig)

	SetVersion("1.2.3")
	if rootCmd.Version != "1.2.3" {
		t.Errorf("rootCmd.Version = %q, want 1.2.3", rootCmd.Version)
	}
}

func TestRunBoardRequiresTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = orig }()

	err := runBoard(&cobra.Command{}, nil)
	if err == nil || !strings.Contains(err.Error(), "interactive terminal") {
		t.Errorf("runBoard() error = %v, want terminal error", err)
	}
}

func TestRunBoardRejectsInvalidConfig(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return true }
	defer func() { isTerminal = orig }()

	viper.Reset()
	defer viper.Reset()
	config.SetDefaults()
	viper.Set("api.base_url", "ftp://tasks.example.com")

	err := runBoard(&cobra.Command{}, nil)
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("runBoard() error = %v, want ErrInvalidInput", err)
	}
	if !strings.HasPrefix(err.Error(), "invalid configuration: ") || !strings.Contains(err.Error(), "api.base_url") {
		t.Errorf("runBoard() error = %q, want invalid configuration naming api.base_url", err.Error())
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		dir := t.TempDir()
		logger, err := newLogger(config.LoggingConfig{Enabled: false, Level: "debug"}, dir)
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		logger.Info("dropped")
		if logger.Path() != "" {
			t.Errorf("Path() = %q, want empty for a disabled log", logger.Path())
		}
		if _, err := os.Stat(filepath.Join(dir, logging.FileName)); !os.IsNotExist(err) {
			t.Error("disabled logging must not create a file")
		}
	})

	t.Run("enabled", func(t *testing.T) {
		dir := t.TempDir()
		cfg := config.Default().Logging
		logger, err := newLogger(cfg, dir)
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		logger.Info("kept")
		_ = logger.Close()

		data, err := os.ReadFile(filepath.Join(dir, logging.FileName))
		if err != nil {
			t.Fatalf("log file not written: %v", err)
		}
		if !strings.Contains(string(data), `"msg":"kept"`) {
			t.Errorf("log = %s, want the entry", data)
		}
	})
}

func TestNewClientUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.API.BaseURL = "http://tasks.local:8080/api/"
	client := newClient(cfg, logging.NopLogger())
	if got := client.BaseURL(); got != "http://tasks.local:8080/api" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestDisplayLogs(t *testing.T) {
	path := writeLog(t, func(l *logging.Logger) {
		l.WithComponent("api").Debug("request", "method", "GET")
		l.WithComponent("board").Warn("task action failed", "op", "create_task")
		l.WithComponent("api").Error("request failed", "status", 500)
	})

	tests := []struct {
		name    string
		tail    int
		filter  logging.Filter
		want    []string
		notWant []string
	}{
		{
			name: "all",
			want: []string{"request", "task action failed", "request failed"},
		},
		{
			name:    "level",
			filter:  logging.Filter{Level: logging.LevelWarn},
			want:    []string{"task action failed", "request failed"},
			notWant: []string{"DEBUG"},
		},
		{
			name:    "component",
			filter:  logging.Filter{Component: "board"},
			want:    []string{"task action failed"},
			notWant: []string{"request"},
		},
		{
			name:    "tail",
			tail:    1,
			want:    []string{"request failed"},
			notWant: []string{"task action failed"},
		},
		{
			name:   "no match",
			filter: logging.Filter{Contains: "nothing like this"},
			want:   []string{"No matching log entries found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := displayLogs(&out, path, tt.tail, tt.filter, false); err != nil {
				t.Fatalf("displayLogs() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out.String(), nw) {
					t.Errorf("output should not contain %q:\n%s", nw, out.String())
				}
			}
		})
	}
}

func TestDisplayLogsJSON(t *testing.T) {
	path := writeLog(t, func(l *logging.Logger) {
		l.Info("one")
	})

	var out bytes.Buffer
	if err := displayLogs(&out, path, 0, logging.Filter{}, true); err != nil {
		t.Fatalf("displayLogs() error = %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out.String()), "[") || !strings.Contains(out.String(), `"msg": "one"`) {
		t.Errorf("expected a JSON array, got:\n%s", out.String())
	}
}

func TestLogsFilter(t *testing.T) {
	defer func() { logsLevel, logsSince, logsComponent = "", "", "" }()

	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	logsLevel, logsSince, logsComponent = "warn", "30m", "api"

	f, err := logsFilter(now)
	if err != nil {
		t.Fatalf("logsFilter() error = %v", err)
	}
	if f.Level != logging.LevelWarn {
		t.Errorf("Level = %q, want %q", f.Level, logging.LevelWarn)
	}
	if want := now.Add(-30 * time.Minute); !f.Since.Equal(want) {
		t.Errorf("Since = %v, want %v", f.Since, want)
	}
	if f.Component != "api" {
		t.Errorf("Component = %q, want api", f.Component)
	}

	logsSince = "yesterday"
	if _, err := logsFilter(now); err == nil {
		t.Error("expected error for an invalid duration")
	}
}

func TestRunLogsMissingFile(t *testing.T) {
	defer func() { logsFile = "" }()
	logsFile = filepath.Join(t.TempDir(), "missing.log")

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	if err := runLogs(c, nil); err != nil {
		t.Fatalf("runLogs() error = %v", err)
	}
	if !strings.Contains(out.String(), "No log file found.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestFollowLogs(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(dir, "debug", logging.RotationConfig{})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer func() { _ = logger.Close() }()
	logger.Info("before follow")

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- followLogs(ctx, out, logger.Path(), logging.Filter{Component: "api"}, false)
	}()

	waitFor(t, "follow to start", func() bool { return strings.Contains(out.String(), "Following") })

	logger.WithComponent("board").Info("filtered out")
	logger.WithComponent("api").Info("after follow")

	waitFor(t, "new entry", func() bool { return strings.Contains(out.String(), "after follow") })

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("followLogs() error = %v", err)
	}

	got := out.String()
	if strings.Contains(got, "before follow") {
		t.Error("follow should start at the end of the file")
	}
	if strings.Contains(got, "filtered out") {
		t.Error("follow should apply the filter")
	}
}
