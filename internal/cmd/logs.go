package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/Iron-Ham/taskboard/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the debug log",
	Long: `View and filter the taskboard debug log.

The log is JSON lines written by the board while it runs. Rotated files
are read too, oldest first.

Examples:
  # Show the last 50 entries
  taskboard logs

  # Show every API request of the last hour
  taskboard logs -n 0 --component api --since 1h

  # Follow the log while the board runs in another terminal
  taskboard logs -f --level warn

  # Trace one request by its X-Request-ID
  taskboard logs --request 5b0c...`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsFile      string
	logsTail      int
	logsFollow    bool
	logsLevel     string
	logsSince     string
	logsComponent string
	logsRequest   string
	logsContains  string
	logsJSON      bool
)

func init() {
	logsCmd.Flags().StringVar(&logsFile, "file", "", "Log file (default: debug.log in the state directory)")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "Filter by component (api, board, comments, refresh, tui)")
	logsCmd.Flags().StringVar(&logsRequest, "request", "", "Filter by request id")
	logsCmd.Flags().StringVar(&logsContains, "contains", "", "Filter entries whose message contains this text")
	logsCmd.Flags().BoolVar(&logsJSON, "json", false, "Print entries as JSON")
}

func runLogs(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	logPath := logsFile
	if logPath == "" {
		logPath = filepath.Join(logging.DefaultDir(), logging.FileName)
	}

	filter, err := logsFilter(time.Now())
	if err != nil {
		return err
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No log file found.")
		fmt.Fprintln(out, "Logs are stored at:", logPath)
		return nil
	}

	if logsFollow {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return followLogs(ctx, out, logPath, filter, logsJSON)
	}

	return displayLogs(out, logPath, logsTail, filter, logsJSON)
}

// logsFilter builds the entry filter from the command flags.
func logsFilter(now time.Time) (logging.Filter, error) {
	f := logging.Filter{
		Component: logsComponent,
		RequestID: logsRequest,
		Contains:  logsContains,
	}
	if logsLevel != "" {
		f.Level = logging.ParseLevel(logsLevel)
	}
	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return logging.Filter{}, fmt.Errorf("invalid duration format: %w", err)
		}
		f.Since = now.Add(-d)
	}
	return f, nil
}

// displayLogs prints the filtered tail of the log and its backups.
func displayLogs(out io.Writer, logPath string, tail int, f logging.Filter, asJSON bool) error {
	entries, err := logging.ReadEntries(logPath)
	if err != nil {
		return err
	}

	entries = logging.FilterEntries(entries, f)
	if tail > 0 && len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}

	if asJSON {
		return logging.WriteJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
		return nil
	}
	return logging.WriteText(out, entries)
}

// followLogs prints entries appended to logPath until ctx is done. The
// file is reopened when rotation replaces it.
func followLogs(ctx context.Context, out io.Writer, logPath string, f logging.Filter, asJSON bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to watch log: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so a rotated-in file is noticed
	if err := watcher.Add(filepath.Dir(logPath)); err != nil {
		return fmt.Errorf("failed to watch log directory: %w", err)
	}

	t := &tailer{out: out, filter: f, asJSON: asJSON}
	if err := t.open(logPath, io.SeekEnd); err != nil {
		return err
	}
	defer t.close()

	fmt.Fprintf(out, "Following %s (Ctrl+C to stop)\n\n", logPath)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(logPath) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create):
				if err := t.drain(); err != nil {
					return err
				}
				t.close()
				if err := t.open(logPath, io.SeekStart); err != nil {
					return err
				}
				if err := t.drain(); err != nil {
					return err
				}
			case event.Has(fsnotify.Write):
				if err := t.drain(); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching log: %w", err)
		}
	}
}

// tailer reads complete lines appended to an open log file.
type tailer struct {
	out     io.Writer
	filter  logging.Filter
	asJSON  bool
	file    *os.File
	reader  *bufio.Reader
	partial string
}

func (t *tailer) open(path string, whence int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if _, err := file.Seek(0, whence); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to seek log file: %w", err)
	}
	t.file = file
	t.reader = bufio.NewReader(file)
	t.partial = ""
	return nil
}

func (t *tailer) close() {
	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
	}
}

// drain prints every complete line available. A trailing line without a
// newline is kept until the rest of it arrives.
func (t *tailer) drain() error {
	for {
		chunk, err := t.reader.ReadString('\n')
		t.partial += chunk
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading log file: %w", err)
		}

		line := strings.TrimSpace(t.partial)
		t.partial = ""
		if line == "" {
			continue
		}
		entry, err := logging.ParseEntry(line)
		if err != nil || !t.filter.Match(entry) {
			continue
		}
		if err := t.print(entry); err != nil {
			return err
		}
	}
}

func (t *tailer) print(e logging.Entry) error {
	if !t.asJSON {
		return logging.WriteText(t.out, []logging.Entry{e})
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(t.out, string(data))
	return err
}
