package cmd

import (
	"strings"

	"github.com/Iron-Ham/taskboard/internal/api"
	configcmd "github.com/Iron-Ham/taskboard/internal/cmd/config"
	"github.com/Iron-Ham/taskboard/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Terminal client for a task board API",
	Long: `Taskboard is a terminal UI for tasks and their comments served by an
HTTP API.

Every change is sent to the API first; the affected lists are then
re-read from it, so what you see is always what the server holds.

Run without a subcommand to open the board.`,
	Args:         cobra.NoArgs,
	RunE:         runBoard,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion records the build version for --version and the API User-Agent.
func SetVersion(v string) {
	rootCmd.Version = v
	api.Version = v
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/taskboard/config.yaml)")
	flags.String("api-url", "", "task API root (default http://127.0.0.1:5000/api)")
	flags.String("log-level", "", "debug log level: debug, info, warn, error")
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("api.base_url", flags.Lookup("api-url"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(logsCmd)
	configcmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/taskboard")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("TASKBOARD")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TASKBOARD_API_BASE_URL for api.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
