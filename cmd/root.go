package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pathctx/pkg/conf"
	"pathctx/pkg/slog"
)

var rootCmd = &cobra.Command{
	Use:   "pathctx",
	Short: "pathctx - filesystem path completion for editors",
	Long: `pathctx decides whether the text before a cursor is a filesystem
path, resolves the directory it points to and lists its entries as
completion candidates. Regular files can be previewed.

It runs one-shot from the command line or as a websocket server editors
connect to, against the local filesystem or a remote host over SFTP.`,
	SilenceUsage: true,
}

// Global flags
var (
	gVerbose   string
	gColorless bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&gVerbose, "verbose", "info", "Adds verbosity [debug|info|warn|error|off]")
	rootCmd.PersistentFlags().BoolVar(&gColorless, "colorless", false, "Disables colors")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if gColorless {
			color.NoColor = true
		}
	}

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Shows Binary Build info",
	Run: func(cmd *cobra.Command, args []string) {
		conf.PrintVersion()
	},
}

// newLogger returns the debug file logger when PATHCTX_DEBUG is set,
// otherwise a stderr logger at the --verbose level
func newLogger() (*slog.Logger, io.Closer, error) {
	if os.Getenv(conf.DebugEnvVar) != "" {
		return slog.FromEnv(conf.DebugEnvVar, filepath.Join(conf.GetHome(), conf.DebugLogFileName), "pathctx")
	}
	log := slog.NewWriterLogger(os.Stderr, "pathctx")
	if err := log.SetLevel(gVerbose); err != nil {
		return nil, nil, err
	}
	log.WithColors(!gColorless && slog.IsTerminal(os.Stderr))
	return log, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// loadConfig layers the config file and environment under the flags set
// on cmd
func loadConfig(cmd *cobra.Command) (conf.Config, error) {
	cfg, err := conf.Load(conf.GetHome())
	if err != nil {
		return cfg, err
	}
	cfg, err = conf.ApplyFlags(cfg, cmd.Flags())
	if err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Error is already printed by the command, just exit
		os.Exit(1)
	}
}
