// Package cli provides the pickr command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/harken-labs/pickr-cli/internal/logger"
)

var version = "dev"

var (
	flagVerbose   bool
	flagConfigDir string
	flagDataDir   string
	flagRoot      string
)

var rootCmd = &cobra.Command{
	Use:   "pickr",
	Short: "Local file suggestions from content, history and paths",
	Long: `pickr maintains a local index over a directory tree and suggests the
files most relevant to a context, combining content similarity,
selection history and path overlap. All data stays on this machine.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "",
		"config directory (default ~/.pickr)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "",
		"data directory for the index database (default <config>/data)")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "",
		"directory tree to index (persisted to config when set)")
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
