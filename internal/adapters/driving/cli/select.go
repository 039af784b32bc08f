package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

var (
	selectSite    string
	selectURL     string
	selectTitle   string
	selectContext string
)

var selectCmd = &cobra.Command{
	Use:   "select [path]",
	Short: "Record that a suggested file was chosen",
	Long: `Records the selection of a file for a destination site. Selections
feed the history signal: recently and frequently chosen files rank
higher for the same site.`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringVar(&selectSite, "site", "",
		"destination site the file was chosen for (required)")
	selectCmd.Flags().StringVar(&selectURL, "url", "",
		"page URL where the selection happened")
	selectCmd.Flags().StringVar(&selectTitle, "title", "",
		"page title where the selection happened")
	selectCmd.Flags().StringVar(&selectContext, "context", "",
		"query context that produced the suggestion")
	_ = selectCmd.MarkFlagRequired("site")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	err = a.usage.RecordSelection(cmd.Context(), domain.UsageEvent{
		RecordPath: args[0],
		Site:       selectSite,
		PageURL:    selectURL,
		PageTitle:  selectTitle,
		Context:    selectContext,
	})
	if err != nil {
		return fmt.Errorf("recording selection: %w", err)
	}

	cmd.Printf("Recorded selection of %s for %s.\n", args[0], selectSite)
	return nil
}
