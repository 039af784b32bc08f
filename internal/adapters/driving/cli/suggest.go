package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harken-labs/pickr-cli/internal/core/domain"
)

var (
	suggestSite  string
	suggestKind  string
	suggestLimit int
	suggestJSON  bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [context...]",
	Short: "Suggest files relevant to a context",
	Long: `Ranks indexed files against a free-text context. The score combines
content similarity, selection history for the given site, and overlap
between the context and each file's path.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestSite, "site", "",
		"destination site for the history signal")
	suggestCmd.Flags().StringVar(&suggestKind, "kind", "",
		"filter by file kind (document, image, spreadsheet, presentation, archive, code, other)")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0,
		"maximum number of suggestions (default from config)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false,
		"output suggestions as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	limit := suggestLimit
	if limit <= 0 {
		limit = a.cfg.SuggestLimit
	}

	suggestions, reason, err := a.suggester.Rank(cmd.Context(), domain.RankQuery{
		Context: strings.Join(args, " "),
		Site:    suggestSite,
		Kind:    domain.FileKind(suggestKind),
		Limit:   limit,
	})
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	if suggestJSON {
		return outputSuggestJSON(cmd, suggestions, reason)
	}
	return outputSuggestList(cmd, suggestions, reason)
}

func outputSuggestJSON(cmd *cobra.Command, suggestions []domain.Suggestion, reason domain.RankReason) error {
	payload := struct {
		Reason      domain.RankReason   `json:"reason"`
		Suggestions []domain.Suggestion `json:"suggestions"`
	}{reason, suggestions}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSuggestList(cmd *cobra.Command, suggestions []domain.Suggestion, reason domain.RankReason) error {
	if len(suggestions) == 0 {
		switch reason {
		case domain.RankEmptyIndex:
			cmd.Println("The index is empty. Run 'pickr index' first.")
		case domain.RankEmptyQuery:
			cmd.Println("The context gave nothing to match on. Try more specific words.")
		default:
			cmd.Println("No matching files.")
		}
		return nil
	}

	for i := range suggestions {
		s := &suggestions[i]
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, s.Record.Path, s.Score)
		if s.HistoryCount > 0 {
			cmd.Printf("      picked %d time(s) here before\n", s.HistoryCount)
		}
	}
	return nil
}
