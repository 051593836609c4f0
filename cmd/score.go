package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/lead-scout/internal/scout"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one site against the service description",
	Long: "Fetches a page, embeds its visible text and prints the relevance score (0-100), " +
		"the suggested pitch and the page's meta description.",
	Example: `  lead-scout score --url https://acme.example`,
	RunE:    runScore,
}

// scoreResult is what the score command prints.
type scoreResult struct {
	URL         string
	Score       float64
	Pitch       string
	Description string
	Reason      string // why the text could not be scored, if it could not
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	url, _ := cmd.Flags().GetString("url")

	if err := cfg.Validate("score"); err != nil {
		return err
	}
	sc, err := initScout(ctx)
	if err != nil {
		return err
	}

	res := scoreResult{URL: url}
	text := sc.CleanText(ctx, url)
	if t, ok := text.Get(); ok {
		res.Score = sc.Match(ctx, t)
	} else {
		res.Reason = text.Reason()
	}
	res.Pitch = sc.Pitch(res.Score)
	res.Description = sc.MetaDescription(ctx, url).OrElse(scout.DescriptionUnavailable)

	formatScore(os.Stdout, res)
	return nil
}

// formatScore writes a score result to out.
func formatScore(out io.Writer, res scoreResult) {
	_, _ = fmt.Fprintf(out, "URL:         %s\n", res.URL)
	_, _ = fmt.Fprintf(out, "Score:       %.2f\n", res.Score)
	if res.Reason != "" {
		_, _ = fmt.Fprintf(out, "Note:        %s\n", res.Reason)
	}
	_, _ = fmt.Fprintf(out, "Pitch:       %s\n", res.Pitch)
	_, _ = fmt.Fprintf(out, "Description: %s\n", res.Description)
}

func init() {
	scoreCmd.Flags().String("url", "", "page URL to score (required)")
	_ = scoreCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(scoreCmd)
}
