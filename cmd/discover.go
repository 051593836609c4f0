package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/lead-scout/internal/discovery"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Search, score and scrape companies for a query",
	Long: "Runs one discovery pass: web search for directory sites, collect the company links " +
		"they list, score each against the service description and scrape every match.",
	Example: `  lead-scout discover --query "AI agencies in Pune"
  lead-scout discover --query "python consultancies bangalore" --num 10`,
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	query, _ := cmd.Flags().GetString("query")
	num, _ := cmd.Flags().GetInt("num")

	env, err := initPipeline(ctx, "discover", true)
	if err != nil {
		return err
	}

	sum, err := env.Finder.Run(ctx, discovery.Request{Query: query, NumResults: num})
	if sum != nil {
		formatSummary(os.Stdout, sum)
	}
	return err
}

// formatSummary writes a run summary and its match table to out.
func formatSummary(out io.Writer, sum *discovery.Summary) {
	_, _ = fmt.Fprintf(out, "Run:        %s\n", sum.RunID)
	_, _ = fmt.Fprintf(out, "Query:      %s\n", sum.Query)
	_, _ = fmt.Fprintf(out, "Hubs:       %d\n", len(sum.HubURLs))
	_, _ = fmt.Fprintf(out, "Candidates: %d\n", sum.Candidates)
	_, _ = fmt.Fprintf(out, "Matches:    %d\n", sum.TotalFound)
	_, _ = fmt.Fprintf(out, "Scraped:    %d\n", len(sum.Scraped))

	if len(sum.Matches) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCORE\tURL\tPITCH")
	for _, m := range sum.Matches {
		_, _ = fmt.Fprintf(w, "%.2f\t%s\t%s\n", m.Score, m.URL, m.Pitch)
	}
	_ = w.Flush()
}

func init() {
	f := discoverCmd.Flags()
	f.String("query", "", "search query (required)")
	f.Int("num", 0, "number of search results to crawl (default from config)")
	_ = discoverCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(discoverCmd)
}
