package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/lead-scout/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape one company site into a report",
	Example: `  lead-scout scrape --url https://acme.example`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, _ := cmd.Flags().GetString("url")

		if err := cfg.Validate("scrape"); err != nil {
			return err
		}
		st, err := initStore()
		if err != nil {
			return err
		}

		res, err := initScraper(st).Scrape(cmd.Context(), url)
		if err != nil {
			return err
		}
		formatScrapeResult(os.Stdout, res)
		return nil
	},
}

// formatScrapeResult writes where the artifacts of res were saved.
func formatScrapeResult(out io.Writer, res *scrape.Result) {
	if res.Skipped {
		_, _ = fmt.Fprintf(out, "Skipped %s: %s\n", res.URL, res.Reason)
		return
	}
	_, _ = fmt.Fprintf(out, "Scraped %s\n", res.Domain)
	_, _ = fmt.Fprintf(out, "  report:   %s\n", res.ReportPath)
	_, _ = fmt.Fprintf(out, "  raw:      %s\n", res.RawPath)
	if res.MarkdownPath != "" {
		_, _ = fmt.Fprintf(out, "  markdown: %s\n", res.MarkdownPath)
	}
	if rec := res.Record; rec != nil {
		_, _ = fmt.Fprintf(out, "  services: %d  emails: %d  phones: %d\n",
			len(rec.Services), len(rec.Emails), len(rec.Phones))
	}
}

func init() {
	scrapeCmd.Flags().String("url", "", "company website URL (required)")
	_ = scrapeCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(scrapeCmd)
}
