package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List the company links found on a hub page",
	Example: `  lead-scout links --hub https://directory.example/agencies`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		hub, _ := cmd.Flags().GetString("hub")

		if err := cfg.Validate("score"); err != nil {
			return err
		}
		sc, err := initScout(ctx)
		if err != nil {
			return err
		}

		links := sc.HubLinks(ctx, hub)
		if len(links) == 0 {
			fmt.Fprintln(os.Stderr, "No links found.")
			return nil
		}
		for _, l := range links {
			fmt.Fprintln(os.Stdout, l)
		}
		return nil
	},
}

func init() {
	linksCmd.Flags().String("hub", "", "hub page URL (required)")
	_ = linksCmd.MarkFlagRequired("hub")
	rootCmd.AddCommand(linksCmd)
}
