package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/lead-scout/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print one company report",
	Long:  "Prints a processed report by file name (with or without the .txt extension).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		st, err := initStore()
		if err != nil {
			return err
		}
		rec, err := st.Get(strings.TrimSuffix(args[0], report.FileExt))
		if err != nil {
			return eris.Wrap(err, "show")
		}

		if format == formatText {
			_, err := fmt.Fprint(os.Stdout, rec.RawContent)
			return err
		}
		return encode(os.Stdout, format, rec)
	},
}

func init() {
	showCmd.Flags().String("format", formatText, "output format (text, json, yaml)")
	rootCmd.AddCommand(showCmd)
}
