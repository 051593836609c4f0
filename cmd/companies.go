package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/lead-scout/internal/model"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List processed company reports",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")

		st, err := initStore()
		if err != nil {
			return err
		}
		records, err := st.List(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "companies")
		}

		if format == formatTable {
			if len(records) == 0 {
				fmt.Fprintln(os.Stderr, "No companies found.")
				return nil
			}
			formatCompanies(os.Stdout, records)
			return nil
		}
		return encode(os.Stdout, format, records)
	},
}

// formatCompanies writes a tabular list of records to out.
func formatCompanies(out io.Writer, records []model.CompanyRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tWEBSITE\tSERVICES\tEMAILS\tPHONES")
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
			r.Name, r.Website, len(r.Services), len(r.Emails), len(r.Phones))
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "\n%d companies\n", len(records))
}

func init() {
	companiesCmd.Flags().String("format", formatTable, "output format (table, json, yaml)")
	rootCmd.AddCommand(companiesCmd)
}
