package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finkit/finproj/internal/domain"
)

func newInstrumentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "instruments",
		Short: "List instrument categories and return types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tTAXED\tDESCRIPTION")
			for _, c := range domain.InstrumentCategories() {
				taxed := "no"
				if c.Taxable {
					taxed = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Category, taxed, c.Label)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "RETURN TYPE\tDESCRIPTION")
			for _, rt := range domain.ReturnTypes() {
				fmt.Fprintf(w, "%s\t%s\n", rt.ReturnType, rt.Label)
			}
			return w.Flush()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finproj version %s\n", Version)
		},
	}
}
