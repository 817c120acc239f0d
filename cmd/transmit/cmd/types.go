/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the wire types",
		Long: `List the wire types known to encode, decode and the store, with their
fixed encoded size in bytes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE")
			for _, t := range c.container.GetCatalog().Types() {
				size := "var"
				if t.Size >= 0 {
					size = strconv.Itoa(t.Size)
				}
				fmt.Fprintf(w, "%s\t%s\n", t.Name, size)
			}
			return w.Flush()
		},
	}
}
