/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newEncodeCmd() *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode <type> <value>",
		Short: "Encode a value and print its wire bytes",
		Long: `Encode a value of the given type and print its wire bytes as hex.

Examples:
  transmit encode u32 4
  transmit encode guid 00112233-4455-6677-8899-aabbccddeeff
  transmit encode probe 00112233-4455-6677-8899-aabbccddeeff,7,10.0.0.1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.container.GetCatalog().Lookup(args[0])
			if err != nil {
				return err
			}
			encoded, err := t.Encode(args[1])
			if err != nil {
				return err
			}

			if spaced, _ := cmd.Flags().GetBool("spaced"); spaced {
				fmt.Fprintf(cmd.OutOrStdout(), "% x\n", encoded)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(encoded))
			return nil
		},
	}

	encodeCmd.Flags().Bool("spaced", false, "Separate bytes with spaces")
	return encodeCmd
}
