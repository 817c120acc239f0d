/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *cli) newDecodeCmd() *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode <type> <hex>",
		Short: "Decode wire bytes as a value",
		Long: `Decode hex encoded wire bytes as the given type. Bytes after the value are
reported, not rejected. With --all the input is read as a sequence of values
that must use every byte.

Examples:
  transmit decode u32 04000000
  transmit decode --all u16 010002000300`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.container.GetCatalog().Lookup(args[0])
			if err != nil {
				return err
			}
			data, err := hex.DecodeString(strings.NewReplacer(" ", "", ":", "").Replace(args[1]))
			if err != nil {
				return fmt.Errorf("invalid hex: %w", err)
			}

			out := cmd.OutOrStdout()
			if all, _ := cmd.Flags().GetBool("all"); all {
				values, err := t.DecodeAll(data)
				if err != nil {
					return err
				}
				for _, v := range values {
					fmt.Fprintln(out, v)
				}
				return nil
			}

			value, n, err := t.Decode(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, value)
			if n < len(data) {
				fmt.Fprintf(out, "consumed %d of %d bytes, remaining %s\n", n, len(data), hex.EncodeToString(data[n:]))
			}
			return nil
		},
	}

	decodeCmd.Flags().Bool("all", false, "Decode consecutive values until the input is exhausted")
	return decodeCmd
}
