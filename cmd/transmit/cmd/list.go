/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/transmit/pkg/storage"
)

func (c *cli) newListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored values",
		Long: `List stored values oldest first. Values are printed as hex, or decoded
when --type is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName, _ := cmd.Flags().GetString("type")
			decode := func(data []byte) (string, error) { return hex.EncodeToString(data), nil }
			if typeName != "" {
				t, err := c.container.GetCatalog().Lookup(typeName)
				if err != nil {
					return err
				}
				decode = t.DecodeExact
			}

			out := cmd.OutOrStdout()
			return c.withStore(func(s *storage.Store) error {
				return s.List(func(id ksuid.KSUID, data []byte) error {
					text, err := decode(data)
					if err != nil {
						text = "! " + err.Error()
					}
					fmt.Fprintf(out, "%s\t%s\n", id, text)
					return nil
				})
			})
		},
	}

	listCmd.Flags().String("type", "", "Decode values as this type")
	return listCmd
}
