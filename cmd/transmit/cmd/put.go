/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/transmit/pkg/storage"
)

func (c *cli) newPutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <type> <value>",
		Short: "Encode a value and store it",
		Long: `Encode a value of the given type and store its wire bytes. The new id is
printed.

Example:
  transmit put ipv4 10.0.0.1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.container.GetCatalog().Lookup(args[0])
			if err != nil {
				return err
			}
			v, err := t.Parse(args[1])
			if err != nil {
				return err
			}

			return c.withStore(func(s *storage.Store) error {
				id, err := s.Put(v)
				if err != nil {
					return fmt.Errorf("failed to store value: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
}
