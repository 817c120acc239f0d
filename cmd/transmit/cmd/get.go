/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/transmit/pkg/storage"
)

func (c *cli) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <type> <id>",
		Short: "Read a stored value",
		Long: `Read a stored value and decode it as the given type. The stored bytes must
hold exactly one value of that type.

Example:
  transmit get ipv4 2Q3h7c0RZ0sH6XyJgJ4OQ9bKpXv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.container.GetCatalog().Lookup(args[0])
			if err != nil {
				return err
			}
			id, err := storage.ParseID(args[1])
			if err != nil {
				return err
			}

			return c.withStore(func(s *storage.Store) error {
				data, err := s.GetRaw(id)
				if err != nil {
					return err
				}
				value, err := t.DecodeExact(data)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	}
}
