/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/transmit/pkg/storage"
)

func (c *cli) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored value",
		Long: `Delete a stored value by id.

Example:
  transmit delete 2Q3h7c0RZ0sH6XyJgJ4OQ9bKpXv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := storage.ParseID(args[0])
			if err != nil {
				return err
			}

			return c.withStore(func(s *storage.Store) error {
				if err := s.Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
				return nil
			})
		},
	}
}
