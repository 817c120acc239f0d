/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"fmt"
	"net/netip"

	"github.com/spf13/cobra"

	"github.com/ssargent/transmit/pkg/catalog"
	"github.com/ssargent/transmit/pkg/wire"
)

func (c *cli) newDemoCmd() *cobra.Command {
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Round trip a probe record",
		Long: `Build a probe record for a fresh identifier, encode it, decode it back and
show what a truncated copy reports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, _ := cmd.Flags().GetUint32("seq")
			addrText, _ := cmd.Flags().GetString("addr")
			addr, err := netip.ParseAddr(addrText)
			if err != nil {
				return fmt.Errorf("invalid --addr: %w", err)
			}

			probe, err := catalog.NewGUIDProbe(seq, addr)
			if err != nil {
				return err
			}
			encoded, err := wire.Encode(probe)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "probe:   %s\n", probe)
			fmt.Fprintf(out, "encoded: %s (%d bytes)\n", hex.EncodeToString(encoded), len(encoded))
			for _, f := range wire.MustDerive[catalog.GUIDProbe]().Fields() {
				fmt.Fprintf(out, "  field %-5s %-10s %d bytes\n", f.Name, f.Type, f.Size)
			}

			decoded, n, err := wire.Decode[catalog.GUIDProbe](encoded)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "decoded: %s (consumed %d)\n", decoded, n)

			_, _, err = wire.Decode[catalog.GUIDProbe](encoded[:len(encoded)-1])
			fmt.Fprintf(out, "short:   %v\n", err)
			c.log.Debug().Int("bytes", len(encoded)).Msg("demo complete")
			return nil
		},
	}

	demoCmd.Flags().Uint32("seq", 1, "Sequence number for the probe")
	demoCmd.Flags().String("addr", "127.0.0.1", "IPv4 address for the probe")
	return demoCmd
}
