package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loramgr/internal/pool"
)

func newFingerprintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "fingerprint <pool-config>",
		Short:   "Print the fingerprint of a pool filter config",
		Example: "  loramgr fingerprint pool.yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readPoolConfig(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), pool.Fingerprint(cfg))
			return err
		},
	}
}
