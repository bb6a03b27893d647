// Command genstate is a development-time tool that prints the
// table-driven load/emit state machine loop for a specialised ALU operator,
// as described in package stategen.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ripplebit/runlength/stategen"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "genstate",
		Short: "Generate table-driven run-length ALU operator state machines",
	}
	root.AddCommand(newOrCmd())
	return root
}

func newOrCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "or2-unsigned",
		Short: "Generate the unsigned-2 OR state machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := stategen.GenerateOR2Unsigned()
			if err != nil {
				return fmt.Errorf("genstate: %w", err)
			}
			if out == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), src)
				return err
			}
			return os.WriteFile(out, []byte(src), 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write generated source to this file instead of stdout")
	return cmd
}
