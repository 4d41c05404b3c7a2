package main

import (
	"github.com/spf13/cobra"

	"minic/internal/diagfmt"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <tree-file|->",
	Short: "Print a syntax tree as an indented outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFormat, err := cmd.Flags().GetString("input-format")
		if err != nil {
			return err
		}
		b, root, err := readTree(cmd, args[0], inputFormat)
		if err != nil {
			return err
		}
		return diagfmt.Tree(cmd.OutOrStdout(), b, root)
	},
}

func init() {
	dumpCmd.Flags().String("input-format", "", "tree format (json|yaml|msgpack), required for stdin")
}
