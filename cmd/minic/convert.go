package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minic/internal/astio"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <input> <output>",
	Short: "Re-encode a syntax tree as JSON, YAML or MessagePack",
	Long: `Convert reads a tree in any supported format and writes it in the format
implied by the output extension or --to. Use "-" for stdin or stdout.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("from", "", "input format (json|yaml|msgpack)")
	convertCmd.Flags().String("to", "", "output format (json|yaml|msgpack)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, err := cmd.Flags().GetString("from")
	if err != nil {
		return err
	}
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return err
	}
	outFormat, err := resolveFormat(args[1], to)
	if err != nil {
		return err
	}

	b, root, err := readTree(cmd, args[0], from)
	if err != nil {
		return err
	}

	if args[1] == "-" {
		return astio.Encode(cmd.OutOrStdout(), b, root, outFormat)
	}
	f, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[1], err)
	}
	w := bufio.NewWriter(f)
	if err := astio.Encode(w, b, root, outFormat); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", args[1], err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
