package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"minic/internal/ast"
	"minic/internal/astio"
)

// readTree loads a tree from path or stdin ("-"). formatStr overrides the
// format implied by the extension and is required for stdin.
func readTree(cmd *cobra.Command, path, formatStr string) (*ast.Builder, ast.ProgramID, error) {
	format, err := resolveFormat(path, formatStr)
	if err != nil {
		return nil, ast.NoProgramID, err
	}
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, ast.NoProgramID, &exitError{code: 1, msg: fmt.Sprintf("Could not open file '%s'", path)}
	}
	b, root, err := astio.Load(data, format)
	if err != nil {
		return nil, ast.NoProgramID, &exitError{code: 2, msg: fmt.Sprintf("Parsing unsuccessful.\n  %v", err)}
	}
	return b, root, nil
}

func resolveFormat(path, formatStr string) (astio.Format, error) {
	if formatStr != "" {
		return astio.ParseFormat(formatStr)
	}
	if path == "-" {
		return 0, fmt.Errorf("reading from stdin requires a format flag")
	}
	return astio.FormatFromPath(path)
}
