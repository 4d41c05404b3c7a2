package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"minic/internal/diag"
)

// Plain replays "Error: <message>" lines captured from a StreamReporter,
// each prefixed with prefix. The lines are not capped by the bag limit.
func Plain(w io.Writer, prefix, stream string) error {
	for line := range strings.Lines(stream) {
		if _, err := io.WriteString(w, prefix+line); err != nil {
			return err
		}
	}
	return nil
}

// Short writes "<path>:<line>:<col>: <SEV> <CODE>: <message>" lines, one
// per diagnostic, without notes.
func Short(w io.Writer, path string, bag *diag.Bag, mode PathMode) error {
	shown := formatPath(path, mode)
	for _, d := range bag.Items() {
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n", location(shown, d.Primary), d.Severity, d.Code.ID(), d.Message); err != nil {
			return err
		}
	}
	return nil
}
