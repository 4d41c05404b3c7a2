package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"minic/internal/diag"
	"minic/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.Bold)
	pathColor    = color.New(color.FgWhite, color.Bold)
	noteColor    = color.New(color.FgBlue)
)

func location(path string, pos source.Pos) string {
	if !pos.IsKnown() {
		return path
	}
	return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() в порядке обхода дерева. Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем Notes с отступом. Цвет включается опцией.
func Pretty(w io.Writer, path string, bag *diag.Bag, opts PrettyOpts) error {
	shown := formatPath(path, opts.PathMode)
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}

	var sb strings.Builder
	for _, d := range bag.Items() {
		sb.WriteString(paint(pathColor, location(shown, d.Primary)))
		sb.WriteString(": ")
		sb.WriteString(paint(severityColor(d.Severity), d.Severity.String()))
		sb.WriteByte(' ')
		sb.WriteString(paint(codeColor, d.Code.ID()))
		sb.WriteString(": ")
		sb.WriteString(d.Message)
		sb.WriteByte('\n')
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			sb.WriteString("  ")
			sb.WriteString(paint(noteColor, "note"))
			sb.WriteString(": ")
			if n.Pos.IsKnown() {
				sb.WriteString(location(shown, n.Pos))
				sb.WriteString(": ")
			}
			sb.WriteString(n.Msg)
			sb.WriteByte('\n')
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(&sb, "%s: %d more diagnostics not shown\n", shown, dropped)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
