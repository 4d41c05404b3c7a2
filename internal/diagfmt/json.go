package diagfmt

import (
	"io"

	json "github.com/goccy/go-json"

	"minic/internal/diag"
	"minic/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File string `json:"file"`
	Line uint32 `json:"line,omitempty"`
	Col  uint32 `json:"col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

// FileDiagnostics pairs a checked file with the diagnostics it produced.
type FileDiagnostics struct {
	Path string
	Bag  *diag.Bag
}

func makeLocation(path string, pos source.Pos, includePositions bool) LocationJSON {
	loc := LocationJSON{File: path}
	if includePositions && pos.IsKnown() {
		loc.Line = pos.Line
		loc.Col = pos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(files []FileDiagnostics, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0)}
	for _, f := range files {
		if f.Bag == nil {
			continue
		}
		path := formatPath(f.Path, opts.PathMode)
		out.Dropped += f.Bag.Dropped()
		for _, d := range f.Bag.Items() {
			if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
				out.Dropped++
				continue
			}
			dj := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Message:  d.Message,
				Location: makeLocation(path, d.Primary, opts.IncludePositions),
			}
			includeNotes := opts.IncludeNotes || d.Code == diag.ObsTimings
			if includeNotes && len(d.Notes) > 0 {
				dj.Notes = make([]NoteJSON, len(d.Notes))
				for j, note := range d.Notes {
					dj.Notes[j] = NoteJSON{
						Message:  note.Msg,
						Location: makeLocation(path, note.Pos, opts.IncludePositions),
					}
				}
			}
			out.Diagnostics = append(out.Diagnostics, dj)
		}
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON форматирует диагностики всех файлов одним JSON документом.
func JSON(w io.Writer, files []FileDiagnostics, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(files, opts))
}
