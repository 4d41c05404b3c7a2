package driver

import (
	"fmt"

	json "github.com/goccy/go-json"

	"minic/internal/diag"
	"minic/internal/observ"
	"minic/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// AppendTimingDiagnostic adds an info diagnostic carrying the file's phase
// timings as a JSON note. It is used by machine-readable output; text
// formats print observ summaries instead. Results without timings are left
// untouched.
func AppendTimingDiagnostic(res *FileResult) {
	if res == nil || res.Timing == nil || res.Bag == nil {
		return
	}
	payload := timingPayload{
		Kind:    "file",
		Path:    res.Path,
		TotalMS: res.Timing.TotalMS,
		Phases:  res.Timing.Phases,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	// переполненный Bag тайминги не получает, чтобы не считать их dropped
	bag := res.Bag
	if bag.Len() >= int(bag.Cap()) {
		return
	}
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Pos{}, msg).WithNote(source.Pos{}, string(data)))
}
