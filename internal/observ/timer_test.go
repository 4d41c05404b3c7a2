package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var n int
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * step)
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	load := tm.Begin("load")
	tm.End(load, "")
	sema := tm.Begin("sema")
	tm.End(sema, "2 errors")
	tm.End(42, "ignored")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].DurationMS != 1 || report.Phases[1].DurationMS != 1 {
		t.Fatalf("unexpected durations: %+v", report.Phases)
	}
	if report.TotalMS != 2 {
		t.Fatalf("expected total 2ms, got %v", report.TotalMS)
	}
	if report.Phases[1].Note != "2 errors" {
		t.Fatalf("note lost: %+v", report.Phases[1])
	}
}

func TestSummaryAlignsWideNames(t *testing.T) {
	report := Report{
		TotalMS: 3,
		Phases: []PhaseReport{
			{Name: "load", DurationMS: 1},
			{Name: "разбор", DurationMS: 1},
			{Name: "検査", DurationMS: 1, Note: "ok"},
		},
	}
	want := "timings a.json:\n" +
		"  load      1.00 ms\n" +
		"  разбор    1.00 ms\n" +
		"  検査      1.00 ms  // ok\n" +
		"  total     3.00 ms\n"
	if got := report.Summary("a.json"); got != want {
		t.Fatalf("summary mismatch:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestEmptyTimer(t *testing.T) {
	tm := NewTimer()
	if got := tm.Summary(); !strings.HasPrefix(got, "timings:\n") || !strings.Contains(got, "total") {
		t.Fatalf("unexpected summary %q", got)
	}
}
