package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with captured output. Every call passes
// its own --config and --format because cobra keeps flag values between runs.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "minic.toml")
	if err := os.WriteFile(cfg, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})
	full := append([]string{"--config", cfg, "--color", "off", "--quiet=false", "--timings=false", "--max-diagnostics", "100"}, args...)
	code = run(full)
	return code, out.String(), errOut.String()
}

func TestCheckCommand(t *testing.T) {
	cases := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "clean tree",
			args:       []string{"check", "--format", "plain", "testdata/clean.yaml"},
			wantCode:   0,
			wantStdout: "Parsing successful.\nSemantic analysis successful.\n",
		},
		{
			name:       "scope errors stream in traversal order",
			args:       []string{"check", "--format", "plain", "testdata/redeclared.json"},
			wantCode:   3,
			wantStdout: "Parsing successful.\n",
			wantStderr: "Error: redeclared variable 'x'\nError: undeclared variable 'y'\nSemantic analysis unsuccessful.\n",
		},
		{
			name:       "short format",
			args:       []string{"check", "--format", "short", "testdata/redeclared.json"},
			wantCode:   3,
			wantStdout: "Parsing successful.\n" +
				"testdata/redeclared.json:2:3: ERROR SEM3002: redeclared variable 'x'\n" +
				"testdata/redeclared.json:3:10: ERROR SEM3005: undeclared variable 'y'\n",
			wantStderr: "Semantic analysis unsuccessful.\n",
		},
		{
			name:       "missing file",
			args:       []string{"check", "--format", "plain", "testdata/nope.json"},
			wantCode:   1,
			wantStderr: "Could not open file 'testdata/nope.json'\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tc.args...)
			if code != tc.wantCode {
				t.Fatalf("exit code %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tc.wantCode, stdout, stderr)
			}
			if stdout != tc.wantStdout {
				t.Fatalf("stdout mismatch:\nwant:\n%s\ngot:\n%s", tc.wantStdout, stdout)
			}
			if stderr != tc.wantStderr {
				t.Fatalf("stderr mismatch:\nwant:\n%s\ngot:\n%s", tc.wantStderr, stderr)
			}
		})
	}
}

func TestCheckDirectoryUsesHighestStatus(t *testing.T) {
	code, stdout, stderr := runCLI(t, "check", "--format", "plain", "--jobs", "2", "testdata")
	if code != 3 {
		t.Fatalf("exit code %d, want 3\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "testdata/clean.yaml: Semantic analysis successful.") {
		t.Fatalf("missing success line:\n%s", stdout)
	}
	if !strings.Contains(stderr, "testdata/redeclared.json: Semantic analysis unsuccessful.") {
		t.Fatalf("missing failure line:\n%s", stderr)
	}
}

func TestCheckJSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "check", "--format", "json", "testdata/redeclared.json")
	if code != 3 {
		t.Fatalf("exit code %d, want 3", code)
	}
	for _, want := range []string{`"code": "SEM3002"`, `"code": "SEM3005"`, `"count": 2`} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("missing %s in:\n%s", want, stdout)
		}
	}
}

func TestDumpCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, "dump", "testdata/redeclared.json")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "program\n├─ extern print\n├─ extern read\n└─ func f @1:1\n") {
		t.Fatalf("unexpected dump:\n%s", stdout)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	dir := t.TempDir()
	mp := filepath.Join(dir, "tree.mp")
	if code, _, stderr := runCLI(t, "convert", "testdata/redeclared.json", mp); code != 0 {
		t.Fatalf("convert to msgpack: %d %s", code, stderr)
	}
	code, _, stderr := runCLI(t, "check", "--format", "plain", mp)
	if code != 3 || !strings.HasPrefix(stderr, "Error: redeclared variable 'x'\n") {
		t.Fatalf("converted tree checked differently: %d\n%s", code, stderr)
	}
}

func TestCheckDirectoryReplaysEveryError(t *testing.T) {
	dir := t.TempDir()
	tree := `{"kind":"program","funcs":[{"kind":"func","name":"main","body":{"kind":"block","stmts":[
{"kind":"asgn","lhs":{"kind":"var","name":"a"},"rhs":{"kind":"var","name":"b"}},
{"kind":"return","expr":{"kind":"var","name":"c"}}]}}]}`
	for _, name := range []string{"one.json", "two.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(tree), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	code, _, stderr := runCLI(t, "check", "--format", "plain", "--max-diagnostics", "1", dir)
	if code != 3 {
		t.Fatalf("exit code %d, want 3\n%s", code, stderr)
	}
	var want strings.Builder
	for _, name := range []string{"one.json", "two.json"} {
		prefix := filepath.Join(dir, name) + ": "
		for _, v := range []string{"a", "b", "c"} {
			want.WriteString(prefix + "Error: undeclared variable '" + v + "'\n")
		}
		want.WriteString(prefix + "Semantic analysis unsuccessful.\n")
	}
	if stderr != want.String() {
		t.Fatalf("stderr mismatch:\nwant:\n%s\ngot:\n%s", want.String(), stderr)
	}
}

func TestCheckJSONHonoursMaxDiagnostics(t *testing.T) {
	code, stdout, _ := runCLI(t, "check", "--format", "json", "--max-diagnostics", "1", "testdata/redeclared.json")
	if code != 3 {
		t.Fatalf("exit code %d, want 3", code)
	}
	for _, want := range []string{`"count": 1`, `"dropped": 1`, `"code": "SEM3002"`} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("missing %s in:\n%s", want, stdout)
		}
	}
}

func TestCheckPathMode(t *testing.T) {
	t.Cleanup(func() {
		_ = checkCmd.Flags().Set("path-mode", "auto")
	})
	code, stdout, _ := runCLI(t, "check", "--format", "short", "--path-mode", "basename", "testdata/redeclared.json")
	if code != 3 {
		t.Fatalf("exit code %d, want 3", code)
	}
	if !strings.Contains(stdout, "\nredeclared.json:2:3: ERROR SEM3002:") {
		t.Fatalf("expected basename paths:\n%s", stdout)
	}

	code, _, stderr := runCLI(t, "check", "--format", "short", "--path-mode", "nearest", "testdata/redeclared.json")
	if code != 1 || !strings.Contains(stderr, "unknown path mode: nearest") {
		t.Fatalf("expected flag error, got %d %q", code, stderr)
	}
}

func TestCheckTracesPhasesAtDetailLevel(t *testing.T) {
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("trace", "")
		_ = rootCmd.PersistentFlags().Set("trace-level", "off")
	})
	out := filepath.Join(t.TempDir(), "check.trace")
	code, _, stderr := runCLI(t, "--trace", out, "--trace-level", "detail", "check", "--format", "plain", "testdata/clean.yaml")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"check_file", "phase.decode (testdata/clean.yaml)", "phase.sema"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("missing %q in trace:\n%s", want, data)
		}
	}
}
