package astio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"minic/internal/ast"
	"minic/internal/testkit"
)

func loadFile(t *testing.T, name string) (*ast.Builder, ast.ProgramID) {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	b, root, err := Load(data, format)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	if err := testkit.CheckTreeInvariants(b, root); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	return b, root
}

func TestLoadJSON(t *testing.T) {
	b, root := loadFile(t, "param_redeclared.json")
	prog := b.Program(root)
	if len(prog.Externs) != 2 || len(prog.Funcs) != 1 {
		t.Fatalf("unexpected program shape %+v", prog)
	}
	fn, ok := b.Items.Fn(prog.Funcs[0])
	if !ok || fn.Name != "f" || fn.Param != "x" || fn.ParamPos.Col != 11 {
		t.Fatalf("unexpected function %+v", fn)
	}
	body := b.Stmts.Block(fn.Body)
	if body == nil || len(body.Stmts) != 2 {
		t.Fatalf("unexpected body %+v", body)
	}
	if decl := b.Stmts.Decl(body.Stmts[0]); decl == nil || decl.Name != "x" {
		t.Fatalf("expected decl x, got %+v", decl)
	}
	if pos := b.Stmts.Get(body.Stmts[0]).Pos; pos.Line != 4 || pos.Col != 3 {
		t.Fatalf("position lost: %v", pos)
	}
}

func TestLoadYAML(t *testing.T) {
	b, root := loadFile(t, "sibling_blocks.yaml")
	fn, _ := b.Items.Fn(b.Program(root).Funcs[0])
	body := b.Stmts.Block(fn.Body)
	cond := b.Stmts.If(body.Stmts[0])
	if cond == nil || !cond.Else.IsValid() {
		t.Fatalf("expected if/else, got %+v", cond)
	}
	asgn := b.Stmts.Assign(b.Stmts.Block(cond.Else).Stmts[1])
	if c := b.Exprs.Const(asgn.RHS); c == nil || c.Value != 2 {
		t.Fatalf("expected constant 2, got %+v", c)
	}
}

func TestEncodeDecodeAcrossFormats(t *testing.T) {
	b, root := loadFile(t, "sibling_blocks.yaml")
	want := Raise(b, root)

	for _, format := range []Format{FormatJSON, FormatYAML, FormatMsgpack} {
		var buf bytes.Buffer
		if err := Encode(&buf, b, root, format); err != nil {
			t.Fatalf("%s: encode: %v", format, err)
		}
		nb, nroot, err := Load(buf.Bytes(), format)
		if err != nil {
			t.Fatalf("%s: load: %v", format, err)
		}
		var a, z bytes.Buffer
		_ = Encode(&a, b, root, FormatJSON)
		_ = Encode(&z, nb, nroot, FormatJSON)
		if a.String() != z.String() {
			t.Fatalf("%s: tree changed:\nwant:\n%s\ngot:\n%s", format, a.String(), z.String())
		}
	}
	if want.Funcs[0].Param.Name != "x" {
		t.Fatalf("unexpected raised param %+v", want.Funcs[0].Param)
	}
}

func TestEmptyDocument(t *testing.T) {
	for _, tc := range []struct {
		data   string
		format Format
	}{
		{"null", FormatJSON},
		{"", FormatJSON},
		{"", FormatYAML},
		{"null\n", FormatYAML},
	} {
		b, root, err := Load([]byte(tc.data), tc.format)
		if err != nil {
			t.Fatalf("%s %q: %v", tc.format, tc.data, err)
		}
		if b == nil || root.IsValid() {
			t.Fatalf("%s %q: expected an absent root", tc.format, tc.data)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want error
		msg  string
	}{
		{
			name: "unknown kind",
			data: `{"kind":"program","funcs":[{"kind":"func","name":"f","body":{"kind":"goto"}}]}`,
			want: ErrUnknownKind,
		},
		{
			name: "root is not a program",
			data: `{"kind":"block"}`,
			want: ErrMalformed,
		},
		{
			name: "missing body",
			data: `{"kind":"program","funcs":[{"kind":"func","name":"f"}]}`,
			want: ErrMalformed,
			msg:  "missing body",
		},
		{
			name: "expression as statement",
			data: `{"kind":"program","funcs":[{"kind":"func","name":"f","body":{"kind":"var","name":"x"}}]}`,
			want: ErrMalformed,
		},
		{
			name: "missing constant value",
			data: `{"kind":"program","funcs":[{"kind":"func","name":"f","body":{"kind":"return","expr":{"kind":"cnst"}}}]}`,
			want: ErrMalformed,
			msg:  "missing value",
		},
		{
			name: "bad operator",
			data: `{"kind":"program","funcs":[{"kind":"func","name":"f","body":{"kind":"return","expr":{"kind":"bexpr","op":"%","lhs":{"kind":"cnst","value":1},"rhs":{"kind":"cnst","value":2}}}}]}`,
			want: ErrMalformed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Load([]byte(tc.data), FormatJSON)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if tc.msg != "" && !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("expected %q in %v", tc.msg, err)
			}
		})
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	if _, _, err := Load([]byte(`{"kind":"program","bogus":1}`), FormatJSON); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestIdentifiersAreNFC(t *testing.T) {
	// "é" spelled precomposed in the declaration and decomposed in the use.
	data := `{"kind":"program","funcs":[{"kind":"func","name":"f","body":{"kind":"block","stmts":[
		{"kind":"decl","name":"caf\u00e9"},
		{"kind":"return","expr":{"kind":"var","name":"cafe\u0301"}}]}}]}`
	b, root, err := Load([]byte(data), FormatJSON)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	fn, _ := b.Items.Fn(b.Program(root).Funcs[0])
	body := b.Stmts.Block(fn.Body)
	decl := b.Stmts.Decl(body.Stmts[0]).Name
	ref := b.Exprs.Var(b.Stmts.Return(body.Stmts[1]).Expr).Name
	if decl != ref {
		t.Fatalf("expected identical names, got %q and %q", decl, ref)
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"a.json":     FormatJSON,
		"dir/b.YAML": FormatYAML,
		"c.yml":      FormatYAML,
		"d.mp":       FormatMsgpack,
		"e.msgpack":  FormatMsgpack,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Fatalf("%s: got %v %v", path, got, err)
		}
	}
	if _, err := FormatFromPath("prog.c"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
