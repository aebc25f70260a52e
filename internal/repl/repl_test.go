package repl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"corny/internal/config"
	"corny/internal/object"
	"corny/internal/parser"
)

func quietConfig() config.Config {
	cfg := config.Default()
	cfg.REPL.Banner = false
	cfg.REPL.Prompt = ""
	return cfg
}

// TestScripts runs every testdata/*.corny program and compares what it
// prints with the matching .out file.
func TestScripts(t *testing.T) {
	scripts, err := filepath.Glob(filepath.Join("testdata", "*.corny"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(scripts) == 0 {
		t.Fatalf("no scripts found in testdata")
	}

	for _, script := range scripts {
		name := filepath.Base(script)
		t.Run(strings.TrimSuffix(name, ".corny"), func(t *testing.T) {
			src, err := os.ReadFile(script)
			if err != nil {
				t.Fatalf("read %s: %v", script, err)
			}
			want, err := os.ReadFile(strings.TrimSuffix(script, ".corny") + ".out")
			if err != nil {
				t.Fatalf("read golden for %s: %v", script, err)
			}

			var out bytes.Buffer
			_, _, _ = RunSource(name, string(src), &out, &out, quietConfig())
			if got := out.String(); got != string(want) {
				t.Fatalf("output mismatch for %s\ngot=\n%s\nwant=\n%s", name, got, want)
			}
		})
	}
}

func TestSessionKeepsBindings(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(quietConfig(), &out)

	if _, err := s.Exec("let x = 40;"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if _, err := s.Exec("let add = fn(a) { a + x };"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	result, err := s.Exec("add(2)")
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got := result.Inspect(); got != "42" {
		t.Fatalf("result got=%q want=%q", got, "42")
	}
}

func TestExecRuntimeErrorIsAValue(t *testing.T) {
	s := NewSession(quietConfig(), &bytes.Buffer{})
	result, err := s.Exec("missing + 1")
	if err != nil {
		t.Fatalf("runtime errors must not be fatal, got %v", err)
	}
	errObj, ok := result.(*object.Error)
	if !ok {
		t.Fatalf("result is not Error. got=%T (%+v)", result, result)
	}
	if errObj.Message != "variable not defined: missing" {
		t.Fatalf("message got=%q want=%q", errObj.Message, "variable not defined: missing")
	}
}

func TestExecFatalError(t *testing.T) {
	s := NewSession(quietConfig(), &bytes.Buffer{})
	_, err := s.Exec("let x 1")
	if err == nil {
		t.Fatalf("expected a fatal error")
	}

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("error is not *FatalError. got=%T", err)
	}
	var pe parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("FatalError should unwrap to parser.ParseError")
	}
	if pe.Line != 1 || pe.Column != 7 {
		t.Fatalf("position got=%d:%d want=1:7", pe.Line, pe.Column)
	}
	if !strings.HasPrefix(err.Error(), "parse error: expected next token to be =") {
		t.Fatalf("Error() got=%q", err.Error())
	}

	d := fatal.Diagnostic()
	if d.Kind != "Parse error" || d.Line != 1 || d.Column != 7 {
		t.Fatalf("diagnostic got=%+v", d)
	}
}

func TestSessionCollects(t *testing.T) {
	cfg := quietConfig()
	cfg.GC.Threshold = 2
	s := NewSession(cfg, &bytes.Buffer{})

	for i := 0; i < 20; i++ {
		if _, err := s.Exec("let tmp = [1, 2, 3]; size(tmp);"); err != nil {
			t.Fatalf("Exec: %v", err)
		}
	}
	stats := s.Stats()
	if stats.Cycles == 0 {
		t.Fatalf("expected at least one collection, got %+v", stats)
	}
	if stats.Freed == 0 {
		t.Fatalf("expected garbage to be freed, got %+v", stats)
	}
}

func TestStart(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{
			name:     "values are printed",
			input:    "let x = 2;\nx * 3\n\"hi\"\n",
			wantCode: 0,
			wantOut:  "2\n6\n\"hi\"\n",
		},
		{
			name:     "runtime error keeps the session alive",
			input:    "1 + \"a\"\n5\n",
			wantCode: 0,
			wantOut:  "ERROR: incompatible data types: NUMBER, STRING\n5\n",
		},
		{
			name:     "quit stops reading",
			input:    "1\nquit\n2\n",
			wantCode: 0,
			wantOut:  "1\n",
		},
		{
			name:     "blank lines are skipped",
			input:    "\n   \n7\n",
			wantCode: 0,
			wantOut:  "7\n",
		},
		{
			name:     "version command",
			input:    "version\n",
			wantCode: 0,
			wantOut:  Version + "\n",
		},
		{
			name:     "fatal error ends the session",
			input:    "1\nlet = 3\n4\n",
			wantCode: 1,
			wantOut:  "1\n",
			wantErr:  "Parse error: expected next token to be IDENT, got = instead\n  --> <stdin>:1:5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			code := Start(strings.NewReader(tt.input), &out, &errOut, quietConfig())
			if code != tt.wantCode {
				t.Fatalf("exit code got=%d want=%d", code, tt.wantCode)
			}
			if out.String() != tt.wantOut {
				t.Fatalf("stdout got=%q want=%q", out.String(), tt.wantOut)
			}
			if !strings.HasPrefix(errOut.String(), tt.wantErr) {
				t.Fatalf("stderr got=%q want prefix %q", errOut.String(), tt.wantErr)
			}
		})
	}
}

func TestStartBannerAndPrompt(t *testing.T) {
	cfg := config.Default()
	var out bytes.Buffer
	code := Start(strings.NewReader("1\n"), &out, &bytes.Buffer{}, cfg)
	if code != 0 {
		t.Fatalf("exit code got=%d want=0", code)
	}
	got := out.String()
	if !strings.HasPrefix(got, Banner()) {
		t.Fatalf("missing banner, got=%q", got)
	}
	rest := strings.TrimPrefix(got, Banner())
	if rest != ">> 1\n>> " {
		t.Fatalf("prompt output got=%q want=%q", rest, ">> 1\n>> ")
	}
	if !strings.Contains(Banner(), Program+" v"+Version) {
		t.Fatalf("banner should name the program and version, got=%q", Banner())
	}
}
