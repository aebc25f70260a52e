// Package repl ties the lexer, parser and evaluator together into a session
// that keeps its global environment (and heap) across inputs.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"fortio.org/log"

	"corny/internal/config"
	"corny/internal/diag"
	"corny/internal/evaluator"
	"corny/internal/gc"
	"corny/internal/lexer"
	"corny/internal/object"
	"corny/internal/parser"
)

const (
	Program = "CornyLang"
	Version = "1.0.1"
	welcome = "Please feel free to type some valid commands or expressions!"
	logo    = `
        ,\
        \\\,_
         \' ,\
    __,.-" =__)
  ."        )
,_/   ,    \/\_
\_|    )_-\ \_-'
'-----' '--'`
)

// FatalError is a lexical or syntax error. The input it came from was not
// evaluated at all.
type FatalError struct {
	Err parser.ParseError
}

func (e *FatalError) Error() string {
	return "parse error: " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Diagnostic converts e for rendering against its source.
func (e *FatalError) Diagnostic() diag.CodeError {
	return diag.CodeError{
		Kind:    "Parse error",
		Message: e.Err.Message,
		Line:    e.Err.Line,
		Column:  e.Err.Column,
	}
}

// Session is one interpreter instance. Inputs run in the same global
// environment, so bindings made by one Exec are visible to the next.
type Session struct {
	env       *object.Environment
	evaluator *evaluator.Evaluator
}

// NewSession creates a session whose print output goes to out.
func NewSession(cfg config.Config, out io.Writer) *Session {
	return &Session{
		env: object.NewEnvironment(),
		evaluator: evaluator.New(
			evaluator.WithThreshold(cfg.GC.Threshold),
			evaluator.WithOutput(out),
		),
	}
}

// Exec lexes, parses and evaluates src. A runtime error is returned as an
// *object.Error value with a nil error; only front-end failures produce a
// *FatalError.
func (s *Session) Exec(src string) (object.Object, error) {
	l := lexer.New(src)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		log.LogVf("parse failed: %v", errs[0])
		return nil, &FatalError{Err: errs[0]}
	}
	return s.evaluator.Eval(program, s.env), nil
}

// Stats reports the session heap's counters.
func (s *Session) Stats() gc.Stats {
	return s.evaluator.Heap().Stats()
}

// RunSource evaluates src as a single program in a fresh session. Output of
// print and then the program's value (unless it is null) go to out. A fatal
// error is rendered against name on errOut and returned.
func RunSource(name, src string, out, errOut io.Writer, cfg config.Config) (object.Object, *Session, error) {
	session := NewSession(cfg, out)
	result, err := session.Exec(src)
	if err != nil {
		var fatal *FatalError
		if errors.As(err, &fatal) {
			fmt.Fprint(errOut, fatal.Diagnostic().Format(name, src))
		}
		return nil, session, err
	}
	if result.Type() != object.NULL_OBJ {
		fmt.Fprintln(out, result.Inspect())
	}
	return result, session, nil
}

// Banner is the greeting shown when an interactive session starts.
func Banner() string {
	return fmt.Sprintf("%s v%s%s\n%s\n", Program, Version, logo, welcome)
}

// Start runs an interactive session on a fresh Session.
func Start(in io.Reader, out, errOut io.Writer, cfg config.Config) int {
	return NewSession(cfg, out).Serve(in, out, errOut, cfg.REPL)
}

// Serve runs a line-oriented loop: every line is one program and its value
// is printed. "quit" or end of input ends it with status 0. A fatal error is
// reported on errOut and ends it with status 1.
func (s *Session) Serve(in io.Reader, out, errOut io.Writer, opts config.REPL) int {
	if opts.Banner {
		fmt.Fprint(out, Banner())
	}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, opts.Prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				log.Errf("reading input: %v", err)
				return 1
			}
			return 0
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "":
			continue
		case "quit":
			return 0
		case "version":
			fmt.Fprintln(out, Version)
			continue
		}

		result, err := s.Exec(line)
		if err != nil {
			var fatal *FatalError
			if errors.As(err, &fatal) {
				fmt.Fprint(errOut, fatal.Diagnostic().Format("<stdin>", line))
				return 1
			}
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintln(out, result.Inspect())
	}
}
