package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"fortio.org/log"

	"corny/internal/config"
	"corny/internal/object"
	"corny/internal/repl"
)

var exitFn = os.Exit

func main() {
	exitFn(runCLI(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer, fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(w, "Usage: corny [flags] [file | -]")
		fmt.Fprintln(w, "  With no file an interactive session reads stdin line by line.")
		fmt.Fprintln(w, "  \"-\" reads a whole program from stdin.")
		fs.PrintDefaults()
	}
}

// runCLI is main without the process exit, returning the exit status.
func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("corny", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config `file`")
	threshold := fs.Int("gc-threshold", 0, "statements between collections (overrides config)")
	level := fs.String("loglevel", "", "log `level` (overrides config)")
	stats := fs.Bool("stats", false, "print heap statistics to stderr on exit")
	expr := fs.String("e", "", "evaluate `program` and exit")
	fs.Usage = usage(stderr, fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	log.SetOutput(stderr)
	cfg, err := resolveConfig(*configPath, *threshold, *level)
	if err != nil {
		log.Errf("%v", err)
		return 1
	}
	lvl, _ := log.ValidateLevel(cfg.Log.Level)
	log.SetLogLevel(lvl)

	var session *repl.Session
	code := 0
	switch {
	case *expr != "":
		session, code = runProgram("<expr>", *expr, stdout, stderr, cfg)
	case fs.NArg() == 0:
		session = repl.NewSession(cfg, stdout)
		code = session.Serve(stdin, stdout, stderr, cfg.REPL)
	default:
		name := fs.Arg(0)
		src, err := readSource(name, stdin)
		if err != nil {
			log.Errf("%v", err)
			return 1
		}
		session, code = runProgram(name, src, stdout, stderr, cfg)
	}

	if *stats && session != nil {
		s := session.Stats()
		fmt.Fprintf(stderr, "gc: cycles=%d freed=%d live=%d capacity=%d\n", s.Cycles, s.Freed, s.Live, s.Capacity)
	}
	return code
}

// resolveConfig layers flag overrides on the config file (or the defaults).
func resolveConfig(path string, threshold int, level string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		log.Infof("using config %s", path)
		cfg = loaded
	}
	if threshold != 0 {
		cfg.GC.Threshold = threshold
	}
	if level != "" {
		cfg.Log.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func readSource(name string, stdin io.Reader) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

// runProgram runs src as one program. A fatal error or an Error value as
// the program's result both exit with status 1.
func runProgram(name, src string, stdout, stderr io.Writer, cfg config.Config) (*repl.Session, int) {
	log.LogVf("running %s (%d bytes)", name, len(src))
	result, session, err := repl.RunSource(name, src, stdout, stderr, cfg)
	if err != nil {
		return session, 1
	}
	if _, failed := result.(*object.Error); failed {
		return session, 1
	}
	return session, 0
}
