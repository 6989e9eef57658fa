package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.kaleido.dev/pkg"
	"golang.org/x/term"
)

func main() {
	emitIR := flag.Bool("emit-ir", false, "print the generated LLVM IR at end of input")
	evaluate := flag.Bool("eval", false, "evaluate top level expressions")
	verbose := flag.Bool("v", false, "log parsed constructs and generated IR")
	prompt := flag.String("prompt", "auto", "show the ready> prompt: auto, always or never")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: kaleido [flags] [file]")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(64)
	}

	logger := newLogger(*verbose)
	config := kaleido.Config{
		EmitIR:   *emitIR,
		Evaluate: *evaluate,
		Output:   os.Stdout,
		Logger:   logger,
	}

	interactive := flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd()))
	switch *prompt {
	case "always":
		config.Prompt = os.Stderr
	case "auto":
		if interactive {
			config.Prompt = os.Stderr
		}
	case "never":
	default:
		fmt.Fprintf(os.Stderr, "invalid -prompt value %q\n", *prompt)
		os.Exit(64)
	}

	reporter := kaleido.NewSimpleReporter(os.Stderr)
	c := kaleido.NewCompiler(config, reporter)

	var err error
	if flag.NArg() == 1 {
		err = c.Compile(flag.Arg(0))
	} else {
		err = c.CompileFromReader(os.Stdin)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Reported errors were recovered from; they do not change the exit status.
	if reporter.HadError() {
		logger.Info("finished with errors")
	}
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
