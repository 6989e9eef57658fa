package kaleido

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	msgDefinition = "Found a definition!"
	msgExtern     = "Found an extern!"
	msgTopLevel   = "Found a top level expression!"
)

type Config struct {
	// EmitIR prints the module's LLVM IR to Output at the end of input.
	EmitIR bool
	// Evaluate runs every top level expression and prints its value.
	Evaluate bool
	// Output receives emitted IR, evaluated values and builtin output.
	Output io.Writer
	// Prompt, when set, receives a "ready> " prompt before each top level
	// construct.
	Prompt io.Writer
	Logger *slog.Logger
}

// Compiler is the top level driver: it pulls tokens, dispatches each top level
// construct to the parser and code generator, and resynchronizes on errors.
type Compiler struct {
	config   Config
	reporter Reporter
	logger   *slog.Logger

	backend *LLVMBackend
	codegen *CodeGen
	eval    *Evaluator
}

func NewCompiler(config Config, reporter Reporter) *Compiler {
	if config.Output == nil {
		config.Output = io.Discard
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	backend := NewLLVMBackend()
	return &Compiler{
		config:   config,
		reporter: reporter,
		logger:   logger,
		backend:  backend,
		codegen:  NewCodeGen(backend),
		eval:     NewEvaluator(config.Output),
	}
}

func (c *Compiler) Backend() *LLVMBackend {
	return c.backend
}

func (c *Compiler) Evaluator() *Evaluator {
	return c.eval
}

func (c *Compiler) Compile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.CompileFromReader(f)
}

// CompileFromReader runs the driver loop until the end of reader. Syntax and
// lowering errors are reported and one token is discarded; only a failure to
// read is returned.
func (c *Compiler) CompileFromReader(reader io.Reader) error {
	lexer := NewLexer(reader)
	parser := NewParser(lexer)

	c.prompt()
	parser.Advance()

	for {
		switch tok := parser.Current(); {
		case tok.Typ == TokenEOF:
			if err := lexer.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			if c.config.EmitIR {
				fmt.Fprint(c.config.Output, c.backend.String())
			}

			return nil
		case tok.Is(';'):
			parser.Advance()
			continue
		case tok.Typ == TokenDef:
			c.handleDefinition(parser)
		case tok.Typ == TokenExtern:
			c.handleExtern(parser)
		default:
			c.handleTopLevelExpr(parser)
		}

		c.prompt()
	}
}

func (c *Compiler) prompt() {
	if c.config.Prompt != nil {
		fmt.Fprint(c.config.Prompt, "ready> ")
	}
}

// skip reports a parse or lowering error and discards one token, so the loop
// always makes progress.
func (c *Compiler) skip(p *Parser, err error) {
	c.reporter.Report(err)
	p.Advance()
}

func (c *Compiler) handleDefinition(p *Parser) {
	fn, err := p.ParseDefinition()
	if err != nil {
		c.skip(p, err)
		return
	}
	c.logger.Debug("parsed definition", "ast", fn)

	f, err := c.codegen.Function(fn)
	if err != nil {
		c.skip(p, err)
		return
	}
	c.logger.Debug("generated function", "name", f.Name(), "ir", f.LLString())

	c.reporter.Info(msgDefinition)
}

func (c *Compiler) handleExtern(p *Parser) {
	proto, err := p.ParseExtern()
	if err != nil {
		c.skip(p, err)
		return
	}
	c.logger.Debug("parsed extern", "proto", proto)

	if _, err := c.codegen.Prototype(proto); err != nil {
		c.skip(p, err)
		return
	}

	c.reporter.Info(msgExtern)
}

func (c *Compiler) handleTopLevelExpr(p *Parser) {
	fn, err := p.ParseTopLevelExpr()
	if err != nil {
		c.skip(p, err)
		return
	}
	c.logger.Debug("parsed top level expression", "ast", fn.Body)

	f, err := c.codegen.Function(fn)
	if err != nil {
		c.skip(p, err)
		return
	}
	c.logger.Debug("generated function", "name", f.Name(), "ir", f.LLString())

	c.reporter.Info(msgTopLevel)

	if !c.config.Evaluate {
		return
	}

	v, err := c.eval.Call(f)
	if err != nil {
		c.reporter.Report(err)
		return
	}

	fmt.Fprintf(c.config.Output, "Evaluated to %f\n", v)
}
