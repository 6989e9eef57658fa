package kaleido

import (
	"fmt"
	"io"
)

// Reporter displays diagnostics to the user, keeping reporting separate from
// the code that finds them.
type Reporter interface {
	Report(err error)
	Info(msg string)
	HadError() bool
}

// SimpleReporter writes one line per diagnostic to the inner writer.
type SimpleReporter struct {
	writer io.Writer
	hadErr bool
}

func NewSimpleReporter(writer io.Writer) *SimpleReporter {
	return &SimpleReporter{writer: writer}
}

func (r *SimpleReporter) Report(err error) {
	r.hadErr = true
	fmt.Fprintf(r.writer, "Error: %v\n", err)
}

func (r *SimpleReporter) Info(msg string) {
	fmt.Fprintln(r.writer, msg)
}

func (r *SimpleReporter) HadError() bool {
	return r.hadErr
}
