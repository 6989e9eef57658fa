package kaleido

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleReporterInit(t *testing.T) {
	r := NewSimpleReporter(&strings.Builder{})

	assert.False(t, r.HadError())
}

func TestSimpleReporterReport(t *testing.T) {
	var out strings.Builder
	r := NewSimpleReporter(&out)

	r.Report(errors.New("first"))
	r.Report(&UndefinedError{Kind: SymbolVariable, Name: "x"})

	assert.Equal(t, "Error: first\nError: undefined variable: x\n", out.String())
	assert.True(t, r.HadError())
}

func TestSimpleReporterInfo(t *testing.T) {
	var out strings.Builder
	r := NewSimpleReporter(&out)

	r.Info(msgExtern)

	assert.Equal(t, "Found an extern!\n", out.String())
	assert.False(t, r.HadError())
}
