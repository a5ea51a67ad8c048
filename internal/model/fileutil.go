package model

import (
	"fmt"
	"strings"
)

// LineContext is one script line with up to two neighbours on each side.
type LineContext struct {
	Before2    string
	Before1    string
	Target     string
	After1     string
	After2     string
	LineNumber int // 1-based
	HasBefore2 bool
	HasBefore1 bool
	HasAfter1  bool
	HasAfter2  bool
	ErrorMsg   string // Set when LineNumber is outside the script
}

// GetLineContext returns line lineNumber of source and its neighbours.
// CRLF line endings are accepted.
func GetLineContext(source string, lineNumber int) LineContext {
	ctx := LineContext{LineNumber: lineNumber}

	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	if lineNumber < 1 || lineNumber > len(lines) {
		ctx.ErrorMsg = fmt.Sprintf("Line %d out of range (script has %d lines)", lineNumber, len(lines))
		return ctx
	}

	line := func(n int) (string, bool) {
		if n < 1 || n > len(lines) {
			return "", false
		}
		return lines[n-1], true
	}

	ctx.Target = lines[lineNumber-1]
	ctx.Before2, ctx.HasBefore2 = line(lineNumber - 2)
	ctx.Before1, ctx.HasBefore1 = line(lineNumber - 1)
	ctx.After1, ctx.HasAfter1 = line(lineNumber + 1)
	ctx.After2, ctx.HasAfter2 = line(lineNumber + 2)

	return ctx
}
