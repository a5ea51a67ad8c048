package warpscript

import (
	"strings"

	"wsparse/internal/model"
)

// OffsetAt converts a 1-based line and byte column into an offset of src.
func OffsetAt(src string, line, col int) (int, bool) {
	if line < 1 || col < 1 {
		return 0, false
	}

	offset := 0
	for l := 1; l < line; l++ {
		nl := strings.IndexByte(src[offset:], '\n')
		if nl < 0 {
			return 0, false
		}
		offset += nl + 1
	}

	lineEnd := strings.IndexByte(src[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(src) - offset
	}
	if col-1 > lineEnd {
		return 0, false
	}
	return offset + col - 1, true
}

// WordAt returns the word under the given 1-based position, the way the
// editor resolves the identifier for a ctrl-click. A position right after
// a word still selects it. String literals and blanks give "".
func WordAt(src string, line, col int) string {
	offset, ok := OffsetAt(src, line, col)
	if !ok {
		return ""
	}

	for _, tok := range Tokenize(src) {
		if tok.Start > offset {
			break
		}
		if offset <= tok.End {
			if tok.Kind != model.KindWord {
				return ""
			}
			return tok.Text
		}
	}
	return ""
}
