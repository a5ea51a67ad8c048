package warpscript

import (
	"strings"

	"wsparse/internal/model"
)

// Tokenizer splits WarpScript source into statements.
//
// By default comments are tokenized like any other text, so statement
// indices line up with a plain whitespace split of the buffer. A
// WF.ADDREPO written inside a comment is therefore still seen by
// ExtractRepositories. Set SkipComments to drop "//", "#" and "/* */"
// comments before they become statements.
type Tokenizer struct {
	SkipComments bool
}

// Tokenize splits src with the default (comment preserving) tokenizer.
func Tokenize(src string) []model.Token {
	return Tokenizer{}.Tokenize(src)
}

// Statements returns the statement texts of src in source order.
func Statements(src string) []string {
	return Texts(Tokenize(src))
}

// Texts extracts the text of each token.
func Texts(tokens []model.Token) []string {
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.Text
	}
	return texts
}

// Tokenize splits src into tokens. It never fails: unterminated literals
// are closed at the end of their line (or of the text for multi-line
// strings).
func (t Tokenizer) Tokenize(src string) []model.Token {
	tokens := []model.Token{}
	line, lineStart := 1, 0

	// advance moves the line counters over src[from:to].
	advance := func(from, to int) {
		for j := from; j < to; j++ {
			if src[j] == '\n' {
				line++
				lineStart = j + 1
			}
		}
	}

	i := 0
	for i < len(src) {
		c := src[i]
		if isSeparator(c) {
			advance(i, i+1)
			i++
			continue
		}

		if t.SkipComments {
			if end, ok := commentEnd(src, i); ok {
				advance(i, end)
				i = end
				continue
			}
		}

		start := i
		kind := model.KindWord
		switch {
		case strings.HasPrefix(src[i:], "<'"):
			kind = model.KindMultiline
			i = multilineEnd(src, i)
		case c == '\'' || c == '"':
			kind = model.KindString
			i = stringEnd(src, i)
		default:
			i = wordEnd(src, i)
		}

		tokens = append(tokens, model.Token{
			Text:  src[start:i],
			Kind:  kind,
			Start: start,
			End:   i,
			Line:  line,
			Col:   start - lineStart + 1,
		})
		advance(start, i)
	}

	return tokens
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// wordEnd returns the offset just after the bare word starting at i.
func wordEnd(src string, i int) int {
	for i < len(src) && !isSeparator(src[i]) {
		i++
	}
	return i
}

// stringEnd returns the offset just after the quoted literal starting at i.
// Strings cannot span lines; an unterminated one stops before the newline.
func stringEnd(src string, i int) int {
	quote := src[i]
	j := i + 1
	for j < len(src) && src[j] != quote && src[j] != '\n' {
		j++
	}
	if j < len(src) && src[j] == quote {
		return j + 1
	}
	if j > i+1 && src[j-1] == '\r' {
		j--
	}
	return j
}

// multilineEnd returns the offset just after the "'>" line closing the
// multi-line string opened at i, or len(src) when it is never closed.
func multilineEnd(src string, i int) int {
	nl := strings.IndexByte(src[i:], '\n')
	if nl < 0 {
		return len(src)
	}

	pos := i + nl + 1
	for pos < len(src) {
		lineEnd := strings.IndexByte(src[pos:], '\n')
		if lineEnd < 0 {
			lineEnd = len(src)
		} else {
			lineEnd += pos
		}

		if current := src[pos:lineEnd]; strings.TrimSpace(current) == "'>" {
			return pos + strings.Index(current, "'>") + 2
		}
		pos = lineEnd + 1
	}
	return len(src)
}

// commentEnd reports whether a comment starts at i and where it stops.
func commentEnd(src string, i int) (int, bool) {
	rest := src[i:]
	switch {
	case strings.HasPrefix(rest, "//"), rest[0] == '#':
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			return i + nl, true
		}
		return len(src), true
	case strings.HasPrefix(rest, "/*"):
		if end := strings.Index(rest[2:], "*/"); end >= 0 {
			return i + 2 + end + 2, true
		}
		return len(src), true
	}
	return 0, false
}
