package warpscript

import (
	"fmt"
	"sort"
	"strings"

	"wsparse/internal/model"
)

// GenerateReport renders a plain text report for the analysed files.
// Verbose adds the full statement listing with positions.
func GenerateReport(results []model.FileResult, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "wsparse %s report (%d script", model.Version, len(results))
	if len(results) != 1 {
		b.WriteString("s")
	}
	b.WriteString(")\n")

	for _, res := range results {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("=", 60))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s\n", res.Path)
		b.WriteString(strings.Repeat("=", 60))
		b.WriteString("\n")

		if res.Err != "" {
			fmt.Fprintf(&b, "%s %s\n", model.IconError, res.Err)
			continue
		}

		writeAnalysis(&b, res.Analysis, verbose)
	}

	return b.String()
}

func writeAnalysis(b *strings.Builder, a model.Analysis, verbose bool) {
	fmt.Fprintf(b, "Endpoint:   %s\n", orDash(a.Endpoint))
	fmt.Fprintf(b, "Preview:    %s\n", a.Preview)
	fmt.Fprintf(b, "Statements: %d\n", len(a.Statements))

	b.WriteString("\nDirectives:\n")
	if len(a.Directives) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, name := range SortedDirectives(a.Directives) {
		fmt.Fprintf(b, "  %s %s = %s\n", model.IconDirective, name, a.Directives[name])
	}

	b.WriteString("\nRepositories:\n")
	if len(a.Repositories) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, repo := range a.Repositories {
		fmt.Fprintf(b, "  %d. %s %s\n", i+1, model.IconRepo, repo)
	}

	if !verbose {
		return
	}

	b.WriteString("\nStatements:\n")
	for i, tok := range a.Statements {
		fmt.Fprintf(b, "  %4d %s %d:%d  %s\n", i, KindIcon(tok.Kind), tok.Line, tok.Col, oneLine(tok.Text))
	}
}

// SortedDirectives returns the directive names of set in a stable order.
func SortedDirectives(set model.DirectiveSet) []model.Directive {
	names := make([]model.Directive, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i] < names[j]
	})
	return names
}

// KindIcon maps a token kind to its report icon.
func KindIcon(kind model.TokenKind) string {
	switch kind {
	case model.KindString:
		return model.IconString
	case model.KindMultiline:
		return model.IconMultiline
	}
	return model.IconWord
}

func oneLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimRight(s[:i], "\r") + " ..."
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
