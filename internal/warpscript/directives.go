package warpscript

import (
	"net/url"
	"strings"

	"wsparse/internal/model"
)

// ExtractDirectives scans the leading comment block of src for header
// directives written as "// @key=value" or "// @key value".
//
// Blank lines are skipped and the scan stops at the first line that is not a
// "//" comment. When a directive appears more than once the last occurrence
// wins. Unknown keys and values that do not fit their directive are dropped.
func ExtractDirectives(src string) model.DirectiveSet {
	set := model.DirectiveSet{}

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "//") {
			// No more comments at the beginning of the script.
			break
		}

		name, value, ok := parseDirectiveLine(trimmed)
		if !ok {
			continue
		}
		if normalized, ok := normalizeDirective(name, value); ok {
			set[name] = normalized
		}
	}

	return set
}

// parseDirectiveLine splits a "// @key value" comment into key and value.
func parseDirectiveLine(comment string) (model.Directive, string, bool) {
	body := strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	if !strings.HasPrefix(body, "@") {
		return "", "", false
	}
	body = body[1:]

	keyLen := 0
	for keyLen < len(body) && isKeyChar(body[keyLen]) {
		keyLen++
	}
	if keyLen == 0 {
		return "", "", false
	}
	key, rest := body[:keyLen], body[keyLen:]

	// The key must be followed by "=", whitespace or nothing.
	if rest != "" && rest[0] != '=' && rest[0] != ' ' && rest[0] != '\t' {
		return "", "", false
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "="))
	if rest == "" {
		return "", "", false
	}

	return model.Directive(strings.ToLower(key)), rest, true
}

func isKeyChar(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// normalizeDirective checks value against the directive it belongs to.
func normalizeDirective(name model.Directive, value string) (string, bool) {
	switch name {
	case model.DirectiveEndpoint:
		if strings.ContainsAny(value, " \t") {
			return "", false
		}
		if _, err := url.ParseRequestURI(value); err != nil {
			return "", false
		}
		return value, true

	case model.DirectivePreview:
		return normalizePreview(value)

	case model.DirectiveTimeUnit:
		switch unit := strings.ToLower(value); unit {
		case "us", "ms", "ns":
			return unit, true
		}

	case model.DirectiveTheme:
		if theme := strings.ToLower(value); !strings.ContainsAny(theme, " \t") {
			return theme, true
		}

	case model.DirectiveLocalMacro:
		switch flag := strings.ToLower(value); flag {
		case "true", "false":
			return flag, true
		}
	}

	return "", false
}

// normalizePreview maps a preview value to one of the preview modes.
// Only the first word counts and "imag" is enough to select images.
func normalizePreview(value string) (string, bool) {
	mode := strings.ToLower(strings.Fields(value)[0])
	switch {
	case strings.HasPrefix(mode, "none"):
		return model.PreviewNone, true
	case mode == "gts":
		return model.PreviewGTS, true
	case strings.HasPrefix(mode, "imag"):
		return model.PreviewImage, true
	case strings.HasPrefix(mode, "json"):
		return model.PreviewJSON, true
	}
	return "", false
}
