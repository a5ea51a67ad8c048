package model

// Version of the wsparse tool.
const Version = "0.3.0"

// Centralized icons for the report and the TUI.
// Using simple single-width characters for consistent terminal rendering
const (
	IconDirective = "@" // Header directive
	IconRepo      = "→" // WF.ADDREPO reference
	IconString    = "'" // String literal statement
	IconMultiline = "¶" // Multi-line string statement
	IconWord      = " " // Plain word, no icon to reduce noise
	IconError     = "✗" // File could not be read
)
