package model

// TokenKind classifies a statement token.
type TokenKind string

const (
	KindWord      TokenKind = "word"      // Bare word up to the next separator
	KindString    TokenKind = "string"    // Single or double quoted literal
	KindMultiline TokenKind = "multiline" // <' ... '> block
)

// Token is a single statement of a WarpScript source.
type Token struct {
	Text  string    `json:"text"`
	Kind  TokenKind `json:"kind"`
	Start int       `json:"start"` // Byte offset of the first character
	End   int       `json:"end"`   // Byte offset after the last character
	Line  int       `json:"line"`  // 1-based line of Start
	Col   int       `json:"col"`   // 1-based byte column of Start
}

// Directive is the name of an inline header option.
type Directive string

const (
	DirectiveEndpoint   Directive = "endpoint"
	DirectivePreview    Directive = "preview"
	DirectiveTimeUnit   Directive = "timeunit"
	DirectiveTheme      Directive = "theme"
	DirectiveLocalMacro Directive = "localmacrosubstitution"
)

// DirectiveSet maps recognized directives to their value.
// A directive that was not found has no key.
type DirectiveSet map[Directive]string

// Preview modes accepted by the preview directive.
const (
	PreviewNone  = "none"
	PreviewGTS   = "gts"
	PreviewImage = "image"
	PreviewJSON  = "json"
)

// Result tabs of the editor widget.
const (
	ResultsTab = 0
	ImageTab   = 2
)

// Analysis bundles everything extracted from one source snapshot.
type Analysis struct {
	Source       string       `json:"source,omitempty"`
	Directives   DirectiveSet `json:"directives"`
	Statements   []Token      `json:"statements"`
	Repositories []string     `json:"repositories"`
	Endpoint     string       `json:"endpoint"` // Directive endpoint, or the default
	Preview      string       `json:"preview"`
}

// DocParams is the payload of a "jump to documentation" request.
type DocParams struct {
	Endpoint  string   `json:"endpoint"`
	MacroName string   `json:"macroName"`
	WFRepos   []string `json:"wfRepos"`
}

// ExecutionPlan holds the settings an execution request would use.
type ExecutionPlan struct {
	URL       string `json:"url"`
	Preview   string `json:"preview"`
	TimeUnit  string `json:"timeUnit,omitempty"`
	ResultTab int    `json:"resultTab"`
}

// FileResult pairs an analysis with the file it came from.
type FileResult struct {
	Path     string   `json:"path"`
	Analysis Analysis `json:"analysis"`
	Err      string   `json:"error,omitempty"`
}
