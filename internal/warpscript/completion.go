package warpscript

import "strings"

// CompletionKind is the editor category of a completion item.
type CompletionKind string

const (
	CompletionEnum      CompletionKind = "enum"
	CompletionInterface CompletionKind = "interface"
	CompletionKeyword   CompletionKind = "keyword"
	CompletionMethod    CompletionKind = "method"
	CompletionModule    CompletionKind = "module"
	CompletionFunction  CompletionKind = "function"
)

type completionRule struct {
	tag    string
	except string // Function name the rule does not apply to
	kind   CompletionKind
}

// Evaluated top to bottom, first match wins.
var completionRules = []completionRule{
	{tag: "constant", kind: CompletionEnum},
	{tag: "reducer", except: "REDUCE", kind: CompletionInterface},
	{tag: "mapper", except: "MAP", kind: CompletionInterface},
	{tag: "bucketize", except: "BUCKETIZE", kind: CompletionInterface},
	{tag: "filter", except: "FILTER", kind: CompletionInterface},
	{tag: "control", kind: CompletionKeyword},
	{tag: "operators", kind: CompletionMethod},
	{tag: "stack", kind: CompletionModule},
}

// ClassifyCompletion picks the completion category of the function name
// from its documentation tags.
func ClassifyCompletion(tags []string, name string) CompletionKind {
	joined := strings.Join(tags, " ")
	for _, rule := range completionRules {
		if strings.Contains(joined, rule.tag) && (rule.except == "" || name != rule.except) {
			return rule.kind
		}
	}
	return CompletionFunction
}
