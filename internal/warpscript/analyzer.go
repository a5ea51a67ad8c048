package warpscript

import (
	"wsparse/internal/model"
)

// Analyzer runs the directive scanner, the tokenizer and the repository
// extractor over a script. It holds no per-call state and may be shared.
type Analyzer struct {
	DefaultEndpoint string
	tokenizer       Tokenizer
}

// NewAnalyzer creates an Analyzer. defaultEndpoint is used when a script
// has no endpoint directive.
func NewAnalyzer(defaultEndpoint string, skipComments bool) *Analyzer {
	return &Analyzer{
		DefaultEndpoint: defaultEndpoint,
		tokenizer:       Tokenizer{SkipComments: skipComments},
	}
}

// Analyze extracts directives, statements and repositories from src.
func (a *Analyzer) Analyze(src string) model.Analysis {
	directives := ExtractDirectives(src)
	tokens := a.tokenizer.Tokenize(src)

	return model.Analysis{
		Source:       src,
		Directives:   directives,
		Statements:   tokens,
		Repositories: ExtractRepositories(Texts(tokens)),
		Endpoint:     a.endpoint(directives),
		Preview:      preview(directives),
	}
}

// DocParams builds the documentation lookup payload for word.
func (a *Analyzer) DocParams(src, word string) model.DocParams {
	analysis := a.Analyze(src)
	return model.DocParams{
		Endpoint:  analysis.Endpoint,
		MacroName: word,
		WFRepos:   analysis.Repositories,
	}
}

// PlanExecution resolves the settings an execution of src would use.
// currentTab is the result tab currently selected in the editor.
func (a *Analyzer) PlanExecution(src string, currentTab int) model.ExecutionPlan {
	directives := ExtractDirectives(src)
	plan := model.ExecutionPlan{
		URL:       a.endpoint(directives),
		Preview:   preview(directives),
		TimeUnit:  directives[model.DirectiveTimeUnit],
		ResultTab: currentTab,
	}

	switch {
	case plan.Preview == model.PreviewImage:
		plan.ResultTab = model.ImageTab
	case currentTab == model.ImageTab:
		// On the next execution, go back to the results tab.
		plan.ResultTab = model.ResultsTab
	}

	return plan
}

func (a *Analyzer) endpoint(directives model.DirectiveSet) string {
	if url, ok := directives[model.DirectiveEndpoint]; ok {
		return url
	}
	return a.DefaultEndpoint
}

func preview(directives model.DirectiveSet) string {
	if mode, ok := directives[model.DirectivePreview]; ok {
		return mode
	}
	return model.PreviewNone
}
