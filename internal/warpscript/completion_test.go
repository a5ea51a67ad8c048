package warpscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCompletion(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		function string
		expected CompletionKind
	}{
		{name: "constant", tags: []string{"constant"}, function: "PI", expected: CompletionEnum},
		{name: "reducer function", tags: []string{"reducer"}, function: "reducer.mean", expected: CompletionInterface},
		{name: "REDUCE itself", tags: []string{"reducer"}, function: "REDUCE", expected: CompletionFunction},
		{name: "mapper function", tags: []string{"mapper"}, function: "mapper.delta", expected: CompletionInterface},
		{name: "MAP itself", tags: []string{"mapper"}, function: "MAP", expected: CompletionFunction},
		{name: "bucketizer", tags: []string{"bucketize"}, function: "bucketizer.last", expected: CompletionInterface},
		{name: "BUCKETIZE itself", tags: []string{"bucketize"}, function: "BUCKETIZE", expected: CompletionFunction},
		{name: "filter", tags: []string{"filter"}, function: "filter.byclass", expected: CompletionInterface},
		{name: "FILTER itself", tags: []string{"filter"}, function: "FILTER", expected: CompletionFunction},
		{name: "control", tags: []string{"control"}, function: "IFT", expected: CompletionKeyword},
		{name: "operators", tags: []string{"operators"}, function: "+", expected: CompletionMethod},
		{name: "stack", tags: []string{"stack"}, function: "DUP", expected: CompletionModule},
		{name: "untagged", tags: nil, function: "NOW", expected: CompletionFunction},
		{name: "first rule wins", tags: []string{"stack", "constant"}, function: "X", expected: CompletionEnum},
		{name: "tag substring", tags: []string{"flow control"}, function: "WHILE", expected: CompletionKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyCompletion(tt.tags, tt.function))
		})
	}
}
