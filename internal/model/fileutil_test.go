package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLineContext(t *testing.T) {
	src := "one\r\ntwo\nthree\nfour\nfive"

	t.Run("middle line", func(t *testing.T) {
		ctx := GetLineContext(src, 3)
		assert.Equal(t, LineContext{
			Before2:    "one",
			Before1:    "two",
			Target:     "three",
			After1:     "four",
			After2:     "five",
			LineNumber: 3,
			HasBefore2: true,
			HasBefore1: true,
			HasAfter1:  true,
			HasAfter2:  true,
		}, ctx)
	})

	t.Run("first line", func(t *testing.T) {
		ctx := GetLineContext(src, 1)
		assert.Equal(t, "one", ctx.Target)
		assert.False(t, ctx.HasBefore1)
		assert.False(t, ctx.HasBefore2)
		assert.True(t, ctx.HasAfter2)
	})

	t.Run("last line", func(t *testing.T) {
		ctx := GetLineContext(src, 5)
		assert.Equal(t, "five", ctx.Target)
		assert.False(t, ctx.HasAfter1)
		assert.Empty(t, ctx.ErrorMsg)
	})

	t.Run("out of range", func(t *testing.T) {
		ctx := GetLineContext(src, 6)
		assert.Equal(t, "Line 6 out of range (script has 5 lines)", ctx.ErrorMsg)
		assert.Empty(t, ctx.Target)

		ctx = GetLineContext(src, 0)
		assert.NotEmpty(t, ctx.ErrorMsg)
	})
}
