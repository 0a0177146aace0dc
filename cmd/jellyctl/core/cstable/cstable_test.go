package cstable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
)

func TestLightTable(t *testing.T) {
	buf := &bytes.Buffer{}

	tbl := NewLight(buf, "no")
	tbl.SetHeaders("Name", "Id")
	tbl.SetAlignment(text.AlignLeft, text.AlignRight)
	tbl.AddRow("alice", "a1")
	tbl.AddRow("bob", "b2")
	tbl.Render()

	out := buf.String()
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "b2")
	// no escape sequences when color is off
	assert.NotContains(t, out, "\x1b[")
}

func TestMaxWidth(t *testing.T) {
	render := func(width int) string {
		buf := &bytes.Buffer{}
		tbl := NewLight(buf, "no")
		tbl.SetHeaders("Text")
		tbl.SetMaxWidth(width)
		tbl.AddRow(strings.Repeat("word ", 20))
		tbl.Render()

		return buf.String()
	}

	wrapped := render(defaultMaxWidth)
	unwrapped := render(0)

	assert.Greater(t, strings.Count(wrapped, "\n"), strings.Count(unwrapped, "\n"))
	assert.Contains(t, unwrapped, strings.TrimSpace(strings.Repeat("word ", 20)))
}

func TestColorize(t *testing.T) {
	assert.True(t, colorize("yes"))
	assert.False(t, colorize("no"))
}

func TestNewLightPanicsOnNilWriter(t *testing.T) {
	assert.Panics(t, func() { NewLight(nil, "no") })
}
