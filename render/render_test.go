package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dawg "github.com/milden6/mindict"
)

func snapshot(t *testing.T, words ...string) dawg.Snapshot {
	t.Helper()
	d, err := dawg.Build(words)
	require.NoError(t, err)
	return d.Snapshot()
}

func TestDOT(t *testing.T) {
	out := DOT(snapshot(t, "ab", "cb"), Options{})

	assert.True(t, strings.HasPrefix(out, `digraph "Minimal Dictionary Automaton" {`))
	assert.Contains(t, out, "rankdir=LR;")
	assert.Contains(t, out, `0 [label="-> 0"];`)
	assert.Contains(t, out, "2 [style=bold, shape=doublecircle];")
	assert.Contains(t, out, `0 -> 1 [label=" a "];`)
	assert.Contains(t, out, `0 -> 1 [label=" c "];`)
	assert.Contains(t, out, `1 -> 2 [label=" b "];`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestDOTQuotes(t *testing.T) {
	out := DOT(snapshot(t, `"`, `\`), Options{Name: `my "graph"`})
	assert.Contains(t, out, `digraph "my \"graph\"" {`)
	assert.Contains(t, out, `[label=" \" "]`)
	assert.Contains(t, out, `[label=" \\ "]`)
}

func TestMermaid(t *testing.T) {
	out := Mermaid(snapshot(t, "a:", "b"))

	assert.True(t, strings.HasPrefix(out, "stateDiagram-v2\n"))
	assert.Contains(t, out, "[*] --> s0")
	assert.Contains(t, out, "s1 --> s2 : #58;")
	assert.Contains(t, out, "s2 --> [*]")
}

func TestWrite(t *testing.T) {
	snap := snapshot(t, "x")

	var sb strings.Builder
	require.NoError(t, Write(&sb, snap, FormatMermaid, Options{}))
	assert.Equal(t, Mermaid(snap), sb.String())

	assert.Error(t, Write(&sb, snap, Format("svg"), Options{}))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("GV")
	require.NoError(t, err)
	assert.Equal(t, FormatDOT, f)

	f, err = ParseFormat("mermaid")
	require.NoError(t, err)
	assert.Equal(t, FormatMermaid, f)

	_, err = ParseFormat("png")
	assert.Error(t, err)
}
