// Package render draws a dawg.Snapshot as text that graph tools
// understand: Graphviz DOT or a Mermaid state diagram.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	dawg "github.com/milden6/mindict"
)

// Format names an output syntax.
type Format string

const (
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
)

// ParseFormat accepts "dot", "gv" or "mermaid", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "dot", "gv", "graphviz":
		return FormatDOT, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	}
	return "", fmt.Errorf("render: unknown format %q", s)
}

// Options configures the diagram.
type Options struct {
	// Name is the graph name used by DOT output.
	Name string
}

// Write renders snap in the given format.
func Write(w io.Writer, snap dawg.Snapshot, format Format, opts Options) error {
	var out string
	switch format {
	case FormatDOT:
		out = DOT(snap, opts)
	case FormatMermaid:
		out = Mermaid(snap)
	default:
		return fmt.Errorf("render: unknown format %q", format)
	}
	_, err := io.WriteString(w, out)
	return err
}

// DOT renders snap as a left-to-right Graphviz digraph. Final states are
// bold and the start state is labelled "-> id".
func DOT(snap dawg.Snapshot, opts Options) string {
	name := opts.Name
	if name == "" {
		name = "Minimal Dictionary Automaton"
	}

	final := make(map[dawg.StateID]bool, len(snap.Final))
	for _, id := range snap.Final {
		final[id] = true
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", dotQuote(name))
	buf.WriteString("\trankdir=LR;\n")

	for _, id := range snap.States {
		buf.WriteByte('\t')
		buf.WriteString(strconv.Itoa(int(id)))

		var attrs []string
		if id == snap.Start {
			attrs = append(attrs, "label="+dotQuote("-> "+strconv.Itoa(int(id))))
		}
		if final[id] {
			attrs = append(attrs, "style=bold", "shape=doublecircle")
		}
		if len(attrs) > 0 {
			buf.WriteString(" [")
			buf.WriteString(strings.Join(attrs, ", "))
			buf.WriteByte(']')
		}
		buf.WriteString(";\n")
	}

	for _, t := range snap.Transitions {
		fmt.Fprintf(&buf, "\t%d -> %d [label=%s];\n", t.From, t.To, dotQuote(" "+string(t.Symbol)+" "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Mermaid renders snap as a Mermaid stateDiagram-v2.
func Mermaid(snap dawg.Snapshot) string {
	var buf bytes.Buffer
	buf.WriteString("stateDiagram-v2\n")
	buf.WriteString("\tdirection LR\n")
	fmt.Fprintf(&buf, "\t[*] --> s%d\n", snap.Start)

	for _, t := range snap.Transitions {
		fmt.Fprintf(&buf, "\ts%d --> s%d : %s\n", t.From, t.To, mermaidLabel(t.Symbol))
	}
	for _, id := range snap.Final {
		fmt.Fprintf(&buf, "\ts%d --> [*]\n", id)
	}
	return buf.String()
}

func dotQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, ch := range s {
		if ch == '"' || ch == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(ch)
	}
	sb.WriteByte('"')
	return sb.String()
}

// mermaidLabel escapes characters that end a Mermaid transition label.
func mermaidLabel(ch rune) string {
	switch ch {
	case ':', ';', '#', '\n':
		return "#" + strconv.Itoa(int(ch)) + ";"
	case ' ':
		return "#32;"
	}
	return string(ch)
}
