package rdf

import (
	"io"
	"strings"
)

// Statement is a triple with an optional graph. A nil G means the default graph.
type Statement struct {
	S Value
	P IRI
	O Value
	G Value
}

// NQuad renders the statement as a single N-Quads line terminated by " .".
func (s Statement) NQuad() string {
	var b strings.Builder
	b.WriteString(NTriples(s.S))
	b.WriteByte(' ')
	b.WriteString(NTriples(s.P))
	b.WriteByte(' ')
	b.WriteString(NTriples(s.O))
	if s.G != nil {
		b.WriteByte(' ')
		b.WriteString(NTriples(s.G))
	}
	b.WriteString(" .")
	return b.String()
}

// WriteNQuads writes statements one per line.
func WriteNQuads(w io.Writer, stmts []Statement) error {
	for _, st := range stmts {
		if _, err := io.WriteString(w, st.NQuad()+"\n"); err != nil {
			return err
		}
	}
	return nil
}
