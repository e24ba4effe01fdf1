package rdf

import (
	"fmt"
	"strings"
)

// Kind identifies the type of an RDF value.
type Kind uint8

const (
	KindIRI Kind = iota
	KindBlankNode
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "uri"
	case KindBlankNode:
		return "bnode"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Value is an RDF term bound in a query result or used in a statement.
type Value interface {
	Kind() Kind
	// String returns the lexical value without any N-Triples decoration.
	String() string
}

// IRI is an RDF resource identifier.
type IRI string

func (i IRI) Kind() Kind     { return KindIRI }
func (i IRI) String() string { return string(i) }

// BlankNode is an RDF blank node. ID is stored without the "_:" prefix.
type BlankNode string

func (b BlankNode) Kind() Kind     { return KindBlankNode }
func (b BlankNode) String() string { return string(b) }

// Literal is an RDF literal with an optional datatype or language tag.
type Literal struct {
	Label    string
	Datatype IRI
	Lang     string
}

func (l Literal) Kind() Kind     { return KindLiteral }
func (l Literal) String() string { return l.Label }

// NewLiteral returns a plain literal.
func NewLiteral(label string) Literal {
	return Literal{Label: label}
}

// NewTypedLiteral returns a literal with the given datatype.
func NewTypedLiteral(label string, datatype IRI) Literal {
	return Literal{Label: label, Datatype: datatype}
}

// NewLangLiteral returns a language-tagged literal.
func NewLangLiteral(label, lang string) Literal {
	return Literal{Label: label, Lang: lang}
}

// NTriples renders v in N-Triples term syntax.
func NTriples(v Value) string {
	switch t := v.(type) {
	case IRI:
		return "<" + escapeIRI(string(t)) + ">"
	case BlankNode:
		return "_:" + string(t)
	case Literal:
		s := `"` + escapeLiteral(t.Label) + `"`
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + escapeIRI(string(t.Datatype)) + ">"
		}
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%q", v.String())
	}
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

var iriEscaper = strings.NewReplacer(
	">", `\u003E`,
	"<", `\u003C`,
	`"`, `\u0022`,
	" ", `\u0020`,
)

func escapeIRI(s string) string {
	return iriEscaper.Replace(s)
}
