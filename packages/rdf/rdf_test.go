package rdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNTriples(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"iri", IRI("http://example.org/a"), "<http://example.org/a>"},
		{"iri with space", IRI("http://example.org/a b"), `<http://example.org/a\u0020b>`},
		{"blank node", BlankNode("b1"), "_:b1"},
		{"plain literal", NewLiteral("hello"), `"hello"`},
		{"escaped literal", NewLiteral("say \"hi\"\n"), `"say \"hi\"\n"`},
		{"lang literal", NewLangLiteral("chat", "fr"), `"chat"@fr`},
		{"typed literal", NewTypedLiteral("42", "http://www.w3.org/2001/XMLSchema#int"), `"42"^^<http://www.w3.org/2001/XMLSchema#int>`},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NTriples(tt.value))
		})
	}
}

func TestStatement_NQuad(t *testing.T) {
	st := Statement{S: IRI("http://ex/s"), P: "http://ex/p", O: NewLiteral("o")}
	assert.Equal(t, `<http://ex/s> <http://ex/p> "o" .`, st.NQuad())

	st.G = IRI("http://ex/g")
	assert.Equal(t, `<http://ex/s> <http://ex/p> "o" <http://ex/g> .`, st.NQuad())
}

func TestWriteNQuads(t *testing.T) {
	var buf bytes.Buffer
	err := WriteNQuads(&buf, []Statement{
		{S: IRI("http://ex/a"), P: "http://ex/p", O: BlankNode("x")},
		{S: BlankNode("x"), P: "http://ex/q", O: NewLiteral("1")},
	})

	require.NoError(t, err)
	assert.Equal(t, "<http://ex/a> <http://ex/p> _:x .\n_:x <http://ex/q> \"1\" .\n", buf.String())
}

func TestTupleResult_Column(t *testing.T) {
	r := &TupleResult{
		Vars: []string{"s", "o"},
		Rows: []BindingSet{
			{"s": IRI("http://ex/1"), "o": NewLiteral("a")},
			{"s": IRI("http://ex/2")},
		},
	}

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []Value{NewLiteral("a"), nil}, r.Column("o"))
	assert.True(t, r.Rows[0].Has("o"))
	assert.False(t, r.Rows[1].Has("o"))

	var empty *TupleResult
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Column("s"))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "uri", IRI("x").Kind().String())
	assert.Equal(t, "bnode", BlankNode("x").Kind().String())
	assert.Equal(t, "literal", NewLiteral("x").Kind().String())
}
