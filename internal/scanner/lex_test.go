package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-rfc5322/internal/scanner"
	"github.com/zostay/go-rfc5322/parser"
)

func feedAll[T any](t *testing.T, p parser.Parser[T], data string) (T, int, error) {
	t.Helper()

	want, wantN, wantErr := parser.Feed(p, []byte(data), len(data)+1)
	for chunk := 1; chunk <= len(data); chunk++ {
		got, n, err := parser.Feed(p, []byte(data), chunk)
		assert.Equal(t, want, got, "chunk %d", chunk)
		assert.Equal(t, wantN, n, "chunk %d", chunk)
		assert.Equal(t, wantErr, err, "chunk %d", chunk)
	}
	return want, wantN, wantErr
}

func TestFWS(t *testing.T) {
	t.Parallel()

	sp, n, err := feedAll(t, scanner.FWS(), "  \r\n\tx")
	assert.NoError(t, err)
	assert.Equal(t, scanner.Space{Present: true, Folded: true}, sp)
	assert.Equal(t, 5, n)

	sp, n, err = feedAll(t, scanner.FWS(), " x")
	assert.NoError(t, err)
	assert.Equal(t, scanner.Space{Present: true}, sp)
	assert.Equal(t, 1, n)

	_, _, err = feedAll(t, scanner.FWS(), "x")
	assert.Error(t, err)

	// a line break not followed by whitespace ends the field
	sp, n, err = feedAll(t, scanner.OptFWS(), "\r\nx")
	assert.NoError(t, err)
	assert.Equal(t, scanner.Space{}, sp)
	assert.Equal(t, 0, n)
}

func TestCFWS(t *testing.T) {
	t.Parallel()

	sp, n, err := feedAll(t, scanner.CFWS(), " (a comment (nested \\) ) here)\r\n x")
	assert.NoError(t, err)
	assert.Equal(t, scanner.Space{Present: true, Folded: true}, sp)
	assert.Equal(t, 33, n)

	sp, n, err = feedAll(t, scanner.CFWS(), "(c)x")
	assert.NoError(t, err)
	assert.Equal(t, scanner.Space{Present: true}, sp)
	assert.Equal(t, 3, n)

	_, _, err = feedAll(t, scanner.CFWS(), "(unclosed")
	assert.Error(t, err)

	sp, n, err = feedAll(t, scanner.OptCFWS(), "x")
	assert.NoError(t, err)
	assert.False(t, sp.Present)
	assert.Equal(t, 0, n)
}

func TestQuotedString(t *testing.T) {
	t.Parallel()

	s, n, err := feedAll(t, scanner.QuotedString(), " \"a\\\"b \r\n c\" (x) ;")
	assert.NoError(t, err)
	assert.Equal(t, "a\"b  c", s)
	assert.Equal(t, 17, n)

	s, _, err = feedAll(t, scanner.QuotedText(), "\"\"")
	assert.NoError(t, err)
	assert.Equal(t, "", s)

	_, _, err = feedAll(t, scanner.QuotedText(), "\"open")
	assert.Error(t, err)
}

func TestAtoms(t *testing.T) {
	t.Parallel()

	s, n, err := feedAll(t, scanner.DotAtom(), " (c) john.doe (d) x")
	assert.NoError(t, err)
	assert.Equal(t, "john.doe", s)
	assert.Equal(t, 18, n)

	s, n, err = feedAll(t, scanner.DotAtomText(), "a.b.")
	assert.NoError(t, err)
	assert.Equal(t, "a.b", s)
	assert.Equal(t, 3, n)

	s, n, err = feedAll(t, scanner.Atom(), "caf\xc3\xa9 ")
	assert.NoError(t, err)
	assert.Equal(t, "caf\xc3\xa9", s)
	assert.Equal(t, 6, n)

	_, _, err = feedAll(t, scanner.AtomText(), ".")
	assert.Error(t, err)
}

func TestDomainLiteral(t *testing.T) {
	t.Parallel()

	s, n, err := feedAll(t, scanner.DomainLiteral(), "[127.0.0.1]")
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1", s)
	assert.Equal(t, 11, n)

	s, _, err = feedAll(t, scanner.LiteralText(), "[IPv6:: \\]]")
	assert.NoError(t, err)
	assert.Equal(t, "IPv6:: \\]", s)
}

func TestQuotedPair(t *testing.T) {
	t.Parallel()

	c, n, err := feedAll(t, scanner.QuotedPair(), "\\\x00")
	assert.NoError(t, err)
	assert.Equal(t, byte(0), c)
	assert.Equal(t, 2, n)
}
