package parser_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-rfc5322/parser"
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

// sweep runs p over data once for every chunk size from 1 to one past the
// length of the data and checks every run agrees.
func sweep[T any](t *testing.T, p parser.Parser[T], data string) (T, int, error) {
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

func parseError(t *testing.T, err error) *parser.Error {
	t.Helper()

	var perr *parser.Error
	require.True(t, errors.As(err, &perr), "expected *parser.Error, got %v", err)
	return perr
}

func TestString(t *testing.T) {
	t.Parallel()

	v, n, err := sweep(t, parser.String("hello"), "hello world")
	assert.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.Equal(t, 5, n)

	_, _, err = sweep(t, parser.String("hello"), "help")
	perr := parseError(t, err)
	assert.Equal(t, parser.UnexpectedString, perr.Kind)
	assert.Equal(t, "hello", perr.String)
	assert.Equal(t, 0, perr.Offset)
}

func TestRepeat(t *testing.T) {
	t.Parallel()

	v, n, err := sweep(t, parser.Repeat(2, 3, isDigit), "12345")
	assert.NoError(t, err)
	assert.Equal(t, "123", v)
	assert.Equal(t, 3, n)

	v, n, err = sweep(t, parser.TakeWhile(isDigit), "2024 and more")
	assert.NoError(t, err)
	assert.Equal(t, "2024", v)
	assert.Equal(t, 4, n)

	v, n, err = sweep(t, parser.TakeWhile(isDigit), "")
	assert.NoError(t, err)
	assert.Equal(t, "", v)
	assert.Equal(t, 0, n)

	_, _, err = sweep(t, parser.Repeat(2, 3, isDigit), "1x")
	perr := parseError(t, err)
	assert.Equal(t, parser.UnexpectedChar, perr.Kind)
	assert.Equal(t, byte('x'), perr.Char)
	assert.Equal(t, 1, perr.Offset)

	_, _, err = sweep(t, parser.TakeWhile1(isDigit), "")
	perr = parseError(t, err)
	assert.Equal(t, parser.EndOfInput, perr.Kind)
}

func TestAlt(t *testing.T) {
	t.Parallel()

	p := parser.Alt(parser.String("abc"), parser.String("abd"))
	v, n, err := sweep(t, p, "abd")
	assert.NoError(t, err)
	assert.Equal(t, "abd", v)
	assert.Equal(t, 3, n)

	// the failure that got farthest wins
	q := parser.Alt(
		parser.Then(parser.Char('a'), parser.Char('b')),
		parser.Char('x'),
	)
	_, _, err = sweep(t, q, "ac")
	perr := parseError(t, err)
	assert.Equal(t, parser.ExpectedChar, perr.Kind)
	assert.Equal(t, byte('b'), perr.Char)
	assert.Equal(t, 1, perr.Offset)
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, 2, perr.Column)
}

func TestTryCommit(t *testing.T) {
	t.Parallel()

	p := parser.TryCommit(
		parser.Char('a'),
		func(byte) parser.Parser[string] {
			return parser.Map(parser.Char('b'), func(c byte) string { return "a" + string(c) })
		},
		parser.String("ac"),
	)

	v, _, err := sweep(t, p, "ab")
	assert.NoError(t, err)
	assert.Equal(t, "ab", v)

	// the prefix matched, so the fallback is never tried
	_, _, err = sweep(t, p, "ac")
	perr := parseError(t, err)
	assert.Equal(t, parser.ExpectedChar, perr.Kind)
	assert.Equal(t, 1, perr.Offset)

	q := parser.TryCommit(
		parser.Char('a'),
		func(byte) parser.Parser[string] { return parser.Return("a") },
		parser.String("xc"),
	)
	v, n, err := sweep(t, q, "xc")
	assert.NoError(t, err)
	assert.Equal(t, "xc", v)
	assert.Equal(t, 2, n)
}

func TestMany(t *testing.T) {
	t.Parallel()

	v, n, err := sweep(t, parser.Many(parser.Char('a')), "aaab")
	assert.NoError(t, err)
	assert.Equal(t, []byte("aaa"), v)
	assert.Equal(t, 3, n)

	// an element that consumes nothing stops the repetition
	w, n, err := sweep(t, parser.Many(parser.TakeWhile(isDigit)), "abc")
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, w)
	assert.Equal(t, 0, n)
}

func TestMany_OneChunk(t *testing.T) {
	t.Parallel()

	data := []byte(strings.Repeat("ab", 500_000))

	ab := parser.Then(parser.Char('a'), parser.Char('b'))
	v, n, err := parser.Feed(parser.Many(ab), data, len(data))
	require.NoError(t, err)
	assert.Len(t, v, 500_000)
	assert.Equal(t, len(data), n)

	data = append(data, ';')
	v, n, err = parser.Feed(parser.ManyTill(ab, parser.Char(';')), data, len(data))
	require.NoError(t, err)
	assert.Len(t, v, 500_000)
	assert.Equal(t, len(data), n)
}

func TestManyTill(t *testing.T) {
	t.Parallel()

	p := parser.ManyTill(parser.Char('a'), parser.Char(';'))

	v, n, err := sweep(t, p, "aa;")
	assert.NoError(t, err)
	assert.Equal(t, []byte("aa"), v)
	assert.Equal(t, 3, n)

	_, _, err = sweep(t, p, "aab;")
	perr := parseError(t, err)
	assert.Equal(t, parser.ExpectedChar, perr.Kind)
	assert.Equal(t, byte('a'), perr.Char)
	assert.Equal(t, 2, perr.Offset)
}

func TestSepBy1(t *testing.T) {
	t.Parallel()

	p := parser.SepBy1(parser.Char(','), parser.TakeWhile1(isAlpha))
	v, n, err := sweep(t, p, "a,bc,d,")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "bc", "d"}, v)
	assert.Equal(t, 6, n)
}

func TestFix(t *testing.T) {
	t.Parallel()

	// depth of balanced parens
	depth := parser.Fix(func(self parser.Parser[int]) parser.Parser[int] {
		return parser.Option(0,
			parser.Map(
				parser.Between(parser.Char('('), self, parser.Char(')')),
				func(d int) int { return d + 1 },
			),
		)
	})

	v, n, err := sweep(t, depth, "((()))x")
	assert.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 6, n)
}

func TestLookaheadAndNot(t *testing.T) {
	t.Parallel()

	v, n, err := sweep(t, parser.Then(parser.Lookahead(parser.Char('a')), parser.String("ab")), "ab")
	assert.NoError(t, err)
	assert.Equal(t, "ab", v)
	assert.Equal(t, 2, n)

	c, n, err := sweep(t, parser.Then(parser.Not(parser.Char('b')), parser.Char('a')), "a")
	assert.NoError(t, err)
	assert.Equal(t, byte('a'), c)
	assert.Equal(t, 1, n)

	_, _, err = sweep(t, parser.Then(parser.Not(parser.Char('a')), parser.Char('a')), "a")
	assert.Error(t, err)

	m, _, err := sweep(t, parser.Maybe(parser.Char('z')), "a")
	assert.NoError(t, err)
	assert.Nil(t, m)
}

func TestBack(t *testing.T) {
	t.Parallel()

	p := parser.Retain(parser.Then(
		parser.String("abc"),
		parser.Then(parser.Back(1), parser.Char('c')),
	))
	v, n, err := sweep(t, p, "abc")
	assert.NoError(t, err)
	assert.Equal(t, byte('c'), v)
	assert.Equal(t, 3, n)
}

func TestErrorPositionAfterCompaction(t *testing.T) {
	t.Parallel()

	p := parser.Then(parser.String("ab\r\ncd\r\n"), parser.Char('x'))
	_, _, err := sweep(t, p, "ab\r\ncd\r\nzz")
	perr := parseError(t, err)
	assert.Equal(t, 8, perr.Offset)
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, 1, perr.Column)
	assert.Equal(t, `expected 'x' at line 3, column 1 (offset 8)`, perr.Error())
}

func TestRun(t *testing.T) {
	t.Parallel()

	in := parser.NewInput(1)
	st := parser.Run(parser.Alt(parser.String("ax"), parser.String("ab")), in)

	rd, isRead := st.(parser.Read[string])
	require.True(t, isRead)
	assert.Equal(t, 1, rd.Capacity)

	in.Write([]byte("a"))
	st = rd.Continue(1, parser.Incomplete)
	rd, isRead = st.(parser.Read[string])
	require.True(t, isRead)
	assert.Equal(t, 1, in.Marks())

	in.Write([]byte("b"))
	st = rd.Continue(1, parser.Incomplete)
	done, isDone := st.(parser.Done[string])
	require.True(t, isDone)
	assert.Equal(t, "ab", done.Value)
	assert.Equal(t, 2, done.Consumed)
	assert.Equal(t, 0, in.Marks())
	assert.Equal(t, 2, in.Pos())
	assert.Equal(t, 0, in.Buffered())
}

func TestRunCompleteWithoutBytes(t *testing.T) {
	t.Parallel()

	in := parser.NewInput(0)
	assert.Equal(t, parser.DefaultChunkSize, in.Capacity())

	st := parser.Run(parser.TakeWhile(isDigit), in)
	rd, isRead := st.(parser.Read[string])
	require.True(t, isRead)

	in.Write([]byte("12"))
	st = rd.Continue(2, parser.Incomplete)
	rd, isRead = st.(parser.Read[string])
	require.True(t, isRead)

	st = rd.Continue(0, parser.Complete)
	done, isDone := st.(parser.Done[string])
	require.True(t, isDone)
	assert.Equal(t, "12", done.Value)
	assert.True(t, in.Complete())
}

func TestInputCompaction(t *testing.T) {
	t.Parallel()

	in := parser.NewInput(4)
	st := parser.Run(parser.Many(parser.Char('a')), in)
	for i := 0; i < 10; i++ {
		rd, isRead := st.(parser.Read[[]byte])
		require.True(t, isRead, fmt.Sprintf("round %d", i))
		in.Write([]byte("aaaa"))
		st = rd.Continue(4, parser.Incomplete)

		// only the bytes after the element mark are kept
		assert.LessOrEqual(t, in.Retained(), 4)
	}

	rd := st.(parser.Read[[]byte])
	in.Write([]byte("b"))
	st = rd.Continue(1, parser.Complete)
	done, isDone := st.(parser.Done[[]byte])
	require.True(t, isDone)
	assert.Len(t, done.Value, 40)
	assert.Equal(t, 40, done.Consumed)
	assert.Equal(t, 1, in.Buffered())
}
