package grammar

import (
	"unicode/utf8"

	"github.com/zostay/go-rfc5322/internal/scanner"
	"github.com/zostay/go-rfc5322/message/header/encoding"
	"github.com/zostay/go-rfc5322/message/header/field"
	"github.com/zostay/go-rfc5322/parser"
)

// item is a token of unstructured text before whitespace has been sorted out.
// Whitespace items have a nil tok.
type item struct {
	tok    field.Token
	folded bool
}

func run(c byte) func(byte) bool {
	return func(b byte) bool { return b == c }
}

func (g *Grammar) buildUnstructured() {
	space := parser.Map(scanner.FWS(), func(s scanner.Space) item {
		return item{folded: s.Folded}
	})

	word := func(s string) item {
		if cs, enc, text, ok := encoding.ParseWord(s); ok {
			return item{tok: g.encoded(cs, enc, text)}
		}
		return item{tok: field.Text(s)}
	}

	// 8-bit text is only accepted as UTF-8
	text := func(pred func(byte) bool) parser.Parser[item] {
		return parser.Bind(parser.TakeWhile1(pred), func(s string) parser.Parser[item] {
			if !utf8.ValidString(s) {
				return parser.Nothing[item]()
			}
			return parser.Return(word(s))
		})
	}

	// A CR run followed by LF gives its last CR back to the line break.
	crs := parser.Retain(parser.Bind(parser.TakeWhile1(run('\r')), func(s string) parser.Parser[item] {
		return parser.Bind(parser.PeekChar(), func(c int) parser.Parser[item] {
			switch {
			case c != '\n':
				return parser.Return(item{tok: field.CR(len(s))})
			case len(s) == 1:
				return parser.Nothing[item]()
			}
			return parser.Then(parser.Back(1), parser.Return(item{tok: field.CR(len(s) - 1)}))
		})
	}))

	strict := parser.Many(parser.Alt(space, text(scanner.IsUtext)))

	obs := parser.Many(parser.Alt(
		space,
		text(scanner.IsObsUtext),
		parser.Map(parser.TakeWhile1(run('\n')), func(s string) item { return item{tok: field.LF(len(s))} }),
		parser.Map(parser.TakeWhile1(run(0)), func(s string) item { return item{tok: field.NUL(len(s))} }),
		crs,
	))

	eol := parser.Lookahead(crlf)
	g.unstruct = parser.Map(
		parser.Alt(parser.Skip(strict, eol), parser.Skip(obs, eol)),
		compile,
	)
}

// compile drops the whitespace that does not count: leading, trailing, and
// between two encoded words. The rest becomes WSP or FWS.
func compile(items []item) field.Unstructured {
	var out field.Unstructured
	for i, it := range items {
		if it.tok != nil {
			out = append(out, it.tok)
			continue
		}

		if i == 0 || i == len(items)-1 {
			continue
		}

		_, prevEnc := items[i-1].tok.(field.Encoded)
		_, nextEnc := items[i+1].tok.(field.Encoded)
		switch {
		case prevEnc && nextEnc:
		case it.folded:
			out = append(out, field.FWS{})
		default:
			out = append(out, field.WSP{})
		}
	}
	return out
}
