package scanner

import (
	"strings"

	"github.com/zostay/go-rfc5322/parser"
)

// Space describes a run of folding whitespace and comments. Present is set
// when anything at all was consumed. Folded is set when the run crossed a line
// break.
type Space struct {
	Present bool
	Folded  bool
}

// Join merges two adjacent runs.
func (s Space) Join(o Space) Space {
	return Space{
		Present: s.Present || o.Present,
		Folded:  s.Folded || o.Folded,
	}
}

// fold is the unfolded text of one whitespace run.
type fold struct {
	text   string
	folded bool
}

var (
	crlf = parser.String("\r\n")

	// *WSP *(CRLF 1*WSP) covers both FWS and obs-FWS
	optFWS = parser.Bind(parser.TakeWhile(IsWSP), func(lead string) parser.Parser[fold] {
		return parser.Map(
			parser.Many(parser.Then(crlf, parser.TakeWhile1(IsWSP))),
			func(more []string) fold {
				return fold{
					text:   lead + strings.Join(more, ""),
					folded: len(more) > 0,
				}
			},
		)
	})

	fws = parser.Bind(optFWS, func(f fold) parser.Parser[Space] {
		if f.text == "" {
			return parser.Nothing[Space]()
		}
		return parser.Return(Space{Present: true, Folded: f.folded})
	})

	fwsText = parser.Bind(optFWS, func(f fold) parser.Parser[string] {
		if f.text == "" {
			return parser.Nothing[string]()
		}
		return parser.Return(f.text)
	})

	quotedPair = parser.Then(parser.Char('\\'), parser.Satisfy(func(byte) bool { return true }))

	comment = parser.Fix(func(self parser.Parser[parser.Unit]) parser.Parser[parser.Unit] {
		return parser.Between(
			parser.Char('('),
			parser.Discard(parser.Many(parser.Alt(
				parser.Discard(fws),
				parser.Discard(parser.TakeWhile1(func(c byte) bool { return IsCtext(c) || IsObsNoWSCTL(c) })),
				parser.Discard(quotedPair),
				self,
			))),
			parser.Char(')'),
		)
	})

	optCFWS = parser.Map(
		parser.Many(parser.Alt(
			fws,
			parser.Map(comment, func(parser.Unit) Space { return Space{Present: true} }),
		)),
		func(ss []Space) Space {
			var s Space
			for _, o := range ss {
				s = s.Join(o)
			}
			return s
		},
	)

	cfws = parser.Bind(optCFWS, func(s Space) parser.Parser[Space] {
		if !s.Present {
			return parser.Nothing[Space]()
		}
		return parser.Return(s)
	})

	atomText = parser.TakeWhile1(IsAtext)

	dotAtomText = parser.Map(
		parser.SepBy1(parser.Char('.'), atomText),
		func(parts []string) string { return strings.Join(parts, ".") },
	)

	quotedText = parser.Between(
		parser.Char('"'),
		parser.Map(
			parser.Many(parser.Alt(
				fwsText,
				parser.TakeWhile1(func(c byte) bool { return IsQtext(c) || IsObsNoWSCTL(c) }),
				parser.Map(quotedPair, func(c byte) string { return string([]byte{c}) }),
			)),
			func(parts []string) string { return strings.Join(parts, "") },
		),
		parser.Char('"'),
	)

	literalText = parser.Between(
		parser.Char('['),
		parser.Map(
			parser.Many(parser.Alt(
				fwsText,
				parser.TakeWhile1(func(c byte) bool { return IsDtext(c) || IsObsNoWSCTL(c) }),
				parser.Map(quotedPair, func(c byte) string { return string([]byte{'\\', c}) }),
			)),
			func(parts []string) string { return strings.Join(parts, "") },
		),
		parser.Char(']'),
	)
)

// CRLF matches a line break.
func CRLF() parser.Parser[string] { return crlf }

// FWS matches folding whitespace, obsolete forms included. It fails when there
// is no whitespace at the cursor.
func FWS() parser.Parser[Space] { return fws }

// OptFWS is FWS that succeeds with an empty Space when there is no whitespace.
func OptFWS() parser.Parser[Space] {
	return parser.Map(optFWS, func(f fold) Space {
		return Space{Present: f.text != "", Folded: f.folded}
	})
}

// Comment matches a parenthesized comment, nested comments included.
func Comment() parser.Parser[parser.Unit] { return comment }

// CFWS matches a run of folding whitespace and comments. It fails when the run
// is empty.
func CFWS() parser.Parser[Space] { return cfws }

// OptCFWS is CFWS that succeeds with an empty Space when the run is empty.
func OptCFWS() parser.Parser[Space] { return optCFWS }

// QuotedPair matches a backslash and the character it escapes, returning the
// escaped character.
func QuotedPair() parser.Parser[byte] { return quotedPair }

// AtomText matches 1*atext.
func AtomText() parser.Parser[string] { return atomText }

// DotAtomText matches 1*atext *("." 1*atext).
func DotAtomText() parser.Parser[string] { return dotAtomText }

// QuotedText matches a quoted string without the surrounding CFWS and returns
// its content with folds removed and quoted pairs unescaped.
func QuotedText() parser.Parser[string] { return quotedText }

// LiteralText matches a domain literal without the surrounding CFWS and
// returns the text between the brackets with folds removed. Quoted pairs are
// kept escaped.
func LiteralText() parser.Parser[string] { return literalText }

// Token wraps p in optional CFWS on both sides.
func Token[T any](p parser.Parser[T]) parser.Parser[T] {
	return parser.Between(optCFWS, p, optCFWS)
}

// Atom matches [CFWS] 1*atext [CFWS].
func Atom() parser.Parser[string] { return Token(atomText) }

// DotAtom matches [CFWS] dot-atom-text [CFWS].
func DotAtom() parser.Parser[string] { return Token(dotAtomText) }

// QuotedString matches [CFWS] quoted-string [CFWS] and returns the content.
func QuotedString() parser.Parser[string] { return Token(quotedText) }

// DomainLiteral matches [CFWS] domain-literal [CFWS] and returns the text
// between the brackets.
func DomainLiteral() parser.Parser[string] { return Token(literalText) }
