package grammar

import (
	"github.com/zostay/go-rfc5322/internal/scanner"
	"github.com/zostay/go-rfc5322/message/header/encoding"
	"github.com/zostay/go-rfc5322/message/header/field"
	"github.com/zostay/go-rfc5322/parser"
)

func ptr[T any](v T) *T { return &v }

// listOf parses the modern comma-separated list of elem and, failing that, the
// obsolete list with empty elements, each followed by end.
func listOf[T, E any](elem parser.Parser[T], end parser.Parser[E]) parser.Parser[[]T] {
	return parser.Alt(
		parser.Skip(parser.SepBy1(parser.Char(','), elem), end),
		parser.Skip(obsList(elem), end),
	)
}

// obsList is *([CFWS] ",") elem *("," [elem / CFWS]). Empty slots are dropped.
func obsList[T any](elem parser.Parser[T]) parser.Parser[[]T] {
	slot := parser.Option[*T](nil, parser.Alt(
		parser.Map(elem, ptr[T]),
		parser.Map(scanner.CFWS(), func(scanner.Space) *T { return nil }),
	))

	return parser.Then(
		parser.Many(parser.Then(scanner.OptCFWS(), parser.Char(','))),
		parser.Bind(elem, func(first T) parser.Parser[[]T] {
			return parser.Map(
				parser.Many(parser.Then(parser.Char(','), slot)),
				func(rest []*T) []T {
					return append([]T{first}, compact(rest)...)
				},
			)
		}),
	)
}

func compact[T any](ps []*T) []T {
	out := make([]T, 0, len(ps))
	for _, p := range ps {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func (g *Grammar) buildAddress() {
	g.word = parser.Alt(
		parser.Map(scanner.Atom(), func(s string) field.Word { return field.Word{Text: s} }),
		parser.Map(scanner.QuotedString(), func(s string) field.Word { return field.Word{Text: s, Quoted: true} }),
	)

	// an atom that is a whole encoded word is one
	phraseWord := parser.Map(g.word, func(w field.Word) field.PhraseToken {
		if !w.Quoted {
			if cs, enc, text, ok := encoding.ParseWord(w.Text); ok {
				return g.encoded(cs, enc, text)
			}
		}
		return w
	})

	// word *(word / "." / CFWS), which also covers 1*word
	g.phrase = parser.Bind(phraseWord, func(first field.PhraseToken) parser.Parser[field.Phrase] {
		return parser.Map(
			parser.Many(parser.Alt(
				phraseWord,
				parser.Map(scanner.Token(parser.Char('.')), func(byte) field.PhraseToken { return field.Dot{} }),
			)),
			func(rest []field.PhraseToken) field.Phrase {
				return append(field.Phrase{first}, rest...)
			},
		)
	})

	// dot-atom, quoted-string, and obs-local-part are all word *("." word)
	g.localPart = parser.Map(
		parser.SepBy1(parser.Char('.'), g.word),
		func(ws []field.Word) field.LocalPart { return ws },
	)

	g.domain = parser.Alt(
		parser.Map(scanner.DomainLiteral(), func(lit string) field.Domain {
			return field.Domain{Literal: lit}
		}),
		parser.Map(parser.SepBy1(parser.Char('.'), scanner.Atom()), func(labels []string) field.Domain {
			return field.Domain{Labels: labels}
		}),
	)

	g.addrSpec = parser.Bind(g.localPart, func(lp field.LocalPart) parser.Parser[field.Mailbox] {
		return parser.Then(parser.Char('@'), parser.Map(g.domain, func(d field.Domain) field.Mailbox {
			return field.Mailbox{Local: lp, Domain: d}
		}))
	})

	open := parser.Then(scanner.OptCFWS(), parser.Char('<'))
	closeAngle := parser.Then(parser.Char('>'), scanner.OptCFWS())

	// obs-domain-list ":"
	obsRoute := parser.Then(
		parser.Many(parser.Alt(
			parser.Discard(scanner.CFWS()),
			parser.Discard(parser.Char(',')),
		)),
		parser.Then(parser.Char('@'), parser.Bind(g.domain, func(first field.Domain) parser.Parser[[]field.Domain] {
			more := parser.Then(parser.Char(','), parser.Then(scanner.OptCFWS(),
				parser.Maybe(parser.Then(parser.Char('@'), g.domain)),
			))
			return parser.Skip(
				parser.Map(parser.Many(more), func(rest []*field.Domain) []field.Domain {
					return append([]field.Domain{first}, compact(rest)...)
				}),
				parser.Char(':'),
			)
		})),
	)

	obsAngleAddr := parser.Between(open,
		parser.Bind(obsRoute, func(route []field.Domain) parser.Parser[field.Mailbox] {
			return parser.Map(g.addrSpec, func(m field.Mailbox) field.Mailbox {
				m.Route = route
				return m
			})
		}),
		closeAngle,
	)

	// An addr-spec cannot start with the @ or , that starts a route, so
	// once "<" addr-spec has matched the obsolete form is out.
	g.angleAddr = parser.TryCommit(
		parser.Then(open, g.addrSpec),
		func(m field.Mailbox) parser.Parser[field.Mailbox] {
			return parser.Skip(parser.Return(m), closeAngle)
		},
		obsAngleAddr,
	)

	nameAddr := parser.Bind(parser.Maybe(g.phrase), func(name *field.Phrase) parser.Parser[field.Person] {
		return parser.Map(g.angleAddr, func(m field.Mailbox) field.Person {
			p := field.Person{Mailbox: m}
			if name != nil {
				p.Name = *name
			}
			return p
		})
	})

	g.mailbox = parser.Alt(
		nameAddr,
		parser.Map(g.addrSpec, func(m field.Mailbox) field.Person { return field.Person{Mailbox: m} }),
	)

	semi := parser.Lookahead(parser.Char(';'))
	members := parser.Alt(
		listOf(g.mailbox, semi),
		parser.Skip(
			parser.Map(
				parser.Then(parser.Many(parser.Then(scanner.OptCFWS(), parser.Char(','))), scanner.OptCFWS()),
				func(scanner.Space) []field.Person { return nil },
			),
			semi,
		),
	)

	g.group = parser.Bind(g.phrase, func(name field.Phrase) parser.Parser[field.Group] {
		return parser.Then(parser.Char(':'), parser.Bind(members, func(ms []field.Person) parser.Parser[field.Group] {
			return parser.Then(
				parser.Then(parser.Char(';'), scanner.OptCFWS()),
				parser.Return(field.Group{Name: name, Members: ms}),
			)
		}))
	})

	g.address = parser.Alt(
		parser.Map(g.group, func(gr field.Group) field.Address { return gr }),
		parser.Map(g.mailbox, func(p field.Person) field.Address { return p }),
	)
}

// keywords is phrase *("," phrase) or the obsolete list that allows empty
// elements, followed by the end of the field.
func (g *Grammar) keywords() parser.Parser[[]field.Phrase] {
	slot := parser.Option[*field.Phrase](nil, parser.Alt(
		parser.Map(g.phrase, ptr[field.Phrase]),
		parser.Map(scanner.CFWS(), func(scanner.Space) *field.Phrase { return nil }),
	))

	obs := parser.Bind(slot, func(first *field.Phrase) parser.Parser[[]field.Phrase] {
		return parser.Map(parser.Many(parser.Then(parser.Char(','), slot)), func(rest []*field.Phrase) []field.Phrase {
			return compact(append([]*field.Phrase{first}, rest...))
		})
	})

	return parser.Alt(
		parser.Skip(parser.SepBy1(parser.Char(','), g.phrase), fieldEnd),
		parser.Skip(obs, fieldEnd),
	)
}
