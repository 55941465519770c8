package grammar

import (
	"github.com/zostay/go-rfc5322/internal/scanner"
	"github.com/zostay/go-rfc5322/message/header/field"
	"github.com/zostay/go-rfc5322/parser"
)

// returnPath is angle-addr or the null path <>, followed by the end of the
// field.
func (g *Grammar) returnPath() parser.Parser[field.Field] {
	null := parser.Then(
		parser.Then(scanner.OptCFWS(), parser.Char('<')),
		parser.Then(scanner.OptCFWS(), parser.Then(parser.Char('>'), scanner.OptCFWS())),
	)

	return value(parser.Alt(
		parser.Map(g.angleAddr, func(m field.Mailbox) field.Field {
			return field.ReturnPath{Path: &m}
		}),
		parser.Map(null, func(scanner.Space) field.Field {
			return field.ReturnPath{}
		}),
	))
}

// received is *received-token [";" date-time], followed by the end of the
// field. The token alternatives are tried from the most to the least specific.
func (g *Grammar) received() parser.Parser[field.Field] {
	token := parser.Alt(
		parser.Map(g.addrSpec, func(m field.Mailbox) field.ReceivedToken {
			return field.ReceivedAddr{Mailbox: m}
		}),
		parser.Map(g.angleAddr, func(m field.Mailbox) field.ReceivedToken {
			return field.ReceivedAddr{Mailbox: m, Angle: true}
		}),
		parser.Map(g.domain, func(d field.Domain) field.ReceivedToken {
			return field.ReceivedDomain{Domain: d}
		}),
		parser.Map(g.word, func(w field.Word) field.ReceivedToken {
			return field.ReceivedWord{Word: w}
		}),
	)

	date := parser.Maybe(parser.Then(parser.Char(';'), g.dateTime))

	return value(parser.Bind(parser.Many(token), func(ts []field.ReceivedToken) parser.Parser[field.Field] {
		return parser.Map(date, func(d *field.DateTime) field.Field {
			return field.Received{Tokens: ts, Date: d}
		})
	}))
}
