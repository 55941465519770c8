package grammar

import (
	"github.com/zostay/go-rfc5322/internal/scanner"
	"github.com/zostay/go-rfc5322/message/header/field"
	"github.com/zostay/go-rfc5322/parser"
)

// buildMsgID reads [CFWS] "<" id-left "@" id-right ">" [CFWS]. The obsolete
// id-left and id-right are a local-part and a domain, which cover the modern
// forms too.
func (g *Grammar) buildMsgID() {
	g.msgID = parser.Between(
		parser.Then(scanner.OptCFWS(), parser.Char('<')),
		parser.Bind(g.localPart, func(lp field.LocalPart) parser.Parser[field.MsgID] {
			return parser.Then(parser.Char('@'), parser.Map(g.domain, func(d field.Domain) field.MsgID {
				return field.MsgID{Local: lp, Domain: d}
			}))
		}),
		parser.Then(parser.Char('>'), scanner.OptCFWS()),
	)
}
