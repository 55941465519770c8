// Package grammar is the RFC 5322 header grammar, obsolete forms included,
// written with the combinators of the parser package. A Grammar reads a whole
// header into a flat list of fields in the order they were written; grouping
// and assembly happen in the header package.
//
// Field names are matched case-insensitively. A name without a dedicated
// grammar is read as unstructured text and never fails the parse. A name with
// a dedicated grammar must have a value matching it or the whole parse fails,
// except that unstructured fields (Subject, Comments, and unknown names) whose
// value cannot be read at all are kept as field.Unsafe. A line that is not a
// field at all is kept as field.Skip.
package grammar

import (
	"strings"

	"github.com/zostay/go-rfc5322/internal/scanner"
	"github.com/zostay/go-rfc5322/message/header/encoding"
	"github.com/zostay/go-rfc5322/message/header/field"
	"github.com/zostay/go-rfc5322/parser"
)

// Grammar holds the parsers for one configuration. It is safe to share once
// built; each run gets its own parser.Input.
type Grammar struct {
	dec encoding.Decoder

	word      parser.Parser[field.Word]
	phrase    parser.Parser[field.Phrase]
	localPart parser.Parser[field.LocalPart]
	domain    parser.Parser[field.Domain]
	addrSpec  parser.Parser[field.Mailbox]
	angleAddr parser.Parser[field.Mailbox]
	mailbox   parser.Parser[field.Person]
	group     parser.Parser[field.Group]
	address   parser.Parser[field.Address]
	dateTime  parser.Parser[field.DateTime]
	msgID     parser.Parser[field.MsgID]
	unstruct  parser.Parser[field.Unstructured]
	field     parser.Parser[field.Field]
	header    parser.Parser[[]field.Field]
}

// New builds a Grammar that hands encoded words to dec. A nil dec selects
// encoding.Decode.
func New(dec encoding.Decoder) *Grammar {
	if dec == nil {
		dec = encoding.Decode
	}

	g := &Grammar{dec: dec}
	g.buildAddress()
	g.buildDateTime()
	g.buildMsgID()
	g.buildUnstructured()
	g.buildFields()

	return g
}

// Header returns the parser for a complete header: fields up to and including
// the empty line that ends the header.
func (g *Grammar) Header() parser.Parser[[]field.Field] { return g.header }

// Field returns the parser for one field, terminating CRLF included.
func (g *Grammar) Field() parser.Parser[field.Field] { return g.field }

// Mailbox returns the parser for a mailbox, surrounding CFWS included.
func (g *Grammar) Mailbox() parser.Parser[field.Person] { return g.mailbox }

// Address returns the parser for an address, surrounding CFWS included.
func (g *Grammar) Address() parser.Parser[field.Address] { return g.address }

// DateTime returns the parser for a date-time, surrounding CFWS included.
func (g *Grammar) DateTime() parser.Parser[field.DateTime] { return g.dateTime }

// MsgID returns the parser for a msg-id, surrounding CFWS included.
func (g *Grammar) MsgID() parser.Parser[field.MsgID] { return g.msgID }

// Unstructured returns the parser for an unstructured value, without the
// terminating CRLF.
func (g *Grammar) Unstructured() parser.Parser[field.Unstructured] { return g.unstruct }

func (g *Grammar) encoded(charset string, enc encoding.Encoding, text string) field.Encoded {
	return field.Encoded{
		Charset:  charset,
		Encoding: enc,
		Raw:      text,
		Decoded:  g.dec(charset, enc, text),
	}
}

var (
	crlf = scanner.CRLF()

	// OptCFWS CRLF ends every structured value
	fieldEnd = parser.Then(scanner.OptCFWS(), crlf)

	lineChunk = parser.Alt(
		parser.TakeWhile1(func(c byte) bool { return c != '\r' }),
		parser.Skip(parser.String("\r"), parser.Not(parser.Char('\n'))),
	)

	// the rest of a line, up to the CRLF
	lineText = parser.Map(parser.Many(lineChunk), join)

	skipLine = parser.Map(parser.Skip(lineText, crlf), func(line string) field.Field {
		return field.Skip{Line: line}
	})

	// a folded value as written, up to the CRLF that ends it
	rawValue = parser.Skip(
		parser.Map(
			parser.Many(parser.Alt(
				lineChunk,
				parser.Skip(crlf, parser.Lookahead(parser.Satisfy(scanner.IsWSP))),
			)),
			join,
		),
		crlf,
	)

	// field-name *WSP ":"
	fieldName = parser.Skip(
		parser.TakeWhile1(scanner.IsFtext),
		parser.Then(parser.SkipWhile(scanner.IsWSP), parser.Char(':')),
	)
)

func join(parts []string) string { return strings.Join(parts, "") }

// value runs p and then the end of the field.
func value[T any](p parser.Parser[T]) parser.Parser[T] {
	return parser.Skip(p, fieldEnd)
}

func typed[T any](p parser.Parser[T], mk func(T) field.Field) parser.Parser[field.Field] {
	return parser.Map(p, mk)
}

func (g *Grammar) buildFields() {
	unstructured := func(name string, mk func(field.Unstructured) field.Field) parser.Parser[field.Field] {
		return parser.Alt(
			typed(parser.Skip(g.unstruct, crlf), mk),
			parser.Map(rawValue, func(raw string) field.Field {
				return field.Unsafe{FieldName: name, Raw: raw}
			}),
		)
	}

	persons := listOf(g.mailbox, fieldEnd)
	addresses := listOf(g.address, fieldEnd)
	bccs := parser.Alt(
		addresses,
		parser.Map(fieldEnd, func(string) []field.Address { return nil }),
	)
	date := value(g.dateTime)
	sender := value(g.mailbox)
	id := value(g.msgID)
	refs := value(parser.Many(parser.Alt(
		parser.Map(g.phrase, func(p field.Phrase) field.Reference { return p }),
		parser.Map(g.msgID, func(m field.MsgID) field.Reference { return m }),
	)))
	keywords := g.keywords()
	returnPath := g.returnPath()
	received := g.received()

	dispatch := func(name string) parser.Parser[field.Field] {
		switch strings.ToLower(name) {
		case "date":
			return typed(date, func(d field.DateTime) field.Field { return field.Date{Value: d} })
		case "from":
			return typed(persons, func(ps []field.Person) field.Field { return field.From{Mailboxes: ps} })
		case "sender":
			return typed(sender, func(p field.Person) field.Field { return field.Sender{Mailbox: p} })
		case "reply-to":
			return typed(addresses, func(as []field.Address) field.Field { return field.ReplyTo{Addresses: as} })
		case "to":
			return typed(addresses, func(as []field.Address) field.Field { return field.To{Addresses: as} })
		case "cc":
			return typed(addresses, func(as []field.Address) field.Field { return field.Cc{Addresses: as} })
		case "bcc":
			return typed(bccs, func(as []field.Address) field.Field { return field.Bcc{Addresses: as} })
		case "subject":
			return unstructured(name, func(u field.Unstructured) field.Field { return field.Subject{Value: u} })
		case "comments":
			return unstructured(name, func(u field.Unstructured) field.Field { return field.Comments{Value: u} })
		case "keywords":
			return typed(keywords, func(ps []field.Phrase) field.Field { return field.Keywords{Phrases: ps} })
		case "message-id":
			return typed(id, func(m field.MsgID) field.Field { return field.MessageID{Value: m} })
		case "in-reply-to":
			return typed(refs, func(rs []field.Reference) field.Field { return field.InReplyTo{Refs: rs} })
		case "references":
			return typed(refs, func(rs []field.Reference) field.Field { return field.References{Refs: rs} })
		case "resent-date":
			return typed(date, func(d field.DateTime) field.Field { return field.ResentDate{Value: d} })
		case "resent-from":
			return typed(persons, func(ps []field.Person) field.Field { return field.ResentFrom{Mailboxes: ps} })
		case "resent-sender":
			return typed(sender, func(p field.Person) field.Field { return field.ResentSender{Mailbox: p} })
		case "resent-to":
			return typed(addresses, func(as []field.Address) field.Field { return field.ResentTo{Addresses: as} })
		case "resent-cc":
			return typed(addresses, func(as []field.Address) field.Field { return field.ResentCc{Addresses: as} })
		case "resent-bcc":
			return typed(bccs, func(as []field.Address) field.Field { return field.ResentBcc{Addresses: as} })
		case "resent-message-id":
			return typed(id, func(m field.MsgID) field.Field { return field.ResentMessageID{Value: m} })
		case "resent-reply-to":
			return typed(addresses, func(as []field.Address) field.Field { return field.ResentReplyTo{Addresses: as} })
		case "return-path":
			return returnPath
		case "received":
			return received
		}

		return unstructured(name, func(u field.Unstructured) field.Field {
			return field.Optional{FieldName: name, Value: u}
		})
	}

	// once the name and colon are there, the line is a field for good
	g.field = parser.TryCommit(fieldName, dispatch, skipLine)
	g.header = parser.ManyTill(g.field, crlf)
}
