package field

import (
	"strings"
)

// Word is an atom or the content of a quoted string.
type Word struct {
	Text   string
	Quoted bool
}

// LocalPart is the part of an address before the @, one Word per
// dot-separated element.
type LocalPart []Word

// String returns the local part as written, quoted elements included.
func (l LocalPart) String() string {
	parts := make([]string, len(l))
	for i, w := range l {
		parts[i] = w.wire()
	}
	return strings.Join(parts, ".")
}

// Domain is a dot-separated domain name or, when Labels is nil, a domain
// literal.
type Domain struct {
	Labels  []string
	Literal string
}

// IsLiteral reports whether d is a domain literal.
func (d Domain) IsLiteral() bool { return d.Labels == nil }

// String returns the domain as written, brackets included for a literal.
func (d Domain) String() string {
	if d.IsLiteral() {
		return "[" + d.Literal + "]"
	}
	return strings.Join(d.Labels, ".")
}

// Mailbox is an addr-spec. Route holds the domains of an obsolete source route
// in the order written.
type Mailbox struct {
	Local  LocalPart
	Domain Domain
	Route  []Domain
}

// Domains returns the route followed by the final domain. It has more than one
// entry only for routed addresses.
func (m Mailbox) Domains() []Domain {
	return append(append([]Domain{}, m.Route...), m.Domain)
}

// String returns the addr-spec, without the route.
func (m Mailbox) String() string {
	return m.Local.String() + "@" + m.Domain.String()
}

// Address is either a Person or a Group.
type Address interface {
	isAddress()
}

// Person is a mailbox with an optional display name. Name is nil when there is
// no display name.
type Person struct {
	Name    Phrase
	Mailbox Mailbox
}

// Group is a named list of mailboxes. Members may be empty.
type Group struct {
	Name    Phrase
	Members []Person
}

func (Person) isAddress() {}
func (Group) isAddress()  {}

// String returns the display name and address in the usual form.
func (p Person) String() string {
	if p.Name == nil {
		return p.Mailbox.String()
	}
	return p.Name.String() + " <" + p.Mailbox.String() + ">"
}

// String returns the group in the usual form.
func (g Group) String() string {
	ms := make([]string, len(g.Members))
	for i, m := range g.Members {
		ms[i] = m.String()
	}
	return g.Name.String() + ": " + strings.Join(ms, ", ") + ";"
}

// PhraseToken is one element of a Phrase: a Word, a Dot, or an Encoded word.
type PhraseToken interface {
	isPhraseToken()
}

// Dot is a period inside an obsolete phrase.
type Dot struct{}

// Phrase is a display name or similar run of words.
type Phrase []PhraseToken

func (Word) isPhraseToken()    {}
func (Dot) isPhraseToken()     {}
func (Encoded) isPhraseToken() {}

// String returns the phrase as text: encoded words decoded, quoting removed,
// and words separated by single spaces.
func (p Phrase) String() string {
	var b strings.Builder
	var prev PhraseToken
	for _, t := range p {
		switch t := t.(type) {
		case Word:
			if prev != nil {
				b.WriteByte(' ')
			}
			b.WriteString(t.Text)
		case Encoded:
			if _, adjacent := prev.(Encoded); prev != nil && !adjacent {
				b.WriteByte(' ')
			}
			b.WriteString(t.Decoded.Text)
		case Dot:
			b.WriteByte('.')
		}
		prev = t
	}
	return b.String()
}

// MsgID is a message identifier, written <left@right>.
type MsgID struct {
	Local  LocalPart
	Domain Domain
}

// String returns the identifier with its angle brackets.
func (m MsgID) String() string {
	return "<" + m.Local.String() + "@" + m.Domain.String() + ">"
}

// Reference is an element of In-Reply-To or References: a MsgID or, in the
// obsolete form, a Phrase.
type Reference interface {
	isReference()
}

func (MsgID) isReference()  {}
func (Phrase) isReference() {}

func (w Word) wire() string {
	if !w.Quoted {
		return w.Text
	}
	return quote(w.Text)
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
