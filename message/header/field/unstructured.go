package field

import (
	"strings"

	"github.com/zostay/go-rfc5322/message/header/encoding"
)

// Token is one element of Unstructured text.
type Token interface {
	isToken()
}

// Text is a run of visible characters.
type Text string

// WSP is significant whitespace that did not cross a line break.
type WSP struct{}

// FWS is significant whitespace that was folded across a line break.
type FWS struct{}

// CR is a run of bare carriage returns, allowed only by the obsolete grammar.
type CR int

// LF is a run of bare line feeds, allowed only by the obsolete grammar.
type LF int

// NUL is a run of NUL characters, allowed only by the obsolete grammar.
type NUL int

// Encoded is an RFC 2047 encoded word. Raw holds the encoded text as written
// and Decoded whatever the configured decoder made of it.
type Encoded struct {
	Charset  string
	Encoding encoding.Encoding
	Raw      string
	Decoded  encoding.Result
}

// Word returns the encoded word as it appears on the wire.
func (e Encoded) Word() string {
	return "=?" + e.Charset + "?" + e.Encoding.String() + "?" + e.Raw + "?="
}

func (Text) isToken()    {}
func (WSP) isToken()     {}
func (FWS) isToken()     {}
func (CR) isToken()      {}
func (LF) isToken()      {}
func (NUL) isToken()     {}
func (Encoded) isToken() {}

// Unstructured is free text: Subject, Comments, and every field without a
// dedicated grammar.
type Unstructured []Token

// String returns the text with encoded words decoded and each whitespace token
// rendered as a single space.
func (u Unstructured) String() string {
	var b strings.Builder
	for _, t := range u {
		switch t := t.(type) {
		case Text:
			b.WriteString(string(t))
		case WSP, FWS:
			b.WriteByte(' ')
		case CR:
			b.WriteString(strings.Repeat("\r", int(t)))
		case LF:
			b.WriteString(strings.Repeat("\n", int(t)))
		case NUL:
			b.WriteString(strings.Repeat("\x00", int(t)))
		case Encoded:
			b.WriteString(t.Decoded.Text)
		}
	}
	return b.String()
}
