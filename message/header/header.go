package header

import (
	"errors"
	"io"
	"strings"

	"github.com/zostay/go-rfc5322/message/header/field"
)

// Errors returned by the parse functions.
var (
	// ErrNotHeader is returned when the input cannot be parsed as a header.
	// It always wraps the *parser.Error that says where parsing stopped.
	ErrNotHeader = errors.New("not parseable as a header")

	// ErrLargeHeader is returned by Decode when the header is longer than the
	// configured WithMaxHeaderLength option (or the default,
	// DefaultMaxHeaderLength).
	ErrLargeHeader = errors.New("the header exceeds the maximum parse length")
)

// These are standard headers defined in RFC 5322.
const (
	Bcc        = field.NameBcc
	Cc         = field.NameCc
	Comments   = field.NameComments
	Date       = field.NameDate
	From       = field.NameFrom
	InReplyTo  = field.NameInReplyTo
	Keywords   = field.NameKeywords
	MessageID  = field.NameMessageID
	References = field.NameReferences
	ReplyTo    = field.NameReplyTo
	Sender     = field.NameSender
	Subject    = field.NameSubject
	To         = field.NameTo
)

// Extension holds the values of every field sharing a name that has no
// grammar of its own, in the order they were written.
type Extension struct {
	Name   string
	Values []field.Unstructured
}

// UnsafeField holds the raw values of every field sharing a name whose value
// could not be read, in the order they were written.
type UnsafeField struct {
	Name   string
	Values []string
}

// Header is a parsed message header.
//
// Date, Sender, Subject, and MessageID hold the last such field in the header
// and are nil when there is none. The list slots gather the values of every
// field of their kind in the order written, so two To lines give one To list.
//
// Trace fields (Return-Path and Received) and resent fields are kept in the
// groups they were found in rather than in the slots above. See Traces and
// Resents.
type Header struct {
	Date      *field.DateTime
	Sender    *field.Person
	Subject   *field.Unstructured
	MessageID *field.MsgID

	From       []field.Person
	ReplyTo    []field.Address
	To         []field.Address
	Cc         []field.Address
	Bcc        []field.Address
	InReplyTo  []field.Reference
	References []field.Reference
	Keywords   []field.Phrase
	Comments   []field.Unstructured

	// Extensions has one entry per distinct field name, matched without
	// regard to case. The entry keeps the spelling of the first field.
	Extensions []Extension

	// Unsafe is like Extensions, for fields whose value could not be read.
	Unsafe []UnsafeField

	// Skipped holds the lines that were not fields at all, without their
	// line breaks.
	Skipped []string

	Traces  []field.Trace
	Resents []field.Resent

	// fields is the grouped field stream in document order.
	fields []field.Field
	vf     *field.FoldEncoding
}

// Fields returns every field of the header in the order written, with trace
// and resent fields replaced by the groups they belong to.
func (h *Header) Fields() []field.Field {
	return h.fields
}

// Len returns the number of fields in the grouped field stream.
func (h *Header) Len() int {
	return len(h.fields)
}

// Extension returns the values of the extension fields named name, or nil.
func (h *Header) Extension(name string) []field.Unstructured {
	for _, e := range h.Extensions {
		if strings.EqualFold(e.Name, name) {
			return e.Values
		}
	}
	return nil
}

// UnsafeValues returns the raw values of the unsafe fields named name, or nil.
func (h *Header) UnsafeValues(name string) []string {
	for _, u := range h.Unsafe {
		if strings.EqualFold(u.Name, name) {
			return u.Values
		}
	}
	return nil
}

// GetFoldEncoding returns the fold encoding used by WriteTo.
func (h *Header) GetFoldEncoding() *field.FoldEncoding {
	if h.vf == nil {
		return field.DefaultFoldEncoding
	}
	return h.vf
}

// SetFoldEncoding changes the fold encoding used by WriteTo.
func (h *Header) SetFoldEncoding(vf *field.FoldEncoding) {
	h.vf = vf
}

// WriteTo writes the header to w, every field in its original order followed
// by the empty line that ends the header.
//
// Returns the number of bytes written and any error that occurs while writing.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	vf := h.GetFoldEncoding()

	total := int64(0)
	for _, f := range h.fields {
		n, err := vf.Encode(w, f)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err := io.WriteString(w, "\r\n")
	total += int64(n)
	return total, err
}

// String returns the header as it would be written by WriteTo.
func (h *Header) String() string {
	var b strings.Builder
	_, _ = h.WriteTo(&b)
	return b.String()
}
