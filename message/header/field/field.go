package field

// These are the canonical spellings of the field names this package knows.
// Field names match case-insensitively on input; these are what the encoder
// writes.
const (
	NameDate            = "Date"
	NameFrom            = "From"
	NameSender          = "Sender"
	NameReplyTo         = "Reply-To"
	NameTo              = "To"
	NameCc              = "Cc"
	NameBcc             = "Bcc"
	NameSubject         = "Subject"
	NameComments        = "Comments"
	NameKeywords        = "Keywords"
	NameMessageID       = "Message-ID"
	NameInReplyTo       = "In-Reply-To"
	NameReferences      = "References"
	NameResentDate      = "Resent-Date"
	NameResentFrom      = "Resent-From"
	NameResentSender    = "Resent-Sender"
	NameResentTo        = "Resent-To"
	NameResentCc        = "Resent-Cc"
	NameResentBcc       = "Resent-Bcc"
	NameResentMessageID = "Resent-Message-ID"
	NameResentReplyTo   = "Resent-Reply-To"
	NameReturnPath      = "Return-Path"
	NameReceived        = "Received"
)

// Field is one parsed header line, or a group of consecutive lines that belong
// together (Trace and Resent). The set of implementations is closed.
type Field interface {
	// Name returns the field name. For Optional and Unsafe it is the name as
	// written; for Skip it is empty.
	Name() string

	isField()
}

// Date is the origination date.
type Date struct{ Value DateTime }

// From lists the authors.
type From struct{ Mailboxes []Person }

// Sender is the agent responsible for transmission.
type Sender struct{ Mailbox Person }

// ReplyTo lists where replies should go.
type ReplyTo struct{ Addresses []Address }

// To lists the primary recipients.
type To struct{ Addresses []Address }

// Cc lists the secondary recipients.
type Cc struct{ Addresses []Address }

// Bcc lists the blind recipients. The list may be empty.
type Bcc struct{ Addresses []Address }

// Subject is the topic.
type Subject struct{ Value Unstructured }

// Comments is free text about the message.
type Comments struct{ Value Unstructured }

// Keywords is a list of phrases.
type Keywords struct{ Phrases []Phrase }

// MessageID identifies the message.
type MessageID struct{ Value MsgID }

// InReplyTo lists the messages this one replies to.
type InReplyTo struct{ Refs []Reference }

// References lists the thread this message belongs to.
type References struct{ Refs []Reference }

// ResentDate is the date of a resend.
type ResentDate struct{ Value DateTime }

// ResentFrom lists who resent the message.
type ResentFrom struct{ Mailboxes []Person }

// ResentSender is the agent responsible for a resend.
type ResentSender struct{ Mailbox Person }

// ResentTo lists the recipients of a resend.
type ResentTo struct{ Addresses []Address }

// ResentCc lists the secondary recipients of a resend.
type ResentCc struct{ Addresses []Address }

// ResentBcc lists the blind recipients of a resend.
type ResentBcc struct{ Addresses []Address }

// ResentMessageID identifies a resend.
type ResentMessageID struct{ Value MsgID }

// ResentReplyTo is the obsolete reply address of a resend.
type ResentReplyTo struct{ Addresses []Address }

// Optional is any field without a dedicated grammar. Its value is read as
// unstructured text.
type Optional struct {
	FieldName string
	Value     Unstructured
}

// Unsafe is a field whose value could not be read even as unstructured text.
// Raw holds the value as written, line breaks included, without the
// terminating CRLF.
type Unsafe struct {
	FieldName string
	Raw       string
}

// Skip is a line that does not have the shape of a header field. Line holds it
// without the terminating CRLF.
type Skip struct{ Line string }

func (Date) Name() string            { return NameDate }
func (From) Name() string            { return NameFrom }
func (Sender) Name() string          { return NameSender }
func (ReplyTo) Name() string         { return NameReplyTo }
func (To) Name() string              { return NameTo }
func (Cc) Name() string              { return NameCc }
func (Bcc) Name() string             { return NameBcc }
func (Subject) Name() string         { return NameSubject }
func (Comments) Name() string        { return NameComments }
func (Keywords) Name() string        { return NameKeywords }
func (MessageID) Name() string       { return NameMessageID }
func (InReplyTo) Name() string       { return NameInReplyTo }
func (References) Name() string      { return NameReferences }
func (ResentDate) Name() string      { return NameResentDate }
func (ResentFrom) Name() string      { return NameResentFrom }
func (ResentSender) Name() string    { return NameResentSender }
func (ResentTo) Name() string        { return NameResentTo }
func (ResentCc) Name() string        { return NameResentCc }
func (ResentBcc) Name() string       { return NameResentBcc }
func (ResentMessageID) Name() string { return NameResentMessageID }
func (ResentReplyTo) Name() string   { return NameResentReplyTo }
func (f Optional) Name() string      { return f.FieldName }
func (f Unsafe) Name() string        { return f.FieldName }
func (Skip) Name() string            { return "" }

func (Date) isField()            {}
func (From) isField()            {}
func (Sender) isField()          {}
func (ReplyTo) isField()         {}
func (To) isField()              {}
func (Cc) isField()              {}
func (Bcc) isField()             {}
func (Subject) isField()         {}
func (Comments) isField()        {}
func (Keywords) isField()        {}
func (MessageID) isField()       {}
func (InReplyTo) isField()       {}
func (References) isField()      {}
func (ResentDate) isField()      {}
func (ResentFrom) isField()      {}
func (ResentSender) isField()    {}
func (ResentTo) isField()        {}
func (ResentCc) isField()        {}
func (ResentBcc) isField()       {}
func (ResentMessageID) isField() {}
func (ResentReplyTo) isField()   {}
func (Optional) isField()        {}
func (Unsafe) isField()          {}
func (Skip) isField()            {}

// IsResent reports whether f is one of the eight resent fields.
func IsResent(f Field) bool {
	switch f.(type) {
	case ResentDate, ResentFrom, ResentSender, ResentTo, ResentCc,
		ResentBcc, ResentMessageID, ResentReplyTo:
		return true
	}
	return false
}
