package field

// ReturnPath is the Return-Path trace field. Path is nil for the null path <>.
type ReturnPath struct{ Path *Mailbox }

// ReceivedToken is one element of a Received field: a ReceivedAddr, a
// ReceivedDomain, or a ReceivedWord.
type ReceivedToken interface {
	isReceivedToken()
}

// ReceivedAddr is an address in a Received field. Angle is set when it was
// written in angle brackets.
type ReceivedAddr struct {
	Mailbox Mailbox
	Angle   bool
}

// ReceivedDomain is a domain in a Received field.
type ReceivedDomain struct{ Domain Domain }

// ReceivedWord is any other word in a Received field.
type ReceivedWord struct{ Word Word }

func (ReceivedAddr) isReceivedToken()   {}
func (ReceivedDomain) isReceivedToken() {}
func (ReceivedWord) isReceivedToken()   {}

// Received is one Received trace field. Date is nil when the field has no
// date-time.
type Received struct {
	Tokens []ReceivedToken
	Date   *DateTime
}

// Trace groups an optional Return-Path with the Received fields directly
// following it.
type Trace struct {
	ReturnPath *ReturnPath
	Received   []Received
}

// Resent groups the resent fields of one resend, in the order written.
type Resent struct{ Fields []Field }

func (ReturnPath) Name() string { return NameReturnPath }
func (Received) Name() string   { return NameReceived }

// Name returns Return-Path when the group has one and Received otherwise.
func (t Trace) Name() string {
	if t.ReturnPath != nil {
		return NameReturnPath
	}
	return NameReceived
}

// Name returns the name of the first field of the group.
func (r Resent) Name() string {
	if len(r.Fields) == 0 {
		return ""
	}
	return r.Fields[0].Name()
}

func (ReturnPath) isField() {}
func (Received) isField()   {}
func (Trace) isField()      {}
func (Resent) isField()     {}

// Date returns the Resent-Date of the group, or nil.
func (r Resent) Date() *DateTime {
	for _, f := range r.Fields {
		if f, ok := f.(ResentDate); ok {
			return &f.Value
		}
	}
	return nil
}

// From returns the Resent-From mailboxes of the group.
func (r Resent) From() []Person {
	var ps []Person
	for _, f := range r.Fields {
		if f, ok := f.(ResentFrom); ok {
			ps = append(ps, f.Mailboxes...)
		}
	}
	return ps
}

// Sender returns the Resent-Sender of the group, or nil.
func (r Resent) Sender() *Person {
	for _, f := range r.Fields {
		if f, ok := f.(ResentSender); ok {
			return &f.Mailbox
		}
	}
	return nil
}

// MessageID returns the Resent-Message-ID of the group, or nil.
func (r Resent) MessageID() *MsgID {
	for _, f := range r.Fields {
		if f, ok := f.(ResentMessageID); ok {
			return &f.Value
		}
	}
	return nil
}

func (r Resent) addresses(match func(Field) ([]Address, bool)) []Address {
	var as []Address
	for _, f := range r.Fields {
		if a, ok := match(f); ok {
			as = append(as, a...)
		}
	}
	return as
}

// To returns the Resent-To addresses of the group.
func (r Resent) To() []Address {
	return r.addresses(func(f Field) ([]Address, bool) {
		t, ok := f.(ResentTo)
		return t.Addresses, ok
	})
}

// Cc returns the Resent-Cc addresses of the group.
func (r Resent) Cc() []Address {
	return r.addresses(func(f Field) ([]Address, bool) {
		t, ok := f.(ResentCc)
		return t.Addresses, ok
	})
}

// Bcc returns the Resent-Bcc addresses of the group.
func (r Resent) Bcc() []Address {
	return r.addresses(func(f Field) ([]Address, bool) {
		t, ok := f.(ResentBcc)
		return t.Addresses, ok
	})
}

// ReplyTo returns the Resent-Reply-To addresses of the group.
func (r Resent) ReplyTo() []Address {
	return r.addresses(func(f Field) ([]Address, bool) {
		t, ok := f.(ResentReplyTo)
		return t.Addresses, ok
	})
}
