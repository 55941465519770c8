package field

import (
	"fmt"
	"io"
	"strings"
)

// Bytes encodes f with DefaultFoldEncoding.
func Bytes(f Field) []byte {
	w := &lineWriter{vf: DefaultFoldEncoding}
	w.field(f)
	return w.buf.Bytes()
}

// Encode writes f to out, one CRLF terminated line per field, folding lines
// longer than the preferred length between tokens. Trace and Resent groups are
// written as the fields they group.
//
// Returns the number of bytes written and any error from out.
func (vf *FoldEncoding) Encode(out io.Writer, f Field) (int64, error) {
	w := &lineWriter{vf: vf}
	w.field(f)
	return w.buf.WriteTo(out)
}

func (w *lineWriter) field(f Field) {
	switch f := f.(type) {
	case Trace:
		if f.ReturnPath != nil {
			w.field(*f.ReturnPath)
		}
		for _, r := range f.Received {
			w.field(r)
		}
		return
	case Resent:
		for _, rf := range f.Fields {
			w.field(rf)
		}
		return
	case Unsafe:
		w.raw(f.FieldName + ":" + f.Raw)
		w.end()
		return
	case Skip:
		w.raw(f.Line)
		w.end()
		return
	}

	w.unit(f.Name() + ":")
	w.space()

	switch f := f.(type) {
	case Date:
		w.dateTime(f.Value)
	case ResentDate:
		w.dateTime(f.Value)
	case From:
		w.persons(f.Mailboxes)
	case ResentFrom:
		w.persons(f.Mailboxes)
	case Sender:
		w.person(f.Mailbox)
	case ResentSender:
		w.person(f.Mailbox)
	case ReplyTo:
		w.addresses(f.Addresses)
	case To:
		w.addresses(f.Addresses)
	case Cc:
		w.addresses(f.Addresses)
	case Bcc:
		w.addresses(f.Addresses)
	case ResentTo:
		w.addresses(f.Addresses)
	case ResentCc:
		w.addresses(f.Addresses)
	case ResentBcc:
		w.addresses(f.Addresses)
	case ResentReplyTo:
		w.addresses(f.Addresses)
	case Subject:
		w.unstructured(f.Value)
	case Comments:
		w.unstructured(f.Value)
	case Optional:
		w.unstructured(f.Value)
	case Keywords:
		for i, p := range f.Phrases {
			if i > 0 {
				w.unit(",")
				w.space()
			}
			w.phrase(p)
		}
	case MessageID:
		w.unit(f.Value.String())
	case ResentMessageID:
		w.unit(f.Value.String())
	case InReplyTo:
		w.refs(f.Refs)
	case References:
		w.refs(f.Refs)
	case ReturnPath:
		if f.Path == nil {
			w.unit("<>")
		} else {
			w.mailbox(*f.Path, true)
		}
	case Received:
		w.received(f)
	}

	w.end()
}

func (w *lineWriter) dateTime(d DateTime) {
	if d.Weekday != nil {
		w.unit(d.Weekday.String()[:3] + ",")
		w.space()
	}

	w.unit(fmt.Sprintf("%d", d.Day))
	w.space()
	w.unit(d.Month.String()[:3])
	w.space()
	w.unit(fmt.Sprintf("%02d", d.Year))
	w.space()

	t := fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
	if d.Second != nil {
		t += fmt.Sprintf(":%02d", *d.Second)
	}
	w.unit(t)
	w.space()
	w.unit(d.Zone.String())
}

func (w *lineWriter) phrase(p Phrase) {
	var prev PhraseToken
	for _, t := range p {
		switch t := t.(type) {
		case Word:
			if prev != nil {
				w.space()
			}
			w.unit(t.wire())
		case Encoded:
			if prev != nil {
				w.space()
			}
			w.unit(t.Word())
		case Dot:
			w.unit(".")
		}
		prev = t
	}
}

func (w *lineWriter) mailbox(m Mailbox, angle bool) {
	if !angle && len(m.Route) == 0 {
		w.unit(m.String())
		return
	}

	route := ""
	if len(m.Route) > 0 {
		rs := make([]string, len(m.Route))
		for i, d := range m.Route {
			rs[i] = "@" + d.String()
		}
		route = strings.Join(rs, ",") + ":"
	}
	w.unit("<" + route + m.String() + ">")
}

func (w *lineWriter) person(p Person) {
	if len(p.Name) == 0 {
		w.mailbox(p.Mailbox, false)
		return
	}

	w.phrase(p.Name)
	w.space()
	w.mailbox(p.Mailbox, true)
}

func (w *lineWriter) persons(ps []Person) {
	for i, p := range ps {
		if i > 0 {
			w.unit(",")
			w.space()
		}
		w.person(p)
	}
}

func (w *lineWriter) addresses(as []Address) {
	for i, a := range as {
		if i > 0 {
			w.unit(",")
			w.space()
		}

		switch a := a.(type) {
		case Person:
			w.person(a)
		case Group:
			w.phrase(a.Name)
			w.unit(":")
			if len(a.Members) > 0 {
				w.space()
				w.persons(a.Members)
			}
			w.unit(";")
		}
	}
}

func (w *lineWriter) refs(rs []Reference) {
	for i, r := range rs {
		if i > 0 {
			w.space()
		}

		switch r := r.(type) {
		case MsgID:
			w.unit(r.String())
		case Phrase:
			w.phrase(r)
		}
	}
}

func (w *lineWriter) received(r Received) {
	for i, t := range r.Tokens {
		if i > 0 {
			w.space()
		}

		switch t := t.(type) {
		case ReceivedAddr:
			w.mailbox(t.Mailbox, t.Angle)
		case ReceivedDomain:
			w.unit(t.Domain.String())
		case ReceivedWord:
			w.unit(t.Word.wire())
		}
	}

	if r.Date != nil {
		w.unit(";")
		w.space()
		w.dateTime(*r.Date)
	}
}

func (w *lineWriter) unstructured(u Unstructured) {
	var prev Token
	for _, t := range u {
		switch t := t.(type) {
		case Text:
			w.unit(string(t))
		case WSP:
			w.space()
		case FWS:
			w.fold()
		case CR:
			w.raw(strings.Repeat("\r", int(t)))
		case LF:
			w.raw(strings.Repeat("\n", int(t)))
		case NUL:
			w.raw(strings.Repeat("\x00", int(t)))
		case Encoded:
			if _, adjacent := prev.(Encoded); adjacent {
				w.space()
			}
			w.unit(t.Word())
		}
		prev = t
	}
}
