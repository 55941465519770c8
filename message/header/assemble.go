package header

import (
	"strings"

	"github.com/zostay/go-rfc5322/message/header/field"
)

// groupTraces replaces each run of an optional Return-Path followed by one or
// more Received fields with a single field.Trace. Only fields standing next to
// each other are grouped, so two runs separated by anything else make two
// groups. A Return-Path with no Received after it is left as it is.
func groupTraces(fs []field.Field) []field.Field {
	out := make([]field.Field, 0, len(fs))
	for i := 0; i < len(fs); {
		var tr field.Trace

		j := i
		rp, hasPath := fs[j].(field.ReturnPath)
		if hasPath {
			j++
		}

		for j < len(fs) {
			r, ok := fs[j].(field.Received)
			if !ok {
				break
			}
			tr.Received = append(tr.Received, r)
			j++
		}

		if len(tr.Received) == 0 {
			out = append(out, fs[i])
			i++
			continue
		}

		if hasPath {
			tr.ReturnPath = &rp
		}
		out = append(out, tr)
		i = j
	}
	return out
}

// groupResents replaces each run of resent fields with a field.Resent. A field
// kind seen twice in one run starts the next group.
func groupResents(fs []field.Field) []field.Field {
	out := make([]field.Field, 0, len(fs))
	for i := 0; i < len(fs); {
		if !field.IsResent(fs[i]) {
			out = append(out, fs[i])
			i++
			continue
		}

		var r field.Resent
		seen := make(map[string]bool, 8)
		for i < len(fs) && field.IsResent(fs[i]) && !seen[fs[i].Name()] {
			seen[fs[i].Name()] = true
			r.Fields = append(r.Fields, fs[i])
			i++
		}
		out = append(out, r)
	}
	return out
}

// index maps a lowercased field name to its position in an ordered list of
// names. It lives for one assembly only.
type index map[string]int

func (ix index) addExtension(es []Extension, name string, v field.Unstructured) []Extension {
	key := strings.ToLower(name)
	if i, ok := ix[key]; ok {
		es[i].Values = append(es[i].Values, v)
		return es
	}
	ix[key] = len(es)
	return append(es, Extension{Name: name, Values: []field.Unstructured{v}})
}

func (ix index) addUnsafe(us []UnsafeField, name string, raw string) []UnsafeField {
	key := strings.ToLower(name)
	if i, ok := ix[key]; ok {
		us[i].Values = append(us[i].Values, raw)
		return us
	}
	ix[key] = len(us)
	return append(us, UnsafeField{Name: name, Values: []string{raw}})
}

// assemble groups the field stream and fills a Header from it.
func assemble(fs []field.Field) *Header {
	fs = groupResents(groupTraces(fs))

	h := &Header{fields: fs}
	exts, unsafe := index{}, index{}
	for _, f := range fs {
		metricField.WithLabelValues(kind(f)).Inc()

		switch f := f.(type) {
		case field.Date:
			h.Date = &f.Value
		case field.Sender:
			h.Sender = &f.Mailbox
		case field.Subject:
			h.Subject = &f.Value
		case field.MessageID:
			h.MessageID = &f.Value
		case field.From:
			h.From = append(h.From, f.Mailboxes...)
		case field.ReplyTo:
			h.ReplyTo = append(h.ReplyTo, f.Addresses...)
		case field.To:
			h.To = append(h.To, f.Addresses...)
		case field.Cc:
			h.Cc = append(h.Cc, f.Addresses...)
		case field.Bcc:
			h.Bcc = append(h.Bcc, f.Addresses...)
		case field.InReplyTo:
			h.InReplyTo = append(h.InReplyTo, f.Refs...)
		case field.References:
			h.References = append(h.References, f.Refs...)
		case field.Keywords:
			h.Keywords = append(h.Keywords, f.Phrases...)
		case field.Comments:
			h.Comments = append(h.Comments, f.Value)
		case field.Optional:
			h.Extensions = exts.addExtension(h.Extensions, f.FieldName, f.Value)
		case field.Unsafe:
			h.Unsafe = unsafe.addUnsafe(h.Unsafe, f.FieldName, f.Raw)
		case field.Skip:
			h.Skipped = append(h.Skipped, f.Line)
		case field.Trace:
			h.Traces = append(h.Traces, f)
		case field.Resent:
			h.Resents = append(h.Resents, f)
		}
	}

	return h
}

// kind is the metric label of a field.
func kind(f field.Field) string {
	switch f.(type) {
	case field.Optional:
		return "extension"
	case field.Unsafe:
		return "unsafe"
	case field.Skip:
		return "skip"
	case field.Trace:
		return "trace"
	case field.Resent:
		return "resent"
	}
	return "standard"
}
