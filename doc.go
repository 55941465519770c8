// Package rfc5322 is the root of a library for reading Internet message
// headers as RFC 5322 describes them, together with the parts of RFC 822,
// RFC 2047, and RFC 5321 that still turn up in real mail.
//
// The work is split by layer. The parser package is a small incremental parser
// combinator library: parsers suspend when they run out of input and resume
// when the caller supplies more, so a header can be read from a socket or a
// file in chunks of any size without ever holding more than a chunk and the
// bytes a rule may still backtrack over. The message/header/grammar package
// builds the header grammar on top of it, and message/header/field holds the
// values it produces.
//
// Most callers only need message/header or message. The header.Parse,
// header.ParseBuffer, and header.Decode functions read a header and sort its
// fields into a header.Header, with the standard fields in their own slots,
// trace and resent blocks grouped, and unknown fields kept as extensions:
//
//	h, rest, err := header.Decode(r)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(h.Subject)
//
// The message.Parse function does the same, but hands back the header paired
// with a reader for the body that follows it. Neither package looks inside the
// body.
//
// Fields that cannot be parsed strictly are not always lost. A Subject,
// Comments, or extension field whose value is not valid UTF-8 is kept as an
// unsafe field with its raw bytes, and a line that is not a field at all is
// skipped and recorded. Other recognized fields fail the parse when their value
// is malformed, while raw 8-bit bytes in their atoms and quoted strings are
// accepted as they are. Writing a header back out uses a field.FoldEncoding, which
// controls where long lines are folded.
package rfc5322
