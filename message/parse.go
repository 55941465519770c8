package message

import (
	"io"

	"github.com/zostay/go-rfc5322/message/header"
)

// Parse reads the header of the message in r and returns it with the body
// still unread. The io.Reader is read a chunk at a time, as asked for by the
// header parser, until the empty line ending the header has been seen. The
// header options, such as header.WithChunkSize and
// header.WithMaxHeaderLength, are passed on to header.Decode.
//
// The bytes of the last chunk that follow the header and whatever remains in r
// make up the body. The body is nil when r was exhausted by the header.
//
// If the header cannot be parsed, the error wraps header.ErrNotHeader and r is
// left partially read.
func Parse(r io.Reader, opts ...header.ParseOption) (*Opaque, error) {
	h, rest, err := header.Decode(r, opts...)
	if err != nil {
		return nil, err
	}

	msg := &Opaque{Header: h}
	if len(rest) > 0 || !exhausted(r) {
		msg.Reader = &remainder{rest, r}
	}

	return msg, nil
}

// exhausted reports whether r is known to have nothing left.
func exhausted(r io.Reader) bool {
	type lener interface{ Len() int }
	if l, ok := r.(lener); ok {
		return l.Len() == 0
	}
	return false
}
