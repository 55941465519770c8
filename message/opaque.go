package message

import (
	"io"

	"github.com/zostay/go-rfc5322/message/header"
)

// Opaque is an email message as a parsed header and an unparsed body, very
// similar to the net/mail message implementation.
type Opaque struct {
	// Header holds the parsed header of the message.
	*header.Header

	// Reader will contain the body content of the message. If the message
	// has no body, Reader is nil.
	io.Reader
}

// WriteTo writes the header followed by the body to w. The header is encoded
// anew from its parsed form, so it may differ from the input in layout, but
// the body bytes are copied as they are.
//
// This can only be safely called once as it will consume the io.Reader.
func (m *Opaque) WriteTo(w io.Writer) (int64, error) {
	total, err := m.Header.WriteTo(w)
	if err != nil {
		return total, err
	}

	if m.Reader != nil {
		bn, err := io.Copy(w, m.Reader)
		total += bn
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// GetHeader returns the header for the message.
func (m *Opaque) GetHeader() *header.Header {
	return m.Header
}

// GetReader returns the reader containing the body of the message.
func (m *Opaque) GetReader() io.Reader {
	return m.Reader
}

// Close closes the input the body is read from, if it can be closed.
func (m *Opaque) Close() error {
	if c, isCloser := m.Reader.(io.Closer); isCloser {
		return c.Close()
	}
	return nil
}
