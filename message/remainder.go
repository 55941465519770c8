package message

import "io"

// remainder returns the bytes the header parser read past the end of the
// header and then the rest of the original io.Reader.
type remainder struct {
	read []byte
	r    io.Reader
}

// Read drains the bytes already read before reading from the io.Reader.
func (r *remainder) Read(p []byte) (int, error) {
	if len(r.read) == 0 {
		return r.r.Read(p)
	}

	n := copy(p, r.read)
	r.read = r.read[n:]
	return n, nil
}

// Close passes the Close() call through to the io.Reader. If the io.Reader is
// not an io.Closer, this is a no-op.
func (r *remainder) Close() error {
	if c, isCloser := r.r.(io.Closer); isCloser {
		return c.Close()
	}
	return nil
}
