package encoding

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

// Decode is the default Decoder. It transfer decodes the text and converts the
// result from charset to UTF-8.
func Decode(charset string, enc Encoding, text string) Result {
	var r Result
	switch enc {
	case Q:
		r.Data = DecodeQ(text)
	default:
		r.Data, r.Status = DecodeB(text)
		if r.Status == Malformed {
			r.Err = ErrMalformedBase64
		}
	}

	var err error
	r.Text, err = Charset(charset, r.Data)
	if r.Err == nil {
		r.Err = err
	}

	return r
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// DecodeQ decodes the Q encoding. An underscore stands for a space and =XX for
// the byte with hex value XX. An = not followed by two hex digits is kept as
// written.
func DecodeQ(text string) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '_':
			out = append(out, ' ')
		case '=':
			if i+2 < len(text) {
				hi, okHi := unhex(text[i+1])
				lo, okLo := unhex(text[i+2])
				if okHi && okLo {
					out = append(out, hi<<4|lo)
					i += 2
					continue
				}
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}

func isBase64(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '/'
}

// DecodeB decodes the B encoding. Payloads that are not strictly valid base64
// are cleaned up as far as needed to decode them, and the returned Status tells
// how far that was.
func DecodeB(text string) ([]byte, Status) {
	if b, err := base64.StdEncoding.DecodeString(text); err == nil {
		return b, Clean
	}

	status := WrongPadding
	clean := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case isBase64(c):
			clean = append(clean, c)
		case c == '=':
		default:
			status = Dirty
		}
	}

	if b, err := base64.RawStdEncoding.DecodeString(string(clean)); err == nil {
		return b, status
	}

	// a single dangling character cannot carry a byte
	clean = clean[:len(clean)-len(clean)%4]
	b, _ := base64.RawStdEncoding.DecodeString(string(clean))
	return b, Malformed
}

// Charset converts b from the named charset to UTF-8. An RFC 2231 language
// suffix on the charset name is ignored. When the charset is unknown, the bytes
// are returned with invalid UTF-8 replaced alongside an error wrapping
// ErrUnknownCharset.
func Charset(charset string, b []byte) (string, error) {
	if i := strings.IndexByte(charset, '*'); i >= 0 {
		charset = charset[:i]
	}

	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		if utf8.Valid(b) {
			return string(b), nil
		}
		return strings.ToValidUTF8(string(b), string(utf8.RuneError)), nil
	}

	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil || e == nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError)),
			fmt.Errorf("%w %q", ErrUnknownCharset, charset)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError)), err
	}

	return string(eb), nil
}
