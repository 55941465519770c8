// Package encoding decodes RFC 2047 encoded words. The header grammar only
// recognizes encoded words; turning the payload into text is the job of a
// Decoder, and Decode is the one used unless another is configured.
//
// Charset conversion loads every encoding provided by
// golang.org/x/text/encoding/ianaindex, so pretty much any charset found in the
// wild can be turned into UTF-8.
package encoding

import (
	"errors"
	"strings"

	"github.com/zostay/go-rfc5322/internal/scanner"
)

// Errors recorded in a Result. These never fail a parse.
var (
	// ErrUnknownCharset is recorded when the charset of an encoded word has
	// no known conversion to UTF-8.
	ErrUnknownCharset = errors.New("unknown charset")

	// ErrMalformedBase64 is recorded when a B encoded payload could not be
	// decoded completely, even after cleanup.
	ErrMalformedBase64 = errors.New("malformed base64")
)

// Encoding names the transfer encoding of an encoded word.
type Encoding byte

// These are the two encodings RFC 2047 defines.
const (
	Q Encoding = 'Q' // quoted-printable, with _ for space
	B Encoding = 'B' // base64
)

// String returns the single letter used on the wire.
func (e Encoding) String() string { return string([]byte{byte(e)}) }

// Status describes how much cleanup a B encoded payload needed before it could
// be decoded. Q encoded payloads are always Clean.
type Status int

// These are the possible statuses.
const (
	Clean        Status = iota // decoded as written
	Dirty                      // characters outside the base64 alphabet were dropped
	WrongPadding               // the padding was missing or wrong
	Malformed                  // could only be decoded in part
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case WrongPadding:
		return "wrong-padding"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

// Result is the outcome of decoding one encoded word.
type Result struct {
	// Data holds the payload after transfer decoding, before charset
	// conversion.
	Data []byte

	// Text holds the payload converted to UTF-8. When the conversion fails,
	// it holds Data with invalid sequences replaced.
	Text string

	Status Status

	// Err is ErrMalformedBase64 or a charset conversion error, if any.
	Err error
}

// Decoder turns the charset, encoding, and encoded text of an encoded word
// into a Result.
type Decoder func(charset string, enc Encoding, text string) Result

// ParseWord splits s into the parts of an encoded word of the form
// =?charset?encoding?encoded-text?=. The ok result is false when s is not an
// encoded word.
func ParseWord(s string) (charset string, enc Encoding, text string, ok bool) {
	if len(s) < 8 || !strings.HasPrefix(s, "=?") || !strings.HasSuffix(s, "?=") {
		return "", 0, "", false
	}

	parts := strings.Split(s[2:len(s)-2], "?")
	if len(parts) != 3 {
		return "", 0, "", false
	}

	charset, e, text := parts[0], parts[1], parts[2]
	if charset == "" || len(e) != 1 {
		return "", 0, "", false
	}

	for i := 0; i < len(charset); i++ {
		if !scanner.IsTokenChar(charset[i]) {
			return "", 0, "", false
		}
	}

	switch e[0] {
	case 'Q', 'q':
		enc = Q
	case 'B', 'b':
		enc = B
	default:
		return "", 0, "", false
	}

	for i := 0; i < len(text); i++ {
		if !scanner.IsVCHAR(text[i]) {
			return "", 0, "", false
		}
	}

	return charset, enc, text, true
}
