// Package scanner holds the character classes and token-level rules of RFC
// 5322 (with the RFC 6532 extension to 8-bit text) that the header grammar is
// built from.
package scanner

const (
	cWSP uint16 = 1 << iota
	cDigit
	cAlpha
	cVCHAR
	cObsCtl
	cAtext
	cQtext
	cCtext
	cDtext
	cFtext
	cToken
)

var classes [256]uint16

func init() {
	for i := 0; i < 256; i++ {
		c := byte(i)
		var k uint16

		switch {
		case c == ' ' || c == '\t':
			k |= cWSP
		case c >= '0' && c <= '9':
			k |= cDigit
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			k |= cAlpha
		}

		if c >= 33 && c <= 126 {
			k |= cVCHAR
		}

		if c >= 1 && c <= 8 || c == 11 || c == 12 || c >= 14 && c <= 31 || c == 127 {
			k |= cObsCtl
		}

		if k&(cDigit|cAlpha) != 0 || c >= 0x80 {
			k |= cAtext
		}
		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~':
			k |= cAtext
		}

		if c == 33 || c >= 35 && c <= 91 || c >= 93 && c <= 126 || c >= 0x80 {
			k |= cQtext
		}

		if c >= 33 && c <= 39 || c >= 42 && c <= 91 || c >= 93 && c <= 126 || c >= 0x80 {
			k |= cCtext
		}

		if c >= 33 && c <= 90 || c >= 94 && c <= 126 || c >= 0x80 {
			k |= cDtext
		}

		if c >= 33 && c <= 57 || c >= 59 && c <= 126 {
			k |= cFtext
		}

		if c > 32 && c < 127 {
			k |= cToken
		}
		switch c {
		case '(', ')', '<', '>', '@', ',', ';', ':', '"', '/', '[', ']', '?', '.', '=':
			k &^= cToken
		}

		classes[i] = k
	}
}

// IsWSP reports whether c is a space or a horizontal tab.
func IsWSP(c byte) bool { return classes[c]&cWSP != 0 }

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool { return classes[c]&cDigit != 0 }

// IsAlpha reports whether c is an ASCII letter.
func IsAlpha(c byte) bool { return classes[c]&cAlpha != 0 }

// IsVCHAR reports whether c is a visible ASCII character.
func IsVCHAR(c byte) bool { return classes[c]&cVCHAR != 0 }

// IsObsNoWSCTL reports whether c is a control character other than CR, LF,
// HTAB, and NUL.
func IsObsNoWSCTL(c byte) bool { return classes[c]&cObsCtl != 0 }

// IsCTL reports whether c is an ASCII control character.
func IsCTL(c byte) bool { return c < 32 || c == 127 }

// Is8Bit reports whether c is outside of 7-bit ASCII.
func Is8Bit(c byte) bool { return c >= 0x80 }

// IsAtext reports whether c may appear in an atom.
func IsAtext(c byte) bool { return classes[c]&cAtext != 0 }

// IsQtext reports whether c may appear unescaped in a quoted string.
func IsQtext(c byte) bool { return classes[c]&cQtext != 0 }

// IsCtext reports whether c may appear unescaped in a comment.
func IsCtext(c byte) bool { return classes[c]&cCtext != 0 }

// IsDtext reports whether c may appear unescaped in a domain literal.
func IsDtext(c byte) bool { return classes[c]&cDtext != 0 }

// IsFtext reports whether c may appear in a field name.
func IsFtext(c byte) bool { return classes[c]&cFtext != 0 }

// IsTokenChar reports whether c may appear in the charset or encoding of an
// RFC 2047 encoded word.
func IsTokenChar(c byte) bool { return classes[c]&cToken != 0 }

// IsUtext reports whether c may appear in a word of unstructured text.
func IsUtext(c byte) bool { return IsVCHAR(c) || Is8Bit(c) }

// IsObsUtext is IsUtext extended with the obsolete control characters.
func IsObsUtext(c byte) bool { return IsUtext(c) || IsObsNoWSCTL(c) }
