package field

import (
	"bytes"
	"errors"
	"strings"
)

const (
	DefaultFoldIndent          = " " // indent placed before folded lines
	DefaultPreferredFoldLength = 78  // we prefer header lines shorter than this

	DoNotFold = -1 // we prefer not to fold at all
)

var (
	// DefaultFoldEncoding folds at DefaultPreferredFoldLength using
	// DefaultFoldIndent.
	DefaultFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DefaultPreferredFoldLength,
	}

	// DoNotFoldEncoding is a FoldEncoding that doesn't perform folding except
	// where a value was folded when parsed.
	DoNotFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DoNotFold,
	}
)

var (
	// ErrFoldIndentSpace is returned by NewFoldEncoding when a non-space/non-tab
	// character is put in the foldIndent setting.
	ErrFoldIndentSpace = errors.New("fold indent may only contains spaces and tabs")

	// ErrFoldIndentTooShort is returned by NewFoldEncoding when the foldIndent
	// is empty.
	ErrFoldIndentTooShort = errors.New("fold indent must contain at least one space or tab")

	// ErrFoldIndentTooLong is returned by NewFoldEncoding when the foldIndent
	// setting is equal to or longer than the preferredFoldLength.
	ErrFoldIndentTooLong = errors.New("fold indent must be shorter than the preferred fold length")

	// ErrFoldLengthTooShort is returned by NewFoldEncoding when the
	// preferredFoldLength is shorter than 3 bytes long.
	ErrFoldLengthTooShort = errors.New("preferred fold length cannot be too short")
)

// FoldEncoding provides the tooling for folding email message headers as they
// are encoded.
type FoldEncoding struct {
	foldIndent          string
	preferredFoldLength int
}

// NewFoldEncoding creates a new FoldEncoding with the given settings. The
// foldIndent must be a string, filled with one or more space or tab characters,
// and it must be shorter than the preferredFoldLength. The preferredFoldLength
// may be DoNotFold. If any of the given inputs do not meet these requirements,
// an error will be returned.
//
// Folds are only ever placed between tokens, so a single token longer than
// the preferred length still ends up on a line of its own that is too long.
func NewFoldEncoding(foldIndent string, preferredFoldLength int) (*FoldEncoding, error) {
	if ix := strings.IndexFunc(foldIndent, func(c rune) bool { return !isSpace(c) }); ix >= 0 {
		return nil, ErrFoldIndentSpace
	}

	if len(foldIndent) < 1 {
		return nil, ErrFoldIndentTooShort
	}

	if preferredFoldLength != DoNotFold {
		if len(foldIndent) >= preferredFoldLength {
			return nil, ErrFoldIndentTooLong
		}

		// The fold indent plus a single character is the shortest line we
		// can emit after a fold.
		if preferredFoldLength < 3 {
			return nil, ErrFoldLengthTooShort
		}
	}

	return &FoldEncoding{foldIndent, preferredFoldLength}, nil
}

func isSpace(c rune) bool { return c == ' ' || c == '\t' }

// lineWriter lays tokens out on folded lines. A token written with unit is
// never split. A space marks a place where the line may be folded instead.
type lineWriter struct {
	vf      *FoldEncoding
	buf     bytes.Buffer
	col     int
	content bool // the current line has something after its indent
	pending bool // a space is owed before the next unit
}

func (w *lineWriter) space() { w.pending = true }

func (w *lineWriter) unit(s string) {
	if w.pending {
		w.pending = false
		if w.vf.preferredFoldLength != DoNotFold && w.content &&
			w.col+1+len(s) > w.vf.preferredFoldLength {
			w.fold()
		} else {
			w.buf.WriteByte(' ')
			w.col++
		}
	}

	w.buf.WriteString(s)
	w.col += len(s)
	if len(s) > 0 {
		w.content = true
	}
}

// fold breaks the line unconditionally.
func (w *lineWriter) fold() {
	w.pending = false
	w.buf.WriteString("\r\n")
	w.buf.WriteString(w.vf.foldIndent)
	w.col = len(w.vf.foldIndent)
	w.content = false
}

// raw writes s verbatim, without any layout.
func (w *lineWriter) raw(s string) {
	if w.pending {
		w.pending = false
		w.buf.WriteByte(' ')
	}
	w.buf.WriteString(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.col = len(s) - i - 1
	} else {
		w.col += len(s)
	}
}

// end terminates the field.
func (w *lineWriter) end() {
	w.pending = false
	w.buf.WriteString("\r\n")
	w.col = 0
	w.content = false
}
