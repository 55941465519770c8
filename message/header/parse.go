package header

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/slog"

	"github.com/zostay/go-rfc5322/message/header/encoding"
	"github.com/zostay/go-rfc5322/message/header/field"
	"github.com/zostay/go-rfc5322/message/header/grammar"
	"github.com/zostay/go-rfc5322/parser"
)

// Constants related to parse options.
const (
	// DefaultChunkSize is the default number of bytes handed to the parser at
	// a time.
	DefaultChunkSize = parser.DefaultChunkSize

	// DefaultMaxHeaderLength is the default maximum number of bytes Decode
	// will read before giving up on finding the end of the header.
	DefaultMaxHeaderLength = 1 << 20
)

var defaultGrammar = grammar.New(nil)

type settings struct {
	chunkSize    int
	maxHeaderLen int
	logger       *slog.Logger
	dec          encoding.Decoder
}

// ParseOption refers to options that may be passed to the parse functions to
// modify how the parser works.
type ParseOption func(s *settings)

// WithChunkSize is a ParseOption that controls how many bytes are handed to the
// parser at a time. The result does not depend on it. The default chunk size
// is DefaultChunkSize.
func WithChunkSize(chunkSize int) ParseOption {
	return func(s *settings) { s.chunkSize = chunkSize }
}

// WithMaxHeaderLength is a ParseOption that sets how many bytes Decode may read
// while looking for the end of the header before it fails with
// ErrLargeHeader. Setting this to a value less than or equal to 0 will result
// in there being no maximum length. The default value is
// DefaultMaxHeaderLength.
func WithMaxHeaderLength(n int) ParseOption {
	return func(s *settings) { s.maxHeaderLen = n }
}

// WithLogger is a ParseOption that sets the logger parse events are reported
// to. The default is slog.Default(). Every event is logged at debug level.
func WithLogger(l *slog.Logger) ParseOption {
	return func(s *settings) { s.logger = l }
}

// WithWordDecoder is a ParseOption that replaces encoding.Decode as the decoder
// of encoded words.
func WithWordDecoder(dec encoding.Decoder) ParseOption {
	return func(s *settings) { s.dec = dec }
}

func configure(opts []ParseOption) *settings {
	s := &settings{
		chunkSize:    DefaultChunkSize,
		maxHeaderLen: DefaultMaxHeaderLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *settings) grammar() *grammar.Grammar {
	if s.dec == nil {
		return defaultGrammar
	}
	return grammar.New(s.dec)
}

// finish assembles a Header from a successful parse and reports it.
func (s *settings) finish(fs []field.Field, consumed int) *Header {
	h := assemble(fs)

	for _, u := range h.Unsafe {
		s.logger.Debug("unsafe field retained", slog.String("field", u.Name), slog.Int("count", len(u.Values)))
	}
	if len(h.Skipped) > 0 {
		s.logger.Debug("lines skipped", slog.Int("count", len(h.Skipped)))
	}
	s.logger.Debug("header parsed", slog.Int("fields", h.Len()), slog.Int("consumed", consumed))

	metricParse.WithLabelValues("ok").Inc()
	return h
}

// fail reports a parse failure and wraps it in ErrNotHeader.
func (s *settings) fail(perr *parser.Error) error {
	s.logger.Debug("header parse failed", slog.Any("err", perr))
	metricParse.WithLabelValues("notheader").Inc()
	return fmt.Errorf("%w: %w", ErrNotHeader, perr)
}

// terminate makes sure m ends with the empty line that ends a header.
func terminate(m []byte) []byte {
	switch {
	case len(m) == 0:
		return []byte("\r\n")
	case bytes.Equal(m, []byte("\r\n")), bytes.HasSuffix(m, []byte("\r\n\r\n")):
		return m
	case bytes.HasSuffix(m, []byte("\r\n")):
		return append(m[:len(m):len(m)], '\r', '\n')
	}
	return append(m[:len(m):len(m)], '\r', '\n', '\r', '\n')
}

// Parse parses m, which must hold a complete header and nothing else. The empty
// line ending the header may be left off, in which case it is added. A header
// that ends before the end of m is an error.
func Parse(m []byte, opts ...ParseOption) (*Header, error) {
	data := terminate(m)

	h, n, err := ParseBuffer(data, 0, len(data), opts...)
	if err != nil {
		return nil, err
	}

	if n < len(data) {
		return nil, fmt.Errorf("%w: %d bytes follow the end of the header", ErrNotHeader, len(data)-n)
	}

	return h, nil
}

// ParseBuffer parses the header at the start of buf[off:off+length], such as a
// whole message. It returns the Header and the number of bytes it consumed,
// the empty line ending the header included, so the body begins at
// off+consumed.
func ParseBuffer(buf []byte, off, length int, opts ...ParseOption) (*Header, int, error) {
	s := configure(opts)

	fs, n, err := parser.Feed(s.grammar().Header(), buf[off:off+length], s.chunkSize)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			return nil, 0, s.fail(perr)
		}
		return nil, 0, err
	}

	return s.finish(fs, n), n, nil
}

// Decode reads a header from r, a chunk at a time as the parser asks for
// input. It returns the Header and whatever bytes were read from r past the end
// of the header. Those bytes are the start of the body; the rest of the body is
// still in r.
func Decode(r io.Reader, opts ...ParseOption) (*Header, []byte, error) {
	s := configure(opts)

	in := parser.NewInput(s.chunkSize)
	st := parser.Run(s.grammar().Header(), in)

	var read []byte
	buf := make([]byte, in.Capacity())
	for {
		switch x := st.(type) {
		case parser.Done[[]field.Field]:
			return s.finish(x.Value, x.Consumed), read[x.Consumed:], nil

		case parser.Fail[[]field.Field]:
			return nil, nil, s.fail(x.Err)

		case parser.Read[[]field.Field]:
			if s.maxHeaderLen > 0 && len(read) >= s.maxHeaderLen {
				s.logger.Debug("header too large", slog.Int("read", len(read)))
				metricParse.WithLabelValues("large").Inc()
				return nil, nil, ErrLargeHeader
			}

			n, err := r.Read(buf[:x.Capacity])
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, nil, err
			}

			in.Write(buf[:n])
			read = append(read, buf[:n]...)

			status := parser.Incomplete
			if errors.Is(err, io.EOF) {
				status = parser.Complete
			}
			st = x.Continue(n, status)
		}
	}
}
