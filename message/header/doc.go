// Package header parses RFC 5322 message headers, obsolete syntax included,
// into a Header record and writes them back out.
//
// Parse takes a header on its own, ParseBuffer a header at the start of a
// larger buffer, and Decode a header read from an io.Reader. All three feed
// the input to the parser in chunks and give the same result whatever the
// chunk size.
//
// Parsing is lenient about fields it has no grammar for and strict about the
// rest. An unknown field is kept as an Extension, a Subject or extension whose
// text cannot be read is kept as Unsafe, and a line that is not a field at all
// is kept in Skipped. A standard field with a malformed value fails the whole
// parse with ErrNotHeader.
package header
