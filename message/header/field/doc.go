// Package field holds the typed values the header grammar produces: one Field
// variant per kind of header line, the address model, date-times, and the
// tokens of unstructured text. Values are plain data. Build them by hand or get
// them from the header package, and turn them back into wire bytes with a
// FoldEncoding.
package field
