package parser

import (
	"bytes"
)

// DefaultChunkSize is the capacity requested by a Read when an Input is
// created without an explicit chunk size.
const DefaultChunkSize = 4096

// Input is the byte window a parser consumes. Bytes are appended with Write and
// consumed by the parsers run against it. Bytes behind the cursor are kept only
// as long as a backtracking mark still refers to them; everything before the
// oldest live mark may be discarded the next time Write needs room.
//
// An Input belongs to exactly one parse. It must not be shared between
// goroutines or reused once the parse has finished.
type Input struct {
	buf      []byte
	off      int // absolute offset of buf[0]
	pos      int // absolute offset of the cursor
	marks    []int
	complete bool
	capacity int

	// line accounting for the bytes already discarded
	lines     int
	lineStart int
}

// NewInput returns an empty Input that requests chunks of the given capacity.
// A capacity less than or equal to 0 selects DefaultChunkSize.
func NewInput(capacity int) *Input {
	if capacity <= 0 {
		capacity = DefaultChunkSize
	}
	return &Input{
		buf:      make([]byte, 0, capacity),
		capacity: capacity,
	}
}

// Write appends p to the window and returns the number of bytes accepted,
// which is always len(p). Bytes no longer reachable by any rollback are
// compacted away first.
func (in *Input) Write(p []byte) int {
	in.compact()
	in.buf = append(in.buf, p...)
	return len(p)
}

// Capacity returns the chunk size this Input requests from its driver.
func (in *Input) Capacity() int { return in.capacity }

// Pos returns the absolute offset of the cursor, which is also the number of
// bytes consumed so far.
func (in *Input) Pos() int { return in.pos }

// Buffered returns the number of bytes written but not yet consumed.
func (in *Input) Buffered() int { return in.available() }

// Retained returns the number of bytes currently held in the window, including
// bytes behind the cursor kept for rollback.
func (in *Input) Retained() int { return len(in.buf) }

// Marks returns the number of live backtracking marks.
func (in *Input) Marks() int { return len(in.marks) }

// Complete reports whether the driver has signaled the end of input.
func (in *Input) Complete() bool { return in.complete }

func (in *Input) compact() {
	low := in.pos
	for _, m := range in.marks {
		if m < low {
			low = m
		}
	}

	n := low - in.off
	if n <= 0 {
		return
	}

	gone := in.buf[:n]
	if i := bytes.LastIndexByte(gone, '\n'); i >= 0 {
		in.lines += bytes.Count(gone, []byte{'\n'})
		in.lineStart = in.off + i + 1
	}

	in.buf = append(in.buf[:0], in.buf[n:]...)
	in.off = low
}

func (in *Input) available() int {
	return in.off + len(in.buf) - in.pos
}

// at returns the byte i positions past the cursor. The caller must have made
// sure it is buffered.
func (in *Input) at(i int) byte {
	return in.buf[in.pos-in.off+i]
}

func (in *Input) slice(from, to int) []byte {
	return in.buf[from-in.off : to-in.off]
}

func (in *Input) mark() int {
	in.marks = append(in.marks, in.pos)
	return in.pos
}

func (in *Input) release(m int) {
	for i := len(in.marks) - 1; i >= 0; i-- {
		if in.marks[i] == m {
			in.marks = append(in.marks[:i], in.marks[i+1:]...)
			return
		}
	}
}

func (in *Input) rollback(m int) {
	in.pos = m
}

// Position returns the 1-based line and column of the given absolute offset.
// Offsets that have already been compacted away report the first retained
// line.
func (in *Input) Position(abs int) (line, col int) {
	if abs < in.off {
		abs = in.off
	}
	if abs > in.off+len(in.buf) {
		abs = in.off + len(in.buf)
	}

	seen := in.buf[:abs-in.off]
	line = in.lines + 1
	start := in.lineStart
	if i := bytes.LastIndexByte(seen, '\n'); i >= 0 {
		line += bytes.Count(seen, []byte{'\n'})
		start = in.off + i + 1
	}

	return line, abs - start + 1
}
