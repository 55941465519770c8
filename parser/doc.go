// Package parser provides the incremental parsing machinery the header grammar
// is built on. Parsers are written in continuation-passing style and run against
// an Input, a window of bytes that the caller fills as the parse asks for more.
//
// Driving a parser looks like this:
//
//	in := parser.NewInput(4096)
//	st := parser.Run(p, in)
//	for {
//		switch s := st.(type) {
//		case parser.Done[T]:
//			// s.Value, s.Consumed
//		case parser.Fail[T]:
//			// s.Err
//		case parser.Read[T]:
//			n, _ := src.Read(buf[:s.Capacity])
//			in.Write(buf[:n])
//			st = s.Continue(n, status)
//		}
//	}
//
// A parser that runs out of bytes suspends and picks up exactly where it left
// off, so the result never depends on how the input was split into chunks. Use
// Feed when the whole input is already in memory.
//
// Alternation is ordered (the first alternative that succeeds wins) and rolls
// the cursor back to a mark between attempts. The Input keeps only the bytes a
// live mark may still roll back to, so memory stays bounded by the longest
// backtracking region rather than by the whole input.
package parser
