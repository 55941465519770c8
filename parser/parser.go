package parser

// Unit is the value of parsers run only for their effect on the input.
type Unit struct{}

// FailFunc receives a parse failure.
type FailFunc func(err *Error) Step

// OkFunc receives a parsed value.
type OkFunc[T any] func(v T) Step

// Parser is a parser in continuation-passing style. It consumes from in and
// then calls exactly one of fail or ok, returning the Step that call returns.
// When it runs out of buffered bytes before the input is complete, it returns
// a suspension instead and resumes where it stopped once more bytes arrive.
type Parser[T any] func(in *Input, fail FailFunc, ok OkFunc[T]) Step

// ensure calls ok once n bytes are buffered past the cursor, or eof if the
// input completes first.
func ensure(in *Input, n int, ok, eof func() Step) Step {
	if in.available() >= n {
		return ok()
	}
	if in.complete {
		return eof()
	}
	return stepRead{func() Step { return ensure(in, n, ok, eof) }}
}

// Return succeeds with v without consuming anything.
func Return[T any](v T) Parser[T] {
	return func(in *Input, fail FailFunc, ok OkFunc[T]) Step {
		return ok(v)
	}
}

// Nothing fails with NothingToDo without consuming anything.
func Nothing[T any]() Parser[T] {
	return func(in *Input, fail FailFunc, ok OkFunc[T]) Step {
		return fail(in.failure(NothingToDo))
	}
}

// Peek returns the current character without consuming it. It fails with
// EndOfInput when the input is exhausted.
func Peek() Parser[byte] {
	return func(in *Input, fail FailFunc, ok OkFunc[byte]) Step {
		return ensure(in, 1,
			func() Step { return ok(in.at(0)) },
			func() Step { return fail(in.failure(EndOfInput)) },
		)
	}
}

// PeekChar is like Peek, but returns -1 instead of failing at the end of input.
func PeekChar() Parser[int] {
	return func(in *Input, fail FailFunc, ok OkFunc[int]) Step {
		return ensure(in, 1,
			func() Step { return ok(int(in.at(0))) },
			func() Step { return ok(-1) },
		)
	}
}

// Advance consumes n characters.
func Advance(n int) Parser[Unit] {
	return func(in *Input, fail FailFunc, ok OkFunc[Unit]) Step {
		return ensure(in, n,
			func() Step {
				in.pos += n
				return ok(Unit{})
			},
			func() Step { return fail(in.failure(EndOfInput)) },
		)
	}
}

// Back moves the cursor back n characters. Those characters must still be
// retained, which holds whenever a mark older than them is live (see Retain).
func Back(n int) Parser[Unit] {
	return func(in *Input, fail FailFunc, ok OkFunc[Unit]) Step {
		if in.pos-n < in.off {
			return fail(in.failure(NothingToDo))
		}
		in.pos -= n
		return ok(Unit{})
	}
}

// Satisfy consumes one character accepted by pred.
func Satisfy(pred func(byte) bool) Parser[byte] {
	return func(in *Input, fail FailFunc, ok OkFunc[byte]) Step {
		return ensure(in, 1,
			func() Step {
				c := in.at(0)
				if !pred(c) {
					return fail(in.unexpected())
				}
				in.pos++
				return ok(c)
			},
			func() Step { return fail(in.failure(EndOfInput)) },
		)
	}
}

// Char consumes the character c.
func Char(c byte) Parser[byte] {
	return func(in *Input, fail FailFunc, ok OkFunc[byte]) Step {
		return ensure(in, 1,
			func() Step {
				if in.at(0) != c {
					err := in.failure(ExpectedChar)
					err.Char = c
					return fail(err)
				}
				in.pos++
				return ok(c)
			},
			func() Step {
				err := in.failure(ExpectedChar)
				err.Char = c
				return fail(err)
			},
		)
	}
}

// String consumes exactly s.
func String(s string) Parser[string] {
	return func(in *Input, fail FailFunc, ok OkFunc[string]) Step {
		miss := func() Step {
			err := in.failure(UnexpectedString)
			err.String = s
			return fail(err)
		}
		return ensure(in, len(s),
			func() Step {
				for i := 0; i < len(s); i++ {
					if in.at(i) != s[i] {
						return miss()
					}
				}
				in.pos += len(s)
				return ok(s)
			},
			miss,
		)
	}
}

// Repeat consumes between lo and hi characters accepted by pred, as many as
// possible. A negative hi means no upper bound. The run is scanned once even
// when it spans several chunks.
func Repeat(lo, hi int, pred func(byte) bool) Parser[string] {
	return func(in *Input, fail FailFunc, ok OkFunc[string]) Step {
		var acc []byte
		count := 0
		var loop func() Step
		loop = func() Step {
			start := in.pos
			for in.available() > 0 && (hi < 0 || count < hi) && pred(in.at(0)) {
				in.pos++
				count++
			}

			if in.available() == 0 && !in.complete && (hi < 0 || count < hi) {
				acc = append(acc, in.slice(start, in.pos)...)
				return stepRead{loop}
			}

			if count < lo {
				return fail(in.unexpected())
			}

			if acc == nil {
				return ok(string(in.slice(start, in.pos)))
			}
			acc = append(acc, in.slice(start, in.pos)...)
			return ok(string(acc))
		}
		return loop()
	}
}

// TakeWhile consumes the longest run of characters accepted by pred, possibly
// empty.
func TakeWhile(pred func(byte) bool) Parser[string] {
	return Repeat(0, -1, pred)
}

// TakeWhile1 is TakeWhile requiring at least one character.
func TakeWhile1(pred func(byte) bool) Parser[string] {
	return Repeat(1, -1, pred)
}

// SkipWhile is TakeWhile for when the text is not needed.
func SkipWhile(pred func(byte) bool) Parser[Unit] {
	return func(in *Input, fail FailFunc, ok OkFunc[Unit]) Step {
		var loop func() Step
		loop = func() Step {
			for in.available() > 0 && pred(in.at(0)) {
				in.pos++
			}
			if in.available() == 0 && !in.complete {
				return stepRead{loop}
			}
			return ok(Unit{})
		}
		return loop()
	}
}
