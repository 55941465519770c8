package parser

// Map applies f to the value of p.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in *Input, fail FailFunc, ok OkFunc[B]) Step {
		return p(in, fail, func(v A) Step { return ok(f(v)) })
	}
}

// Bind runs p and then the parser f builds from its value.
func Bind[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return func(in *Input, fail FailFunc, ok OkFunc[B]) Step {
		return p(in, fail, func(v A) Step { return f(v)(in, fail, ok) })
	}
}

// Then runs p and then q, keeping the value of q.
func Then[A, B any](p Parser[A], q Parser[B]) Parser[B] {
	return func(in *Input, fail FailFunc, ok OkFunc[B]) Step {
		return p(in, fail, func(A) Step { return q(in, fail, ok) })
	}
}

// Skip runs p and then q, keeping the value of p.
func Skip[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return func(in *Input, fail FailFunc, ok OkFunc[A]) Step {
		return p(in, fail, func(v A) Step {
			return q(in, fail, func(B) Step { return ok(v) })
		})
	}
}

// Between runs open, p, and close, keeping the value of p.
func Between[A, B, C any](open Parser[A], p Parser[B], close Parser[C]) Parser[B] {
	return Then(open, Skip(p, close))
}

// Discard runs p for its effect only.
func Discard[T any](p Parser[T]) Parser[Unit] {
	return Map(p, func(T) Unit { return Unit{} })
}

// farther keeps whichever failure happened deeper into the input.
func farther(a, b *Error) *Error {
	if a == nil || b.Offset >= a.Offset {
		return b
	}
	return a
}

// Alt tries each parser in turn. A mark is set at the cursor before each
// attempt; when an attempt fails, the cursor is rolled back to the mark and the
// next parser is tried. The mark is released as soon as an attempt succeeds, so
// a failure later in the grammar never retries the remaining alternatives.
// When all fail, the failure that got the farthest is reported.
func Alt[T any](ps ...Parser[T]) Parser[T] {
	return func(in *Input, fail FailFunc, ok OkFunc[T]) Step {
		var best *Error
		var try func(i int) Step
		try = func(i int) Step {
			if i == len(ps) {
				if best == nil {
					best = in.failure(NothingToDo)
				}
				return fail(best)
			}

			m := in.mark()
			return ps[i](in,
				func(err *Error) Step {
					in.rollback(m)
					in.release(m)
					best = farther(best, err)
					return try(i + 1)
				},
				func(v T) Step {
					in.release(m)
					return ok(v)
				},
			)
		}
		return try(0)
	}
}

// TryCommit runs prefix and, when it succeeds, commits to rest: a failure of
// rest is final and fallback is not tried. Only when prefix itself fails is the
// cursor rolled back and fallback run instead. Use it where the prefix settles
// which production applies.
func TryCommit[A, T any](prefix Parser[A], rest func(A) Parser[T], fallback Parser[T]) Parser[T] {
	return func(in *Input, fail FailFunc, ok OkFunc[T]) Step {
		m := in.mark()
		return prefix(in,
			func(err *Error) Step {
				in.rollback(m)
				in.release(m)
				return fallback(in, fail, ok)
			},
			func(v A) Step {
				in.release(m)
				return rest(v)(in, fail, ok)
			},
		)
	}
}

// Option runs p, or succeeds with def without consuming anything if p fails.
func Option[T any](def T, p Parser[T]) Parser[T] {
	return Alt(p, Return(def))
}

// Maybe runs p and returns a pointer to its value, or nil if p fails.
func Maybe[T any](p Parser[T]) Parser[*T] {
	return Option[*T](nil, Map(p, func(v T) *T { return &v }))
}

// Lookahead runs p and then rolls the cursor back to where p started.
func Lookahead[T any](p Parser[T]) Parser[T] {
	return func(in *Input, fail FailFunc, ok OkFunc[T]) Step {
		m := in.mark()
		return p(in,
			func(err *Error) Step {
				in.rollback(m)
				in.release(m)
				return fail(err)
			},
			func(v T) Step {
				in.rollback(m)
				in.release(m)
				return ok(v)
			},
		)
	}
}

// Not succeeds without consuming anything when p fails, and fails when p
// succeeds.
func Not[T any](p Parser[T]) Parser[Unit] {
	return func(in *Input, fail FailFunc, ok OkFunc[Unit]) Step {
		m := in.mark()
		return p(in,
			func(*Error) Step {
				in.rollback(m)
				in.release(m)
				return ok(Unit{})
			},
			func(T) Step {
				in.rollback(m)
				in.release(m)
				return fail(in.unexpected())
			},
		)
	}
}

// Retain holds a mark at the cursor while p runs, so every byte p consumes
// stays available to Back until p finishes.
func Retain[T any](p Parser[T]) Parser[T] {
	return func(in *Input, fail FailFunc, ok OkFunc[T]) Step {
		m := in.mark()
		return p(in,
			func(err *Error) Step {
				in.release(m)
				return fail(err)
			},
			func(v T) Step {
				in.release(m)
				return ok(v)
			},
		)
	}
}

// Many runs p as many times as it succeeds and returns the values in input
// order. A failed attempt is rolled back. Repetition stops early if p succeeds
// without consuming anything. Each round starts on a fresh stack, so there is
// no limit on the number of rounds.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(in *Input, fail FailFunc, ok OkFunc[[]T]) Step {
		var acc []T
		var loop func() Step
		loop = func() Step {
			m := in.mark()
			return p(in,
				func(*Error) Step {
					in.rollback(m)
					in.release(m)
					return ok(acc)
				},
				func(v T) Step {
					in.release(m)
					acc = append(acc, v)
					if in.pos == m {
						return ok(acc)
					}
					return stepBounce{loop}
				},
			)
		}
		return loop()
	}
}

// ManyTill runs p repeatedly until end succeeds. The end parser is tried
// first each round and rolled back when it fails; a failure of p is not
// caught, so it reports where the repetition really broke.
func ManyTill[T, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return func(in *Input, fail FailFunc, ok OkFunc[[]T]) Step {
		var acc []T
		var loop func() Step
		loop = func() Step {
			m := in.mark()
			return end(in,
				func(*Error) Step {
					in.rollback(m)
					in.release(m)
					return p(in, fail, func(v T) Step {
						acc = append(acc, v)
						return stepBounce{loop}
					})
				},
				func(E) Step {
					in.release(m)
					return ok(acc)
				},
			)
		}
		return loop()
	}
}

// SepBy1 parses one or more p separated by sep. A separator not followed by p
// is left unconsumed.
func SepBy1[T, S any](sep Parser[S], p Parser[T]) Parser[[]T] {
	return Bind(p, func(first T) Parser[[]T] {
		return Map(Many(Then(sep, p)), func(rest []T) []T {
			return append([]T{first}, rest...)
		})
	})
}

// Fix builds a recursive parser. f receives a parser that stands for its own
// result.
func Fix[T any](f func(Parser[T]) Parser[T]) Parser[T] {
	var p Parser[T]
	self := func(in *Input, fail FailFunc, ok OkFunc[T]) Step {
		return p(in, fail, ok)
	}
	p = f(self)
	return p
}
