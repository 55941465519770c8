package parser

// Status tells a suspended parser whether more input may follow.
type Status int

const (
	Incomplete Status = iota // more bytes may be written later
	Complete                 // the source is exhausted
)

// State is the outcome of driving a parser: exactly one of Done, Fail, or Read.
type State[T any] interface {
	state()
}

// Done is a finished parse. Consumed is the number of bytes the parser
// consumed from the start of the Input.
type Done[T any] struct {
	Value    T
	Consumed int
}

// Fail is a parse that cannot succeed.
type Fail[T any] struct {
	Err *Error
}

// Read is a suspended parse waiting for input. The driver writes at most
// Capacity bytes to the Input and then calls Continue with the number of bytes
// written and whether the source is exhausted. Writing 0 bytes with Complete
// forces every rule still waiting for a character to finish or fail.
type Read[T any] struct {
	Capacity int
	Continue func(n int, s Status) State[T]
}

func (Done[T]) state() {}
func (Fail[T]) state() {}
func (Read[T]) state() {}

// Step is one bounce of the trampoline underneath the parsers. Parsers hand
// Steps back to their callers; only the continuations given to a parser ever
// create them.
type Step interface {
	step()
}

type stepDone struct{}

type stepFail struct{ err *Error }

type stepRead struct{ resume func() Step }

// stepBounce unwinds the Go stack back to settle, which then calls resume.
// Loops return it between iterations so stack depth does not grow with the
// number of tokens parsed from one chunk.
type stepBounce struct{ resume func() Step }

func (stepDone) step()   {}
func (stepFail) step()   {}
func (stepRead) step()   {}
func (stepBounce) step() {}

// Run starts p against in. The returned state is Done or Fail when the parse
// finished with what is already buffered, or a Read to request more.
func Run[T any](p Parser[T], in *Input) State[T] {
	var out T
	s := p(in,
		func(err *Error) Step { return stepFail{err} },
		func(v T) Step {
			out = v
			return stepDone{}
		},
	)
	return settle(in, s, &out)
}

func settle[T any](in *Input, s Step, out *T) State[T] {
	for {
		switch st := s.(type) {
		case stepBounce:
			s = st.resume()
		case stepDone:
			return Done[T]{Value: *out, Consumed: in.pos}
		case stepFail:
			in.locate(st.err)
			return Fail[T]{Err: st.err}
		case stepRead:
			return Read[T]{
				Capacity: in.capacity,
				Continue: func(n int, status Status) State[T] {
					if status == Complete {
						in.complete = true
					}
					return settle(in, st.resume(), out)
				},
			}
		default:
			panic("parser: unknown step")
		}
	}
}

// Feed runs p over data, answering each Read with at most chunk bytes. It
// returns the parsed value and the number of bytes consumed.
func Feed[T any](p Parser[T], data []byte, chunk int) (T, int, error) {
	in := NewInput(chunk)
	st := Run(p, in)
	for {
		switch s := st.(type) {
		case Done[T]:
			return s.Value, s.Consumed, nil
		case Fail[T]:
			var zero T
			return zero, 0, s.Err
		case Read[T]:
			n := min(len(data), s.Capacity)
			in.Write(data[:n])
			data = data[n:]

			status := Incomplete
			if len(data) == 0 {
				status = Complete
			}
			st = s.Continue(n, status)
		}
	}
}
