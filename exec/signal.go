package exec

import "github.com/xvandervort/graphoid-sub001/value"

// signal is the executor's non-local-exit mechanism for `return`, `break`,
// and `continue` (spec.md §4.7 "Control flow"). It's returned as an
// ordinary Go error from execStmt/execBlock so it rides the same call-stack
// unwinding path as a genuine failure (and therefore also runs `finally`
// blocks on the way out, spec.md §5), and is told apart from a real error by
// a type assertion at every place that's allowed to catch it (function
// call, loop body).
type signal struct {
	kind  signalKind
	value value.Value // populated for kind == sigReturn
}

type signalKind int

const (
	sigReturn signalKind = iota
	sigBreak
	sigContinue
)

func (s *signal) Error() string {
	switch s.kind {
	case sigReturn:
		return "return outside function"
	case sigBreak:
		return "break outside loop"
	default:
		return "continue outside loop"
	}
}

func asSignal(err error) (*signal, bool) {
	s, ok := err.(*signal)
	return s, ok
}
