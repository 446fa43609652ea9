package symbols

import "errors"

// Сентинелы для errors.Is; текст сообщения живёт в *Error.
var (
	ErrDuplicate  = errors.New("duplicate declaration")
	ErrUnknown    = errors.New("unknown name")
	ErrNoOverload = errors.New("no matching overload")
	ErrConstEval  = errors.New("constant evaluation failed")
)

// Error carries the user-facing message together with its sentinel.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}
