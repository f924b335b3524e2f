package interp

import (
	"errors"

	"github.com/ezrec/bfm/translate"
	"github.com/ezrec/bfm/vm"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Ip  int
	Pos vm.Pos
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("ip %d (line %d col %d) %v", err.Ip, err.Pos.Line, err.Pos.Col, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
