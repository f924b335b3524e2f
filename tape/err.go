package tape

import (
	"errors"

	"github.com/ezrec/bfm/translate"
)

var f = translate.From

var (
	ErrTapeUnderrun = errors.New(f("tape underrun"))
	ErrTapeOverrun  = errors.New(f("tape overrun"))
)
