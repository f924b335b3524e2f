package config

import (
	"errors"

	"github.com/ezrec/bfm/translate"
)

var f = translate.From

var (
	ErrConfigRead  = errors.New(f("config read"))
	ErrConfigParse = errors.New(f("config parse"))
)
