package vm

import (
	"errors"

	"github.com/ezrec/bfm/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrTargetNotFound  = errors.New(f("'[' without matching ']'"))
	ErrUnbalancedClose = errors.New(f("']' without matching '['"))
	ErrOpDecode        = errors.New(f("op decode"))
	ErrInput           = errors.New(f("input"))
	ErrOutput          = errors.New(f("output"))

	// Loader errors
	ErrProgramRead = errors.New(f("program read"))

	// Snapshot errors
	ErrSnapshot = errors.New(f("snapshot decode"))
)
