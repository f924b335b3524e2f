// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package interp drives a vm.Machine from load to halt.
package interp

import (
	"io"
	"log"

	"github.com/ezrec/bfm/vm"
)

// Interp owns a machine and drives it: per-run step limits, tracing,
// runtime error positioning, and state dumps.
type Interp struct {
	Verbose     bool // If set, enables verbose logging.
	*vm.Machine      // Reference to the driven machine.

	StepLimit int // Abort a run after this many instructions (0 = unlimited).
}

// NewInterp creates an interpreter for prog.
func NewInterp(prog *vm.Program) (in *Interp) {
	in = &Interp{
		Machine: vm.NewMachine(prog),
	}

	return
}

// Reset returns the machine to its initial state.
func (in *Interp) Reset() {
	in.Machine.Reset()
}

// Pos returns the source position of the current instruction.
func (in *Interp) Pos() (pos vm.Pos) {
	pos, _ = in.Machine.Program.At(in.Machine.Ip)

	return
}

// Tick performs a single step of the machine.
// A machine failure is wrapped with the position of the failing
// instruction; a run that reaches StepLimit instructions without halting
// fails with ErrStepLimit.
func (in *Interp) Tick() (done bool, err error) {
	// Set machine verbosity
	in.Machine.Verbose = in.Verbose

	ip := in.Machine.Ip
	pos := in.Pos()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Pos: pos, Err: err}
		}
	}()

	done, err = in.Machine.Step()
	if err != nil {
		return
	}

	if done {
		if in.Verbose {
			log.Printf("halt: %v", in.Machine)
		}
		return
	}

	// A run that halts in exactly StepLimit instructions is complete.
	if in.StepLimit > 0 && in.Machine.Ticks >= in.StepLimit && !in.Machine.Halted() {
		err = ErrStepLimit
	}

	return
}

// Run drives the machine until it halts or fails.
func (in *Interp) Run() (err error) {
	var done bool
	for !done {
		done, err = in.Tick()
		if err != nil {
			return
		}
	}

	return
}

// DumpState writes the machine state snapshot to w.
func (in *Interp) DumpState(w io.Writer) (err error) {
	data, err := vm.MarshalSnapshot(vm.TakeSnapshot(in.Machine))
	if err != nil {
		return
	}

	_, err = w.Write(data)

	return
}
