package vm

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ezrec/bfm/tape"
)

// Machine is the simulation context for one program run: the program, the
// tape, the instruction pointer, the open-loop stack, and the I/O streams.
type Machine struct {
	Verbose bool // Set to enable per-step logging.

	Program *Program   // Loaded program, read-only.
	Tape    *tape.Tape // Cell memory and data pointer.

	Ip    int   // Current instruction pointer.
	Stack Stack // Positions of open loops, innermost on top.

	Input  io.Reader // Source for ',' (nil reads as exhausted).
	Output io.Writer // Sink for '.' (nil discards).

	Ticks int // Executed instruction counter.
}

// NewMachine creates a machine in its initial state for prog.
func NewMachine(prog *Program) (m *Machine) {
	m = &Machine{
		Program: prog,
		Tape:    tape.NewTape(),
	}

	return
}

// Reset returns the machine to its initial state, keeping the program and
// the I/O streams.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("vm: reset")
	}

	m.Tape.Reset()
	m.Stack.Reset()
	m.Ip = 0
	m.Ticks = 0
}

// String returns a one-line summary of the machine state.
func (m *Machine) String() (text string) {
	text = fmt.Sprintf("ip:%v pos:%v cell:%v depth:%v ticks:%v",
		m.Ip, m.Tape.Pos, m.Tape.Cell(), len(m.Stack.Data), m.Ticks)

	return
}

// Halted reports that the instruction pointer has run off the end of the
// program, the only normal termination.
func (m *Machine) Halted() bool {
	return m.Ip >= m.Program.Len()
}

// Step executes a single instruction cycle.
// done reports that the machine has halted. A failed step commits nothing:
// the machine is left positioned at the failing instruction.
func (m *Machine) Step() (done bool, err error) {
	if m.Halted() {
		done = true
		return
	}

	op := m.Program.Ops[m.Ip]

	if m.Verbose {
		log.Printf("%04d: %v", m.Ip, op)
	}

	// The instruction pointer advances before dispatch; '[' saves its own
	// pre-advance position.
	next_ip := m.Ip + 1

	switch op {
	case OP_RIGHT:
		err = m.Tape.Right()
	case OP_LEFT:
		err = m.Tape.Left()
	case OP_INC:
		m.Tape.Inc()
	case OP_DEC:
		m.Tape.Dec()
	case OP_OUT:
		err = m.output()
	case OP_IN:
		err = m.input()
	case OP_OPEN:
		if m.Tape.Cell() == 0 {
			var match int
			match, err = m.Program.Match(m.Ip)
			if err != nil {
				return
			}
			next_ip = match + 1
		} else if top, ok := m.Stack.Peek(); !ok || top != m.Ip {
			// An open loop is on the stack exactly once; our own position
			// on top means the matching ']' sent control back here.
			m.Stack.Push(m.Ip)
		}
	case OP_CLOSE:
		if m.Tape.Cell() == 0 {
			if _, ok := m.Stack.Pop(); !ok {
				err = ErrUnbalancedClose
			}
		} else if top, ok := m.Stack.Peek(); ok {
			// Return to the '[' without popping; it re-evaluates.
			next_ip = top
		} else {
			err = ErrUnbalancedClose
		}
	default:
		err = ErrOpDecode
	}

	if err != nil {
		return
	}

	m.Ip = next_ip
	m.Ticks += 1

	return
}

// output writes the current cell to the output stream.
func (m *Machine) output() (err error) {
	if m.Output == nil {
		return
	}

	one := [1]byte{m.Tape.Cell()}
	_, err = m.Output.Write(one[:])
	if err != nil {
		err = errors.Join(ErrOutput, err)
	}

	return
}

// input reads one byte from the input stream into the current cell.
// Exhausted input stores 0: the program observes end of input as a zero
// cell and keeps running.
func (m *Machine) input() (err error) {
	if m.Input == nil {
		m.Tape.SetCell(0)
		return
	}

	var one [1]byte
	_, err = io.ReadFull(m.Input, one[:])
	if err == io.EOF {
		m.Tape.SetCell(0)
		err = nil
		return
	}
	if err != nil {
		err = errors.Join(ErrInput, err)
		return
	}

	m.Tape.SetCell(one[0])

	return
}
