// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package tape

// Number of byte cells on the tape.
const TAPE_SIZE = 30000

// Tape is the machine's memory: a fixed run of byte cells, and the data
// pointer selecting the current cell.
type Tape struct {
	Cells []byte
	Pos   int
}

// NewTape creates a zeroed tape with the pointer on cell 0.
func NewTape() (tp *Tape) {
	tp = &Tape{
		Cells: make([]byte, TAPE_SIZE),
	}

	return
}

// Reset zeroes every cell and returns the pointer to cell 0.
func (tp *Tape) Reset() {
	clear(tp.Cells)
	tp.Pos = 0
}

// Right moves the pointer one cell rightward.
// The pointer never leaves the tape; moving past the last cell fails.
func (tp *Tape) Right() (err error) {
	if tp.Pos >= len(tp.Cells)-1 {
		err = ErrTapeOverrun
		return
	}

	tp.Pos++

	return
}

// Left moves the pointer one cell leftward.
// Moving below cell 0 fails.
func (tp *Tape) Left() (err error) {
	if tp.Pos <= 0 {
		err = ErrTapeUnderrun
		return
	}

	tp.Pos--

	return
}

// Inc increments the current cell, wrapping 255 to 0.
func (tp *Tape) Inc() {
	tp.Cells[tp.Pos]++
}

// Dec decrements the current cell, wrapping 0 to 255.
func (tp *Tape) Dec() {
	tp.Cells[tp.Pos]--
}

// Cell reads the current cell.
func (tp *Tape) Cell() (value byte) {
	value = tp.Cells[tp.Pos]

	return
}

// SetCell writes the current cell.
func (tp *Tape) SetCell(value byte) {
	tp.Cells[tp.Pos] = value
}
