package vm

import (
	"errors"
	"fmt"
	"slices"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot is a machine state capture: everything a later run needs to
// resume, minus the program itself.
type Snapshot struct {
	Cells []byte
	Pos   int
	Ip    int
	Stack []int
	Ticks int
}

// Canonical mode keeps the encoding deterministic.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: cbor enc mode: %v", err))
	}
	cborEncMode = em
}

// TakeSnapshot captures the state of a machine.
func TakeSnapshot(m *Machine) (snap *Snapshot) {
	snap = &Snapshot{
		Cells: slices.Clone(m.Tape.Cells),
		Pos:   m.Tape.Pos,
		Ip:    m.Ip,
		Stack: slices.Clone(m.Stack.Data),
		Ticks: m.Ticks,
	}

	return
}

// Restore applies the snapshot to a machine. The machine's program and I/O
// streams are untouched.
func (snap *Snapshot) Restore(m *Machine) {
	m.Tape.Cells = slices.Clone(snap.Cells)
	m.Tape.Pos = snap.Pos
	m.Ip = snap.Ip
	m.Stack.Data = slices.Clone(snap.Stack)
	m.Ticks = snap.Ticks
}

// valid reports whether the snapshot could have come from a machine.
func (snap *Snapshot) valid() bool {
	if len(snap.Cells) == 0 || snap.Pos < 0 || snap.Pos >= len(snap.Cells) {
		return false
	}
	if snap.Ip < 0 || snap.Ticks < 0 {
		return false
	}
	for _, pos := range snap.Stack {
		if pos < 0 {
			return false
		}
	}

	return true
}

// MarshalSnapshot serializes a Snapshot to CBOR bytes.
func MarshalSnapshot(snap *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(snap)
}

// UnmarshalSnapshot deserializes and validates a Snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (snap *Snapshot, err error) {
	snap = &Snapshot{}
	err = cbor.Unmarshal(data, snap)
	if err != nil {
		snap = nil
		err = errors.Join(ErrSnapshot, err)
		return
	}

	if !snap.valid() {
		snap = nil
		err = ErrSnapshot
	}

	return
}
