package vm

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bfm/tape"
)

type errWriter struct{ err error }

func (ew *errWriter) Write(data []byte) (n int, err error) {
	err = ew.err
	return
}

// run steps the machine to completion, with a cap so that a broken
// machine cannot hang the test.
func run(t *testing.T, m *Machine) (err error) {
	t.Helper()

	for range 1 << 20 {
		var done bool
		done, err = m.Step()
		if done || err != nil {
			return
		}
	}

	t.Fatal("machine did not halt")
	return
}

func TestMachine_EmptyProgram(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, ""))
	output := &bytes.Buffer{}
	m.Output = output

	assert.True(m.Halted())

	done, err := m.Step()
	assert.True(done)
	assert.NoError(err)

	done, err = m.Step()
	assert.True(done)
	assert.NoError(err)

	assert.Equal(0, m.Ticks)
	assert.Equal(0, m.Ip)
	assert.Equal(0, output.Len())
	assert.Equal(byte(0), m.Tape.Cell())
}

func TestMachine_Output64(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, "++++++++[>++++++++<-]>."))
	output := &bytes.Buffer{}
	m.Output = output

	assert.NoError(run(t, m))
	assert.Equal([]byte{64}, output.Bytes())
	assert.Equal("@", output.String())
	assert.Equal(byte(0), m.Tape.Cells[0])
	assert.Equal(byte(64), m.Tape.Cells[1])
	assert.True(m.Stack.Empty())
	assert.True(m.Halted())
}

func TestMachine_Echo(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, ",."))
	output := &bytes.Buffer{}
	m.Input = bytes.NewReader([]byte{0x41})
	m.Output = output

	assert.NoError(run(t, m))
	assert.Equal([]byte{0x41}, output.Bytes())
	assert.Equal(2, m.Ticks)
}

func TestMachine_EchoLoop(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, ",[.,]"))
	output := &bytes.Buffer{}
	m.Input = strings.NewReader("Hi!")
	m.Output = output

	assert.NoError(run(t, m))
	assert.Equal("Hi!", output.String())
	assert.True(m.Stack.Empty())
}

func TestMachine_Wrap(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, strings.Repeat("+", 256)))
	assert.NoError(run(t, m))
	assert.Equal(byte(0), m.Tape.Cell())

	m = NewMachine(mustParse(t, "-"))
	assert.NoError(run(t, m))
	assert.Equal(byte(255), m.Tape.Cell())
}

func TestMachine_ClearLoop_Zero(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, "[-]"))

	assert.NoError(run(t, m))
	assert.Equal(byte(0), m.Tape.Cell())
	assert.Equal(1, m.Ticks)
	assert.Equal(3, m.Ip)
}

func TestMachine_ClearLoop_Five(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, "[-]"))
	m.Tape.SetCell(5)

	assert.NoError(run(t, m))
	assert.Equal(byte(0), m.Tape.Cell())

	// Five trips through '[' '-' ']'.
	assert.Equal(15, m.Ticks)
	assert.Equal(3, m.Ip)
	assert.True(m.Stack.Empty())
}

func TestMachine_NestedLoops(t *testing.T) {
	assert := assert.New(t)

	// The inner loop opens and closes once per outer iteration; the outer
	// loop's saved position must still be correct afterward.
	m := NewMachine(mustParse(t, "++[>++[-]<-]"))

	assert.NoError(run(t, m))
	assert.Equal(byte(0), m.Tape.Cells[0])
	assert.Equal(byte(0), m.Tape.Cells[1])
	assert.Equal(0, m.Tape.Pos)
	assert.True(m.Stack.Empty())
}

func TestMachine_NestedSkip(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, "[[[]]]"))

	assert.NoError(run(t, m))
	assert.Equal(1, m.Ticks)
	assert.Equal(6, m.Ip)
}

func TestMachine_UnbalancedOpen(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, "["))

	err := run(t, m)
	assert.ErrorIs(err, ErrTargetNotFound)

	// The failing step commits nothing.
	assert.Equal(0, m.Ip)
	assert.Equal(0, m.Ticks)
}

func TestMachine_UnbalancedClose(t *testing.T) {
	assert := assert.New(t)

	// Zero cell: the pop has nothing to discard.
	m := NewMachine(mustParse(t, "]"))
	err := run(t, m)
	assert.ErrorIs(err, ErrUnbalancedClose)
	assert.Equal(0, m.Ip)

	// Nonzero cell: there is no loop to return to.
	m = NewMachine(mustParse(t, "+]"))
	err = run(t, m)
	assert.ErrorIs(err, ErrUnbalancedClose)
	assert.Equal(1, m.Ip)
	assert.Equal(1, m.Ticks)
}

func TestMachine_TapeBounds(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, "<"))
	err := run(t, m)
	assert.ErrorIs(err, tape.ErrTapeUnderrun)
	assert.Equal(0, m.Ip)
	assert.Equal(0, m.Tape.Pos)

	m = NewMachine(mustParse(t, ">"))
	m.Tape.Pos = tape.TAPE_SIZE - 1
	err = run(t, m)
	assert.ErrorIs(err, tape.ErrTapeOverrun)
	assert.Equal(0, m.Ip)
	assert.Equal(tape.TAPE_SIZE-1, m.Tape.Pos)
}

func TestMachine_InputEof(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, ","))
	m.Input = bytes.NewReader(nil)
	m.Tape.SetCell(7)

	assert.NoError(run(t, m))
	assert.Equal(byte(0), m.Tape.Cell())
}

func TestMachine_InputError(t *testing.T) {
	assert := assert.New(t)

	boom := errors.New("boom")
	m := NewMachine(mustParse(t, ","))
	m.Input = iotest.ErrReader(boom)

	err := run(t, m)
	assert.ErrorIs(err, ErrInput)
	assert.ErrorIs(err, boom)
}

func TestMachine_OutputError(t *testing.T) {
	assert := assert.New(t)

	boom := errors.New("boom")
	m := NewMachine(mustParse(t, "."))
	m.Output = &errWriter{err: boom}

	err := run(t, m)
	assert.ErrorIs(err, ErrOutput)
	assert.ErrorIs(err, boom)
}

func TestMachine_NilStreams(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, "+,."))

	assert.NoError(run(t, m))
	assert.Equal(byte(0), m.Tape.Cell())
	assert.Equal(3, m.Ticks)
}

func TestMachine_Reset(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, "+>++"))
	assert.NoError(run(t, m))
	assert.Equal(byte(2), m.Tape.Cell())
	assert.Equal(3, m.Ticks)

	m.Reset()
	assert.Equal(0, m.Ip)
	assert.Equal(0, m.Ticks)
	assert.Equal(0, m.Tape.Pos)
	assert.Equal(byte(0), m.Tape.Cells[0])
	assert.Equal(byte(0), m.Tape.Cells[1])

	assert.NoError(run(t, m))
	assert.Equal(byte(2), m.Tape.Cell())
}

func TestMachine_String(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(mustParse(t, "+"))
	assert.NoError(run(t, m))
	assert.Equal("ip:1 pos:0 cell:1 depth:0 ticks:1", m.String())
}
