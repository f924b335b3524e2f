package vm

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"log"
	"strings"
)

// Pos is a 1-based source position.
type Pos struct {
	Line int
	Col  int
}

// Program is an ordered, immutable instruction sequence, with the source
// position of every retained instruction.
type Program struct {
	Ops    []Op
	Source []Pos
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Ops)
}

// At returns the source position of the instruction at ip.
func (prog *Program) At(ip int) (pos Pos, ok bool) {
	if ip < 0 || ip >= len(prog.Source) {
		return
	}

	return prog.Source[ip], true
}

// Codes iterates over the instructions in execution order.
func (prog *Program) Codes() iter.Seq2[int, Op] {
	return func(yield func(ip int, op Op) bool) {
		for ip, op := range prog.Ops {
			if !yield(ip, op) {
				return
			}
		}
	}
}

// String returns the canonical listing: the instruction glyphs, comments
// stripped.
func (prog *Program) String() (text string) {
	var sb strings.Builder
	for _, op := range prog.Codes() {
		sb.WriteString(op.String())
	}

	text = sb.String()

	return
}

// Match returns the position of the ']' matching the '[' at open.
// The scan runs forward with a nesting count: each '[' opens a nested loop,
// each ']' closes one, and the first ']' at depth zero is the match.
// A scan that runs off the end of the program fails with ErrTargetNotFound.
func (prog *Program) Match(open int) (match int, err error) {
	nested := 0
	for ip := open + 1; ip < len(prog.Ops); ip++ {
		switch prog.Ops[ip] {
		case OP_OPEN:
			nested++
		case OP_CLOSE:
			if nested == 0 {
				match = ip
				return
			}
			nested--
		}
	}

	err = ErrTargetNotFound

	return
}

// Parser loads program source.
type Parser struct {
	Verbose bool // Set to echo retained instructions per source line.
}

// Parse reads the whole of input and returns the loaded program.
// Every byte outside the instruction set is a comment and is silently
// dropped. The source is read a byte at a time; lines of any length are
// accepted. The only failure is a read failure from the input itself.
func (p *Parser) Parse(input io.Reader) (prog *Program, err error) {
	reader := bufio.NewReader(input)

	prog = &Program{}

	var echo strings.Builder
	lineno := 1
	col := 0

	flush := func() {
		if p.Verbose && echo.Len() > 0 {
			log.Printf("%v: %v", lineno, echo.String())
			echo.Reset()
		}
	}

	for {
		var c byte
		c, err = reader.ReadByte()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			err = errors.Join(ErrProgramRead, err)
			return
		}

		if c == '\n' {
			flush()
			lineno += 1
			col = 0
			continue
		}
		col += 1

		op, ok := Decode(c)
		if !ok {
			continue
		}

		prog.Ops = append(prog.Ops, op)
		prog.Source = append(prog.Source, Pos{Line: lineno, Col: col})
		if p.Verbose {
			echo.WriteString(op.String())
		}
	}

	flush()

	return
}
