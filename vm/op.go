package vm

// Op is a machine instruction.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_RIGHT = Op(0) // >
	OP_LEFT  = Op(1) // <
	OP_INC   = Op(2) // +
	OP_DEC   = Op(3) // -
	OP_OUT   = Op(4) // .
	OP_IN    = Op(5) // ,
	OP_OPEN  = Op(6) // [
	OP_CLOSE = Op(7) // ]
)

var opOf = map[byte]Op{
	'>': OP_RIGHT,
	'<': OP_LEFT,
	'+': OP_INC,
	'-': OP_DEC,
	'.': OP_OUT,
	',': OP_IN,
	'[': OP_OPEN,
	']': OP_CLOSE,
}

// Decode maps a source byte to its instruction.
// Any byte outside the instruction set returns ok == false; those bytes
// are comments, and never an error.
func Decode(c byte) (op Op, ok bool) {
	op, ok = opOf[c]

	return
}
