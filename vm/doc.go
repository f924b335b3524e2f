// Package vm implements the Brainfuck machine and its program loader.
//
// The machine consists of an instruction pointer, a tape of 30000 byte
// cells with a single data pointer, and a stack of open-loop positions.
// The eight-instruction set moves the data pointer (> <), adjusts the
// current cell with wrapping byte arithmetic (+ -), exchanges single bytes
// with the I/O streams (. ,), and loops ([ ]). Every other character in a
// source program is a comment.
//
// The loader discards comments and records the source position of each
// retained instruction for diagnostics. Loop matching is resolved during
// execution: a '[' taken on a zero cell scans forward for its partner, and
// a ']' taken on a nonzero cell returns to the position saved on the stack.
package vm
