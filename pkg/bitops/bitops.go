// Package bitops holds the small bit, size and logic helpers that the
// generated primitives and their consumers share.
//
// There is no Go counterpart for packing pragmas or inlining attributes:
// struct layout is fixed by the language and inlining is left to the
// compiler. Element counts use the built-in len.
package bitops

import (
	"bytes"
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// IsPow2 reports whether x is a positive power of two.
func IsPow2[T constraints.Integer](x T) bool {
	return x > 0 && x&(x-1) == 0
}

// Sizeof returns the in-memory size of T in bytes.
func Sizeof[T any]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// Bitsof returns the in-memory size of T in bits.
func Bitsof[T any]() int {
	return Sizeof[T]() * 8
}

// Implies is material implication: false only when p holds and q does not.
func Implies(p, q bool) bool {
	return !p || q
}

// Iff reports whether p and q are both true or both false.
func Iff(p, q bool) bool {
	return p == q
}

// MemEq reports whether *x and *y hold byte-identical memory.
func MemEq[T any](x, y *T) bool {
	return bytes.Equal(asBytes(x), asBytes(y))
}

// MemZero sets *p to the zero value of T.
func MemZero[T any](p *T) {
	var zero T
	*p = zero
}

func asBytes[T any](p *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p))
}

// AssertionError is the panic value raised by Assert and Assertf.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return "assertion failed: " + e.Message
}

// Assert panics with an *AssertionError when cond is false.
func Assert(cond bool) {
	if !cond {
		panic(&AssertionError{Message: "condition is false"})
	}
}

// Assertf is Assert with a formatted message.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(&AssertionError{Message: fmt.Sprintf(format, args...)})
	}
}
