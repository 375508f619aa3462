// Package primitives is the project-wide vocabulary of fixed-width numeric
// types: U8 through U64, I8 through I64, the B8 through B64 bit containers,
// F32 and F64.
//
// The declarations live in primitives_gen.go, generated from table.cue.
// Every type carries a compile-time width assertion, so a declaration that
// drifts from its table row stops the build.
package primitives

//go:generate go run ../../cmd/primgen generate table.cue -o primitives_gen.go --package primitives
