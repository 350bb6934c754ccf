// Package eval reduces packet trees to integers.
//
// Values are arbitrary precision (math/big) so products of wide literals
// never wrap; EvaluateUint64 narrows a result and reports ErrOverflow when
// it does not fit. All walks use explicit stacks.
package eval
