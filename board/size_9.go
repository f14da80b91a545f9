//go:build !boardsize13

package board

// N is the board side length. Selected at compile time; see size_13.go for
// the alternate build (tag boardsize13).
const N = 9
