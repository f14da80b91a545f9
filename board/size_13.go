//go:build boardsize13

package board

const N = 13
