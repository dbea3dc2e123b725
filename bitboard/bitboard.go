// Package bitboard implements the 64-bit occupancy sets used to represent
// piece placement and attack patterns, plus the precalculated attack tables
// every move generator query needs. Operations are pure and branch-free
// where possible; there is no dynamic dispatch anywhere in this package.
package bitboard

import (
	"math/bits"
	"strings"

	"github.com/dafughes/chess/square"
)

// Board is a set of squares packed into a 64-bit word: bit i set means
// square i is a member.
type Board uint64

// Of returns the singleton bitboard containing only sq.
func Of(sq square.Square) Board {
	if sq < square.A1 || sq > square.H8 {
		return 0
	}
	return Board(1) << uint(sq)
}

// Set returns b with sq added.
func (b Board) Set(sq square.Square) Board { return b | Of(sq) }

// Clear returns b with sq removed.
func (b Board) Clear(sq square.Square) Board { return b &^ Of(sq) }

// Test reports whether sq is a member of b.
func (b Board) Test(sq square.Square) bool { return b&Of(sq) != 0 }

// Popcount returns the number of set squares.
func (b Board) Popcount() int { return bits.OnesCount64(uint64(b)) }

// IsEmpty reports whether the bitboard has no members.
func (b Board) IsEmpty() bool { return b == 0 }

// First returns the lowest-index member square, or NoSquare if b is empty.
func (b Board) First() square.Square {
	if b == 0 {
		return square.NoSquare
	}
	return square.Square(bits.TrailingZeros64(uint64(b)))
}

// PopFirst removes and returns the lowest-index member square, or NoSquare
// if b was already empty.
func (b *Board) PopFirst() square.Square {
	sq := b.First()
	if sq != square.NoSquare {
		*b &= *b - 1
	}
	return sq
}

// files/ranks masks used to clear wrap-around squares before an E/W shift.
const (
	fileA Board = 0x0101010101010101
	fileH Board = 0x8080808080808080
	rank1 Board = 0x00000000000000FF
	rank8 Board = 0xFF00000000000000
)

// Rank returns the full-rank bitboard for rank 0..7.
func Rank(rank int) Board { return rank1 << uint(8*rank) }

// File returns the full-file bitboard for file 0..7.
func File(file int) Board { return fileA << uint(file) }

// Shift translates every member square by dir, discarding squares that
// would wrap across the board edge. This is the single primitive every
// leaper/pawn attack table is built from.
func (b Board) Shift(dir square.Direction) Board {
	var masked Board
	switch dir {
	case square.E, square.NE, square.SE:
		masked = b &^ fileH
	case square.W, square.NW, square.SW:
		masked = b &^ fileA
	default: // N, S
		masked = b
	}
	if dir >= 0 {
		return masked << uint(dir)
	}
	return masked >> uint(-dir)
}

// String renders the bitboard as an 8x8 grid, rank 8 first, for debugging.
func (b Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Test(square.New(rank, file)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Squares returns the member squares in ascending index order. Intended for
// tests and debug printing; move generation iterates with PopFirst instead
// to avoid the allocation.
func (b Board) Squares() []square.Square {
	var out []square.Square
	for bb := b; !bb.IsEmpty(); {
		out = append(out, bb.PopFirst())
	}
	return out
}
