// Package square contains the board's coordinate system and piece identity:
// squares, files, ranks, colors and piece kinds. These are small closed
// enumerations with no dynamic dispatch, shared by every other package.
package square

import "fmt"

// Square identifies one of the 64 board squares, indexed rank-major from
// A1=0 to H8=63: Square = rank*8 + file.
type Square int

// NoSquare is the sentinel used where a square is optional (no en-passant
// target, no capture square).
const NoSquare Square = -1

// New returns the square at the given rank and file, both 0..7.
func New(rank, file int) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

// String renders the square in algebraic notation, e.g. "e4".
func (s Square) String() string {
	if s < A1 || s > H8 {
		return "-"
	}
	return string([]byte{"abcdefgh"[s.File()], "12345678"[s.Rank()]})
}

// ParseSquare parses algebraic notation ("e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("square: invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("square: invalid square %q", s)
	}
	return New(rank, file), nil
}

// Named squares, A1..H8, rank-major ascending. Used throughout tests and
// castling/attack tables in place of magic numbers.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// Direction is a shift applied to a bitboard, measured in squares along the
// rank-major index.
type Direction int

const (
	N  Direction = 8
	S  Direction = -8
	E  Direction = 1
	W  Direction = -1
	NE Direction = 9
	NW Direction = 7
	SE Direction = -7
	SW Direction = -9
)

// Color is one of White or Black. Negation (Other) flips it.
type Color int

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Up is the forward direction for pawns of this color.
func (c Color) Up() Direction {
	if c == White {
		return N
	}
	return S
}

// PieceKind is one of the six piece types, independent of color.
type PieceKind int

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceKind PieceKind = -1
)

// letters maps a piece kind to its uppercase (White) FEN/SAN letter.
var letters = [...]byte{Pawn: 'P', Knight: 'N', Bishop: 'B', Rook: 'R', Queen: 'Q', King: 'K'}

func (k PieceKind) String() string {
	if k < Pawn || k > King {
		return "?"
	}
	return string(letters[k])
}

// ParsePieceKind parses a single promotion-piece letter (q, r, b, n, any
// case) as used in long-algebraic move text.
func ParsePieceKind(c byte) (PieceKind, bool) {
	switch c {
	case 'q', 'Q':
		return Queen, true
	case 'r', 'R':
		return Rook, true
	case 'b', 'B':
		return Bishop, true
	case 'n', 'N':
		return Knight, true
	}
	return NoPieceKind, false
}

// Piece is a (Color, PieceKind) pair.
type Piece struct {
	Color Color
	Kind  PieceKind
}

// NoPiece is the absence of a piece, returned by queries of empty squares.
var NoPiece = Piece{Kind: NoPieceKind}

func (p Piece) IsNone() bool { return p.Kind == NoPieceKind }

// Letter returns the FEN letter for the piece: uppercase for White,
// lowercase for Black.
func (p Piece) Letter() byte {
	l := letters[p.Kind]
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return l
}

// ParsePieceLetter parses a single FEN piece letter into a Piece.
func ParsePieceLetter(c byte) (Piece, bool) {
	color := White
	l := c
	if l >= 'a' && l <= 'z' {
		color = Black
		l -= 'a' - 'A'
	}
	for k := Pawn; k <= King; k++ {
		if letters[k] == l {
			return Piece{Color: color, Kind: k}, true
		}
	}
	return NoPiece, false
}
