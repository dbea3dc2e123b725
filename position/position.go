// Package position implements the immutable chess position: piece
// placement packed into four bitboards, plus a packed 32-bit state word
// carrying side to move, castling rights, the en-passant file, the
// halfmove clock and the fullmove number.
package position

import (
	"strings"

	"github.com/dafughes/chess/bitboard"
	"github.com/dafughes/chess/square"
)

// Position is a complete, self-contained snapshot of a chess game state.
// Zero value is an empty board, White to move, no castling rights, with
// every state field zero (so its en-passant file reads as the a-file, not
// as "none") — not a legal position; use Start() or ParseFEN for that.
//
// Piece placement uses a "quad bitboard" scheme: bb[0] marks Black-occupied
// squares (White pieces never set it), and bb[1]/bb[2]/bb[3] together
// encode the piece kind as a 3-bit pattern. A square's 4-bit code, read as
// bit(bb0)|bit(bb1)<<1|bit(bb2)<<2|bit(bb3)<<3, is 0 for empty and
// kindBits<<1|color otherwise, where kindBits = PieceKind+1. This keeps
// piece placement in 4 machine words instead of the 12 a per-piece-type
// array would need, at the cost of a few extra masks per query.
type Position struct {
	bb    [4]bitboard.Board
	state uint32
}

// State word bit layout.
const (
	colorShift    = 0
	castleShift   = 1
	castleMask    = 0xF
	epFileShift   = 5
	epFileMask    = 0xF
	noEPFile      = 8
	halfmoveShift = 9
	halfmoveMask  = 0x7F
	maxHalfmove   = halfmoveMask
	fullmoveShift = 16
)

// CastlingRights is a 4-bit set of {White,Black}x{Kingside,Queenside}
// rights, bit-compatible with the state word's castling nibble.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
)

// cornerLoss maps a square touched by a move (either end) to the castling
// rights that touching it permanently revokes: moving the king off e1/e8
// loses both rights for that color, moving a rook off its home corner
// loses that rook's side.
var cornerLoss = map[square.Square]CastlingRights{
	square.A1: WhiteQueenside,
	square.E1: WhiteKingside | WhiteQueenside,
	square.H1: WhiteKingside,
	square.A8: BlackQueenside,
	square.E8: BlackKingside | BlackQueenside,
	square.H8: BlackKingside,
}

// Has reports whether every right in want is present in cr.
func (cr CastlingRights) Has(want CastlingRights) bool { return cr&want == want }

// kindBits returns the 3-bit pattern the quad-bitboard scheme stores for k
// across bb[1..3].
func kindBits(k square.PieceKind) int { return int(k) + 1 }

// Start returns the standard chess starting position.
func Start() Position {
	p, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		panic("position: malformed built-in starting FEN: " + err.Error())
	}
	return p
}

// ActiveColor returns the side to move.
func (p Position) ActiveColor() square.Color {
	return square.Color((p.state >> colorShift) & 1)
}

// CastlingRights returns the current castling rights.
func (p Position) CastlingRights() CastlingRights {
	return CastlingRights((p.state >> castleShift) & castleMask)
}

// CanCastleKingside reports whether c still holds the kingside castling
// right. Whether castling is actually playable also depends on clearance
// and attacks; that is the move generator's business.
func (p Position) CanCastleKingside(c square.Color) bool {
	if c == square.White {
		return p.CastlingRights().Has(WhiteKingside)
	}
	return p.CastlingRights().Has(BlackKingside)
}

// CanCastleQueenside reports whether c still holds the queenside castling
// right.
func (p Position) CanCastleQueenside(c square.Color) bool {
	if c == square.White {
		return p.CastlingRights().Has(WhiteQueenside)
	}
	return p.CastlingRights().Has(BlackQueenside)
}

// EnPassant returns the en-passant target square, or NoSquare if the
// previous move was not a double pawn push. The rank is implied by the
// side to move: if White is to move, Black just double-pushed and the
// target sits on rank 6; if Black is to move the target sits on rank 3.
func (p Position) EnPassant() square.Square {
	file := int((p.state >> epFileShift) & epFileMask)
	if file == noEPFile {
		return square.NoSquare
	}
	rank := 2
	if p.ActiveColor() == square.White {
		rank = 5
	}
	return square.New(rank, file)
}

// HalfmoveClock returns the number of halfmoves since the last pawn move
// or capture, capped at 127 (the fifty-move rule triggers at 100, so this
// never truncates a value a rules engine cares about).
func (p Position) HalfmoveClock() int {
	return int((p.state >> halfmoveShift) & halfmoveMask)
}

// FullmoveNumber returns the current fullmove number, starting at 1.
func (p Position) FullmoveNumber() int {
	return int(p.state >> fullmoveShift)
}

// PieceAt returns the piece on sq, or NoPiece if it is empty.
func (p Position) PieceAt(sq square.Square) square.Piece {
	code := 0
	if p.bb[0].Test(sq) {
		code |= 1
	}
	if p.bb[1].Test(sq) {
		code |= 2
	}
	if p.bb[2].Test(sq) {
		code |= 4
	}
	if p.bb[3].Test(sq) {
		code |= 8
	}
	if code < 2 {
		return square.NoPiece
	}
	color := square.Color(code & 1)
	kind := square.PieceKind(code>>1 - 1)
	return square.Piece{Color: color, Kind: kind}
}

// Occupancy returns every occupied square.
func (p Position) Occupancy() bitboard.Board { return p.bb[1] | p.bb[2] | p.bb[3] }

// ColorOccupancy returns every square occupied by a piece of color c.
func (p Position) ColorOccupancy(c square.Color) bitboard.Board {
	if c == square.Black {
		return p.Occupancy() & p.bb[0]
	}
	return p.Occupancy() &^ p.bb[0]
}

// kindOccupancy returns every square occupied by a piece of kind k,
// regardless of color.
func (p Position) kindOccupancy(k square.PieceKind) bitboard.Board {
	bits := kindBits(k)
	result := p.Occupancy()
	if bits&1 != 0 {
		result &= p.bb[1]
	} else {
		result &^= p.bb[1]
	}
	if bits&2 != 0 {
		result &= p.bb[2]
	} else {
		result &^= p.bb[2]
	}
	if bits&4 != 0 {
		result &= p.bb[3]
	} else {
		result &^= p.bb[3]
	}
	return result
}

// PieceOccupancy returns every square occupied by a piece of this exact
// color and kind.
func (p Position) PieceOccupancy(c square.Color, k square.PieceKind) bitboard.Board {
	return p.kindOccupancy(k) & p.ColorOccupancy(c)
}

// KingSquare returns the square of c's king. Every legal position has
// exactly one; callers that build positions outside ParseFEN must keep
// that invariant themselves.
func (p Position) KingSquare(c square.Color) square.Square {
	return p.PieceOccupancy(c, square.King).First()
}

// place sets sq to hold piece, clearing whatever was there first.
func (p *Position) place(sq square.Square, piece square.Piece) {
	p.clear(sq)
	mask := bitboard.Of(sq)
	if piece.Color == square.Black {
		p.bb[0] |= mask
	}
	bits := kindBits(piece.Kind)
	if bits&1 != 0 {
		p.bb[1] |= mask
	}
	if bits&2 != 0 {
		p.bb[2] |= mask
	}
	if bits&4 != 0 {
		p.bb[3] |= mask
	}
}

// clear empties sq, a no-op if it was already empty.
func (p *Position) clear(sq square.Square) {
	mask := bitboard.Of(sq)
	inv := ^mask
	p.bb[0] &= inv
	p.bb[1] &= inv
	p.bb[2] &= inv
	p.bb[3] &= inv
}

func (p *Position) setActiveColor(c square.Color) {
	p.state = p.state&^(1<<colorShift) | uint32(c)<<colorShift
}

func (p *Position) setCastlingRights(cr CastlingRights) {
	p.state = p.state&^(castleMask<<castleShift) | uint32(cr)<<castleShift
}

func (p *Position) revokeCastlingRights(lost CastlingRights) {
	p.setCastlingRights(p.CastlingRights() &^ lost)
}

func (p *Position) setEnPassantFile(file int) {
	if file < 0 {
		file = noEPFile
	}
	p.state = p.state&^(epFileMask<<epFileShift) | uint32(file)<<epFileShift
}

func (p *Position) setHalfmoveClock(n int) {
	if n > maxHalfmove {
		n = maxHalfmove
	}
	p.state = p.state&^(halfmoveMask<<halfmoveShift) | uint32(n)<<halfmoveShift
}

func (p *Position) setFullmoveNumber(n int) {
	p.state = p.state&^(0xFFFF<<fullmoveShift) | uint32(n)<<fullmoveShift
}

// String renders the position as an 8x8 grid with file/rank labels, for
// debugging. internal/boardfmt builds the colorized UCI "d" output on top
// of PieceAt instead of this.
func (p Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte("12345678"[rank])
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(square.New(rank, file))
			if piece.IsNone() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(piece.Letter())
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
