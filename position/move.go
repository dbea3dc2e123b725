package position

import (
	"fmt"

	"github.com/dafughes/chess/square"
)

// Move is a packed 16-bit encoding of one ply: from (6 bits) | to (6 bits)
// | kind (4 bits). The zero Move (from=to=kind=Quiet, all on A1) is the
// null move.
type Move uint16

// MoveKind classifies a Move's effect on the board. The six capturing
// kinds are Capture itself and the four PromCap* kinds plus EnPassant.
type MoveKind uint16

const (
	Quiet MoveKind = iota
	Capture
	DoublePush
	EnPassant
	Castling
	PromN
	PromB
	PromR
	PromQ
	PromCapN
	PromCapB
	PromCapR
	PromCapQ
)

var moveKindNames = [...]string{
	Quiet: "quiet", Capture: "capture", DoublePush: "double push",
	EnPassant: "en passant", Castling: "castling",
	PromN: "promotion(N)", PromB: "promotion(B)", PromR: "promotion(R)", PromQ: "promotion(Q)",
	PromCapN: "capture-promotion(N)", PromCapB: "capture-promotion(B)",
	PromCapR: "capture-promotion(R)", PromCapQ: "capture-promotion(Q)",
}

func (k MoveKind) String() string {
	if int(k) < len(moveKindNames) {
		return moveKindNames[k]
	}
	return "unknown"
}

// IsCapture reports whether a move of this kind removes an enemy piece.
func (k MoveKind) IsCapture() bool {
	switch k {
	case Capture, EnPassant, PromCapN, PromCapB, PromCapR, PromCapQ:
		return true
	}
	return false
}

// PromotionKind returns the piece kind a pawn promotes to for this move
// kind, and false if it is not a promotion.
func (k MoveKind) PromotionKind() (square.PieceKind, bool) {
	switch k {
	case PromN, PromCapN:
		return square.Knight, true
	case PromB, PromCapB:
		return square.Bishop, true
	case PromR, PromCapR:
		return square.Rook, true
	case PromQ, PromCapQ:
		return square.Queen, true
	}
	return square.NoPieceKind, false
}

const (
	moveFromMask  = 0x3F
	moveToShift   = 6
	moveToMask    = 0x3F
	moveKindShift = 12
)

// NewMove packs a from/to/kind triple into a Move.
func NewMove(from, to square.Square, kind MoveKind) Move {
	return Move(uint16(from)&moveFromMask | (uint16(to)&moveToMask)<<moveToShift | uint16(kind)<<moveKindShift)
}

func (m Move) From() square.Square { return square.Square(m & moveFromMask) }
func (m Move) To() square.Square   { return square.Square((m >> moveToShift) & moveToMask) }
func (m Move) Kind() MoveKind      { return MoveKind(m >> moveKindShift) }

// IsNull reports whether m is the all-zero null move.
func (m Move) IsNull() bool { return m == 0 }

// String renders m in long algebraic notation, e.g. "e2e4" or "a7a8q".
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if pk, ok := m.Kind().PromotionKind(); ok {
		s += string(pk.String()[0] + 'a' - 'A')
	}
	return s
}

// MoveList is a fixed-capacity, stack-sized container for the moves
// generated from one position. Legal chess positions never exceed roughly
// 218 legal moves; 256 is a safe upper bound that avoids any allocation.
type MoveList struct {
	moves [256]Move
	count int
}

// Len returns the number of moves currently held.
func (l *MoveList) Len() int { return l.count }

// Push appends mv. It panics if the list is already full, which would
// indicate a move generation bug rather than a normal game state.
func (l *MoveList) Push(mv Move) {
	if l.count >= len(l.moves) {
		panic(fmt.Sprintf("position: move list overflow, already holds %d moves", l.count))
	}
	l.moves[l.count] = mv
	l.count++
}

// At returns the move at index i.
func (l *MoveList) At(i int) Move { return l.moves[i] }

// Slice returns the held moves as a slice backed by the list's own array.
// The slice is invalidated by any further Push.
func (l *MoveList) Slice() []Move { return l.moves[:l.count] }

// Contains reports whether mv is present, comparing from/to/kind exactly.
func (l *MoveList) Contains(mv Move) bool {
	for i := 0; i < l.count; i++ {
		if l.moves[i] == mv {
			return true
		}
	}
	return false
}
