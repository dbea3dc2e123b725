package position

import "github.com/dafughes/chess/square"

// Apply returns the position that results from playing mv in p. It never
// mutates p; callers that generated mv from GenerateMoves(p) get back a
// legal position with exactly one king, the opposite side to move.
//
// Apply trusts mv: it is the caller's responsibility to pass only moves
// this position's move generator actually produced for it.
func Apply(p Position, mv Move) Position {
	next := p
	next.setEnPassantFile(-1)

	from, to, kind := mv.From(), mv.To(), mv.Kind()
	moving := p.PieceAt(from)

	if moving.Kind == square.Pawn || kind.IsCapture() {
		next.setHalfmoveClock(0)
	} else {
		next.setHalfmoveClock(p.HalfmoveClock() + 1)
	}

	switch kind {
	case Quiet, Capture:
		next.clear(from)
		next.place(to, moving)

	case DoublePush:
		next.clear(from)
		next.place(to, moving)
		epSquare := square.New((from.Rank()+to.Rank())/2, from.File())
		next.setEnPassantFile(epSquare.File())

	case EnPassant:
		captured := square.New(from.Rank(), to.File())
		next.clear(captured)
		next.clear(from)
		next.place(to, moving)

	case Castling:
		next.clear(from)
		next.place(to, moving)
		rank := from.Rank()
		rookFrom, rookTo := square.New(rank, 7), square.New(rank, 5)
		if to.File() < from.File() {
			rookFrom, rookTo = square.New(rank, 0), square.New(rank, 3)
		}
		rook := p.PieceAt(rookFrom)
		next.clear(rookFrom)
		next.place(rookTo, rook)

	default: // the eight promotion kinds, with or without capture
		promoted, _ := kind.PromotionKind()
		next.clear(from)
		next.place(to, square.Piece{Color: moving.Color, Kind: promoted})
	}

	next.revokeCastlingRights(cornerLoss[from] | cornerLoss[to])

	if p.ActiveColor() == square.Black {
		next.setFullmoveNumber(p.FullmoveNumber() + 1)
	}
	next.setActiveColor(p.ActiveColor().Other())

	return next
}
