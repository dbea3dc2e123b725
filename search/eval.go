package search

import (
	"github.com/dafughes/chess/position"
	"github.com/dafughes/chess/square"
)

// pieceValue holds the reference material weights in centipawns, indexed
// by square.PieceKind. King carries no value: it is never captured and
// always present one-for-one on both sides.
var pieceValue = [...]Score{
	square.Pawn:   100,
	square.Knight: 300,
	square.Bishop: 300,
	square.Rook:   500,
	square.Queen:  900,
}

// Material is the reference Eval: the side-to-move-relative sum of
// White's piece count minus Black's, weighted by pieceValue.
func Material(p position.Position) Score {
	var score Score
	for k := square.Pawn; k <= square.Queen; k++ {
		white := p.PieceOccupancy(square.White, k).Popcount()
		black := p.PieceOccupancy(square.Black, k).Popcount()
		score += Score(white-black) * pieceValue[k]
	}
	if p.ActiveColor() == square.Black {
		score = -score
	}
	return score
}
