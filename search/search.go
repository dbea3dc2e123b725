// Package search implements negamax with fail-hard alpha-beta pruning and a
// capture-only quiescence search over the move generator in movegen. The
// core here is synchronous and holds no state between calls; an external
// driver (see uci) owns iterative deepening and cancellation.
package search

import (
	"github.com/dafughes/chess/movegen"
	"github.com/dafughes/chess/position"
)

// Score is a signed value from the perspective of the side to move:
// positive favors whoever is on move in the position being scored.
type Score int32

// Sentinel scores. Mate scores are offset by the depth from the search
// root so that a forced mate in one ply outscores a forced mate in three.
const (
	Inf  Score = 1000000
	Mate Score = 100000
	Draw Score = 0
)

// Eval is a pure static leaf evaluator. Negamax and Quiescence treat it as
// opaque; Material in eval.go is the reference implementation.
type Eval func(position.Position) Score

// terminalScore scores a position with no legal moves: distance-to-mate if
// the side to move is in check, Draw (stalemate) otherwise.
func terminalScore(p position.Position, depth int) Score {
	if movegen.IsInCheck(p) {
		return -Mate + Score(depth)
	}
	return Draw
}

// Negamax is the unpruned recursive minimax, scoring horizon leaves with
// eval directly. It exists alongside NegamaxAB so the two can be
// cross-checked; since NegamaxAB scores horizon leaves with Quiescence
// instead, their root scores agree only where quiescence changes nothing
// at the horizon.
func Negamax(p position.Position, eval Eval, depth, depthLeft int) Score {
	moves := movegen.GenerateMoves(p)
	if moves.Len() == 0 {
		return terminalScore(p, depth)
	}
	if depthLeft == 0 {
		return eval(p)
	}

	best := -Inf
	for i := 0; i < moves.Len(); i++ {
		score := -Negamax(position.Apply(p, moves.At(i)), eval, depth+1, depthLeft-1)
		if score > best {
			best = score
		}
	}
	return best
}

// NegamaxAB is fail-hard alpha-beta negamax: a beta cutoff always returns
// beta, never the (possibly higher) score that triggered it. At the
// horizon it hands off to Quiescence instead of calling eval directly, so
// the search doesn't misjudge a position mid-capture-exchange.
func NegamaxAB(p position.Position, eval Eval, alpha, beta Score, depth, depthLeft int) Score {
	moves := movegen.GenerateMoves(p)
	if moves.Len() == 0 {
		return terminalScore(p, depth)
	}
	if depthLeft == 0 {
		return Quiescence(p, eval, alpha, beta)
	}

	for i := 0; i < moves.Len(); i++ {
		score := -NegamaxAB(position.Apply(p, moves.At(i)), eval, -beta, -alpha, depth+1, depthLeft-1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// Quiescence extends the search over captures only, past the nominal
// horizon, to avoid misjudging a position where material is about to
// change hands. It terminates because every capture strictly reduces the
// material left on the board.
func Quiescence(p position.Position, eval Eval, alpha, beta Score) Score {
	stand := eval(p)
	if stand >= beta {
		return beta
	}
	if stand > alpha {
		alpha = stand
	}

	moves := movegen.GenerateMoves(p)
	for i := 0; i < moves.Len(); i++ {
		mv := moves.At(i)
		if !mv.Kind().IsCapture() {
			continue
		}
		score := -Quiescence(position.Apply(p, mv), eval, -beta, -alpha)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
