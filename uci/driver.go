package uci

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dafughes/chess/movegen"
	"github.com/dafughes/chess/position"
	"github.com/dafughes/chess/search"
	"github.com/dafughes/chess/square"
)

// StopToken is the shared signal between the stdin reader and a running
// search: Stop makes the next Stopped call observe true, with acquire-release
// ordering guaranteed by sync/atomic. The search core itself never polls
// this; only the driver's root loop does.
type StopToken struct {
	stopped atomic.Bool
}

// Stop raises the token.
func (s *StopToken) Stop() { s.stopped.Store(true) }

// Stopped reports whether the token has been raised.
func (s *StopToken) Stopped() bool { return s.stopped.Load() }

// Reset clears the token for a new search.
func (s *StopToken) Reset() { s.stopped.Store(false) }

// SearchResult is what one "go" invocation produces: the move the driver
// settled on, its score, and the bookkeeping an "info"/"bestmove" line
// needs.
type SearchResult struct {
	BestMove position.Move
	Score    search.Score
	Depth    int
	Nodes    uint64
	Elapsed  time.Duration
}

// Driver runs iterative deepening over search.NegamaxAB, owns the engine's
// identity strings, and is the only place in the core that knows about
// wall-clock time, concurrency, or logging.
type Driver struct {
	Name   string
	Author string
	Eval   search.Eval
	Log    *zap.Logger

	// MaxDepth caps iterative deepening when the GUI sends no explicit
	// "depth"; zero means the built-in default.
	MaxDepth int

	// MovesToGo divides the remaining clock when the GUI omits
	// "movestogo"; zero means the built-in default.
	MovesToGo int

	// OnInfo, if set, is called once per completed iterative-deepening
	// depth with a partial SearchResult, letting the caller emit a UCI
	// "info" line as the search progresses instead of only at the end.
	OnInfo func(SearchResult)
}

const defaultMovesToGo = 30
const maxIterativeDepth = 64

// Go runs iterative deepening on p until params' time/depth budget is
// exhausted or stop is raised, and returns the best move found at the
// deepest completed iteration (or the partly searched first iteration's
// best move if stop lands before any iteration completes). It returns a
// null BestMove when p has no legal moves or when stop is already raised
// before the first iteration starts; the caller tells those cases apart.
func (d *Driver) Go(p position.Position, params SearchParams, stop *StopToken) SearchResult {
	searchID := uuid.NewString()
	start := time.Now()
	deadline, hasDeadline := d.deadline(p, params, start)

	if d.Log != nil {
		d.Log.Info("search start", zap.String("search_id", searchID), zap.Bool("infinite", params.Infinite))
	}

	var nodes uint64
	eval := d.Eval
	if eval == nil {
		eval = search.Material
	}
	countingEval := func(pos position.Position) search.Score {
		atomic.AddUint64(&nodes, 1)
		return eval(pos)
	}

	maxDepth := maxIterativeDepth
	if d.MaxDepth > 0 {
		maxDepth = d.MaxDepth
	}
	if params.HasDepth {
		maxDepth = params.Depth
	}

	var result SearchResult
	for depth := 1; depth <= maxDepth; depth++ {
		if stop.Stopped() {
			break
		}

		moves := movegen.GenerateMoves(p)
		if moves.Len() == 0 {
			break
		}

		best := moves.At(0)
		bestScore := -search.Inf
		for i := 0; i < moves.Len(); i++ {
			if stop.Stopped() {
				break
			}
			mv := moves.At(i)
			score := -search.NegamaxAB(position.Apply(p, mv), countingEval, -search.Inf, search.Inf, 1, depth-1)
			if score > bestScore {
				bestScore = score
				best = mv
			}
		}

		// A stop raised mid-iteration leaves this depth only partially
		// searched; keep the last completed iteration's move instead,
		// unless no iteration has completed yet.
		if stop.Stopped() && !result.BestMove.IsNull() {
			break
		}

		result = SearchResult{
			BestMove: best,
			Score:    bestScore,
			Depth:    depth,
			Nodes:    atomic.LoadUint64(&nodes),
			Elapsed:  time.Since(start),
		}

		if stop.Stopped() {
			break
		}
		if d.OnInfo != nil {
			d.OnInfo(result)
		}
		if hasDeadline && time.Now().After(deadline) {
			break
		}
	}

	if d.Log != nil {
		d.Log.Info("search done",
			zap.String("search_id", searchID),
			zap.Int("depth", result.Depth),
			zap.Uint64("nodes", result.Nodes),
			zap.Duration("elapsed", result.Elapsed),
		)
	}

	return result
}

// Perft runs a leaf-node count to depth and is used by the "go perft"
// debug command.
func (d *Driver) Perft(p position.Position, depth int) uint64 {
	return movegen.Perft(p, depth)
}

// deadline computes the wall-clock point after which Go starts no further
// iteration; it is checked only after each completed iteration, so the
// iteration in progress may run past it. It returns hasDeadline=false for "infinite" searches and for
// searches with an explicit depth/nodes/mate target but no time control,
// letting the depth bound alone govern termination.
func (d *Driver) deadline(p position.Position, params SearchParams, start time.Time) (time.Time, bool) {
	if params.Infinite {
		return time.Time{}, false
	}
	if params.HasMoveTime {
		return start.Add(time.Duration(params.MoveTime) * time.Millisecond), true
	}

	remaining, inc := params.WTime, params.WInc
	if p.ActiveColor() == square.Black {
		remaining, inc = params.BTime, params.BInc
	}
	if remaining == 0 {
		return time.Time{}, false
	}

	movesToGo := defaultMovesToGo
	if d.MovesToGo > 0 {
		movesToGo = d.MovesToGo
	}
	if params.HasMovesToGo && params.MovesToGo > 0 {
		movesToGo = params.MovesToGo
	}

	budgetMs := remaining/movesToGo + inc
	return start.Add(time.Duration(budgetMs) * time.Millisecond), true
}
