package movegen

import "github.com/dafughes/chess/position"

// Perft counts the leaf nodes of the legal move tree rooted at p, depth
// plies deep. It exists to exercise GenerateMoves/Apply against known node
// counts for a handful of well-studied positions; depth 0 always counts as
// the single empty-sequence leaf.
func Perft(p position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := GenerateMoves(p)
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		nodes += Perft(position.Apply(p, moves.At(i)), depth-1)
	}
	return nodes
}
