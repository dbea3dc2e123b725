package bitboard

import "github.com/dafughes/chess/square"

// Precalculated attack tables. Leaper-piece tables are cheap and filled in
// by a package init(); the slider (bishop/rook) tables are magic-bitboard
// lookups sized in the hundreds of thousands of entries and are filled in
// by an explicit InitAttackTables call — call it once, as early as possible, before
// generating any moves.
var (
	knightAttacks [64]Board
	kingAttacks   [64]Board
	pawnAttacksTb [2][64]Board

	bishopOccupancy [64]Board
	rookOccupancy   [64]Board
	bishopAttacks   [64][]Board
	rookAttacks     [64][]Board

	betweenTb [64][64]Board

	attackTablesReady bool
)

func init() {
	for sq := square.A1; sq <= square.H8; sq++ {
		knightAttacks[sq] = genKnightAttacks(Of(sq))
		kingAttacks[sq] = genKingAttacks(Of(sq))
		pawnAttacksTb[square.White][sq] = genPawnAttacks(Of(sq), square.White)
		pawnAttacksTb[square.Black][sq] = genPawnAttacks(Of(sq), square.Black)
	}
}

// InitAttackTables computes the magic-bitboard slider attack tables and the
// between() table. It must be called once before GenerateMoves or
// Bishop/RookAttacks are used; it is idempotent.
func InitAttackTables() {
	if attackTablesReady {
		return
	}
	attackTablesReady = true

	for sq := square.A1; sq <= square.H8; sq++ {
		bishopOccupancy[sq] = genBishopOccupancy(sq)
		rookOccupancy[sq] = genRookOccupancy(sq)
	}

	for sq := square.A1; sq <= square.H8; sq++ {
		bitCount := bishopBitCount[sq]
		table := make([]Board, 1<<uint(bitCount))
		for i := 0; i < 1<<uint(bitCount); i++ {
			occ := genOccupancySubset(i, bitCount, bishopOccupancy[sq])
			key := uint64(occ) * bishopMagics[sq] >> (64 - bitCount)
			table[key] = genBishopAttacks(sq, occ)
		}
		bishopAttacks[sq] = table

		bitCount = rookBitCount[sq]
		table = make([]Board, 1<<uint(bitCount))
		for i := 0; i < 1<<uint(bitCount); i++ {
			occ := genOccupancySubset(i, bitCount, rookOccupancy[sq])
			key := uint64(occ) * rookMagics[sq] >> (64 - bitCount)
			table[key] = genRookAttacks(sq, occ)
		}
		rookAttacks[sq] = table
	}

	initBetween()
}

// PawnAttacks returns the squares attacked by a single pawn of the given
// color standing on sq.
func PawnAttacks(sq square.Square, c square.Color) Board { return pawnAttacksTb[c][sq] }

// PawnSetAttacks returns every square attacked by any pawn in pawns, the
// color-wide equivalent used by check/attack-map computation.
func PawnSetAttacks(pawns Board, c square.Color) Board {
	if c == square.White {
		return pawns.Shift(square.NE) | pawns.Shift(square.NW)
	}
	return pawns.Shift(square.SE) | pawns.Shift(square.SW)
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq square.Square) Board { return knightAttacks[sq] }

// KingAttacks returns the squares a king on sq attacks.
func KingAttacks(sq square.Square) Board { return kingAttacks[sq] }

// BishopAttacks returns the squares a bishop on sq attacks given the full
// board occupancy, stopping at (and including) the first blocker on each
// diagonal ray. The caller masks out friendly-occupied destinations.
func BishopAttacks(sq square.Square, occ Board) Board {
	blockers := occ & bishopOccupancy[sq]
	key := uint64(blockers) * bishopMagics[sq] >> (64 - bishopBitCount[sq])
	return bishopAttacks[sq][key]
}

// RookAttacks returns the squares a rook on sq attacks given the full board
// occupancy, stopping at (and including) the first blocker on each
// rank/file ray.
func RookAttacks(sq square.Square, occ Board) Board {
	blockers := occ & rookOccupancy[sq]
	key := uint64(blockers) * rookMagics[sq] >> (64 - rookBitCount[sq])
	return rookAttacks[sq][key]
}

// QueenAttacks is the union of bishop and rook attacks from sq.
func QueenAttacks(sq square.Square, occ Board) Board {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

// BishopMask returns the ray squares (excluding sq, excluding the board
// edge) whose occupancy affects a bishop standing on sq.
func BishopMask(sq square.Square) Board { return bishopOccupancy[sq] }

// RookMask returns the ray squares whose occupancy affects a rook on sq.
func RookMask(sq square.Square) Board { return rookOccupancy[sq] }

// Between returns the squares strictly between a and b if they lie on a
// common rank, file or diagonal, else the empty set. Between(a, a) is empty.
func Between(a, b square.Square) Board { return betweenTb[a][b] }

func genKnightAttacks(knight Board) Board {
	return knight.Shift(square.N).Shift(square.N).Shift(square.E) |
		knight.Shift(square.N).Shift(square.N).Shift(square.W) |
		knight.Shift(square.S).Shift(square.S).Shift(square.E) |
		knight.Shift(square.S).Shift(square.S).Shift(square.W) |
		knight.Shift(square.E).Shift(square.E).Shift(square.N) |
		knight.Shift(square.E).Shift(square.E).Shift(square.S) |
		knight.Shift(square.W).Shift(square.W).Shift(square.N) |
		knight.Shift(square.W).Shift(square.W).Shift(square.S)
}

func genKingAttacks(king Board) Board {
	return king.Shift(square.N) | king.Shift(square.S) | king.Shift(square.E) | king.Shift(square.W) |
		king.Shift(square.NE) | king.Shift(square.NW) | king.Shift(square.SE) | king.Shift(square.SW)
}

func genPawnAttacks(pawn Board, c square.Color) Board {
	if c == square.White {
		return pawn.Shift(square.NE) | pawn.Shift(square.NW)
	}
	return pawn.Shift(square.SE) | pawn.Shift(square.SW)
}

// genBishopOccupancy computes the relevant blocker squares for a bishop on
// sq: the four diagonal rays, excluding the board edge (a blocker on the
// edge can't be jumped anyway, so it never changes the attack set).
func genBishopOccupancy(sq square.Square) Board {
	return rayMask(sq, square.NE) | rayMask(sq, square.NW) | rayMask(sq, square.SE) | rayMask(sq, square.SW)
}

func genRookOccupancy(sq square.Square) Board {
	return rayMask(sq, square.N) | rayMask(sq, square.S) | rayMask(sq, square.E) | rayMask(sq, square.W)
}

// rayMask walks one ray from sq in dir, stopping one square short of the
// board edge: the edge square is always occupied from the mover's
// perspective (there's nothing beyond it to block), so it never needs its
// own bit in the relevant-occupancy mask.
func rayMask(sq square.Square, dir square.Direction) Board {
	var occ Board
	cur := Of(sq)
	for {
		next := cur.Shift(dir)
		if next.IsEmpty() || next.Shift(dir).IsEmpty() {
			break
		}
		occ |= next
		cur = next
	}
	return occ
}

// genBishopAttacks and genRookAttacks compute the true attack set (stopping
// at and including the first blocker) by walking each ray at init time;
// these back the magic-bitboard tables and are never called at search time.
func genBishopAttacks(sq square.Square, occ Board) Board {
	var attacks Board
	for _, dir := range [...]square.Direction{square.NE, square.NW, square.SE, square.SW} {
		cur := Of(sq)
		for {
			next := cur.Shift(dir)
			if next.IsEmpty() {
				break
			}
			attacks |= next
			if !(next & occ).IsEmpty() {
				break
			}
			cur = next
		}
	}
	return attacks
}

func genRookAttacks(sq square.Square, occ Board) Board {
	var attacks Board
	for _, dir := range [...]square.Direction{square.N, square.S, square.E, square.W} {
		cur := Of(sq)
		for {
			next := cur.Shift(dir)
			if next.IsEmpty() {
				break
			}
			attacks |= next
			if !(next & occ).IsEmpty() {
				break
			}
			cur = next
		}
	}
	return attacks
}

// genOccupancySubset decodes key (0..2^relevantBitCount) into one specific
// subset of relevantOccupancy's member squares — used to enumerate every
// possible blocker configuration when building a magic table.
func genOccupancySubset(key, relevantBitCount int, relevantOccupancy Board) Board {
	var occ Board
	rem := relevantOccupancy
	for i := 0; i < relevantBitCount; i++ {
		sq := rem.PopFirst()
		if key&(1<<uint(i)) != 0 {
			occ = occ.Set(sq)
		}
	}
	return occ
}

func initBetween() {
	rayDirs := [...]square.Direction{square.N, square.S, square.E, square.W, square.NE, square.NW, square.SE, square.SW}
	for a := square.A1; a <= square.H8; a++ {
		for _, dir := range rayDirs {
			var line Board
			cur := Of(a)
			for {
				next := cur.Shift(dir)
				if next.IsEmpty() {
					break
				}
				b := next.First()
				betweenTb[a][b] = line
				line |= next
				cur = next
			}
		}
	}
}
