package bitboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dafughes/chess/square"
)

func TestMain(m *testing.M) {
	InitAttackTables()
	m.Run()
}

func TestKnightAttacksCorner(t *testing.T) {
	attacks := KnightAttacks(square.A1)
	assert.Equal(t, 2, attacks.Popcount())
	assert.True(t, attacks.Test(square.B3))
	assert.True(t, attacks.Test(square.C2))
}

func TestKnightAttacksCenter(t *testing.T) {
	attacks := KnightAttacks(square.E4)
	assert.Equal(t, 8, attacks.Popcount())
}

func TestKingAttacksCorner(t *testing.T) {
	attacks := KingAttacks(square.A1)
	assert.Equal(t, 3, attacks.Popcount())
}

func TestKingAttacksCenter(t *testing.T) {
	attacks := KingAttacks(square.D4)
	assert.Equal(t, 8, attacks.Popcount())
}

func TestPawnAttacks(t *testing.T) {
	white := PawnAttacks(square.E4, square.White)
	assert.True(t, white.Test(square.D5))
	assert.True(t, white.Test(square.F5))
	assert.Equal(t, 2, white.Popcount())

	black := PawnAttacks(square.E4, square.Black)
	assert.True(t, black.Test(square.D3))
	assert.True(t, black.Test(square.F3))

	edge := PawnAttacks(square.A4, square.White)
	assert.Equal(t, 1, edge.Popcount())
	assert.True(t, edge.Test(square.B5))
}

func TestBishopAttacksEmptyBoard(t *testing.T) {
	attacks := BishopAttacks(square.D4, 0)
	assert.True(t, attacks.Test(square.A1))
	assert.True(t, attacks.Test(square.H8))
	assert.True(t, attacks.Test(square.A7))
	assert.True(t, attacks.Test(square.G1))
	assert.False(t, attacks.Test(square.D5))
}

func TestBishopAttacksBlocked(t *testing.T) {
	occ := Of(square.F6)
	attacks := BishopAttacks(square.D4, occ)
	assert.True(t, attacks.Test(square.E5))
	assert.True(t, attacks.Test(square.F6))
	assert.False(t, attacks.Test(square.G7))
	assert.False(t, attacks.Test(square.H8))
}

func TestRookAttacksEmptyBoard(t *testing.T) {
	attacks := RookAttacks(square.D4, 0)
	assert.Equal(t, 14, attacks.Popcount())
	assert.True(t, attacks.Test(square.D1))
	assert.True(t, attacks.Test(square.D8))
	assert.True(t, attacks.Test(square.A4))
	assert.True(t, attacks.Test(square.H4))
}

func TestRookAttacksBlocked(t *testing.T) {
	occ := Of(square.D6)
	attacks := RookAttacks(square.D4, occ)
	assert.True(t, attacks.Test(square.D5))
	assert.True(t, attacks.Test(square.D6))
	assert.False(t, attacks.Test(square.D7))
	assert.False(t, attacks.Test(square.D8))
}

func TestQueenAttacksIsUnion(t *testing.T) {
	queen := QueenAttacks(square.D4, 0)
	bishop := BishopAttacks(square.D4, 0)
	rook := RookAttacks(square.D4, 0)
	assert.Equal(t, bishop|rook, queen)
}

func TestBetweenSameRank(t *testing.T) {
	between := Between(square.A1, square.D1)
	assert.True(t, between.Test(square.B1))
	assert.True(t, between.Test(square.C1))
	assert.Equal(t, 2, between.Popcount())
}

func TestBetweenDiagonal(t *testing.T) {
	between := Between(square.A1, square.D4)
	assert.True(t, between.Test(square.B2))
	assert.True(t, between.Test(square.C3))
	assert.Equal(t, 2, between.Popcount())
}

func TestBetweenUnrelated(t *testing.T) {
	between := Between(square.A1, square.B3)
	assert.True(t, between.IsEmpty())
}

func TestBetweenAdjacent(t *testing.T) {
	between := Between(square.A1, square.A2)
	assert.True(t, between.IsEmpty())
}

func TestInitAttackTablesIdempotent(t *testing.T) {
	before := BishopAttacks(square.D4, 0)
	InitAttackTables()
	after := BishopAttacks(square.D4, 0)
	assert.Equal(t, before, after)
}
