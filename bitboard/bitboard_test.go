package bitboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dafughes/chess/square"
)

func TestSetClearTest(t *testing.T) {
	var b Board
	b = b.Set(square.E4)
	assert.True(t, b.Test(square.E4))
	assert.False(t, b.Test(square.D4))

	b = b.Clear(square.E4)
	assert.False(t, b.Test(square.E4))
}

func TestPopcount(t *testing.T) {
	var b Board
	b = b.Set(square.A1).Set(square.H8).Set(square.E4)
	assert.Equal(t, 3, b.Popcount())
}

func TestFirstAndPopFirst(t *testing.T) {
	var b Board
	assert.Equal(t, square.NoSquare, b.First())

	b = b.Set(square.D4).Set(square.A1)
	assert.Equal(t, square.A1, b.First())

	sq := b.PopFirst()
	assert.Equal(t, square.A1, sq)
	assert.Equal(t, square.D4, b.First())

	sq = b.PopFirst()
	assert.Equal(t, square.D4, sq)
	assert.True(t, b.IsEmpty())

	assert.Equal(t, square.NoSquare, b.PopFirst())
}

func TestShiftNoWraparound(t *testing.T) {
	h4 := Of(square.H4)
	assert.True(t, h4.Shift(square.E).IsEmpty())
	assert.True(t, h4.Shift(square.NE).IsEmpty())
	assert.True(t, h4.Shift(square.SE).IsEmpty())

	a4 := Of(square.A4)
	assert.True(t, a4.Shift(square.W).IsEmpty())
	assert.True(t, a4.Shift(square.NW).IsEmpty())
	assert.True(t, a4.Shift(square.SW).IsEmpty())

	assert.Equal(t, Of(square.H5), h4.Shift(square.N))
	assert.Equal(t, Of(square.G5), h4.Shift(square.NW))
}

func TestRankAndFile(t *testing.T) {
	assert.True(t, Rank(0).Test(square.A1))
	assert.True(t, Rank(0).Test(square.H1))
	assert.False(t, Rank(0).Test(square.A2))

	assert.True(t, File(0).Test(square.A1))
	assert.True(t, File(0).Test(square.A8))
	assert.False(t, File(0).Test(square.B1))
}

func TestSquares(t *testing.T) {
	var b Board
	b = b.Set(square.A1).Set(square.H8)
	assert.ElementsMatch(t, []square.Square{square.A1, square.H8}, b.Squares())
}
