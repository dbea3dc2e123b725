package movegen

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafughes/chess/bitboard"
	"github.com/dafughes/chess/position"
	"github.com/dafughes/chess/square"
)

func TestMain(m *testing.M) {
	bitboard.InitAttackTables()
	os.Exit(m.Run())
}

func TestStartingPositionHasTwentyMoves(t *testing.T) {
	moves := GenerateMoves(position.Start())
	assert.Equal(t, 20, moves.Len())
}

func TestAbsolutePinRestrictsToLine(t *testing.T) {
	// White king e1, white rook e2, pinned by a black rook on e8: the rook
	// may shuffle along the e-file but never step off it.
	p, err := position.ParseFEN("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	require.NoError(t, err)

	moves := GenerateMoves(p)
	for i := 0; i < moves.Len(); i++ {
		mv := moves.At(i)
		if mv.From() == square.E2 {
			assert.Equal(t, square.E2.File(), mv.To().File(), "pinned rook left the e-file")
		}
	}
}

func TestPinnedBishopHasNoMoves(t *testing.T) {
	// White king e1, white bishop e2, pinned along the e-file by a black
	// rook on e8. A bishop only moves diagonally, so every one of its moves
	// leaves the pin line and none is legal.
	p, err := position.ParseFEN("4r3/8/8/8/8/8/4B3/4K3 w - - 0 1")
	require.NoError(t, err)

	moves := GenerateMoves(p)
	for i := 0; i < moves.Len(); i++ {
		assert.NotEqual(t, square.E2, moves.At(i).From(), "pinned bishop must not move")
	}
}

func TestSingleCheckRestrictsToBlockOrCapture(t *testing.T) {
	// Black rook checks the white king along the e-file with nothing to
	// block or capture with; only king moves off the file are legal.
	p, err := position.ParseFEN("4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	moves := GenerateMoves(p)
	for i := 0; i < moves.Len(); i++ {
		assert.Equal(t, square.E1, moves.At(i).From())
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// White king e1 attacked simultaneously by a rook on e8 and a knight
	// on d3: only the king itself may move.
	p, err := position.ParseFEN("4r3/8/8/8/8/3n4/8/4K3 w - - 0 1")
	require.NoError(t, err)

	moves := GenerateMoves(p)
	require.Greater(t, moves.Len(), 0)
	for i := 0; i < moves.Len(); i++ {
		assert.Equal(t, square.E1, moves.At(i).From(), "double check allows only king moves")
	}
}

func TestCastlingBlockedByAttackedSquare(t *testing.T) {
	p, err := position.ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	moves := GenerateMoves(p)
	found := false
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i).Kind() == position.Castling {
			found = true
		}
	}
	assert.True(t, found, "castling should be legal with nothing attacking f1/g1")

	// A black rook on f8 covers f1, so white can no longer castle kingside
	// even though the travel squares are empty.
	p2, err := position.ParseFEN("4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	moves2 := GenerateMoves(p2)
	for i := 0; i < moves2.Len(); i++ {
		assert.NotEqual(t, position.Castling, moves2.At(i).Kind())
	}
}

func TestCastlingBlockedByOccupiedSquare(t *testing.T) {
	p, err := position.ParseFEN("4k3/8/8/8/8/8/8/4KB1R w K - 0 1")
	require.NoError(t, err)
	moves := GenerateMoves(p)
	for i := 0; i < moves.Len(); i++ {
		assert.NotEqual(t, position.Castling, moves.At(i).Kind(), "bishop on f1 blocks castling")
	}
}

func TestEnPassantCaptureAvailable(t *testing.T) {
	p, err := position.ParseFEN("4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	require.NoError(t, err)
	moves := GenerateMoves(p)
	found := false
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i).Kind() == position.EnPassant {
			found = true
			assert.Equal(t, square.E3, moves.At(i).To())
		}
	}
	assert.True(t, found)
}

func TestEnPassantHorizontalPinIsIllegal(t *testing.T) {
	// Capturing en passant removes the d4 and e4 pawns simultaneously,
	// exposing the black king on a4 to the white rook on h4 along the rank.
	p, err := position.ParseFEN("8/8/8/8/k2pP2R/8/8/4K3 b - e3 0 1")
	require.NoError(t, err)
	moves := GenerateMoves(p)
	for i := 0; i < moves.Len(); i++ {
		assert.NotEqual(t, position.EnPassant, moves.At(i).Kind(), "en passant would expose the king along the rank")
	}
}

func TestEnPassantDiagonalPinIsIllegal(t *testing.T) {
	// The white d4 pawn is the only piece shielding the black king on a1
	// from the bishop on h8. Capturing it en passant (e4xd3) lands off the
	// a1-h8 diagonal and opens it, so the capture must not be generated
	// even though the capturing pawn itself was never on that diagonal.
	p, err := position.ParseFEN("7B/8/8/8/3Pp3/8/8/k6K b - d3 0 1")
	require.NoError(t, err)
	moves := GenerateMoves(p)
	for i := 0; i < moves.Len(); i++ {
		assert.NotEqual(t, position.EnPassant, moves.At(i).Kind(), "en passant would expose the king along the diagonal")
	}
}

func TestPromotionGeneratesAllFourKinds(t *testing.T) {
	p, err := position.ParseFEN("8/4P3/8/8/8/8/8/4K2k w - - 0 1")
	require.NoError(t, err)
	moves := GenerateMoves(p)
	var kinds []position.MoveKind
	for i := 0; i < moves.Len(); i++ {
		if moves.At(i).From() == square.E7 {
			kinds = append(kinds, moves.At(i).Kind())
		}
	}
	assert.ElementsMatch(t, []position.MoveKind{position.PromQ, position.PromR, position.PromB, position.PromN}, kinds)
}

func TestIsInCheck(t *testing.T) {
	p, err := position.ParseFEN("4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, IsInCheck(p))
	assert.False(t, IsInCheck(position.Start()))
}
