package position

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFENRoundTrip(t *testing.T) {
	cases := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range cases {
		p, err := ParseFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, p.FEN())
	}
}

func TestFENDefaultsHalfmoveFullmove(t *testing.T) {
	p, err := ParseFEN("8/8/8/8/8/8/8/K6k w - -")
	require.NoError(t, err)
	assert.Equal(t, 0, p.HalfmoveClock())
	assert.Equal(t, 1, p.FullmoveNumber())
}

func TestFENRejectsBadFieldCount(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq")
	assert.Error(t, err)
	var ferr *ParseFenError
	assert.ErrorAs(t, err, &ferr)
}

func TestFENRejectsBadPlacement(t *testing.T) {
	_, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1")
	assert.Error(t, err)
}

func TestFENRejectsBadActiveColor(t *testing.T) {
	_, err := ParseFEN("8/8/8/8/8/8/8/K6k x - - 0 1")
	assert.Error(t, err)
}

func TestFENRejectsBadCastling(t *testing.T) {
	_, err := ParseFEN("8/8/8/8/8/8/8/K6k w XY - 0 1")
	assert.Error(t, err)
}

func TestFENComparesEqualForSameFields(t *testing.T) {
	a, err := ParseFEN("8/8/8/8/8/8/8/K6k w - - 0 1")
	require.NoError(t, err)
	b, err := ParseFEN("8/8/8/8/8/8/8/K6k w - - 0 1")
	require.NoError(t, err)
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(Position{})); diff != "" {
		t.Errorf("positions parsed from identical FENs differ:\n%s", diff)
	}
}
