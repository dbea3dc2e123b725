package boardfmt

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafughes/chess/position"
)

func TestRenderStartingPosition(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	out := Render(position.Start())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 12)
	assert.Equal(t, "8 r n b q k b n r ", lines[0])
	assert.Equal(t, "1 R N B Q K B N R ", lines[7])
	assert.Equal(t, "  a b c d e f g h", strings.TrimRight(lines[8], " "))
	assert.Contains(t, out, "Side to move: w")
	assert.Contains(t, out, "En passant: -")
	assert.Contains(t, out, "Castling rights: KQkq")
}

func TestRenderEnPassantAndPartialRights(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	p, err := position.ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b Kq e3 0 3")
	require.NoError(t, err)

	out := Render(p)
	assert.Contains(t, out, "Side to move: b")
	assert.Contains(t, out, "En passant: e3")
	assert.Contains(t, out, "Castling rights: Kq")
}
