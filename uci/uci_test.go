package uci

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dafughes/chess/bitboard"
	"github.com/dafughes/chess/position"
	"github.com/dafughes/chess/search"
)

func TestMain(m *testing.M) {
	bitboard.InitAttackTables()
	os.Exit(m.Run())
}

func TestParseCommandBasicCommands(t *testing.T) {
	cases := map[string]CommandKind{
		"uci":     CmdUCI,
		"isready": CmdIsReady,
		"quit":    CmdQuit,
		"stop":    CmdStop,
		"d":       CmdDisplay,
	}
	for line, want := range cases {
		cmd, err := ParseCommand(line)
		require.NoError(t, err, line)
		assert.Equal(t, want, cmd.Kind)
	}
}

func TestParseCommandPositionStartpos(t *testing.T) {
	cmd, err := ParseCommand("position startpos moves e2e4 e7e5")
	require.NoError(t, err)
	assert.Equal(t, CmdPosition, cmd.Kind)
	assert.Equal(t, startingFEN, cmd.FEN)
	assert.Equal(t, []string{"e2e4", "e7e5"}, cmd.Moves)
}

func TestParseCommandPositionFen(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	cmd, err := ParseCommand("position fen " + fen + " moves a2a4")
	require.NoError(t, err)
	assert.Equal(t, fen, cmd.FEN)
	assert.Equal(t, []string{"a2a4"}, cmd.Moves)
}

func TestParseCommandGoFields(t *testing.T) {
	cmd, err := ParseCommand("go wtime 300000 btime 300000 winc 0 binc 0 movestogo 40")
	require.NoError(t, err)
	require.Equal(t, CmdGo, cmd.Kind)
	assert.Equal(t, 300000, cmd.Search.WTime)
	assert.Equal(t, 40, cmd.Search.MovesToGo)
	assert.True(t, cmd.Search.HasMovesToGo)
	assert.False(t, cmd.Search.HasDepth)
}

func TestParseCommandGoInfinite(t *testing.T) {
	cmd, err := ParseCommand("go infinite")
	require.NoError(t, err)
	assert.True(t, cmd.Search.Infinite)
}

func TestParseCommandGoPerft(t *testing.T) {
	cmd, err := ParseCommand("go perft 4")
	require.NoError(t, err)
	assert.Equal(t, CmdPerft, cmd.Kind)
	assert.Equal(t, 4, cmd.PerftDepth)
}

func TestParseCommandRejectsUnknown(t *testing.T) {
	_, err := ParseCommand("frobnicate")
	assert.Error(t, err)
	var uerr *ParseUCIError
	assert.ErrorAs(t, err, &uerr)
}

func TestParseCommandRejectsNegativeValue(t *testing.T) {
	_, err := ParseCommand("go wtime -5")
	assert.Error(t, err)
}

func TestParseMoveTextDoublePush(t *testing.T) {
	mv, err := ParseMoveText(position.Start(), "e2e4")
	require.NoError(t, err)
	assert.Equal(t, position.DoublePush, mv.Kind())
	assert.Equal(t, "e2e4", FormatMoveText(mv))
}

func TestParseMoveTextPromotion(t *testing.T) {
	p, err := position.ParseFEN("8/4P3/8/8/8/8/8/4K2k w - - 0 1")
	require.NoError(t, err)
	mv, err := ParseMoveText(p, "e7e8q")
	require.NoError(t, err)
	assert.Equal(t, position.PromQ, mv.Kind())
}

func TestParseMoveTextRejectsIllegalMove(t *testing.T) {
	_, err := ParseMoveText(position.Start(), "e2e5")
	assert.Error(t, err)
	var merr *ParseMoveError
	assert.ErrorAs(t, err, &merr)
}

func TestStopTokenOrdering(t *testing.T) {
	var tok StopToken
	assert.False(t, tok.Stopped())
	tok.Stop()
	assert.True(t, tok.Stopped())
	tok.Reset()
	assert.False(t, tok.Stopped())
}

func TestDriverFindsMateInOne(t *testing.T) {
	// Black king boxed in on h8 by its own g7/h7 pawns; white to move mates
	// with Ra8#.
	p, err := position.ParseFEN("7k/6pp/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	d := &Driver{Name: "test-engine", Author: "test", Eval: search.Material}
	var tok StopToken
	result := d.Go(p, SearchParams{Depth: 1, HasDepth: true}, &tok)

	assert.Equal(t, "a1a8", FormatMoveText(result.BestMove))
}

func TestDriverRespectsDepthBudget(t *testing.T) {
	d := &Driver{Eval: search.Material}
	var tok StopToken
	result := d.Go(position.Start(), SearchParams{Depth: 2, HasDepth: true}, &tok)
	assert.Equal(t, 2, result.Depth)
}

func TestDriverStopsEarlyOnToken(t *testing.T) {
	d := &Driver{Eval: search.Material}
	var tok StopToken
	tok.Stop()
	result := d.Go(position.Start(), SearchParams{}, &tok)
	assert.Equal(t, position.Move(0), result.BestMove)
}

func TestDriverPerftDelegatesToMovegen(t *testing.T) {
	d := &Driver{}
	assert.Equal(t, uint64(20), d.Perft(position.Start(), 1))
}

func TestDeadlineUsesMovesToGoEstimate(t *testing.T) {
	d := &Driver{}
	start := time.Now()
	deadline, has := d.deadline(position.Start(), SearchParams{WTime: 30000}, start)
	require.True(t, has)
	budget := deadline.Sub(start)
	assert.Equal(t, time.Duration(30000/defaultMovesToGo)*time.Millisecond, budget)
}
