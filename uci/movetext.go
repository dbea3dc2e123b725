package uci

import (
	"fmt"

	"github.com/dafughes/chess/movegen"
	"github.com/dafughes/chess/position"
	"github.com/dafughes/chess/square"
)

// ParseMoveError reports move text that does not identify a unique legal
// move in the position it was parsed against.
type ParseMoveError struct {
	Text string
	Msg  string
}

func (e *ParseMoveError) Error() string {
	return fmt.Sprintf("uci: move %q: %s", e.Text, e.Msg)
}

// ParseMoveText parses long-algebraic move text ("e2e4", "a7a8q") against p
// and returns the unique legal move it names. It never constructs a Move
// out of thin air: the returned move is always one GenerateMoves(p)
// actually produced, so the caller can Apply it without separately
// checking legality.
func ParseMoveText(p position.Position, text string) (position.Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return 0, &ParseMoveError{text, "expected 4 or 5 characters"}
	}

	from, err := square.ParseSquare(text[0:2])
	if err != nil {
		return 0, &ParseMoveError{text, "bad from-square"}
	}
	to, err := square.ParseSquare(text[2:4])
	if err != nil {
		return 0, &ParseMoveError{text, "bad to-square"}
	}

	wantPromo := square.NoPieceKind
	if len(text) == 5 {
		pk, ok := square.ParsePieceKind(text[4])
		if !ok {
			return 0, &ParseMoveError{text, "bad promotion letter"}
		}
		wantPromo = pk
	}

	moves := movegen.GenerateMoves(p)
	for i := 0; i < moves.Len(); i++ {
		mv := moves.At(i)
		if mv.From() != from || mv.To() != to {
			continue
		}
		promo, isPromo := mv.Kind().PromotionKind()
		if isPromo != (wantPromo != square.NoPieceKind) {
			continue
		}
		if isPromo && promo != wantPromo {
			continue
		}
		return mv, nil
	}

	return 0, &ParseMoveError{text, "no matching legal move in this position"}
}

// FormatMoveText renders mv in the same long-algebraic form ParseMoveText
// accepts.
func FormatMoveText(mv position.Move) string {
	return mv.String()
}
