package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dafughes/chess/square"
)

// ParseFenError reports a malformed Forsyth-Edwards Notation string, naming
// which field was rejected and why.
type ParseFenError struct {
	FEN   string
	Field string
	Msg   string
}

func (e *ParseFenError) Error() string {
	return fmt.Sprintf("fen: invalid %s in %q: %s", e.Field, e.FEN, e.Msg)
}

// ParseFEN parses a Forsyth-Edwards Notation string into a Position. The
// halfmove clock and fullmove number may be omitted, defaulting to 0 and 1
// respectively, the common shorthand for a position with no move history.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 && len(fields) != 4 {
		return Position{}, &ParseFenError{fen, "field count", fmt.Sprintf("want 4 or 6 space-separated fields, got %d", len(fields))}
	}

	var p Position
	if err := parsePlacement(&p, fields[0], fen); err != nil {
		return Position{}, err
	}

	switch fields[1] {
	case "w":
		p.setActiveColor(square.White)
	case "b":
		p.setActiveColor(square.Black)
	default:
		return Position{}, &ParseFenError{fen, "active color", fmt.Sprintf("want \"w\" or \"b\", got %q", fields[1])}
	}

	cr, err := parseCastling(fields[2], fen)
	if err != nil {
		return Position{}, err
	}
	p.setCastlingRights(cr)

	if fields[3] == "-" {
		p.setEnPassantFile(-1)
	} else {
		sq, err := square.ParseSquare(fields[3])
		if err != nil {
			return Position{}, &ParseFenError{fen, "en passant target", err.Error()}
		}
		p.setEnPassantFile(sq.File())
	}

	halfmove, fullmove := 0, 1
	if len(fields) == 6 {
		halfmove, err = strconv.Atoi(fields[4])
		if err != nil || halfmove < 0 {
			return Position{}, &ParseFenError{fen, "halfmove clock", fmt.Sprintf("want a non-negative integer, got %q", fields[4])}
		}
		fullmove, err = strconv.Atoi(fields[5])
		if err != nil || fullmove < 1 {
			return Position{}, &ParseFenError{fen, "fullmove number", fmt.Sprintf("want a positive integer, got %q", fields[5])}
		}
	}
	p.setHalfmoveClock(halfmove)
	p.setFullmoveNumber(fullmove)

	return p, nil
}

func parsePlacement(p *Position, placement, fen string) error {
	rank, file := 7, 0
	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			if file != 8 {
				return &ParseFenError{fen, "piece placement", fmt.Sprintf("rank %d has %d files, want 8", rank+1, file)}
			}
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			piece, ok := square.ParsePieceLetter(c)
			if !ok {
				return &ParseFenError{fen, "piece placement", fmt.Sprintf("unrecognized piece letter %q", c)}
			}
			if rank < 0 || file > 7 {
				return &ParseFenError{fen, "piece placement", "too many squares"}
			}
			p.place(square.New(rank, file), piece)
			file++
		}
	}
	if rank != 0 || file != 8 {
		return &ParseFenError{fen, "piece placement", "does not describe exactly 8 ranks of 8 files"}
	}
	return nil
}

func parseCastling(field, fen string) (CastlingRights, error) {
	if field == "-" {
		return 0, nil
	}
	var cr CastlingRights
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case 'K':
			cr |= WhiteKingside
		case 'Q':
			cr |= WhiteQueenside
		case 'k':
			cr |= BlackKingside
		case 'q':
			cr |= BlackQueenside
		default:
			return 0, &ParseFenError{fen, "castling rights", fmt.Sprintf("unrecognized character %q", field[i])}
		}
	}
	return cr, nil
}

// FEN renders p as a complete Forsyth-Edwards Notation string.
func (p Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(square.New(rank, file))
			if piece.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.ActiveColor().String())

	sb.WriteByte(' ')
	cr := p.CastlingRights()
	if cr == 0 {
		sb.WriteByte('-')
	} else {
		if cr.Has(WhiteKingside) {
			sb.WriteByte('K')
		}
		if cr.Has(WhiteQueenside) {
			sb.WriteByte('Q')
		}
		if cr.Has(BlackKingside) {
			sb.WriteByte('k')
		}
		if cr.Has(BlackQueenside) {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if ep := p.EnPassant(); ep == square.NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(ep.String())
	}

	fmt.Fprintf(&sb, " %d %d", p.HalfmoveClock(), p.FullmoveNumber())

	return sb.String()
}
