// Package boardfmt renders a position as a colorized 8x8 grid for the UCI
// "d" debug command. It builds entirely on position.Position's exported
// accessors rather than a separate render model.
package boardfmt

import (
	"strings"

	"github.com/fatih/color"

	"github.com/dafughes/chess/position"
	"github.com/dafughes/chess/square"
)

var (
	whitePiece = color.New(color.FgWhite, color.Bold)
	blackPiece = color.New(color.FgCyan, color.Bold)
	emptySq    = color.New(color.FgHiBlack)
	label      = color.New(color.FgHiBlack)
)

// Render formats p as a rank-8-to-rank-1 grid with file/rank labels,
// followed by side to move, en-passant target and castling rights. Piece
// letters are colored by side: white pieces bold white, black pieces bold
// cyan, empty squares dim.
func Render(p position.Position) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		label.Fprintf(&sb, "%c ", "12345678"[rank])
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(square.New(rank, file))
			if piece.IsNone() {
				emptySq.Fprint(&sb, ". ")
				continue
			}
			letter := string(piece.Letter())
			if piece.Color == square.White {
				whitePiece.Fprint(&sb, letter+" ")
			} else {
				blackPiece.Fprint(&sb, letter+" ")
			}
		}
		sb.WriteByte('\n')
	}
	label.Fprint(&sb, "  a b c d e f g h\n")

	sb.WriteString("Side to move: ")
	sb.WriteString(p.ActiveColor().String())
	sb.WriteString("\nEn passant: ")
	if ep := p.EnPassant(); ep == square.NoSquare {
		sb.WriteString("-")
	} else {
		sb.WriteString(ep.String())
	}
	sb.WriteString("\nCastling rights: ")
	sb.WriteString(castlingString(p.CastlingRights()))
	sb.WriteByte('\n')

	return sb.String()
}

// castlingString renders cr in the same KQkq FEN order, "-" if none remain.
func castlingString(cr position.CastlingRights) string {
	var sb strings.Builder
	if cr.Has(position.WhiteKingside) {
		sb.WriteByte('K')
	}
	if cr.Has(position.WhiteQueenside) {
		sb.WriteByte('Q')
	}
	if cr.Has(position.BlackKingside) {
		sb.WriteByte('k')
	}
	if cr.Has(position.BlackQueenside) {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
