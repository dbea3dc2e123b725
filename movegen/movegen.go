// Package movegen computes legal chess moves in a single pass, without
// generating pseudo-legal moves and filtering them by replaying each one.
// It precomputes the opponent's attack map, the checking pieces and any
// pinned friendly pieces once per call, then restricts each piece's
// destinations to what that information allows.
package movegen

import (
	"github.com/dafughes/chess/bitboard"
	"github.com/dafughes/chess/position"
	"github.com/dafughes/chess/square"
)

// GenerateMoves returns every legal move for the side to move in p.
// bitboard.InitAttackTables must have been called first.
func GenerateMoves(p position.Position) position.MoveList {
	var list position.MoveList

	us := p.ActiveColor()
	them := us.Other()
	friendly := p.ColorOccupancy(us)
	all := p.Occupancy()
	kingSq := p.KingSquare(us)

	attacks, attacksThroughKing, checkers := attackInfo(p, them, all, kingSq)
	numCheckers := checkers.Popcount()

	genKingMoves(p, &list, us, kingSq, friendly, attacksThroughKing)

	if numCheckers >= 2 {
		return list
	}

	allowed := ^friendly
	if numCheckers == 1 {
		checkerSq := checkers.First()
		allowed = (bitboard.Between(kingSq, checkerSq) | bitboard.Of(checkerSq)) &^ friendly
	}

	pawnAllowed := allowed
	epSquare := p.EnPassant()
	var epCapturedSq square.Square = square.NoSquare
	if epSquare != square.NoSquare {
		if us == square.White {
			epCapturedSq = square.New(epSquare.Rank()-1, epSquare.File())
		} else {
			epCapturedSq = square.New(epSquare.Rank()+1, epSquare.File())
		}
		if numCheckers == 0 || checkers.Test(epCapturedSq) {
			pawnAllowed |= bitboard.Of(epSquare)
		}
	}

	var lines pinLines
	pinned := detectPins(p, us, kingSq, &lines)

	genPawnMoves(p, &list, us, allowed, pawnAllowed, epSquare, epCapturedSq, pinned, &lines, all, kingSq, them)
	genKnightMoves(p, &list, us, friendly&^pinned, allowed)
	genSliderMoves(p, &list, us, square.Bishop, pinned, &lines, allowed, all)
	genSliderMoves(p, &list, us, square.Rook, pinned, &lines, allowed, all)
	genSliderMoves(p, &list, us, square.Queen, pinned, &lines, allowed, all)

	if numCheckers == 0 {
		genCastling(p, &list, us, kingSq, all, attacks)
	}

	return list
}

// IsInCheck reports whether the side to move's king is currently attacked.
func IsInCheck(p position.Position) bool {
	us := p.ActiveColor()
	them := us.Other()
	kingSq := p.KingSquare(us)
	_, _, checkers := attackInfo(p, them, p.Occupancy(), kingSq)
	return !checkers.IsEmpty()
}

// attackInfo computes, for the side "by", every square it attacks given
// occ (attacks), the same map with the defending king removed from
// occupancy (attacksThroughKing, used so the king cannot step along a
// ray it was itself blocking), and the subset of by's pieces that give
// check to the king on kingSq (checkers).
func attackInfo(p position.Position, by square.Color, occ bitboard.Board, kingSq square.Square) (attacks, attacksThroughKing, checkers bitboard.Board) {
	pawns := p.PieceOccupancy(by, square.Pawn)
	knights := p.PieceOccupancy(by, square.Knight)
	bishops := p.PieceOccupancy(by, square.Bishop)
	rooks := p.PieceOccupancy(by, square.Rook)
	queens := p.PieceOccupancy(by, square.Queen)
	kingBB := p.PieceOccupancy(by, square.King)

	occWithoutDefenderKing := occ &^ bitboard.Of(kingSq)

	pawnAtk := bitboard.PawnSetAttacks(pawns, by)
	attacks = pawnAtk
	attacksThroughKing = pawnAtk

	if enemyKingSq := kingBB.First(); enemyKingSq != square.NoSquare {
		a := bitboard.KingAttacks(enemyKingSq)
		attacks |= a
		attacksThroughKing |= a
	}

	for bb := knights; !bb.IsEmpty(); {
		sq := bb.PopFirst()
		a := bitboard.KnightAttacks(sq)
		attacks |= a
		attacksThroughKing |= a
	}

	diag := bishops | queens
	for bb := diag; !bb.IsEmpty(); {
		sq := bb.PopFirst()
		attacks |= bitboard.BishopAttacks(sq, occ)
		attacksThroughKing |= bitboard.BishopAttacks(sq, occWithoutDefenderKing)
	}

	orth := rooks | queens
	for bb := orth; !bb.IsEmpty(); {
		sq := bb.PopFirst()
		attacks |= bitboard.RookAttacks(sq, occ)
		attacksThroughKing |= bitboard.RookAttacks(sq, occWithoutDefenderKing)
	}

	checkers |= bitboard.PawnAttacks(kingSq, by.Other()) & pawns
	checkers |= bitboard.KnightAttacks(kingSq) & knights
	checkers |= bitboard.BishopAttacks(kingSq, occ) & diag
	checkers |= bitboard.RookAttacks(kingSq, occ) & orth

	return attacks, attacksThroughKing, checkers
}

// pinLines maps each pinned square to the set of squares the piece there
// may still move to (the ray interior plus the pinner itself). Entries for
// unpinned squares are meaningless; consult the pinned bitboard first.
type pinLines [64]bitboard.Board

// detectPins finds every friendly piece that sits alone between the king
// and an aligned enemy slider.
func detectPins(p position.Position, us square.Color, kingSq square.Square, lines *pinLines) (pinned bitboard.Board) {
	them := us.Other()
	friendly := p.ColorOccupancy(us)
	enemy := p.ColorOccupancy(them)

	diagPinners := bitboard.BishopAttacks(kingSq, enemy) & (p.PieceOccupancy(them, square.Bishop) | p.PieceOccupancy(them, square.Queen))
	orthPinners := bitboard.RookAttacks(kingSq, enemy) & (p.PieceOccupancy(them, square.Rook) | p.PieceOccupancy(them, square.Queen))

	for bb := diagPinners | orthPinners; !bb.IsEmpty(); {
		pinnerSq := bb.PopFirst()
		between := bitboard.Between(kingSq, pinnerSq)
		blockers := between & friendly
		if blockers.Popcount() != 1 {
			continue
		}
		pinnedSq := blockers.First()
		pinned = pinned.Set(pinnedSq)
		lines[pinnedSq] = between | bitboard.Of(pinnerSq)
	}

	return pinned
}

func destinationsFor(sq square.Square, pinned bitboard.Board, lines *pinLines, base bitboard.Board) bitboard.Board {
	if pinned.Test(sq) {
		return base & lines[sq]
	}
	return base
}

func genKingMoves(p position.Position, list *position.MoveList, us square.Color, kingSq square.Square, friendly, attacksThroughKing bitboard.Board) {
	dests := bitboard.KingAttacks(kingSq) &^ friendly &^ attacksThroughKing
	enemy := p.ColorOccupancy(us.Other())
	for bb := dests; !bb.IsEmpty(); {
		to := bb.PopFirst()
		kind := position.Quiet
		if enemy.Test(to) {
			kind = position.Capture
		}
		list.Push(position.NewMove(kingSq, to, kind))
	}
}

func genKnightMoves(p position.Position, list *position.MoveList, us square.Color, movable, allowed bitboard.Board) {
	knights := p.PieceOccupancy(us, square.Knight) & movable
	enemy := p.ColorOccupancy(us.Other())
	for bb := knights; !bb.IsEmpty(); {
		from := bb.PopFirst()
		dests := bitboard.KnightAttacks(from) & allowed
		for d := dests; !d.IsEmpty(); {
			to := d.PopFirst()
			kind := position.Quiet
			if enemy.Test(to) {
				kind = position.Capture
			}
			list.Push(position.NewMove(from, to, kind))
		}
	}
}

func genSliderMoves(p position.Position, list *position.MoveList, us square.Color, kind square.PieceKind, pinned bitboard.Board, lines *pinLines, allowed, occ bitboard.Board) {
	pieces := p.PieceOccupancy(us, kind)
	enemy := p.ColorOccupancy(us.Other())
	for bb := pieces; !bb.IsEmpty(); {
		from := bb.PopFirst()
		var rays bitboard.Board
		switch kind {
		case square.Bishop:
			rays = bitboard.BishopAttacks(from, occ)
		case square.Rook:
			rays = bitboard.RookAttacks(from, occ)
		case square.Queen:
			rays = bitboard.QueenAttacks(from, occ)
		}
		dests := destinationsFor(from, pinned, lines, rays&allowed)
		for d := dests; !d.IsEmpty(); {
			to := d.PopFirst()
			mv := position.Quiet
			if enemy.Test(to) {
				mv = position.Capture
			}
			list.Push(position.NewMove(from, to, mv))
		}
	}
}

func genPawnMoves(p position.Position, list *position.MoveList, us square.Color, allowed, pawnAllowed bitboard.Board, epSquare, epCapturedSq square.Square, pinned bitboard.Board, lines *pinLines, all bitboard.Board, kingSq square.Square, them square.Color) {
	pawns := p.PieceOccupancy(us, square.Pawn)
	enemy := p.ColorOccupancy(them)
	up := us.Up()
	homeRank, lastRank := 1, 7
	if us == square.Black {
		homeRank, lastRank = 6, 0
	}

	for bb := pawns; !bb.IsEmpty(); {
		from := bb.PopFirst()
		fromBB := bitboard.Of(from)

		single := fromBB.Shift(up) &^ all
		if !single.IsEmpty() {
			to := single.First()
			emitPawnMove(list, from, to, position.Quiet, to.Rank() == lastRank, destinationsFor(from, pinned, lines, allowed).Test(to))

			if from.Rank() == homeRank {
				double := single.Shift(up) &^ all
				if !double.IsEmpty() {
					to2 := double.First()
					if destinationsFor(from, pinned, lines, allowed).Test(to2) {
						list.Push(position.NewMove(from, to2, position.DoublePush))
					}
				}
			}
		}

		capDests := bitboard.PawnAttacks(from, us) & enemy
		capDests = destinationsFor(from, pinned, lines, capDests&allowed)
		for d := capDests; !d.IsEmpty(); {
			to := d.PopFirst()
			emitPawnMove(list, from, to, position.Capture, to.Rank() == lastRank, true)
		}

		if epSquare != square.NoSquare && bitboard.PawnAttacks(from, us).Test(epSquare) {
			epDests := destinationsFor(from, pinned, lines, pawnAllowed)
			if epDests.Test(epSquare) && !epRevealsCheck(p, from, epSquare, epCapturedSq, kingSq, us) {
				list.Push(position.NewMove(from, epSquare, position.EnPassant))
			}
		}
	}
}

// emitPawnMove pushes either one quiet/capture move or, on the last rank,
// the four promotion/promotion-capture variants. allowedHere gates the
// destination against the check-evasion/pin mask; callers that already
// filtered the destination (captures, which are intersected up front) pass
// true.
func emitPawnMove(list *position.MoveList, from, to square.Square, base position.MoveKind, isPromotion bool, allowedHere bool) {
	if !allowedHere {
		return
	}
	if !isPromotion {
		list.Push(position.NewMove(from, to, base))
		return
	}
	if base == position.Quiet {
		list.Push(position.NewMove(from, to, position.PromQ))
		list.Push(position.NewMove(from, to, position.PromR))
		list.Push(position.NewMove(from, to, position.PromB))
		list.Push(position.NewMove(from, to, position.PromN))
		return
	}
	list.Push(position.NewMove(from, to, position.PromCapQ))
	list.Push(position.NewMove(from, to, position.PromCapR))
	list.Push(position.NewMove(from, to, position.PromCapB))
	list.Push(position.NewMove(from, to, position.PromCapN))
}

// epRevealsCheck reports whether capturing en passant would leave the king
// on kingSq attacked by a slider. The capture vacates two squares at once
// (the capturing pawn's fromSq and the captured pawn's capturedSq), which
// ordinary pin detection never accounts for: both pawns may sit beside the
// king on a rook's rank, or the captured pawn alone may shield the king
// on a bishop's diagonal. Simulating the capture on the occupancy and
// probing both ray families from the king covers every variant, and the
// landing pawn on toSq still blocks any ray it steps onto.
func epRevealsCheck(p position.Position, fromSq, toSq, capturedSq, kingSq square.Square, us square.Color) bool {
	them := us.Other()
	occAfter := p.Occupancy()&^bitboard.Of(fromSq)&^bitboard.Of(capturedSq) | bitboard.Of(toSq)
	queens := p.PieceOccupancy(them, square.Queen)
	if !(bitboard.RookAttacks(kingSq, occAfter) & (p.PieceOccupancy(them, square.Rook) | queens)).IsEmpty() {
		return true
	}
	return !(bitboard.BishopAttacks(kingSq, occAfter) & (p.PieceOccupancy(them, square.Bishop) | queens)).IsEmpty()
}

// castling travel/occupancy masks, per color and side: the squares the
// king crosses or lands on (must not be attacked) and the squares between
// king and rook (must be empty).
var (
	kingsideTravel  = [2]bitboard.Board{square.White: bitboard.Of(square.F1) | bitboard.Of(square.G1), square.Black: bitboard.Of(square.F8) | bitboard.Of(square.G8)}
	kingsideEmpty   = kingsideTravel
	queensideTravel = [2]bitboard.Board{square.White: bitboard.Of(square.C1) | bitboard.Of(square.D1), square.Black: bitboard.Of(square.C8) | bitboard.Of(square.D8)}
	queensideEmpty  = [2]bitboard.Board{square.White: bitboard.Of(square.B1) | bitboard.Of(square.C1) | bitboard.Of(square.D1), square.Black: bitboard.Of(square.B8) | bitboard.Of(square.C8) | bitboard.Of(square.D8)}
)

// genCastling adds the castling moves still available given the attack map
// computed for the current (pre-castle) position; genCastling is only
// called when the king is not already in check.
func genCastling(p position.Position, list *position.MoveList, us square.Color, kingSq square.Square, all, attacks bitboard.Board) {
	rank := 0
	if us == square.Black {
		rank = 7
	}

	if p.CanCastleKingside(us) &&
		(kingsideEmpty[us]&all).IsEmpty() &&
		(kingsideTravel[us]&attacks).IsEmpty() {
		list.Push(position.NewMove(kingSq, square.New(rank, 6), position.Castling))
	}

	if p.CanCastleQueenside(us) &&
		(queensideEmpty[us]&all).IsEmpty() &&
		(queensideTravel[us]&attacks).IsEmpty() {
		list.Push(position.NewMove(kingSq, square.New(rank, 2), position.Castling))
	}
}
