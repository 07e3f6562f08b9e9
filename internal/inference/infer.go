// Package inference works out which move was played from two snapshots of
// a sensor board.
package inference

import (
	"github.com/benbeisheim/sensorchess-backend/internal/model"
)

// Change is one square whose content differs between two snapshots.
type Change struct {
	Old      model.Piece
	New      model.Piece
	Position model.Position
}

func (c Change) involves(t model.Team) bool {
	return c.Old.BelongsTo(t) || c.New.BelongsTo(t)
}

// Diff lists every changed square in row order.
func Diff(previous, next model.Board) []Change {
	var changes []Change
	for y := range previous {
		for x := range previous[y] {
			if previous[y][x] != next[y][x] {
				changes = append(changes, Change{
					Old:      previous[y][x],
					New:      next[y][x],
					Position: model.Position{Column: x, Row: y},
				})
			}
		}
	}
	return changes
}

// partition splits the changes touching the mover's pieces from those
// touching the opponent's. A capture square lands in both.
func partition(changes []Change, toMove model.Team) (mover, opponent []Change) {
	for _, c := range changes {
		if c.involves(toMove) {
			mover = append(mover, c)
		}
		if c.involves(toMove.Other()) {
			opponent = append(opponent, c)
		}
	}
	return mover, opponent
}

// Infer returns the move that turns previous into next with toMove to
// play. It never guesses: anything that is not one piece of toMove
// relocating, optionally onto an opposing piece, is ErrIndecipherable.
func Infer(previous, next model.Board, toMove model.Team) (model.Move, error) {
	mover, opponent := partition(Diff(previous, next), toMove)

	switch {
	case len(mover) == 0 && len(opponent) == 0:
		return model.Move{}, ErrNoMove
	case len(mover) == 1 && len(opponent) == 0:
		if mover[0].Old.BelongsTo(toMove) && mover[0].New.IsEmpty() {
			return model.Move{}, ErrMakingMove
		}
		return model.Move{}, ErrIndecipherable
	case len(mover) != 2 || len(opponent) > 1:
		return model.Move{}, ErrIndecipherable
	}

	var captured *Change
	if len(opponent) == 1 {
		captured = &opponent[0]
	}
	return resolve(mover[0], mover[1], captured, toMove)
}

func resolve(a, b Change, captured *Change, toMove model.Team) (model.Move, error) {
	var from, to Change
	switch {
	case a.Old == b.New && a.New.IsEmpty():
		from, to = a, b
	case b.Old == a.New && b.New.IsEmpty():
		from, to = b, a
	default:
		return model.Move{}, ErrIndecipherable
	}

	if !from.Old.BelongsTo(toMove) || !from.New.IsEmpty() {
		return model.Move{}, ErrIndecipherable
	}
	// A side cannot land on its own piece.
	if to.Old.BelongsTo(toMove) {
		return model.Move{}, ErrIndecipherable
	}

	// The opposing piece that vanished must be the one the mover landed on.
	if captured != nil {
		if captured.Position != to.Position ||
			captured.Old != to.Old ||
			!captured.Old.BelongsTo(toMove.Other()) {
			return model.Move{}, ErrIndecipherable
		}
	}

	return model.Move{From: from.Position, To: to.Position}, nil
}
