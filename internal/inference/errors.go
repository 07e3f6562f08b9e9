package inference

import "errors"

var (
	// ErrNoMove means neither side's pieces changed.
	ErrNoMove = errors.New("no move")
	// ErrMakingMove means a piece of the side to move was lifted and not put
	// down yet.
	ErrMakingMove = errors.New("move in progress")
	// ErrIndecipherable means the change is not a single move or capture.
	ErrIndecipherable = errors.New("indecipherable board change")
)

type Status string

const (
	StatusMove           Status = "move"
	StatusNoMove         Status = "noMove"
	StatusMakingMove     Status = "makingMove"
	StatusIndecipherable Status = "indecipherable"
)

// StatusOf maps an Infer result onto its status. Unknown errors count as
// indecipherable.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusMove
	case errors.Is(err, ErrNoMove):
		return StatusNoMove
	case errors.Is(err, ErrMakingMove):
		return StatusMakingMove
	}
	return StatusIndecipherable
}
