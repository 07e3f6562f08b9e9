package model

import "fmt"

type PieceKind uint8

const (
	Empty PieceKind = iota
	Pawn
	Rook
	Knight
	Bishop
	King
	Queen
)

func (k PieceKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case King:
		return "king"
	case Queen:
		return "queen"
	}
	return fmt.Sprintf("PieceKind(%d)", uint8(k))
}

// Piece is the content of one square. The zero value is an empty square.
// Pieces compare with ==: an empty square never carries a team.
type Piece struct {
	kind PieceKind
	team Team
}

// NoPiece is the empty square.
var NoPiece = Piece{}

func NewPiece(kind PieceKind, team Team) Piece {
	if kind == Empty {
		return NoPiece
	}
	return Piece{kind: kind, team: team}
}

func (p Piece) Kind() PieceKind {
	return p.kind
}

// Team reports the owner of the piece; ok is false for an empty square.
func (p Piece) Team() (team Team, ok bool) {
	if p.kind == Empty {
		return Black, false
	}
	return p.team, true
}

// BelongsTo reports whether the piece is owned by t. Empty belongs to nobody.
func (p Piece) BelongsTo(t Team) bool {
	return p.kind != Empty && p.team == t
}

func (p Piece) IsEmpty() bool {
	return p.kind == Empty
}

// Glyph is the single-character label shown on a display.
func (p Piece) Glyph() string {
	switch p.kind {
	case Pawn:
		return "P"
	case Rook:
		return "R"
	case Knight:
		return "C"
	case Bishop:
		return "B"
	case King:
		return "K"
	case Queen:
		return "Q"
	}
	return " "
}

// WithTeam returns the same kind of piece owned by t.
func (p Piece) WithTeam(t Team) Piece {
	return NewPiece(p.kind, t)
}

// Notation returns the board-text rune: upper case for Black, lower case
// for White and '.' for an empty square.
func (p Piece) Notation() rune {
	var r rune
	switch p.kind {
	case Pawn:
		r = 'P'
	case Rook:
		r = 'R'
	case Knight:
		r = 'N'
	case Bishop:
		r = 'B'
	case King:
		r = 'K'
	case Queen:
		r = 'Q'
	default:
		return '.'
	}
	if p.team == White {
		r += 'a' - 'A'
	}
	return r
}

func ParsePiece(r rune) (Piece, error) {
	team := Black
	if r >= 'a' && r <= 'z' {
		team = White
		r -= 'a' - 'A'
	}
	switch r {
	case '.':
		return NoPiece, nil
	case 'P':
		return NewPiece(Pawn, team), nil
	case 'R':
		return NewPiece(Rook, team), nil
	case 'N':
		return NewPiece(Knight, team), nil
	case 'B':
		return NewPiece(Bishop, team), nil
	case 'K':
		return NewPiece(King, team), nil
	case 'Q':
		return NewPiece(Queen, team), nil
	}
	return NoPiece, fmt.Errorf("unknown piece notation %q", r)
}

func (p Piece) String() string {
	if p.kind == Empty {
		return "empty"
	}
	return p.team.String() + " " + p.kind.String()
}
