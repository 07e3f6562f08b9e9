package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

const BoardSize = 8

// Board is one full sensor snapshot, indexed [row][column]. Row 0 is the
// far rank. Boards are values: passing one around copies all 64 squares.
type Board [BoardSize][BoardSize]Piece

type Position struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

func (p Position) Valid() bool {
	return p.Column >= 0 && p.Column < BoardSize && p.Row >= 0 && p.Row < BoardSize
}

// Square returns the algebraic name, with row 0 as rank 8.
func (p Position) Square() string {
	return fmt.Sprintf("%c%d", p.Column+97, 8-p.Row)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Column, p.Row)
}

func (b Board) At(p Position) Piece {
	if !p.Valid() {
		return NoPiece
	}
	return b[p.Row][p.Column]
}

// Mirror returns the board with every piece handed to the other team.
func (b Board) Mirror() Board {
	for y := range b {
		for x := range b[y] {
			if team, ok := b[y][x].Team(); ok {
				b[y][x] = b[y][x].WithTeam(team.Other())
			}
		}
	}
	return b
}

// NewStandardBoard returns the opening setup with Black on rows 0 and 1.
func NewStandardBoard() Board {
	var b Board
	back := [BoardSize]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x, kind := range back {
		b[0][x] = NewPiece(kind, Black)
		b[1][x] = NewPiece(Pawn, Black)
		b[6][x] = NewPiece(Pawn, White)
		b[7][x] = NewPiece(kind, White)
	}
	return b
}

// ParseBoard reads 64 piece notations in row order. Whitespace is ignored,
// so both "R N B ..." and "RNB..." layouts are accepted.
func ParseBoard(s string) (Board, error) {
	var b Board
	n := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if n == BoardSize*BoardSize {
			return Board{}, fmt.Errorf("board has more than %d squares", BoardSize*BoardSize)
		}
		p, err := ParsePiece(r)
		if err != nil {
			return Board{}, fmt.Errorf("square %d: %w", n, err)
		}
		b[n/BoardSize][n%BoardSize] = p
		n++
	}
	if n != BoardSize*BoardSize {
		return Board{}, fmt.Errorf("board has %d squares, want %d", n, BoardSize*BoardSize)
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures known to be valid.
func MustParseBoard(s string) Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Board) Rows() []string {
	rows := make([]string, BoardSize)
	for y, row := range b {
		var sb strings.Builder
		for _, p := range row {
			sb.WriteRune(p.Notation())
		}
		rows[y] = sb.String()
	}
	return rows
}

func (b Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

// MarshalJSON encodes the board as eight row strings.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("board must be a list of rows: %w", err)
	}
	if len(rows) != BoardSize {
		return fmt.Errorf("board has %d rows, want %d", len(rows), BoardSize)
	}
	for y, row := range rows {
		if n := len([]rune(strings.Join(strings.Fields(row), ""))); n != BoardSize {
			return fmt.Errorf("row %d has %d squares, want %d", y, n, BoardSize)
		}
	}
	parsed, err := ParseBoard(strings.Join(rows, ""))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
