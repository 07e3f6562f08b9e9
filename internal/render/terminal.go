// Package render draws boards for people: coloured text for terminals and
// SVG for browsers.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbeisheim/sensorchess-backend/internal/model"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	esc         = "\x1b"
	lightSquare = "242"
	darkSquare  = "240"
	blackPiece  = "232"
	whitePiece  = "7"
	noPiece     = "0"
)

func foreground(p model.Piece) string {
	team, ok := p.Team()
	switch {
	case !ok:
		return noPiece
	case team == model.Black:
		return blackPiece
	}
	return whitePiece
}

// WriteANSI draws the board with 256-colour escapes: one cell per square,
// checkered background, piece glyph coloured by owner.
func WriteANSI(w io.Writer, b model.Board) error {
	var sb strings.Builder
	for y, row := range b {
		for x, p := range row {
			bg := darkSquare
			if (x+y)%2 == 0 {
				bg = lightSquare
			}
			fmt.Fprintf(&sb, "%s[48;5;%sm%s[38;5;%sm%s", esc, bg, esc, foreground(p), p.Glyph())
		}
		sb.WriteString(esc + "[0m\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WritePlain draws the board in notation form, one row per line.
func WritePlain(w io.Writer, b model.Board) error {
	_, err := io.WriteString(w, b.String()+"\n")
	return err
}

// Terminal writes boards to a file, in colour only when it is a terminal.
type Terminal struct {
	w     io.Writer
	color bool
}

func NewTerminal(f *os.File) *Terminal {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return &Terminal{w: colorable.NewColorable(f), color: true}
	}
	return &Terminal{w: colorable.NewNonColorable(f)}
}

func (t *Terminal) Board(b model.Board) error {
	if t.color {
		return WriteANSI(t.w, b)
	}
	return WritePlain(t.w, b)
}

func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.w, format, args...)
}
