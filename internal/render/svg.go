package render

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/benbeisheim/sensorchess-backend/internal/model"
)

const squarePx = 48

var (
	lightFill = "fill:#b5b5b5"
	darkFill  = "fill:#8a8a8a"
	markStyle = "fill:none;stroke:#e0b000;stroke-width:4"
	textStyle = "font-family:monospace;font-size:28px;text-anchor:middle;dominant-baseline:central"
)

func pieceStyle(p model.Piece) string {
	if team, _ := p.Team(); team == model.White {
		return "fill:#ffffff;stroke:#000000;stroke-width:1"
	}
	return "fill:#121212"
}

// WriteSVG draws the board as an SVG image. When last is non-nil its
// squares are outlined.
func WriteSVG(w io.Writer, b model.Board, last *model.Move) {
	canvas := svg.New(w)
	size := squarePx * model.BoardSize
	canvas.Start(size, size)

	for y, row := range b {
		for x := range row {
			fill := darkFill
			if (x+y)%2 == 0 {
				fill = lightFill
			}
			canvas.Rect(x*squarePx, y*squarePx, squarePx, squarePx, fill)
		}
	}

	if last != nil {
		for _, p := range []model.Position{last.From, last.To} {
			canvas.Rect(p.Column*squarePx+2, p.Row*squarePx+2, squarePx-4, squarePx-4, markStyle)
		}
	}

	canvas.Gstyle(textStyle)
	for y, row := range b {
		for x, p := range row {
			if p.IsEmpty() {
				continue
			}
			canvas.Text(x*squarePx+squarePx/2, y*squarePx+squarePx/2, p.Glyph(), pieceStyle(p))
		}
	}
	canvas.Gend()
	canvas.End()
}
