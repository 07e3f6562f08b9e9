// Command decipher prints two board snapshots and the move that explains
// them. Board files hold 64 piece letters (KQNBRP black, kqnbrp white, '.'
// empty), whitespace ignored. Without files it runs a built-in example.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/benbeisheim/sensorchess-backend/internal/inference"
	"github.com/benbeisheim/sensorchess-backend/internal/model"
	"github.com/benbeisheim/sensorchess-backend/internal/render"
)

const (
	demoPrevious = `
N R B Q K B R N
. . . . . . . .
. . . . . . . .
. . . . . . . .
. . . . . . . .
. . . . . . . .
p . . . . . . .
n r b q k b r n`
	demoNext = `
. R B Q K B R N
. . . . . . . .
. . . . . . . .
. . . . . . . .
. . . . . . . .
. . . . . . . .
N . . . . . . .
n r b q k b r n`
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("decipher", flag.ContinueOnError)
	prevPath := fs.String("prev", "", "file with the board before the action")
	nextPath := fs.String("next", "", "file with the board after the action")
	side := fs.String("to-move", "black", "side to move: black or white")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	toMove, err := model.ParseTeam(*side)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	previous, next, err := loadBoards(*prevPath, *nextPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	term := render.NewTerminal(os.Stdout)
	if err := term.Board(previous); err != nil {
		return 2
	}
	term.Printf("\n")
	if err := term.Board(next); err != nil {
		return 2
	}
	term.Printf("\n")

	mv, err := inference.Infer(previous, next, toMove)
	if err != nil {
		term.Printf("%s to move: %s\n", toMove, inference.StatusOf(err))
		return 1
	}
	term.Printf("%s to move: %s %v -> %v\n", toMove, mv, mv.From, mv.To)
	return 0
}

func loadBoards(prevPath, nextPath string) (model.Board, model.Board, error) {
	if prevPath == "" && nextPath == "" {
		return model.MustParseBoard(demoPrevious), model.MustParseBoard(demoNext), nil
	}
	if prevPath == "" || nextPath == "" {
		return model.Board{}, model.Board{}, errors.New("both -prev and -next are required")
	}
	previous, err := readBoard(prevPath)
	if err != nil {
		return model.Board{}, model.Board{}, err
	}
	next, err := readBoard(nextPath)
	if err != nil {
		return model.Board{}, model.Board{}, err
	}
	return previous, next, nil
}

func readBoard(path string) (model.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Board{}, err
	}
	b, err := model.ParseBoard(string(data))
	if err != nil {
		return model.Board{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
