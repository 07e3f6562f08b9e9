package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBoard(t *testing.T, dir, name, board string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(board), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	prev := writeBoard(t, dir, "prev.txt", demoPrevious)
	next := writeBoard(t, dir, "next.txt", demoNext)
	short := writeBoard(t, dir, "short.txt", "RNBQKBNR")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"demo", nil, 0},
		{"files", []string{"-prev", prev, "-next", next}, 0},
		{"wrong side", []string{"-prev", prev, "-next", next, "-to-move", "white"}, 1},
		{"no move", []string{"-prev", prev, "-next", prev}, 1},
		{"one file", []string{"-prev", prev}, 2},
		{"bad board", []string{"-prev", short, "-next", next}, 2},
		{"bad side", []string{"-to-move", "green"}, 2},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Fatalf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
