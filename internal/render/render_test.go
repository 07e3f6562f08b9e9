package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benbeisheim/sensorchess-backend/internal/model"
)

func TestWriteANSI(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteANSI(&buf, model.NewStandardBoard()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != model.BoardSize {
		t.Fatalf("expected %d lines, got %d", model.BoardSize, len(lines))
	}
	if !strings.HasPrefix(lines[0], "\x1b[48;5;242m\x1b[38;5;232mR") {
		t.Fatalf("unexpected first square %q", lines[0][:24])
	}
	if !strings.Contains(lines[7], "\x1b[38;5;7mK") {
		t.Fatalf("expected white king glyph on the last row")
	}
	if !strings.Contains(lines[0], "C") {
		t.Fatalf("knights are drawn as C")
	}
	if !strings.HasSuffix(lines[3], "\x1b[0m") {
		t.Fatalf("rows must reset attributes")
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	last := model.Move{From: model.Position{Column: 0, Row: 0}, To: model.Position{Column: 0, Row: 6}}
	WriteSVG(&buf, model.NewStandardBoard(), &last)
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if n := strings.Count(out, "<rect"); n != 64+2 {
		t.Fatalf("expected 66 rects, got %d", n)
	}
	if n := strings.Count(out, "<text"); n != 32 {
		t.Fatalf("expected 32 pieces, got %d", n)
	}
}

func TestTerminalPlainWhenNotATTY(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	term := NewTerminal(f)
	if err := term.Board(model.NewStandardBoard()); err != nil {
		t.Fatalf("board: %v", err)
	}
	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "\x1b") {
		t.Fatalf("escape codes written to a plain file")
	}
	if !strings.HasPrefix(string(data), "RNBQKBNR\n") {
		t.Fatalf("unexpected output %q", data)
	}
}
