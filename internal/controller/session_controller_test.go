package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/sensorchess-backend/internal/inference"
	"github.com/benbeisheim/sensorchess-backend/internal/model"
	"github.com/benbeisheim/sensorchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	svc := service.NewSessionService(service.NewSessionManager(), model.White)
	SetupRoutes(app, svc, websocket.Config{})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Device-ID", "board-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

const (
	openingJSON  = `["RNBQKBNR","........","........","........","........","........","........","rnbqkbnr"]`
	rookDownJSON = `[".NBQKBNR","........","........","........","........","........","R.......","rnbqkbnr"]`
)

func TestInferEndpoint(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantResult inference.Status
	}{
		{
			name:       "move",
			body:       `{"previous":` + openingJSON + `,"next":` + rookDownJSON + `,"toMove":"black"}`,
			wantStatus: http.StatusOK,
			wantResult: inference.StatusMove,
		},
		{
			name:       "wrong side",
			body:       `{"previous":` + openingJSON + `,"next":` + rookDownJSON + `,"toMove":"white"}`,
			wantStatus: http.StatusOK,
			wantResult: inference.StatusIndecipherable,
		},
		{
			name:       "no move",
			body:       `{"previous":` + openingJSON + `,"next":` + openingJSON + `,"toMove":"white"}`,
			wantStatus: http.StatusOK,
			wantResult: inference.StatusNoMove,
		},
		{
			name:       "missing side",
			body:       `{"previous":` + openingJSON + `,"next":` + openingJSON + `}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad board",
			body:       `{"previous":["RNBQ"],"next":` + openingJSON + `,"toMove":"white"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, http.MethodPost, "/api/infer", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, resp.StatusCode, body)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var reading service.Reading
			if err := json.Unmarshal(body, &reading); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if reading.Status != tt.wantResult {
				t.Fatalf("expected %s, got %s", tt.wantResult, reading.Status)
			}
			if tt.wantResult == inference.StatusMove {
				want := model.Move{From: model.Position{Column: 0, Row: 0}, To: model.Position{Column: 0, Row: 6}}
				if reading.Move == nil || *reading.Move != want {
					t.Fatalf("expected move %v, got %v", want, reading.Move)
				}
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp()

	resp, body := do(t, app, http.MethodPost, "/api/session", `{"board":`+openingJSON+`,"toMove":"black"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d: %s", resp.StatusCode, body)
	}
	var created struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.SessionID == "" {
		t.Fatalf("create: bad body %s", body)
	}
	base := "/api/session/" + created.SessionID

	resp, body = do(t, app, http.MethodPost, base+"/snapshot", `{"board":`+rookDownJSON+`}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot: status %d: %s", resp.StatusCode, body)
	}
	var snap struct {
		Status inference.Status     `json:"status"`
		Move   *model.Move          `json:"move"`
		ToMove model.Team           `json:"toMove"`
		State  service.SessionState `json:"state"`
	}
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("snapshot: decode %v", err)
	}
	if snap.Status != inference.StatusMove || snap.ToMove != model.White || len(snap.State.MoveHistory) != 1 {
		t.Fatalf("snapshot: unexpected result %s", body)
	}

	resp, body = do(t, app, http.MethodGet, base, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("state: status %d", resp.StatusCode)
	}
	var state service.SessionState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("state: decode %v", err)
	}
	if state.Board != model.MustParseBoard(strings.Join([]string{".NBQKBNR", "........", "........", "........", "........", "........", "R.......", "rnbqkbnr"}, "")) {
		t.Fatalf("state: settled board not updated:\n%s", state.Board)
	}

	resp, body = do(t, app, http.MethodGet, base+"/board.svg", "")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("svg: status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), "<svg") {
		t.Fatalf("svg: not an image")
	}

	resp, body = do(t, app, http.MethodPost, base+"/reset", `{"board":`+openingJSON+`,"toMove":"black"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset: status %d: %s", resp.StatusCode, body)
	}

	resp, _ = do(t, app, http.MethodDelete, base, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodGet, base, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("after delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestSessionDefaultsAndErrors(t *testing.T) {
	app := newTestApp()

	resp, body := do(t, app, http.MethodPost, "/api/session", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d: %s", resp.StatusCode, body)
	}

	resp, _ = do(t, app, http.MethodPost, "/api/session/missing/snapshot", `{"board":`+openingJSON+`}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodPost, "/api/session/missing/snapshot", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing board, got %d", resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodPost, "/api/session/missing/reset", `{"board":`+openingJSON+`}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for reset without side, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/session/missing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without device id, got %d", resp.StatusCode)
	}
}
