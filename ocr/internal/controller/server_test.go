package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IBM/rotisserie/ocr/internal/entity"
	"github.com/IBM/rotisserie/ocr/internal/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeRecognizer struct {
	reading entity.Reading
	games   []string
	gotGame string
	gotImg  []byte
}

func (f *fakeRecognizer) Recognize(_ context.Context, game string, image []byte) (entity.Reading, error) {
	f.gotGame = game
	f.gotImg = image
	return f.reading, nil
}

func (f *fakeRecognizer) Games() []string { return f.games }

func newTestServer(t *testing.T, rec *fakeRecognizer, debug bool) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := NewServer("", "0", rec, metrics.New(), debug, filepath.Join(t.TempDir(), "debug"), zap.NewNop())
	if debug {
		if err := os.MkdirAll(srv.debugDir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return srv, srv.NewAPI()
}

func multipartImage(t *testing.T, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "frame.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatal(err)
	}
	writer.Close()
	return &body, writer.FormDataContentType()
}

func postImage(t *testing.T, eng *gin.Engine, path string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartImage(t, payload)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	eng.ServeHTTP(rec, req)
	return rec
}

func decodeNumber(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		Number int `json:"number"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp.Number
}

func TestInfo(t *testing.T) {
	_, eng := newTestServer(t, &fakeRecognizer{games: []string{"pubg"}}, false)

	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rec := httptest.NewRecorder()
	eng.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["app"] != "ocr" || resp["health"] != "good" || resp["version"] == "" {
		t.Fatalf("health payload = %v", resp)
	}
}

func TestProcess_RecognizedNumber(t *testing.T) {
	rec := &fakeRecognizer{
		games:   []string{"pubg"},
		reading: entity.Reading{Count: 42, Confidence: 0.97, Known: true},
	}
	_, eng := newTestServer(t, rec, false)

	res := postImage(t, eng, "/process_pubg", []byte("pngbytes"))
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d", res.Code)
	}
	if n := decodeNumber(t, res); n != 42 {
		t.Fatalf("number = %d, want 42", n)
	}
	if rec.gotGame != "pubg" || string(rec.gotImg) != "pngbytes" {
		t.Fatalf("recognizer got game=%q image=%q", rec.gotGame, rec.gotImg)
	}
}

func TestProcess_UnknownReadingIsSentinel(t *testing.T) {
	rec := &fakeRecognizer{
		games:   []string{"pubg"},
		reading: entity.Unknown(0.4),
	}
	_, eng := newTestServer(t, rec, false)

	res := postImage(t, eng, "/process_pubg", []byte("x"))
	if n := decodeNumber(t, res); n != entity.SentinelAlive {
		t.Fatalf("number = %d, want sentinel %d", n, entity.SentinelAlive)
	}
}

func TestProcess_MissingImageFieldIsSentinel(t *testing.T) {
	_, eng := newTestServer(t, &fakeRecognizer{games: []string{"pubg"}}, false)

	req := httptest.NewRequest(http.MethodPost, "/process_pubg", strings.NewReader("not multipart"))
	res := httptest.NewRecorder()
	eng.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("missing image must not be an error status, got %d", res.Code)
	}
	if n := decodeNumber(t, res); n != entity.SentinelAlive {
		t.Fatalf("number = %d, want sentinel", n)
	}
}

func TestProcess_RoutesPerGame(t *testing.T) {
	rec := &fakeRecognizer{
		games:   []string{"blackout", "fortnite", "pubg"},
		reading: entity.Reading{Count: 9, Known: true},
	}
	_, eng := newTestServer(t, rec, false)

	for _, game := range rec.games {
		res := postImage(t, eng, "/process_"+game, []byte("img"))
		if res.Code != http.StatusOK {
			t.Fatalf("process_%s status = %d", game, res.Code)
		}
		if rec.gotGame != game {
			t.Fatalf("recognizer got game %q, want %q", rec.gotGame, game)
		}
	}
}

func TestProcess_DebugDumpsImage(t *testing.T) {
	rec := &fakeRecognizer{
		games:   []string{"pubg"},
		reading: entity.Reading{Count: 17, Confidence: 0.9, Known: true},
	}
	srv, eng := newTestServer(t, rec, true)

	postImage(t, eng, "/process_pubg", []byte("imagebytes"))

	entries, err := os.ReadDir(srv.debugDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("debug dir has %d files, want 1", len(entries))
	}
	if !strings.HasSuffix(entries[0].Name(), "_17.png") {
		t.Fatalf("debug file %q not tagged with recognized value", entries[0].Name())
	}
}
