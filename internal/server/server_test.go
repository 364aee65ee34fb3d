package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TilePlan/internal/model"
)

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	cfg := model.DefaultAppConfig()
	cfg.MediaRoot = t.TempDir()
	cfg.DefaultPricePerTile = 2.5

	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})
	return New(cfg, logger), &logs
}

func post(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/draw", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const floorBody = `{"scheme":"floor","tile":{"width":500,"length":500,"delimiter":2},
	"width":4000,"length":5000,"options":{"method":1}}`

const wallsBody = `{"scheme":"walls","tile":{"width":500,"length":500,"delimiter":2},
	"width":4000,"length":5000,"options":{"height":2500,"door":{"width":800,"height":2000}},
	"format":"pdf"}`

func TestDraw_FloorPNG(t *testing.T) {
	s, logs := newTestServer(t)

	rec := post(t, s, floorBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp drawResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.True(t, strings.HasPrefix(resp.URL, "/media/"))
	assert.True(t, strings.HasSuffix(resp.URL, ".png"))
	assert.Equal(t, 80, resp.Tiles)
	assert.Equal(t, 2.5, resp.Estimate.PricePerTile)

	media := httptest.NewRecorder()
	s.Handler().ServeHTTP(media, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	require.Equal(t, http.StatusOK, media.Code)
	img, err := png.Decode(media.Body)
	require.NoError(t, err)
	assert.Equal(t, 1280, img.Bounds().Dx())
	assert.Equal(t, 720, img.Bounds().Dy())

	assert.Contains(t, logs.String(), "plan")
	assert.Contains(t, logs.String(), "/api/draw")
}

func TestDraw_WallsPDF(t *testing.T) {
	s, _ := newTestServer(t)

	rec := post(t, s, wallsBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp drawResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pdf", string(resp.Format))
	assert.True(t, strings.HasSuffix(resp.URL, ".pdf"))
	assert.Len(t, resp.Estimate.Surfaces, 4)

	media := httptest.NewRecorder()
	s.Handler().ServeHTTP(media, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	require.Equal(t, http.StatusOK, media.Code)
	head, err := io.ReadAll(io.LimitReader(media.Body, 5))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(head))
}

func TestDraw_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing scheme", `{"tile":{"width":1,"length":1,"delimiter":0}}`, "Required argument: scheme"},
		{"bad scheme", `{"scheme":"roof"}`, "Invalid scheme (roof), expected: floor,walls"},
		{"missing tile", `{"scheme":"floor"}`, "Required argument: tile"},
		{"missing tile length", `{"scheme":"floor","tile":{"width":500,"delimiter":2}}`, "Required argument: tile.length"},
		{"missing width", `{"scheme":"floor","tile":{"width":500,"length":500,"delimiter":2},"length":100}`, "Required argument: width"},
		{"missing method", `{"scheme":"floor","tile":{"width":500,"length":500,"delimiter":2},"width":1,"length":1}`, "Required argument: options.method"},
		{"bad method", `{"scheme":"floor","tile":{"width":500,"length":500,"delimiter":2},"width":1,"length":1,"options":{"method":4}}`,
			"Invalid floor laying method (4), expected: 1,2,3"},
		{"missing height", `{"scheme":"walls","tile":{"width":500,"length":500,"delimiter":2},"width":1,"length":1}`, "Required argument: options.height"},
		{"bad format", `{"scheme":"floor","tile":{"width":500,"length":500,"delimiter":2},"width":1000,"length":1000,"options":{"method":1},"format":"svg"}`,
			"Invalid format (svg), expected: png,pdf,dxf,xlsx"},
		{"bad json", `{"scheme":`, "Invalid JSON body"},
	}

	s, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, 400, body.Error.Code)
			assert.Contains(t, body.Error.Message, tt.want)
		})
	}
}

func TestDraw_PlannerValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := post(t, s, `{"scheme":"floor","tile":{"width":-5,"length":500,"delimiter":2},
		"width":4000,"length":5000,"options":{"method":1}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "Invalid tile")

	rec = post(t, s, `{"scheme":"walls","tile":{"width":500,"length":500,"delimiter":2},
		"width":4000,"length":5000,"options":{"height":2500,"door":{"width":8000,"height":2000}}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "door")
}

func TestDraw_TooManyTiles(t *testing.T) {
	s, _ := newTestServer(t)

	rec := post(t, s, `{"scheme":"floor","tile":{"width":1,"length":1,"delimiter":0},
		"width":4000,"length":4000,"options":{"method":1}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "Too many tiles")

	entries, err := os.ReadDir(s.cfg.MediaRoot)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing should be rendered")
}

func TestRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/draw", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, 405, decodeError(t, rec).Error.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// failingWriter accepts headers but fails every body write.
type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestWriteJSON_LogsWriteFailure(t *testing.T) {
	s, logs := newTestServer(t)

	w := failingWriter{httptest.NewRecorder()}
	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "failed to write response")
	assert.Contains(t, logs.String(), io.ErrClosedPipe.Error())
}
