package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/level"
)

func newTestRouter(t *testing.T, cfg *engine.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo, err := level.Default()
	require.NoError(t, err)
	ev, err := engine.NewEvaluator(cfg, nil, nil)
	require.NoError(t, err)
	return NewServer(repo, ev, nil, nil).Router()
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// solvedLevelOne is the first built-in level with the yellow LED wired.
var solvedLevelOne = Grid{
	{"vcc_b", ".", ".", ".", "."},
	{"corner_tr", "yled_al_cr", "corner_bl", ".", "."},
	{".", ".", "straight_tb", ".", "."},
	{".", ".", "gnd_ltr", ".", "."},
	{".", ".", ".", ".", "."},
}

func TestLevels(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/levels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]LevelSummary](t, w)
	assert.Len(t, list, 60)
	assert.Equal(t, 1, list[0].Number)
	assert.Equal(t, 6, list[0].Pieces)

	w = do(t, r, http.MethodGet, "/levels/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lv := decode[LevelView](t, w)
	assert.True(t, lv.HasSwitch)
	assert.Len(t, lv.Goal, 3)
	assert.Equal(t, "sw1", lv.Goal[0][0])
	assert.Len(t, lv.Board, 5)

	w = do(t, r, http.MethodGet, "/levels/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodGet, "/levels/one", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluate(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/evaluate", EvaluateRequest{Board: solvedLevelOne, HandEmpty: true, Level: 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ev := decode[EvaluationView](t, w)
	assert.Equal(t, "0x01020000", ev.Key)
	assert.Equal(t, []string{"yellow"}, ev.LEDs)
	assert.False(t, ev.Short)
	assert.True(t, ev.MeetsRules)
	require.NotNil(t, ev.Goal)
	assert.True(t, ev.Goal.Complete)
	assert.Equal(t, []string{"yellow"}, ev.Goal.Target)
	assert.Nil(t, ev.Nets)

	w = do(t, r, http.MethodPost, "/evaluate", EvaluateRequest{Board: solvedLevelOne})
	require.Equal(t, http.StatusOK, w.Code)
	ev = decode[EvaluationView](t, w)
	assert.False(t, ev.MeetsRules)
	assert.Nil(t, ev.Goal)
}

func TestEvaluateWithNets(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.ExportNets = true
	r := newTestRouter(t, cfg)

	w := do(t, r, http.MethodPost, "/evaluate", EvaluateRequest{Board: solvedLevelOne, HandEmpty: true})
	require.Equal(t, http.StatusOK, w.Code)
	ev := decode[EvaluationView](t, w)
	require.NotEmpty(t, ev.Nets)

	var nets map[string]any
	require.NoError(t, json.Unmarshal(ev.Nets, &nets))
	assert.Equal(t, "0x01020000", nets["key"])
}

func TestEvaluateErrors(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/evaluate", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/evaluate", EvaluateRequest{Board: solvedLevelOne[:3]})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bad := Grid{{"frob", ".", ".", ".", "."}, {".", ".", ".", ".", "."}, {".", ".", ".", ".", "."}, {".", ".", ".", ".", "."}, {".", ".", ".", ".", "."}}
	w = do(t, r, http.MethodPost, "/evaluate", EvaluateRequest{Board: bad})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "frob")

	w = do(t, r, http.MethodPost, "/evaluate", EvaluateRequest{Board: solvedLevelOne, Level: 99})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOracleLookup(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/oracle/0x01020000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Key   string   `json:"key"`
		Known bool     `json:"known"`
		LEDs  []string `json:"leds"`
		Pairs []string `json:"pairs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "0x01020000", got.Key)
	assert.True(t, got.Known)
	assert.Equal(t, []string{"yellow"}, got.LEDs)
	assert.ElementsMatch(t, []string{"VV-YA", "00-YC"}, got.Pairs)

	w = do(t, r, http.MethodGet, "/oracle/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"known":false`)

	w = do(t, r, http.MethodGet, "/oracle/nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodGet, "/oracle/0xFFFFFFFF", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/sessions", SessionRequest{Level: 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	st := decode[StateView](t, w)
	require.NotEmpty(t, st.ID)
	assert.Equal(t, 1, st.Level)
	assert.False(t, st.Evaluation.MeetsRules)
	path := "/sessions/" + st.ID

	move := func(req MoveRequest) StateView {
		t.Helper()
		w := do(t, r, http.MethodPost, path+"/moves", req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode[StateView](t, w)
	}

	// corner_u deals as corner_bl, which fits (1,2) as is
	st = move(MoveRequest{Action: "place", From: engine.Slot(0, 0), To: engine.Cell(1, 2)})
	assert.Equal(t, "corner_bl", st.Board[1][2])

	st = move(MoveRequest{Action: "place", From: engine.Slot(0, 1), To: engine.Cell(1, 0)})
	for i := 0; i < 4 && st.Board[1][0] != "corner_tr"; i++ {
		st = move(MoveRequest{Action: "rotate", From: engine.Cell(1, 0), Clockwise: true})
	}
	require.Equal(t, "corner_tr", st.Board[1][0])

	st = move(MoveRequest{Action: "pickup", From: engine.Slot(0, 2)})
	assert.Equal(t, "gnd_ltr", st.Held)
	assert.False(t, st.Evaluation.MeetsRules)

	st = move(MoveRequest{Action: "drop", To: engine.Cell(3, 2)})
	assert.Empty(t, st.Held)
	assert.Equal(t, []string{"yellow"}, st.Evaluation.LEDs)
	assert.True(t, st.Evaluation.MeetsRules)
	assert.True(t, st.Evaluation.Goal.Complete)

	w = do(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, st, decode[StateView](t, w))

	st = move(MoveRequest{Action: "reset"})
	assert.Equal(t, ".", st.Board[3][2])
	assert.False(t, st.Evaluation.Goal.Complete)
}

func TestSessionErrors(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/sessions", SessionRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodPost, "/sessions", SessionRequest{Level: 99})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodGet, "/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/sessions", SessionRequest{Level: 1})
	require.Equal(t, http.StatusCreated, w.Code)
	path := "/sessions/" + decode[StateView](t, w).ID + "/moves"

	w = do(t, r, http.MethodPost, path, MoveRequest{Action: "juggle"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodPost, path, MoveRequest{Action: "pickup", From: engine.Cell(0, 0)})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "locked")
	w = do(t, r, http.MethodPost, path, MoveRequest{Action: "pickup", From: engine.Cell(7, 0)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodPost, path, MoveRequest{Action: "toggle"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteSession(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/sessions", SessionRequest{Level: 1})
	require.Equal(t, http.StatusCreated, w.Code)
	path := "/sessions/" + decode[StateView](t, w).ID

	w = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSweepIdleSessions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo, err := level.Default()
	require.NoError(t, err)
	ev, err := engine.NewEvaluator(nil, nil, nil)
	require.NoError(t, err)
	s := NewServer(repo, ev, nil, nil)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	r := s.Router()

	create := func() string {
		w := do(t, r, http.MethodPost, "/sessions", SessionRequest{Level: 1})
		require.Equal(t, http.StatusCreated, w.Code)
		return "/sessions/" + decode[StateView](t, w).ID
	}
	stale := create()
	clock = clock.Add(20 * time.Minute)
	fresh := create()
	require.Equal(t, 2, s.Sessions())

	clock = clock.Add(15 * time.Minute)
	assert.Equal(t, 1, s.Sweep(30*time.Minute))
	assert.Equal(t, 1, s.Sessions())
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, stale, nil).Code)

	// a request keeps the session alive
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, fresh, nil).Code)
	clock = clock.Add(25 * time.Minute)
	assert.Zero(t, s.Sweep(30*time.Minute))
	assert.Equal(t, 1, s.Sessions())
}
