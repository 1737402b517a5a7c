// Package api serves the circuit engine over HTTP.
package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/goal"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/level"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/oracle"
)

// Server holds the shared, read-only engine state and the live sessions.
type Server struct {
	levels level.Repository
	eval   *engine.Evaluator
	table  oracle.Table
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

// sessionEntry tracks when a session was last touched so idle ones can be
// expired.
type sessionEntry struct {
	sess *engine.Session
	seen time.Time
}

// NewServer creates a server. A nil table uses the embedded oracle and a
// nil logger discards output.
func NewServer(levels level.Repository, eval *engine.Evaluator, table oracle.Table, logger *log.Logger) *Server {
	if table == nil {
		table = oracle.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{
		levels:   levels,
		eval:     eval,
		table:    table,
		logger:   logger,
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/levels", s.listLevels)
	r.GET("/levels/:n", s.getLevel)
	r.POST("/evaluate", s.evaluate)
	r.GET("/oracle/:key", s.lookup)

	r.POST("/sessions", s.createSession)
	r.GET("/sessions/:id", s.getSession)
	r.DELETE("/sessions/:id", s.deleteSession)
	r.POST("/sessions/:id/moves", s.move)
	return r
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) listLevels(c *gin.Context) {
	list := s.levels.List()
	out := make([]LevelSummary, 0, len(list))
	for _, l := range list {
		out = append(out, LevelSummary{Number: l.Number, HasSwitch: l.HasSwitch(), Pieces: l.Pieces()})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) level(c *gin.Context, param string) (*level.Level, bool) {
	n, err := strconv.Atoi(param)
	if err != nil {
		fail(c, http.StatusBadRequest, errors.New("level number must be an integer"))
		return nil, false
	}
	l, err := s.levels.Lookup(n)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, level.ErrNotFound) {
			status = http.StatusNotFound
		}
		fail(c, status, err)
		return nil, false
	}
	return l, true
}

func (s *Server) getLevel(c *gin.Context) {
	l, ok := s.level(c, c.Param("n"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newLevelView(l))
}

// EvaluateRequest scores a board, optionally against a level goal.
type EvaluateRequest struct {
	Board     Grid `json:"board" binding:"required"`
	HandEmpty bool `json:"hand_empty"`
	Held      bool `json:"held"`
	Level     int  `json:"level"`
}

func (s *Server) evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	b, err := parseGrid(req.Board)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	st := engine.Status{Held: req.Held, HandEmpty: req.HandEmpty}

	var ev *engine.Evaluation
	if req.Level > 0 {
		l, ok := s.level(c, strconv.Itoa(req.Level))
		if !ok {
			return
		}
		var tr goal.Tracker
		ev = s.eval.Check(b, st, &l.Goal, &tr)
	} else {
		ev = s.eval.Evaluate(b, st)
	}

	view, err := newEvaluationView(ev)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) lookup(c *gin.Context) {
	v, err := strconv.ParseUint(c.Param("key"), 0, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	k := netlist.Key(v)
	if k&^netlist.KeyMask != 0 {
		fail(c, http.StatusBadRequest, errors.New("key wider than 27 bits"))
		return
	}
	m := netlist.Unpack(k)
	pairs := []string{}
	for _, p := range m.Pairs() {
		pairs = append(pairs, p[0].String()+"-"+p[1].String())
	}
	c.JSON(http.StatusOK, gin.H{
		"key":   k.String(),
		"known": s.table.Contains(k),
		"leds":  ledNames(s.table.Lookup(k)),
		"pairs": pairs,
	})
}

// SessionRequest starts a session on a level.
type SessionRequest struct {
	Level int `json:"level" binding:"required"`
}

func (s *Server) createSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	l, ok := s.level(c, strconv.Itoa(req.Level))
	if !ok {
		return
	}
	sess := engine.NewSession(l, s.eval, s.logger)

	s.mu.Lock()
	s.sessions[sess.ID().String()] = &sessionEntry{sess: sess, seen: s.now()}
	s.mu.Unlock()

	s.logger.Printf("api: session %s started on level %d", sess.ID(), l.Number)
	s.respondState(c, http.StatusCreated, sess)
}

func (s *Server) session(c *gin.Context) (*engine.Session, bool) {
	s.mu.Lock()
	e, ok := s.sessions[c.Param("id")]
	if ok {
		e.seen = s.now()
	}
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, errors.New("session not found"))
		return nil, false
	}
	return e.sess, true
}

func (s *Server) deleteSession(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, errors.New("session not found"))
		return
	}
	s.logger.Printf("api: session %s deleted", id)
	c.Status(http.StatusNoContent)
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions that have not been used for longer than idle and
// returns how many were removed.
func (s *Server) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.sessions {
		if e.seen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.logger.Printf("api: expired %d idle session(s)", n)
	}
	return n
}

// ExpireSessions sweeps idle sessions every idle/2 until ctx is done. A
// non-positive idle disables expiry.
func (s *Server) ExpireSessions(ctx context.Context, idle time.Duration) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(idle)
		}
	}
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	s.respondState(c, http.StatusOK, sess)
}

// MoveRequest is one player action. From and To are used by the actions
// that need them; Clockwise by rotations.
type MoveRequest struct {
	Action    string          `json:"action" binding:"required"`
	From      engine.Location `json:"from"`
	To        engine.Location `json:"to"`
	Clockwise bool            `json:"clockwise"`
}

func (s *Server) move(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	var err error
	switch req.Action {
	case "pickup":
		_, err = sess.PickUp(req.From)
	case "drop":
		_, err = sess.Drop(req.To)
	case "place":
		_, err = sess.Place(req.From, req.To.Coord)
	case "rotate":
		_, err = sess.Rotate(req.From, req.Clockwise)
	case "rotate_held":
		_, err = sess.RotateHeld(req.Clockwise)
	case "toggle":
		_, err = sess.ToggleSwitch()
	case "return":
		_, err = sess.ReturnToHand(req.From.Coord)
	case "reset":
		sess.Reset()
	default:
		fail(c, http.StatusBadRequest, errors.New("unknown action "+strconv.Quote(req.Action)))
		return
	}
	if err != nil {
		fail(c, moveStatus(err), err)
		return
	}
	s.respondState(c, http.StatusOK, sess)
}

func moveStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

func (s *Server) respondState(c *gin.Context, status int, sess *engine.Session) {
	view, err := newStateView(sess.State())
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(status, view)
}
