package engine

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/board"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/goal"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/level"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

var (
	ErrOutOfRange = errors.New("engine: location out of range")
	ErrEmpty      = errors.New("engine: no piece at location")
	ErrOccupied   = errors.New("engine: location occupied")
	ErrLocked     = errors.New("engine: piece is locked")
	ErrHolding    = errors.New("engine: already holding a piece")
	ErrNotHolding = errors.New("engine: not holding a piece")
	ErrHandFull   = errors.New("engine: hand is full")
	ErrNoSwitch   = errors.New("engine: no switch in play")
)

// Location addresses a board cell or a hand slot.
type Location struct {
	Hand bool `json:"hand"`
	board.Coord
}

// Cell addresses board cell (r, c).
func Cell(r, c int) Location {
	return Location{Coord: board.Coord{Row: r, Col: c}}
}

// Slot addresses hand slot (r, c).
func Slot(r, c int) Location {
	return Location{Hand: true, Coord: board.Coord{Row: r, Col: c}}
}

func (l Location) String() string {
	if l.Hand {
		return "hand" + l.Coord.String()
	}
	return "board" + l.Coord.String()
}

// change classifies a mutation. Only board changes forget the switch
// positions already satisfied.
type change uint8

const (
	changeHand change = iota
	changeSwitch
	changeBoard
)

// State is a snapshot of a session.
type State struct {
	ID      string
	Level   int
	Board   board.Board
	Hand    level.Hand
	Held    piece.Type
	Holding bool
	Moves   int
	Last    *Evaluation
}

// Session is one player's attempt at a level. All methods are safe for
// concurrent use; each mutation and the evaluation that follows it run
// under a single lock, so an evaluation never sees a half-applied move.
type Session struct {
	id     uuid.UUID
	level  *level.Level
	eval   *Evaluator
	logger *log.Logger

	mu      sync.Mutex
	board   board.Board
	hand    level.Hand
	held    piece.Type
	from    Location
	holding bool
	tracker goal.Tracker
	moves   int
	last    *Evaluation
}

// NewSession deals l and evaluates the initial board. A nil logger discards
// output.
func NewSession(l *level.Level, ev *Evaluator, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Session{
		id:     uuid.New(),
		level:  l,
		eval:   ev,
		logger: logger,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deal()
	s.commit(changeBoard, "deal")
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Level returns the level being played.
func (s *Session) Level() *level.Level {
	return s.level
}

// Evaluation returns the result of the most recent pass.
func (s *Session) Evaluation() *Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:      s.id.String(),
		Level:   s.level.Number,
		Board:   s.board,
		Hand:    s.hand,
		Held:    s.held,
		Holding: s.holding,
		Moves:   s.moves,
		Last:    s.last,
	}
}

// Reset deals the level again.
func (s *Session) Reset() *Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deal()
	s.moves = 0
	return s.commit(changeBoard, "reset")
}

// PickUp lifts the piece at loc. Pieces from the initial layout stay put.
func (s *Session) PickUp(loc Location) (*Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holding {
		return nil, ErrHolding
	}
	t, err := s.movable(loc)
	if err != nil {
		return nil, err
	}
	s.set(loc, piece.Blank)
	s.held, s.from, s.holding = t, loc, true
	return s.commit(kindOf(loc), "pick up %s from %s", t, loc), nil
}

// Drop puts the held piece at loc. When loc is occupied or off the board
// the piece goes back where it was picked up.
func (s *Session) Drop(loc Location) (*Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.holding {
		return nil, ErrNotHolding
	}
	dest := loc
	if t, ok := s.at(loc); !ok || t != piece.Blank {
		dest = s.from
	}
	t := s.held
	s.set(dest, t)
	s.held, s.holding = piece.Blank, false
	return s.commit(kindOf(dest), "drop %s at %s", t, dest), nil
}

// Place moves a piece from a free cell or hand slot to an empty board cell
// in one step.
func (s *Session) Place(from Location, to board.Coord) (*Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holding {
		return nil, ErrHolding
	}
	t, err := s.movable(from)
	if err != nil {
		return nil, err
	}
	dest := Location{Coord: to}
	cur, ok := s.at(dest)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, dest)
	}
	if cur != piece.Blank {
		return nil, fmt.Errorf("%w: %s", ErrOccupied, dest)
	}
	s.set(from, piece.Blank)
	s.set(dest, t)
	return s.commit(changeBoard, "place %s from %s at %s", t, from, dest), nil
}

// ReturnToHand moves a player-placed piece from the board to the first free
// hand slot.
func (s *Session) ReturnToHand(c board.Coord) (*Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// the held piece's origin slot must stay free for a refused drop
	if s.holding {
		return nil, ErrHolding
	}
	from := Location{Coord: c}
	t, err := s.movable(from)
	if err != nil {
		return nil, err
	}
	slot, ok := s.hand.Free()
	if !ok {
		return nil, ErrHandFull
	}
	s.set(from, piece.Blank)
	s.hand[slot.Row][slot.Col] = t
	return s.commit(changeBoard, "return %s from %s", t, from), nil
}

// Rotate turns the piece at loc a quarter turn. Locked layout pieces
// cannot be turned; unknown-rotation layout pieces can.
func (s *Session) Rotate(loc Location, clockwise bool) (*Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.at(loc)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, loc)
	}
	if t == piece.Blank {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, loc)
	}
	if !loc.Hand && s.level.Lock(loc.Coord) == level.Locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, loc)
	}
	next := piece.Rotate(t, clockwise)
	s.set(loc, next)
	return s.commit(kindOf(loc), "rotate %s to %s at %s", t, next, loc), nil
}

// RotateHeld turns the piece being moved.
func (s *Session) RotateHeld(clockwise bool) (*Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.holding {
		return nil, ErrNotHolding
	}
	s.held = piece.Rotate(s.held, clockwise)
	return s.commit(changeHand, "rotate held to %s", s.held), nil
}

// ToggleSwitch advances every switch in play, wherever it is, to its next
// position. Only a switch on the board makes this a switch change; the
// previously satisfied positions are kept.
func (s *Session) ToggleSwitch() (*Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	ch := changeHand
	for r := range s.board {
		for c, t := range s.board[r] {
			if t.Kind() == piece.KindSwitch {
				s.board[r][c] = piece.ChangeSwitch(t)
				found, ch = true, changeSwitch
			}
		}
	}
	for r := range s.hand {
		for c, t := range s.hand[r] {
			if t.Kind() == piece.KindSwitch {
				s.hand[r][c] = piece.ChangeSwitch(t)
				found = true
			}
		}
	}
	if s.holding && s.held.Kind() == piece.KindSwitch {
		s.held = piece.ChangeSwitch(s.held)
		found = true
	}
	if !found {
		return nil, ErrNoSwitch
	}
	return s.commit(ch, "toggle switch"), nil
}

func (s *Session) deal() {
	s.board = s.level.Board()
	s.hand = s.level.DealtHand()
	s.held, s.holding = piece.Blank, false
	s.from = Location{}
}

// commit runs one evaluation pass after a mutation. Callers hold s.mu.
func (s *Session) commit(ch change, format string, args ...any) *Evaluation {
	if ch == changeBoard {
		s.tracker.Invalidate()
	}
	s.moves++
	st := Status{Held: s.holding, HandEmpty: s.hand.Empty()}
	s.last = s.eval.Check(s.board, st, &s.level.Goal, &s.tracker)
	s.logger.Printf("session %s: %s: %s", s.id, fmt.Sprintf(format, args...), s.last)
	return s.last
}

// at returns the piece at loc and whether loc is in range.
func (s *Session) at(loc Location) (piece.Type, bool) {
	if loc.Hand {
		if !s.hand.In(loc.Coord) {
			return piece.Blank, false
		}
		return s.hand[loc.Row][loc.Col], true
	}
	if !loc.In() {
		return piece.Blank, false
	}
	return s.board.At(loc.Coord), true
}

func (s *Session) set(loc Location, t piece.Type) {
	if loc.Hand {
		s.hand[loc.Row][loc.Col] = t
		return
	}
	s.board.Set(loc.Coord, t)
}

// movable returns the piece at loc if the player may lift it.
func (s *Session) movable(loc Location) (piece.Type, error) {
	t, ok := s.at(loc)
	if !ok {
		return piece.Blank, fmt.Errorf("%w: %s", ErrOutOfRange, loc)
	}
	if t == piece.Blank {
		return piece.Blank, fmt.Errorf("%w: %s", ErrEmpty, loc)
	}
	if !loc.Hand && s.level.Lock(loc.Coord) != level.Free {
		return piece.Blank, fmt.Errorf("%w: %s", ErrLocked, loc)
	}
	return t, nil
}

func kindOf(loc Location) change {
	if loc.Hand {
		return changeHand
	}
	return changeBoard
}
