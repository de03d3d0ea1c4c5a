// Package interpreter evaluates board-game programs: it binds the
// declarations of a program to a board and piece catalogue, then drives the
// setup, turn and end blocks until the game reaches a terminal status.
package interpreter

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/board"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/runtime"
)

// StatusKind is the phase of a game.
type StatusKind int

const (
	StatusRunning StatusKind = iota
	StatusWon
	StatusDrawn
	StatusAborted
)

func (k StatusKind) String() string {
	switch k {
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusDrawn:
		return "drawn"
	case StatusAborted:
		return "aborted"
	default:
		return fmt.Sprintf("status(%d)", int(k))
	}
}

// Status is the game outcome; Winner is set only for StatusWon.
type Status struct {
	Kind   StatusKind
	Winner int
}

func (s Status) String() string {
	if s.Kind == StatusWon {
		return fmt.Sprintf("won(%d)", s.Winner)
	}
	return s.Kind.String()
}

// Running reports whether the game has not reached a terminal status.
func (s Status) Running() bool {
	return s.Kind == StatusRunning
}

// GameState is everything a run owns.
type GameState struct {
	Game          string
	Players       int
	Board         *board.Board
	Catalogue     *board.Catalogue
	Global        *runtime.Environment
	CurrentPlayer int
	Turn          int
	Status        Status
}

// Render draws the board, see board.Board.Render.
func (s *GameState) Render() string {
	if s == nil || s.Board == nil {
		return ""
	}
	return s.Board.Render()
}

// Options configures an Interpreter. The zero value is usable: no input,
// output discarded, explicit capture, no turn limit.
type Options struct {
	Logger *logrus.Logger
	Output io.Writer
	Input  CellInput
	// MaxTurns aborts the game once that many turns have completed; 0 disables the limit.
	MaxTurns int
	// ImplicitCapture lets place capture the resident of an occupied cell.
	ImplicitCapture bool
	// Seed feeds random(n). Runs with the same seed draw the same numbers.
	Seed uint64
}

// Interpreter drives evaluation of a program. One interpreter runs one game
// at a time; Run may be called again to play the same or another program.
type Interpreter struct {
	opts  Options
	log   *logrus.Entry
	out   io.Writer
	input CellInput

	rng   *rand.Rand
	state *GameState
	stack *runtime.Stack
	rules map[string]*ast.RuleDefinition
}

// New returns an interpreter configured by opts.
func New(opts Options) *Interpreter {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	return &Interpreter{
		opts:  opts,
		log:   logrus.NewEntry(logger),
		out:   out,
		input: opts.Input,
	}
}

// Run validates and plays the program rooted at root.
func Run(root *ast.Block, opts Options) (*GameState, error) {
	return New(opts).Run(root)
}

// Run validates the program structure, builds the board and catalogue, and
// plays the game to a terminal status. On a runtime error the partially
// played state is returned alongside the error.
func (i *Interpreter) Run(root *ast.Block) (*GameState, error) {
	prog, err := collectProgram(root)
	if err != nil {
		return nil, err
	}
	if err := i.bind(prog); err != nil {
		return nil, err
	}
	i.log = i.log.WithField("game", prog.game.Name)
	i.log.WithFields(logrus.Fields{
		"players": prog.players.Count,
		"board":   fmt.Sprintf("%dx%d", prog.board.Width, prog.board.Height),
	}).Info("game starting")

	err = i.gameLoop(prog)
	i.logGlobals()
	if depth := i.stack.Depth(); depth != 0 {
		return i.state, fmt.Errorf("%d frames left open after run", depth)
	}
	if err != nil {
		i.log.WithError(err).WithField("kind", KindOf(err)).Error("game failed")
		return i.state, err
	}
	i.log.WithFields(logrus.Fields{
		"status": i.state.Status.String(),
		"turn":   i.state.Turn,
	}).Info("game finished")
	return i.state, nil
}

// logGlobals dumps the global bindings at debug level once the game stops.
func (i *Interpreter) logGlobals() {
	if !i.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	global := i.stack.Global()
	names := global.Keys()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		val, err := global.Get(name)
		if err != nil {
			continue
		}
		parts = append(parts, name+"="+i.valueToString(val))
	}
	i.log.WithField("globals", strings.Join(parts, " ")).Debug("global bindings")
}

// State returns the state of the current or last run.
func (i *Interpreter) State() *GameState {
	return i.state
}

// FrameDepth returns the number of frames currently pushed above the
// global frame.
func (i *Interpreter) FrameDepth() int {
	if i.stack == nil {
		return 0
	}
	return i.stack.Depth()
}

// bind turns the declarations of prog into runtime state.
func (i *Interpreter) bind(prog *program) error {
	players := prog.players.Count
	catalogue, err := makePieces(prog.pieces, players)
	if err != nil {
		return err
	}
	grid, err := makeBoard(prog.board, players, i.opts.ImplicitCapture)
	if err != nil {
		return err
	}
	global := runtime.NewEnvironment(nil)
	i.state = &GameState{
		Game:          prog.game.Name,
		Players:       players,
		Board:         grid,
		Catalogue:     catalogue,
		Global:        global,
		CurrentPlayer: 1,
		Status:        Status{Kind: StatusRunning},
	}
	i.stack = runtime.NewStack(global)
	i.rules = prog.rules
	seed := i.opts.Seed
	i.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return nil
}

func makeBoard(decl *ast.BoardStatement, players int, implicitCapture bool) (*board.Board, error) {
	origin, err := boardOrigin(decl.Origin)
	if err != nil {
		return nil, structureError(decl, "%w", err)
	}
	grid, err := board.New(board.Config{
		Width:   decl.Width,
		Height:  decl.Height,
		Players: players,
		Origin:  origin,
		Capture: implicitCapture || decl.Capture,
	})
	if err != nil {
		return nil, structureError(decl, "%w", err)
	}
	return grid, nil
}

func makePieces(decls []*ast.PieceStatement, players int) (*board.Catalogue, error) {
	catalogue := board.NewCatalogue(players)
	for _, decl := range decls {
		if _, err := catalogue.Add(decl.Owner, decl.Num, decl.Name, decl.Display); err != nil {
			return nil, structureError(decl, "%w", err)
		}
	}
	return catalogue, nil
}

func boardOrigin(origin ast.Origin) (board.Origin, error) {
	switch origin {
	case "", ast.OriginBottomLeft:
		return board.BottomLeft, nil
	case ast.OriginTopLeft:
		return board.TopLeft, nil
	case ast.OriginBottomRight:
		return board.BottomRight, nil
	case ast.OriginTopRight:
		return board.TopRight, nil
	default:
		return board.BottomLeft, errors.New("origin must be one of BL, TL, BR, TR, got " + string(origin))
	}
}
