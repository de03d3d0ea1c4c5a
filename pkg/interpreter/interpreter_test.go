package interpreter

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/runtime"
)

// game wraps setup and turn statements in a 3x3 two-player program.
func game(setup []ast.Statement, turn ...ast.Statement) *ast.Block {
	return ast.Program(
		ast.Game("Test"),
		ast.Players(2),
		ast.Board(3, 3),
		ast.Piece(1, 1, "X", "X"),
		ast.Piece(2, 1, "O", "O"),
		ast.Setup(setup...),
		ast.Turn(turn...),
	)
}

func setupOnly(stmts ...ast.Statement) *ast.Block {
	return game(stmts, ast.Quit())
}

func runExpectingKind(t *testing.T, prog *ast.Block, kind ErrorKind) (*GameState, *Interpreter) {
	t.Helper()
	interp := New(Options{})
	state, err := interp.Run(prog)
	if err == nil {
		t.Fatalf("expected %s, got status %s", kind, state.Status)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("expected %s, got %s (%v)", kind, got, err)
	}
	if interp.FrameDepth() != 0 {
		t.Fatalf("expected every frame popped, got depth %d", interp.FrameDepth())
	}
	return state, interp
}

func TestStructureErrors(t *testing.T) {
	full := func() []ast.Statement {
		return []ast.Statement{
			ast.Game("G"), ast.Players(2), ast.Board(3, 3), ast.Piece(1, 1, "X", "X"),
			ast.Setup(), ast.Turn(),
		}
	}
	without := func(skip int) *ast.Block {
		stmts := full()
		return ast.Program(append(stmts[:skip:skip], stmts[skip+1:]...)...)
	}
	cases := map[string]*ast.Block{
		"missing game":    without(0),
		"missing players": without(1),
		"missing board":   without(2),
		"missing pieces":  without(3),
		"missing setup":   without(4),
		"missing turn":    without(5),
		"duplicate game":  ast.Program(append(full(), ast.Game("Again"))...),
		"two end blocks":  ast.Program(append(full(), ast.End(), ast.End())...),
		"zero players":    ast.Program(ast.Game("G"), ast.Players(0), ast.Board(3, 3), ast.Piece(1, 1, "X", "X"), ast.Setup(), ast.Turn()),
		"empty board":     ast.Program(ast.Game("G"), ast.Players(1), ast.Board(0, 3), ast.Piece(1, 1, "X", "X"), ast.Setup(), ast.Turn()),
		"bad origin":      ast.Program(ast.Game("G"), ast.Players(1), ast.BoardWith(3, 3, "XX", false), ast.Piece(1, 1, "X", "X"), ast.Setup(), ast.Turn()),
		"foreign owner":   ast.Program(ast.Game("G"), ast.Players(1), ast.Board(3, 3), ast.Piece(2, 1, "X", "X"), ast.Setup(), ast.Turn()),
		"duplicate piece": ast.Program(append(full(), ast.Piece(1, 2, "X", "Y"))...),
		"duplicate rule":  ast.Program(append(full(), ast.Rule("r", nil), ast.Rule("r", nil))...),
		"duplicate param": ast.Program(append(full(), ast.Rule("r", []string{"a", "a"}))...),
		"stray statement": ast.Program(append(full(), ast.Draw())...),
	}
	for name, prog := range cases {
		state, err := Run(prog, Options{})
		if err == nil {
			t.Fatalf("%s: expected structure error, got status %s", name, state.Status)
		}
		if KindOf(err) != KindProgramStructure || !errors.Is(err, ErrProgramStructure) {
			t.Fatalf("%s: expected %s, got %v", name, KindProgramStructure, err)
		}
		if state != nil {
			t.Fatalf("%s: expected no state before execution", name)
		}
	}
}

func TestCheckAcceptsValidProgram(t *testing.T) {
	if err := Check(setupOnly()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIndexOutOfBounds(t *testing.T) {
	for _, at := range [][2]int64{{0, 1}, {4, 1}, {-1, 2}, {1, 0}, {1, 4}} {
		prog := setupOnly(ast.Def("p", ast.Index(ast.Int(at[0]), ast.Int(at[1]))))
		runExpectingKind(t, prog, KindOutOfBounds)
	}
}

func TestIndexReadsOccupant(t *testing.T) {
	state, err := Run(setupOnly(
		ast.Place("X", ast.Int(1), ast.At(2, 3)),
		ast.Def("p", ast.Index(ast.Int(2), ast.Int(3))),
		ast.Def("q", ast.Index(ast.Int(1), ast.Int(1))),
	), Options{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	p, _ := state.Global.Get("p")
	if _, ok := p.(runtime.PieceValue); !ok {
		t.Fatalf("expected piece value, got %#v", p)
	}
	q, _ := state.Global.Get("q")
	if _, ok := q.(runtime.NilValue); !ok {
		t.Fatalf("expected nil, got %#v", q)
	}
}

func TestPlaceOnOccupiedCellLeavesStateUnchanged(t *testing.T) {
	state, _ := runExpectingKind(t, setupOnly(
		ast.Place("X", ast.Int(1), ast.At(1, 1)),
		ast.Place("O", ast.Int(2), ast.At(1, 1)),
	), KindCellOccupied)
	if want := ". . .\n. . .\nX . ."; state.Render() != want {
		t.Fatalf("expected board\n%s\ngot\n%s", want, state.Render())
	}
	if got := state.Board.Count(2, "O"); got != 0 {
		t.Fatalf("expected no O placed, got %d", got)
	}
}

func TestImplicitCaptureOption(t *testing.T) {
	state, err := Run(setupOnly(
		ast.Place("X", ast.Int(1), ast.At(1, 1)),
		ast.Place("O", ast.Int(2), ast.At(1, 1)),
	), Options{ImplicitCapture: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if state.Board.Count(1, "X") != 0 || state.Board.Count(2, "O") != 1 {
		t.Fatalf("expected O to capture X, got board\n%s", state.Render())
	}
}

func TestDivisionByZeroLeavesStateUnchanged(t *testing.T) {
	state, _ := runExpectingKind(t, setupOnly(
		ast.Def("x", ast.Int(1)),
		ast.Set("x", ast.Bin(ast.OpDiv, ast.Int(10), ast.Int(0))),
	), KindArithmetic)
	x, _ := state.Global.Get("x")
	if !runtime.Equal(x, runtime.IntegerValue{Val: 1}) {
		t.Fatalf("expected x to stay 1, got %#v", x)
	}
	runExpectingKind(t, setupOnly(ast.Def("y", ast.Bin(ast.OpMod, ast.Int(10), ast.Int(0)))), KindArithmetic)
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		expr ast.Expression
		want int64
	}{
		{ast.Bin(ast.OpAdd, ast.Int(2), ast.Int(3)), 5},
		{ast.Bin(ast.OpSub, ast.Int(2), ast.Int(3)), -1},
		{ast.Bin(ast.OpMul, ast.Int(4), ast.Int(-3)), -12},
		{ast.Bin(ast.OpDiv, ast.Int(7), ast.Int(2)), 3},
		{ast.Bin(ast.OpDiv, ast.Int(-7), ast.Int(2)), -4},
		{ast.Bin(ast.OpDiv, ast.Int(7), ast.Int(-2)), -3},
		{ast.Bin(ast.OpMod, ast.Int(-7), ast.Int(2)), 1},
		{ast.Bin(ast.OpMod, ast.Int(-7), ast.Int(3)), 2},
		{ast.Bin(ast.OpMod, ast.Int(7), ast.Int(-2)), 1},
		{ast.Un(ast.OpNeg, ast.Int(4)), -4},
	}
	interp := New(Options{})
	env := runtime.NewEnvironment(nil)
	for _, tc := range cases {
		val, err := interp.evaluateExpression(tc.expr, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !runtime.Equal(val, runtime.IntegerValue{Val: tc.want}) {
			t.Fatalf("expected %d, got %#v", tc.want, val)
		}
	}
}

func TestDivisionAndModAgree(t *testing.T) {
	interp := New(Options{})
	env := runtime.NewEnvironment(nil)
	pairs := [][2]int64{{7, 2}, {-7, 2}, {7, -2}, {-7, -2}, {-9, 3}, {5, 7}}
	for _, p := range pairs {
		a, b := ast.Int(p[0]), ast.Int(p[1])
		// (a/b)*b + a mod b
		expr := ast.Bin(ast.OpAdd,
			ast.Bin(ast.OpMul, ast.Bin(ast.OpDiv, a, b), b),
			ast.Bin(ast.OpMod, a, b))
		val, err := interp.evaluateExpression(expr, env)
		if err != nil {
			t.Fatalf("unexpected error for %d, %d: %v", p[0], p[1], err)
		}
		if !runtime.Equal(val, runtime.IntegerValue{Val: p[0]}) {
			t.Fatalf("expected %d for %d, %d, got %#v", p[0], p[0], p[1], val)
		}
	}
}

func TestOverflowIsArithmeticError(t *testing.T) {
	interp := New(Options{})
	env := runtime.NewEnvironment(nil)
	exprs := []ast.Expression{
		ast.Bin(ast.OpAdd, ast.Int(math.MaxInt64), ast.Int(1)),
		ast.Bin(ast.OpMul, ast.Int(math.MaxInt64), ast.Int(2)),
		ast.Un(ast.OpNeg, ast.Int(math.MinInt64)),
		ast.Bin(ast.OpDiv, ast.Int(math.MinInt64), ast.Int(-1)),
	}
	for _, expr := range exprs {
		if _, err := interp.evaluateExpression(expr, env); KindOf(err) != KindArithmetic {
			t.Fatalf("expected arithmetic error, got %v", err)
		}
	}
}

func TestShortCircuit(t *testing.T) {
	interp := New(Options{})
	env := runtime.NewEnvironment(nil)
	boom := ast.Bin(ast.OpDiv, ast.Int(1), ast.Int(0))
	val, err := interp.evaluateExpression(ast.Bin(ast.OpAnd, ast.Bool(false), boom), env)
	if err != nil || !runtime.Equal(val, runtime.BoolValue{Val: false}) {
		t.Fatalf("expected false without evaluating the right side, got %#v (%v)", val, err)
	}
	val, err = interp.evaluateExpression(ast.Bin(ast.OpOr, ast.Bool(true), boom), env)
	if err != nil || !runtime.Equal(val, runtime.BoolValue{Val: true}) {
		t.Fatalf("expected true without evaluating the right side, got %#v (%v)", val, err)
	}
	if _, err := interp.evaluateExpression(ast.Bin(ast.OpAnd, ast.Int(1), ast.Bool(true)), env); KindOf(err) != KindType {
		t.Fatalf("expected type error for non-bool operand, got %v", err)
	}
}

func TestEqualityAcrossKinds(t *testing.T) {
	interp := New(Options{})
	env := runtime.NewEnvironment(nil)
	val, err := interp.evaluateExpression(ast.Bin(ast.OpEq, ast.Int(1), ast.Str("1")), env)
	if err != nil || !runtime.Equal(val, runtime.BoolValue{Val: false}) {
		t.Fatalf("expected false, got %#v (%v)", val, err)
	}
	val, err = interp.evaluateExpression(ast.Bin(ast.OpNe, ast.Nil(), ast.Nil()), env)
	if err != nil || !runtime.Equal(val, runtime.BoolValue{Val: false}) {
		t.Fatalf("expected false, got %#v (%v)", val, err)
	}
}

func TestConditionMustBeBool(t *testing.T) {
	runExpectingKind(t, game(nil, ast.If(ast.Int(1), ast.Blk(), nil)), KindType)
}

func TestUnboundAndRedefinition(t *testing.T) {
	runExpectingKind(t, setupOnly(ast.Def("x", ast.ID("missing"))), KindUnbound)
	runExpectingKind(t, setupOnly(ast.Set("missing", ast.Int(1))), KindUnbound)
	runExpectingKind(t, setupOnly(ast.Def("x", ast.Int(1)), ast.Def("x", ast.Int(2))), KindRedefinition)
	runExpectingKind(t, setupOnly(ast.Invoke("nowhere")), KindUnbound)
	runExpectingKind(t, setupOnly(ast.Def("x", ast.Call("nothing"))), KindUnbound)
	runExpectingKind(t, setupOnly(ast.Def("x", ast.Call("turn", ast.Int(1)))), KindType)
}

func TestErrorsCarrySpan(t *testing.T) {
	bad := ast.Bin(ast.OpDiv, ast.Int(1), ast.Int(0))
	ast.SetSpan(bad, ast.Span{Start: ast.Position{Line: 4, Column: 9}, End: ast.Position{Line: 4, Column: 14}})
	_, err := Run(setupOnly(ast.Def("x", bad)), Options{})
	var rtErr *Error
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *Error, got %#v", err)
	}
	if rtErr.Span.Start.Line != 4 || rtErr.Span.Start.Column != 9 {
		t.Fatalf("expected span at 4:9, got %s", rtErr.Span)
	}
}

func TestFramesPoppedAfterErrorInNestedBlocks(t *testing.T) {
	prog := game(nil,
		ast.While(ast.Bool(true), ast.Blk(
			ast.If(ast.Bool(true), ast.Blk(
				ast.ForCells("x", "y", ast.Blk(
					ast.Remove(ast.At(1, 1)),
				)),
			), nil),
		)),
	)
	runExpectingKind(t, prog, KindEmptyCell)
}

func TestMaxTurnsAborts(t *testing.T) {
	state, err := Run(game(nil), Options{MaxTurns: 3})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if state.Status.Kind != StatusAborted || state.Turn != 3 {
		t.Fatalf("expected aborted after 3 turns, got %s at turn %d", state.Status, state.Turn)
	}
}

func TestCurrentPlayerRotates(t *testing.T) {
	var out bytes.Buffer
	prog := ast.Program(
		ast.Game("Rotate"),
		ast.Players(3),
		ast.Board(2, 2),
		ast.Piece(1, 1, "X", "X"),
		ast.Setup(),
		ast.Turn(ast.Print(ast.Call("turn"), ast.Call("current_player"))),
	)
	if _, err := Run(prog, Options{Output: &out, MaxTurns: 4}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "1 1\n2 2\n3 3\n4 1\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestFirstWinStands(t *testing.T) {
	state, err := Run(game(nil, ast.Win(ast.Int(2)), ast.Win(ast.Int(1))), Options{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if state.Status != (Status{Kind: StatusWon, Winner: 2}) {
		t.Fatalf("expected won(2), got %s", state.Status)
	}
}

func TestWinForUnknownPlayerIsTypeError(t *testing.T) {
	runExpectingKind(t, game(nil, ast.Win(ast.Int(3))), KindType)
}

func TestPlaceMany(t *testing.T) {
	state, err := Run(setupOnly(ast.PlaceN(ast.Int(3), "X", ast.Int(1), ast.At(1, 2))), Options{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := state.Board.Count(1, "X"); got != 3 {
		t.Fatalf("expected 3 pieces, got %d", got)
	}
	if want := ". . .\nX X X\n. . ."; state.Render() != want {
		t.Fatalf("expected board\n%s\ngot\n%s", want, state.Render())
	}

	state, _ = runExpectingKind(t, setupOnly(ast.PlaceN(ast.Int(3), "X", ast.Int(1), ast.At(2, 1))), KindOutOfBounds)
	if state.Board.Occupied() != 0 {
		t.Fatalf("expected failed place to leave the board empty, got\n%s", state.Render())
	}
	runExpectingKind(t, setupOnly(ast.PlaceN(ast.Int(0), "X", ast.Int(1), ast.At(1, 1))), KindType)
	runExpectingKind(t, setupOnly(ast.Place("O", ast.Int(1), ast.At(1, 1))), KindUnknownPiece)
}

func TestMoveStatement(t *testing.T) {
	state, err := Run(setupOnly(
		ast.Place("X", ast.Int(1), ast.At(1, 1)),
		ast.Place("O", ast.Int(2), ast.At(3, 3)),
		ast.Move(ast.At(1, 1), ast.At(1, 1)),
		ast.Move(ast.At(1, 1), ast.At(3, 3)),
	), Options{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if state.Board.Count(2, "O") != 0 || state.Board.Count(1, "X") != 1 {
		t.Fatalf("expected X to capture O, got\n%s", state.Render())
	}
	runExpectingKind(t, setupOnly(ast.Move(ast.At(2, 2), ast.At(1, 1))), KindEmptyCell)
	runExpectingKind(t, setupOnly(ast.Move(ast.At(1, 1), ast.At(9, 9))), KindOutOfBounds)
}

func TestForPiecesSkipsCapturedPieces(t *testing.T) {
	var out bytes.Buffer
	prog := setupOnly(
		ast.PlaceN(ast.Int(3), "X", ast.Int(1), ast.At(1, 1)),
		ast.ForPieces("p", ast.Int(1), ast.Blk(
			ast.Print(ast.Call("name_of", ast.ID("p"))),
			ast.If(ast.Call("is_empty", ast.At(1, 2)), ast.Blk(
				ast.Remove(ast.At(2, 1)),
				ast.Place("X", ast.Int(1), ast.At(1, 2)),
			), nil),
		)),
	)
	if _, err := Run(prog, Options{Output: &out}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "X\nX\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestForCellsVisitsTopRowFirst(t *testing.T) {
	var out bytes.Buffer
	prog := ast.Program(
		ast.Game("Cells"),
		ast.Players(1),
		ast.Board(2, 2),
		ast.Piece(1, 1, "X", "x"),
		ast.Setup(
			ast.Place("X", ast.Int(1), ast.At(1, 2)),
			ast.NewForCellStatement("x", "y", "cell", ast.Blk(ast.Print(ast.CellOf(ast.ID("x"), ast.ID("y")), ast.ID("cell")))),
		),
		ast.Turn(ast.Quit()),
	)
	if _, err := Run(prog, Options{Output: &out}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "(1,2) X(1)\n(2,2) nil\n(1,1) nil\n(2,1) nil\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestForCellsBindsCellByDefault(t *testing.T) {
	var out bytes.Buffer
	prog := ast.Program(
		ast.Game("Cells"),
		ast.Players(1),
		ast.Board(2, 1),
		ast.Piece(1, 1, "X", "x"),
		ast.Setup(
			ast.Place("X", ast.Int(1), ast.At(2, 1)),
			ast.ForCells("x", "y", ast.Blk(ast.Print(ast.ID("x"), ast.ID("cell")))),
		),
		ast.Turn(ast.Quit()),
	)
	if _, err := Run(prog, Options{Output: &out}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "1 nil
2 X(1)
"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestRandomIsSeeded(t *testing.T) {
	prog := game(nil,
		ast.Print(ast.Call("random", ast.Int(6)), ast.Call("random", ast.Int(6)), ast.Call("random", ast.Int(6))),
		ast.Quit(),
	)
	var first, second bytes.Buffer
	if _, err := Run(prog, Options{Output: &first, Seed: 42}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := Run(prog, Options{Output: &second, Seed: 42}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("expected identical draws, got %q and %q", first.String(), second.String())
	}
	runExpectingKind(t, game(nil, ast.Print(ast.Call("random", ast.Int(0)))), KindType)
}

func TestChooseCellWithoutInput(t *testing.T) {
	_, err := Run(game(nil, ast.Def("c", ast.Call("choose_cell"))), Options{})
	if KindOf(err) != KindInput || KindOf(err).ProgramError() {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestScriptedInputExhausted(t *testing.T) {
	input := NewScriptedInput(Move{1, 1})
	_, err := Run(game(nil,
		ast.Place("X", ast.Int(1), ast.Call("choose_cell")),
	), Options{Input: input})
	if !errors.Is(err, ErrInput) {
		t.Fatalf("expected ErrInput once the script runs out, got %v", err)
	}
	if input.Remaining() != 0 {
		t.Fatalf("expected the script to be consumed")
	}
}

func TestQueryBuiltins(t *testing.T) {
	var out bytes.Buffer
	prog := setupOnly(
		ast.Place("X", ast.Int(1), ast.At(2, 1)),
		ast.Def("p", ast.Call("occupant", ast.At(2, 1))),
		ast.Print(
			ast.Call("players"), ast.Call("width"), ast.Call("height"),
			ast.Call("owner_of", ast.ID("p")), ast.Call("display_of", ast.ID("p")),
			ast.Call("template", ast.Int(2), ast.Str("O")),
			ast.Call("in_bounds", ast.At(4, 1)),
			ast.Call("cell_x", ast.Call("cell", ast.Int(3), ast.Int(2))),
			ast.Call("cell_y", ast.Call("cell", ast.Int(3), ast.Int(2))),
			ast.Call("count", ast.Int(1), ast.Str("X")),
		),
	)
	if _, err := Run(prog, Options{Output: &out}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "2 3 3 1 X O false 3 2 1\n"; out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
	runExpectingKind(t, setupOnly(ast.Def("n", ast.Call("owner_of", ast.Int(1)))), KindType)
	runExpectingKind(t, setupOnly(ast.Def("n", ast.Call("count", ast.Int(7), ast.Str("X")))), KindType)
}

func TestRunTwiceWithSameProgram(t *testing.T) {
	prog := game(nil, ast.Place("X", ast.Int(1), ast.At(1, 1)), ast.Win(ast.Int(1)))
	interp := New(Options{})
	for n := 0; n < 2; n++ {
		state, err := interp.Run(prog)
		if err != nil {
			t.Fatalf("run %d failed: %v", n, err)
		}
		if state.Board.Occupied() != 1 {
			t.Fatalf("run %d: expected a fresh board, got\n%s", n, state.Render())
		}
	}
}

func TestStatusStrings(t *testing.T) {
	if got := (Status{Kind: StatusWon, Winner: 2}).String(); got != "won(2)" {
		t.Fatalf("unexpected %q", got)
	}
	if got := (Status{Kind: StatusDrawn}).String(); got != "drawn" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestGlobalsLoggedAtDebugLevel(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	prog := setupOnly(ast.Def("score", ast.Int(3)), ast.Def("name", ast.Str("ann")))
	if _, err := Run(prog, Options{Logger: logger}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, entry := range hook.AllEntries() {
		if entry.Message == "global bindings" {
			if got := entry.Data["globals"]; got != "name=ann score=3" {
				t.Fatalf("expected sorted globals, got %v", got)
			}
			return
		}
	}
	t.Fatalf("expected a global bindings entry, got %d entries", len(hook.AllEntries()))
}

func TestGlobalsNotCollectedAboveDebugLevel(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	if _, err := Run(setupOnly(ast.Def("score", ast.Int(3))), Options{Logger: logger}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, entry := range hook.AllEntries() {
		if entry.Message == "global bindings" {
			t.Fatalf("unexpected debug entry at info level")
		}
	}
}
