package interpreter

import (
	"fmt"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/board"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/runtime"
)

type builtinFunc func(i *Interpreter, args []runtime.Value) (runtime.Value, error)

type builtin struct {
	arity int
	fn    builtinFunc
}

// builtins are the queries a program can call. None of them change the board.
var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"owner_of":       {1, builtinOwnerOf},
		"count":          {2, builtinCount},
		"current_player": {0, func(i *Interpreter, _ []runtime.Value) (runtime.Value, error) { return intValue(i.state.CurrentPlayer), nil }},
		"turn":           {0, func(i *Interpreter, _ []runtime.Value) (runtime.Value, error) { return intValue(i.state.Turn), nil }},
		"players":        {0, func(i *Interpreter, _ []runtime.Value) (runtime.Value, error) { return intValue(i.state.Players), nil }},
		"width":          {0, func(i *Interpreter, _ []runtime.Value) (runtime.Value, error) { return intValue(i.state.Board.Width()), nil }},
		"height":         {0, func(i *Interpreter, _ []runtime.Value) (runtime.Value, error) { return intValue(i.state.Board.Height()), nil }},
		"name_of":        {1, builtinNameOf},
		"display_of":     {1, builtinDisplayOf},
		"template":       {2, builtinTemplate},
		"is_empty":       {1, builtinIsEmpty},
		"in_bounds":      {1, builtinInBounds},
		"cell_x":         {1, builtinCellX},
		"cell_y":         {1, builtinCellY},
		"cell":           {2, builtinCell},
		"occupant":       {1, builtinOccupant},
		"choose_cell":    {0, builtinChooseCell},
		"random":         {1, builtinRandom},
	}
}

func (i *Interpreter) callBuiltin(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	b, ok := builtins[call.Callee]
	if !ok {
		return nil, fmt.Errorf("%w: function '%s'", runtime.ErrUnbound, call.Callee)
	}
	if len(call.Args) != b.arity {
		return nil, typeErrorf("%s expects %d arguments, got %d", call.Callee, b.arity, len(call.Args))
	}
	args := make([]runtime.Value, len(call.Args))
	for idx, arg := range call.Args {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args[idx] = val
	}
	return b.fn(i, args)
}

func intValue(n int) runtime.Value {
	return runtime.IntegerValue{Val: int64(n)}
}

func (i *Interpreter) pieceArg(v runtime.Value, fn string) (board.GamePiece, error) {
	pv, ok := v.(runtime.PieceValue)
	if !ok {
		return board.GamePiece{}, typeErrorf("%s expects a piece, got %s", fn, kindName(v))
	}
	piece, ok := i.state.Board.Piece(pv.ID)
	if !ok {
		return board.GamePiece{}, fmt.Errorf("%w: no piece with id %d", board.ErrUnknownPiece, pv.ID)
	}
	return piece, nil
}

func cellArg(v runtime.Value, fn string) (runtime.CellValue, error) {
	cv, ok := v.(runtime.CellValue)
	if !ok {
		return runtime.CellValue{}, typeErrorf("%s expects a cell, got %s", fn, kindName(v))
	}
	return cv, nil
}

func (i *Interpreter) playerArg(v runtime.Value) (int, error) {
	player, err := requireInt(v, "player")
	if err != nil {
		return 0, err
	}
	if player < 1 || player > i.state.Players {
		return 0, fmt.Errorf("%w: %d (players are 1..%d)", board.ErrInvalidPlayer, player, i.state.Players)
	}
	return player, nil
}

func builtinOwnerOf(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if tv, ok := args[0].(runtime.TemplateValue); ok {
		return intValue(tv.Template.Owner), nil
	}
	piece, err := i.pieceArg(args[0], "owner_of")
	if err != nil {
		return nil, err
	}
	return intValue(piece.Owner), nil
}

func builtinCount(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	player, err := i.playerArg(args[0])
	if err != nil {
		return nil, err
	}
	name, ok := args[1].(runtime.StringValue)
	if !ok {
		return nil, typeErrorf("count expects a piece name, got %s", kindName(args[1]))
	}
	return intValue(i.state.Board.Count(player, name.Val)), nil
}

func builtinNameOf(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if tv, ok := args[0].(runtime.TemplateValue); ok {
		return runtime.StringValue{Val: tv.Template.Name}, nil
	}
	piece, err := i.pieceArg(args[0], "name_of")
	if err != nil {
		return nil, err
	}
	return runtime.StringValue{Val: piece.Name}, nil
}

func builtinDisplayOf(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if tv, ok := args[0].(runtime.TemplateValue); ok {
		return runtime.StringValue{Val: tv.Template.Display}, nil
	}
	piece, err := i.pieceArg(args[0], "display_of")
	if err != nil {
		return nil, err
	}
	return runtime.StringValue{Val: piece.Display}, nil
}

func builtinTemplate(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	player, err := requireInt(args[0], "player")
	if err != nil {
		return nil, err
	}
	name, ok := args[1].(runtime.StringValue)
	if !ok {
		return nil, typeErrorf("template expects a piece name, got %s", kindName(args[1]))
	}
	tmpl, err := i.state.Catalogue.Template(player, name.Val)
	if err != nil {
		return nil, err
	}
	return runtime.TemplateValue{Template: tmpl}, nil
}

func builtinIsEmpty(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	cv, err := cellArg(args[0], "is_empty")
	if err != nil {
		return nil, err
	}
	id, err := i.state.Board.Get(cv.X, cv.Y)
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: id == board.NoPiece}, nil
}

func builtinInBounds(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	cv, err := cellArg(args[0], "in_bounds")
	if err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: i.state.Board.InBounds(cv.X, cv.Y)}, nil
}

func builtinCellX(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	cv, err := cellArg(args[0], "cell_x")
	if err != nil {
		return nil, err
	}
	return intValue(cv.X), nil
}

func builtinCellY(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	cv, err := cellArg(args[0], "cell_y")
	if err != nil {
		return nil, err
	}
	return intValue(cv.Y), nil
}

func builtinCell(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	x, err := requireInt(args[0], "x coordinate")
	if err != nil {
		return nil, err
	}
	y, err := requireInt(args[1], "y coordinate")
	if err != nil {
		return nil, err
	}
	return runtime.CellValue{X: x, Y: y}, nil
}

func builtinOccupant(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	cv, err := cellArg(args[0], "occupant")
	if err != nil {
		return nil, err
	}
	return i.occupantAt(cv.X, cv.Y)
}

func builtinChooseCell(i *Interpreter, _ []runtime.Value) (runtime.Value, error) {
	if i.input == nil {
		return nil, fmt.Errorf("%w: choose_cell called but no input is attached", ErrInput)
	}
	x, y, err := i.input.ChooseCell(i.state.CurrentPlayer, i.state.Turn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	return runtime.CellValue{X: x, Y: y}, nil
}

// builtinRandom returns a number in 1..n from the interpreter's seeded source.
func builtinRandom(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	iv, ok := args[0].(runtime.IntegerValue)
	if !ok {
		return nil, typeErrorf("random expects an integer, got %s", kindName(args[0]))
	}
	if iv.Val < 1 {
		return nil, typeErrorf("random bound must be at least 1, got %d", iv.Val)
	}
	return runtime.IntegerValue{Val: i.rng.Int64N(iv.Val) + 1}, nil
}
