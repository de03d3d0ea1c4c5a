package interpreter

import (
	"fmt"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/board"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/runtime"
)

// evaluateExpression evaluates node in env. Errors carry the span of the
// innermost node that raised them.
func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpressionNode(node, env)
	if err != nil {
		return nil, annotate(node, err)
	}
	return val, nil
}

func (i *Interpreter) evaluateExpressionNode(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.Identifier:
		return env.Get(n.Name)
	case *ast.CellLiteral:
		x, y, err := i.evaluateCoordinates(n.X, n.Y, env)
		if err != nil {
			return nil, err
		}
		return runtime.CellValue{X: x, Y: y}, nil
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.IndexExpression:
		x, y, err := i.evaluateCoordinates(n.X, n.Y, env)
		if err != nil {
			return nil, err
		}
		return i.occupantAt(x, y)
	case *ast.FunctionCall:
		return i.callBuiltin(n, env)
	case nil:
		return nil, fmt.Errorf("missing expression")
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.OpAnd, ast.OpOr:
		lb, err := requireBool(left, expr.Operator)
		if err != nil {
			return nil, err
		}
		if (expr.Operator == ast.OpAnd && !lb) || (expr.Operator == ast.OpOr && lb) {
			return runtime.BoolValue{Val: lb}, nil
		}
		right, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		rb, err := requireBool(right, expr.Operator)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: rb}, nil
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(expr.Operator, left, right)
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.OpNot:
		b, err := requireBool(operand, "not")
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: !b}, nil
	case ast.OpNeg:
		return negate(operand)
	default:
		return nil, typeErrorf("unsupported unary operator %q", expr.Operator)
	}
}

// evaluateCondition evaluates a branch or loop condition, which must be a bool.
func (i *Interpreter) evaluateCondition(node ast.Expression, env *runtime.Environment, context string) (bool, error) {
	val, err := i.evaluateExpression(node, env)
	if err != nil {
		return false, err
	}
	b, err := requireBool(val, context)
	if err != nil {
		return false, annotate(node, err)
	}
	return b, nil
}

func (i *Interpreter) evaluateCoordinates(xExpr, yExpr ast.Expression, env *runtime.Environment) (int, int, error) {
	xv, err := i.evaluateExpression(xExpr, env)
	if err != nil {
		return 0, 0, err
	}
	yv, err := i.evaluateExpression(yExpr, env)
	if err != nil {
		return 0, 0, err
	}
	x, err := requireInt(xv, "x coordinate")
	if err != nil {
		return 0, 0, err
	}
	y, err := requireInt(yv, "y coordinate")
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// evaluateCell evaluates an expression that must produce a cell.
func (i *Interpreter) evaluateCell(node ast.Expression, env *runtime.Environment, context string) (board.Cell, error) {
	val, err := i.evaluateExpression(node, env)
	if err != nil {
		return board.Cell{}, err
	}
	cell, ok := val.(runtime.CellValue)
	if !ok {
		return board.Cell{}, annotate(node, typeErrorf("%s must be a cell, got %s", context, kindName(val)))
	}
	return cell.Cell(), nil
}

// evaluatePlayer evaluates an expression that must produce a player index.
func (i *Interpreter) evaluatePlayer(node ast.Expression, env *runtime.Environment) (int, error) {
	val, err := i.evaluateExpression(node, env)
	if err != nil {
		return 0, err
	}
	player, err := requireInt(val, "player")
	if err != nil {
		return 0, annotate(node, err)
	}
	if player < 1 || player > i.state.Players {
		return 0, annotate(node, fmt.Errorf("%w: %d (players are 1..%d)", board.ErrInvalidPlayer, player, i.state.Players))
	}
	return player, nil
}

func (i *Interpreter) occupantAt(x, y int) (runtime.Value, error) {
	id, err := i.state.Board.Get(x, y)
	if err != nil {
		return nil, err
	}
	if id == board.NoPiece {
		return runtime.NilValue{}, nil
	}
	return runtime.PieceValue{ID: id}, nil
}

func requireBool(v runtime.Value, context string) (bool, error) {
	b, ok := v.(runtime.BoolValue)
	if !ok {
		return false, typeErrorf("%s requires a bool, got %s", context, kindName(v))
	}
	return b.Val, nil
}

func requireInt(v runtime.Value, context string) (int, error) {
	iv, ok := v.(runtime.IntegerValue)
	if !ok {
		return 0, typeErrorf("%s must be an integer, got %s", context, kindName(v))
	}
	return int(iv.Val), nil
}
