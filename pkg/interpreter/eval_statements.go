package interpreter

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/board"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/runtime"
)

// evaluateBlock runs the statements of block in env, in order. The caller
// owns env; blocks that need a scope of their own go through withFrame.
func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Body {
		if err := i.evaluateStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// evaluateScopedBlock runs block in a new frame nested in env.
func (i *Interpreter) evaluateScopedBlock(block *ast.Block, env *runtime.Environment) error {
	return i.withFrame(env, func(frame *runtime.Environment) error {
		return i.evaluateBlock(block, frame)
	})
}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) error {
	return annotate(node, i.evaluateStatementNode(node, env))
}

func (i *Interpreter) evaluateStatementNode(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.AssignStatement:
		return i.evaluateAssignStatement(n, env)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileStatement:
		return i.evaluateWhileStatement(n, env)
	case *ast.ForCellStatement:
		return i.evaluateForCellStatement(n, env)
	case *ast.ForPieceStatement:
		return i.evaluateForPieceStatement(n, env)
	case *ast.PlaceStatement:
		return i.evaluatePlaceStatement(n, env)
	case *ast.RemoveStatement:
		return i.evaluateRemoveStatement(n, env)
	case *ast.MoveStatement:
		return i.evaluateMoveStatement(n, env)
	case *ast.WinStatement:
		player, err := i.evaluatePlayer(n.Player, env)
		if err != nil {
			return err
		}
		return i.end(n, Status{Kind: StatusWon, Winner: player})
	case *ast.DrawStatement:
		return i.end(n, Status{Kind: StatusDrawn})
	case *ast.QuitStatement:
		return i.end(n, Status{Kind: StatusAborted})
	case *ast.CallStatement:
		return i.evaluateCallStatement(n, env)
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n, env)
	case *ast.GameStatement, *ast.PlayersStatement, *ast.BoardStatement, *ast.PieceStatement,
		*ast.SetupBlock, *ast.TurnBlock, *ast.EndBlock, *ast.RuleDefinition:
		return structureError(n, "%s is only allowed at the top level", n.NodeType())
	case nil:
		return fmt.Errorf("missing statement")
	default:
		return fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateAssignStatement(stmt *ast.AssignStatement, env *runtime.Environment) error {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return err
	}
	if stmt.Declare {
		return env.Define(stmt.Name, val)
	}
	return env.Assign(stmt.Name, val)
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) error {
	cond, err := i.evaluateCondition(stmt.Condition, env, "if condition")
	if err != nil {
		return err
	}
	if cond {
		return i.evaluateScopedBlock(stmt.Then, env)
	}
	if stmt.Else != nil {
		return i.evaluateScopedBlock(stmt.Else, env)
	}
	return nil
}

func (i *Interpreter) evaluateWhileStatement(stmt *ast.WhileStatement, env *runtime.Environment) error {
	for {
		cond, err := i.evaluateCondition(stmt.Condition, env, "while condition")
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := i.evaluateScopedBlock(stmt.Body, env); err != nil {
			return err
		}
	}
}

// defaultCellBinding names the occupant of each visited cell when the loop
// does not name it.
const defaultCellBinding = "cell"

func (i *Interpreter) evaluateForCellStatement(stmt *ast.ForCellStatement, env *runtime.Environment) error {
	occupantName := stmt.Cell
	if occupantName == "" {
		occupantName = defaultCellBinding
	}
	for cell, id := range i.state.Board.All() {
		err := i.withFrame(env, func(frame *runtime.Environment) error {
			if err := frame.Define(stmt.X, runtime.IntegerValue{Val: int64(cell.X)}); err != nil {
				return err
			}
			if err := frame.Define(stmt.Y, runtime.IntegerValue{Val: int64(cell.Y)}); err != nil {
				return err
			}
			var occupant runtime.Value = runtime.NilValue{}
			if id != board.NoPiece {
				occupant = runtime.PieceValue{ID: id}
			}
			if err := frame.Define(occupantName, occupant); err != nil {
				return err
			}
			return i.evaluateBlock(stmt.Body, frame)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// evaluateForPieceStatement walks a snapshot of the roster taken when the
// loop starts; pieces captured by the body are skipped.
func (i *Interpreter) evaluateForPieceStatement(stmt *ast.ForPieceStatement, env *runtime.Environment) error {
	player, err := i.evaluatePlayer(stmt.Player, env)
	if err != nil {
		return err
	}
	for _, id := range i.state.Board.Roster(player) {
		piece, ok := i.state.Board.Piece(id)
		if !ok {
			continue
		}
		if _, placed := piece.Placed(); !placed {
			continue
		}
		err := i.withFrame(env, func(frame *runtime.Environment) error {
			if err := frame.Define(stmt.Var, runtime.PieceValue{ID: id}); err != nil {
				return err
			}
			return i.evaluateBlock(stmt.Body, frame)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// evaluatePlaceStatement places count new pieces on consecutive cells of a
// row starting at the target. Every target is checked before the first
// piece lands so a failing place changes nothing.
func (i *Interpreter) evaluatePlaceStatement(stmt *ast.PlaceStatement, env *runtime.Environment) error {
	count := 1
	if stmt.Count != nil {
		val, err := i.evaluateExpression(stmt.Count, env)
		if err != nil {
			return err
		}
		if count, err = requireInt(val, "place count"); err != nil {
			return err
		}
		if count < 1 {
			return typeErrorf("place count must be at least 1, got %d", count)
		}
	}
	player, err := i.evaluatePlayer(stmt.Player, env)
	if err != nil {
		return err
	}
	at, err := i.evaluateCell(stmt.At, env, "place target")
	if err != nil {
		return err
	}
	tmpl, err := i.state.Catalogue.Template(player, stmt.Piece)
	if err != nil {
		return err
	}
	grid := i.state.Board
	for k := 0; k < count; k++ {
		if err := grid.CanPlace(at.X+k, at.Y); err != nil {
			return err
		}
	}
	for k := 0; k < count; k++ {
		id, err := grid.NewPiece(tmpl)
		if err != nil {
			return err
		}
		captured, err := grid.Place(id, at.X+k, at.Y)
		if err != nil {
			return err
		}
		i.logCapture(captured, board.Cell{X: at.X + k, Y: at.Y})
	}
	i.log.WithFields(logrus.Fields{"piece": tmpl.Name, "player": player, "at": at.String(), "count": count}).Debug("placed")
	return nil
}

func (i *Interpreter) evaluateRemoveStatement(stmt *ast.RemoveStatement, env *runtime.Environment) error {
	at, err := i.evaluateCell(stmt.At, env, "remove target")
	if err != nil {
		return err
	}
	removed, err := i.state.Board.Capture(at.X, at.Y)
	if err != nil {
		return err
	}
	i.logCapture(removed, at)
	return nil
}

func (i *Interpreter) evaluateMoveStatement(stmt *ast.MoveStatement, env *runtime.Environment) error {
	from, err := i.evaluateCell(stmt.From, env, "move source")
	if err != nil {
		return err
	}
	to, err := i.evaluateCell(stmt.To, env, "move destination")
	if err != nil {
		return err
	}
	captured, err := i.state.Board.Move(from, to)
	if err != nil {
		return err
	}
	i.logCapture(captured, to)
	return nil
}

// evaluateCallStatement runs a rule in a frame whose parent is the global
// frame, so rules see globals and their parameters but never the caller's
// locals.
func (i *Interpreter) evaluateCallStatement(stmt *ast.CallStatement, env *runtime.Environment) error {
	rule, ok := i.rules[stmt.Rule]
	if !ok {
		return fmt.Errorf("%w: rule '%s'", runtime.ErrUnbound, stmt.Rule)
	}
	if len(stmt.Args) != len(rule.Params) {
		return typeErrorf("rule %s expects %d arguments, got %d", rule.Name, len(rule.Params), len(stmt.Args))
	}
	args := make([]runtime.Value, len(stmt.Args))
	for idx, arg := range stmt.Args {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return err
		}
		args[idx] = val
	}
	return i.withFrame(i.stack.Global(), func(frame *runtime.Environment) error {
		for idx, param := range rule.Params {
			if err := frame.Define(param.Name, args[idx]); err != nil {
				return err
			}
		}
		return i.evaluateBlock(rule.Body, frame)
	})
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement, env *runtime.Environment) error {
	parts := make([]string, 0, len(stmt.Values))
	for _, expr := range stmt.Values {
		val, err := i.evaluateExpression(expr, env)
		if err != nil {
			return err
		}
		parts = append(parts, i.valueToString(val))
	}
	if _, err := fmt.Fprintln(i.out, strings.Join(parts, " ")); err != nil {
		return fmt.Errorf("%w: %v", ErrInput, err)
	}
	return nil
}

func (i *Interpreter) logCapture(id board.PieceID, at board.Cell) {
	if id == board.NoPiece {
		return
	}
	if piece, ok := i.state.Board.Piece(id); ok {
		i.log.WithFields(logrus.Fields{"piece": piece.Name, "owner": piece.Owner, "at": at.String()}).Debug("captured")
	}
}
