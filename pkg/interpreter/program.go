package interpreter

import (
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
)

// program is the validated set of top-level sections of a root block.
type program struct {
	root    *ast.Block
	game    *ast.GameStatement
	players *ast.PlayersStatement
	board   *ast.BoardStatement
	pieces  []*ast.PieceStatement
	setup   *ast.SetupBlock
	turn    *ast.TurnBlock
	end     *ast.EndBlock
	rules   map[string]*ast.RuleDefinition
}

// Check validates the top-level structure of root without running it.
func Check(root *ast.Block) error {
	_, err := collectProgram(root)
	return err
}

// collectProgram sorts the top-level statements into sections. Every
// mandatory section must appear exactly once and end at most once; any
// violation is a ProgramStructureError raised before execution starts.
func collectProgram(root *ast.Block) (*program, error) {
	if root == nil {
		return nil, structureError(nil, "program is empty")
	}
	prog := &program{root: root, rules: make(map[string]*ast.RuleDefinition)}
	for _, stmt := range root.Body {
		switch n := stmt.(type) {
		case *ast.GameStatement:
			if prog.game != nil {
				return nil, structureError(n, "duplicate game declaration (first at %s)", prog.game.Span())
			}
			prog.game = n
		case *ast.PlayersStatement:
			if prog.players != nil {
				return nil, structureError(n, "duplicate players declaration (first at %s)", prog.players.Span())
			}
			if n.Count < 1 {
				return nil, structureError(n, "players count must be at least 1, got %d", n.Count)
			}
			prog.players = n
		case *ast.BoardStatement:
			if prog.board != nil {
				return nil, structureError(n, "duplicate board declaration (first at %s)", prog.board.Span())
			}
			if n.Width < 1 || n.Height < 1 {
				return nil, structureError(n, "board must be at least 1x1, got %dx%d", n.Width, n.Height)
			}
			if !n.Origin.Valid() {
				return nil, structureError(n, "origin must be one of BL, TL, BR, TR, got %q", n.Origin)
			}
			prog.board = n
		case *ast.PieceStatement:
			prog.pieces = append(prog.pieces, n)
		case *ast.SetupBlock:
			if prog.setup != nil {
				return nil, structureError(n, "duplicate setup block (first at %s)", prog.setup.Span())
			}
			prog.setup = n
		case *ast.TurnBlock:
			if prog.turn != nil {
				return nil, structureError(n, "duplicate turn block (first at %s)", prog.turn.Span())
			}
			prog.turn = n
		case *ast.EndBlock:
			if prog.end != nil {
				return nil, structureError(n, "duplicate end block (first at %s)", prog.end.Span())
			}
			prog.end = n
		case *ast.RuleDefinition:
			if err := checkRule(n); err != nil {
				return nil, err
			}
			if prev, ok := prog.rules[n.Name]; ok {
				return nil, structureError(n, "rule %q already defined at %s", n.Name, prev.Span())
			}
			prog.rules[n.Name] = n
		case nil:
			return nil, structureError(root, "nil top-level statement")
		default:
			return nil, structureError(n, "%s is not allowed at the top level", n.NodeType())
		}
	}

	switch {
	case prog.game == nil:
		return nil, structureError(root, "missing game declaration")
	case prog.players == nil:
		return nil, structureError(root, "missing players declaration")
	case prog.board == nil:
		return nil, structureError(root, "missing board declaration")
	case len(prog.pieces) == 0:
		return nil, structureError(root, "missing pieces section")
	case prog.setup == nil:
		return nil, structureError(root, "missing setup block")
	case prog.turn == nil:
		return nil, structureError(root, "missing turn block")
	}
	for _, piece := range prog.pieces {
		if piece.Owner < 1 || piece.Owner > prog.players.Count {
			return nil, structureError(piece, "piece %q belongs to player %d, but the game has %d players", piece.Name, piece.Owner, prog.players.Count)
		}
	}
	return prog, nil
}

func checkRule(rule *ast.RuleDefinition) error {
	if rule.Name == "" {
		return structureError(rule, "rule without a name")
	}
	seen := make(map[string]bool, len(rule.Params))
	for _, param := range rule.Params {
		if param == nil || param.Name == "" {
			return structureError(rule, "rule %q has an unnamed parameter", rule.Name)
		}
		if seen[param.Name] {
			return structureError(param, "rule %q declares parameter %q twice", rule.Name, param.Name)
		}
		seen[param.Name] = true
	}
	return nil
}
