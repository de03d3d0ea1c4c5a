package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/interpreter"
)

func TestLoadProgramPlaysTicTacToe(t *testing.T) {
	root, err := LoadProgram(filepath.Join("testdata", "tictactoe.yml"))
	require.NoError(t, err)

	input := interpreter.NewScriptedInput(
		interpreter.Move{X: 1, Y: 1}, interpreter.Move{X: 1, Y: 2},
		interpreter.Move{X: 2, Y: 2}, interpreter.Move{X: 2, Y: 1},
		interpreter.Move{X: 3, Y: 3},
	)
	state, err := interpreter.Run(root, interpreter.Options{Input: input})
	require.NoError(t, err)
	require.Equal(t, interpreter.Status{Kind: interpreter.StatusWon, Winner: 1}, state.Status)
	require.Equal(t, 5, state.Turn)
}

func TestDecodeJSONDocument(t *testing.T) {
	doc := `[
  {"type": "GameStatement", "name": "Tiny"},
  {"type": "PlayersStatement", "count": 1},
  {"type": "BoardStatement", "width": 2, "height": 1, "capture": true},
  {"type": "PieceStatement", "owner": 1, "num": 1, "name": "P", "display": "p"},
  {"type": "SetupBlock", "body": [
    {"type": "PlaceStatement", "count": 2, "piece": "P", "player": 1, "at": {"type": "CellLiteral", "x": 1, "y": 1}}
  ]},
  {"type": "TurnBlock", "body": [{"type": "QuitStatement"}]}
]`
	root, err := DecodeProgram([]byte(doc))
	require.NoError(t, err)
	require.Len(t, root.Body, 6)

	board, ok := root.Body[2].(*ast.BoardStatement)
	require.True(t, ok)
	require.True(t, board.Capture)
	require.Equal(t, 3, board.Span().Start.Line)

	state, err := interpreter.Run(root, interpreter.Options{})
	require.NoError(t, err)
	require.Equal(t, "p p", state.Render())
}

func TestDecodeOperatorAliases(t *testing.T) {
	for alias, want := range map[string]string{"≠": ast.OpNe, "≤": ast.OpLe, "≥": ast.OpGe, "==": ast.OpEq, "%": ast.OpMod} {
		doc := `{type: BinaryExpression, operator: "` + alias + `", left: 1, right: 2}`
		expr, err := decodeExpression(mustYAMLNode(t, doc))
		require.NoError(t, err)
		require.Equal(t, want, expr.(*ast.BinaryExpression).Operator)
	}
}

func TestDecodeExplicitSpan(t *testing.T) {
	node := mustYAMLNode(t, `{type: Identifier, name: x, span: {start: {line: 7, column: 3}, end: {line: 7, column: 4}}}`)
	expr, err := decodeExpression(node)
	require.NoError(t, err)
	require.Equal(t, ast.Position{Line: 7, Column: 3}, expr.Span().Start)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"empty":            ``,
		"unknown type":     `[{type: Teleport}]`,
		"missing field":    `[{type: GameStatement}]`,
		"wrong scalar":     `[{type: PlayersStatement, count: two}]`,
		"unknown field":    `[{type: DrawStatement, loudly: true}]`,
		"bad operator":     `[{type: WinStatement, player: {type: BinaryExpression, operator: "^", left: 1, right: 2}}]`,
		"string shorthand": `[{type: WinStatement, player: one}]`,
		"not a node":       `[42]`,
	}
	for name, doc := range cases {
		_, err := DecodeProgram([]byte(doc))
		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr), "%s: expected DecodeError, got %v", name, err)
	}
}

func TestLoadProgramReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("[{type: GameStatement}]\n"), 0o644))
	_, err := LoadProgram(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path+":1:2")
}

func mustYAMLNode(t *testing.T, doc string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc), &n))
	return n.Content[0]
}
