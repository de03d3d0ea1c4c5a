package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
)

// DecodeError reports a malformed AST document.
type DecodeError struct {
	Path string
	Pos  ast.Position
	Msg  string
}

func (e *DecodeError) Error() string {
	loc := e.Path
	if e.Pos.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += fmt.Sprintf("%d:%d", e.Pos.Line, e.Pos.Column)
	}
	if loc == "" {
		return "decode: " + e.Msg
	}
	return fmt.Sprintf("decode %s: %s", loc, e.Msg)
}

var binaryOperators = map[string]string{
	"+": ast.OpAdd, "-": ast.OpSub, "*": ast.OpMul, "/": ast.OpDiv,
	"mod": ast.OpMod, "%": ast.OpMod,
	"=": ast.OpEq, "==": ast.OpEq,
	"!=": ast.OpNe, "≠": ast.OpNe,
	"<": ast.OpLt, "<=": ast.OpLe, "≤": ast.OpLe,
	">": ast.OpGt, ">=": ast.OpGe, "≥": ast.OpGe,
	"and": ast.OpAnd, "or": ast.OpOr,
}

var unaryOperators = map[string]string{
	"not": ast.OpNot, "-": ast.OpNeg,
}

// LoadProgram reads and decodes the AST document at path.
func LoadProgram(path string) (*ast.Block, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("program: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("program: read %s: %w", absPath, err)
	}
	root, err := DecodeProgram(data)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = absPath
		}
		return nil, err
	}
	return root, nil
}

// DecodeProgram decodes a JSON or YAML AST document. The root is either a
// Block node or a bare list of top-level statements.
func DecodeProgram(data []byte) (*ast.Block, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Msg: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &DecodeError{Msg: "empty document"}
	}
	return decodeBlock(doc.Content[0])
}

func errAt(n *yaml.Node, format string, args ...any) error {
	return &DecodeError{Pos: ast.Position{Line: n.Line, Column: n.Column}, Msg: fmt.Sprintf(format, args...)}
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// mapping reads the fields of one node and remembers which were consumed,
// so leftovers can be reported.
type mapping struct {
	node *yaml.Node
	typ  string
	keys map[string]*yaml.Node
	used map[string]bool
}

func newMapping(n *yaml.Node) (*mapping, error) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, errAt(orEmpty(n), "expected a node mapping")
	}
	m := &mapping{node: n, keys: make(map[string]*yaml.Node), used: map[string]bool{"type": true, "span": true}}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if _, dup := m.keys[key]; dup {
			return nil, errAt(n.Content[i], "duplicate field %q", key)
		}
		m.keys[key] = deref(n.Content[i+1])
	}
	typ, ok := m.keys["type"]
	if !ok || typ.Kind != yaml.ScalarNode || typ.Value == "" {
		return nil, errAt(n, "node without a type")
	}
	m.typ = typ.Value
	return m, nil
}

func orEmpty(n *yaml.Node) *yaml.Node {
	if n == nil {
		return &yaml.Node{}
	}
	return n
}

func (m *mapping) get(name string) *yaml.Node {
	m.used[name] = true
	n := m.keys[name]
	if n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil
	}
	return n
}

func (m *mapping) require(name string) (*yaml.Node, error) {
	n := m.get(name)
	if n == nil {
		return nil, errAt(m.node, "%s is missing %q", m.typ, name)
	}
	return n, nil
}

func (m *mapping) scalar(name, tag string, out any) error {
	n, err := m.require(name)
	if err != nil {
		return err
	}
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tag {
		return errAt(n, "%s.%s must be %s", m.typ, name, strings.TrimPrefix(tag, "!!"))
	}
	if err := n.Decode(out); err != nil {
		return errAt(n, "%s.%s: %v", m.typ, name, err)
	}
	return nil
}

func (m *mapping) str(name string) (string, error) {
	var s string
	err := m.scalar(name, "!!str", &s)
	return s, err
}

func (m *mapping) optionalStr(name string) (string, error) {
	if m.get(name) == nil {
		return "", nil
	}
	return m.str(name)
}

func (m *mapping) integer(name string) (int, error) {
	var v int
	err := m.scalar(name, "!!int", &v)
	return v, err
}

func (m *mapping) optionalBool(name string) (bool, error) {
	if m.get(name) == nil {
		return false, nil
	}
	var b bool
	err := m.scalar(name, "!!bool", &b)
	return b, err
}

// finish applies the span and rejects unknown fields.
func (m *mapping) finish(node ast.Node) (ast.Node, error) {
	var unknown []string
	for key := range m.keys {
		if !m.used[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errAt(m.node, "%s has unknown fields: %s", m.typ, strings.Join(unknown, ", "))
	}
	span := ast.Span{
		Start: ast.Position{Line: m.node.Line, Column: m.node.Column},
		End:   ast.Position{Line: m.node.Line, Column: m.node.Column},
	}
	if raw := m.keys["span"]; raw != nil {
		if err := raw.Decode(&span); err != nil {
			return nil, errAt(raw, "%s.span: %v", m.typ, err)
		}
	}
	ast.SetSpan(node, span)
	return node, nil
}

//-----------------------------------------------------------------------------
// Blocks and statements
//-----------------------------------------------------------------------------

func decodeBlock(n *yaml.Node) (*ast.Block, error) {
	n = deref(n)
	if n == nil {
		return ast.NewBlock(nil), nil
	}
	if n.Kind == yaml.SequenceNode {
		stmts, err := decodeStatements(n)
		if err != nil {
			return nil, err
		}
		block := ast.NewBlock(stmts)
		ast.SetSpan(block, ast.Span{Start: ast.Position{Line: n.Line, Column: n.Column}, End: ast.Position{Line: n.Line, Column: n.Column}})
		return block, nil
	}
	m, err := newMapping(n)
	if err != nil {
		return nil, err
	}
	if m.typ != string(ast.NodeBlock) {
		return nil, errAt(n, "expected Block, got %s", m.typ)
	}
	body, err := m.require("body")
	if err != nil {
		return nil, err
	}
	if body.Kind != yaml.SequenceNode {
		return nil, errAt(body, "Block.body must be a list")
	}
	stmts, err := decodeStatements(body)
	if err != nil {
		return nil, err
	}
	node, err := m.finish(ast.NewBlock(stmts))
	if err != nil {
		return nil, err
	}
	return node.(*ast.Block), nil
}

func decodeStatements(seq *yaml.Node) ([]ast.Statement, error) {
	stmts := make([]ast.Statement, 0, len(seq.Content))
	for _, item := range seq.Content {
		stmt, err := decodeStatement(item)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (m *mapping) block(name string) (*ast.Block, error) {
	n, err := m.require(name)
	if err != nil {
		return nil, err
	}
	return decodeBlock(n)
}

func (m *mapping) optionalBlock(name string) (*ast.Block, error) {
	n := m.get(name)
	if n == nil {
		return nil, nil
	}
	return decodeBlock(n)
}

func decodeStatement(n *yaml.Node) (ast.Statement, error) {
	m, err := newMapping(n)
	if err != nil {
		return nil, err
	}
	stmt, err := decodeStatementFields(m)
	if err != nil {
		return nil, err
	}
	node, err := m.finish(stmt)
	if err != nil {
		return nil, err
	}
	return node.(ast.Statement), nil
}

func decodeStatementFields(m *mapping) (ast.Statement, error) {
	switch ast.NodeType(m.typ) {
	case ast.NodeGameStatement:
		name, err := m.str("name")
		if err != nil {
			return nil, err
		}
		return ast.NewGameStatement(name), nil
	case ast.NodePlayersStatement:
		count, err := m.integer("count")
		if err != nil {
			return nil, err
		}
		return ast.NewPlayersStatement(count), nil
	case ast.NodeBoardStatement:
		width, err := m.integer("width")
		if err != nil {
			return nil, err
		}
		height, err := m.integer("height")
		if err != nil {
			return nil, err
		}
		origin, err := m.optionalStr("origin")
		if err != nil {
			return nil, err
		}
		capture, err := m.optionalBool("capture")
		if err != nil {
			return nil, err
		}
		return ast.NewBoardStatement(width, height, ast.Origin(strings.ToUpper(origin)), capture), nil
	case ast.NodePieceStatement:
		owner, err := m.integer("owner")
		if err != nil {
			return nil, err
		}
		num, err := m.integer("num")
		if err != nil {
			return nil, err
		}
		name, err := m.str("name")
		if err != nil {
			return nil, err
		}
		display, err := m.str("display")
		if err != nil {
			return nil, err
		}
		return ast.NewPieceStatement(owner, num, name, display), nil
	case ast.NodeSetupBlock:
		body, err := m.block("body")
		if err != nil {
			return nil, err
		}
		return ast.NewSetupBlock(body), nil
	case ast.NodeTurnBlock:
		body, err := m.block("body")
		if err != nil {
			return nil, err
		}
		return ast.NewTurnBlock(body), nil
	case ast.NodeEndBlock:
		body, err := m.block("body")
		if err != nil {
			return nil, err
		}
		return ast.NewEndBlock(body), nil
	case ast.NodeRuleDefinition:
		name, err := m.str("name")
		if err != nil {
			return nil, err
		}
		params, err := m.params("params")
		if err != nil {
			return nil, err
		}
		body, err := m.block("body")
		if err != nil {
			return nil, err
		}
		return ast.NewRuleDefinition(name, params, body), nil
	case ast.NodeAssignStatement:
		name, err := m.str("name")
		if err != nil {
			return nil, err
		}
		value, err := m.expr("value")
		if err != nil {
			return nil, err
		}
		declare, err := m.optionalBool("declare")
		if err != nil {
			return nil, err
		}
		return ast.NewAssignStatement(name, value, declare), nil
	case ast.NodeIfStatement:
		cond, err := m.expr("condition")
		if err != nil {
			return nil, err
		}
		then, err := m.block("then")
		if err != nil {
			return nil, err
		}
		elseBlock, err := m.optionalBlock("else")
		if err != nil {
			return nil, err
		}
		return ast.NewIfStatement(cond, then, elseBlock), nil
	case ast.NodeWhileStatement:
		cond, err := m.expr("condition")
		if err != nil {
			return nil, err
		}
		body, err := m.block("body")
		if err != nil {
			return nil, err
		}
		return ast.NewWhileStatement(cond, body), nil
	case ast.NodeForCellStatement:
		x, err := m.str("x")
		if err != nil {
			return nil, err
		}
		y, err := m.str("y")
		if err != nil {
			return nil, err
		}
		cell, err := m.optionalStr("cell")
		if err != nil {
			return nil, err
		}
		body, err := m.block("body")
		if err != nil {
			return nil, err
		}
		return ast.NewForCellStatement(x, y, cell, body), nil
	case ast.NodeForPieceStatement:
		name, err := m.str("var")
		if err != nil {
			return nil, err
		}
		player, err := m.expr("player")
		if err != nil {
			return nil, err
		}
		body, err := m.block("body")
		if err != nil {
			return nil, err
		}
		return ast.NewForPieceStatement(name, player, body), nil
	case ast.NodePlaceStatement:
		count, err := m.optionalExpr("count")
		if err != nil {
			return nil, err
		}
		piece, err := m.str("piece")
		if err != nil {
			return nil, err
		}
		player, err := m.expr("player")
		if err != nil {
			return nil, err
		}
		at, err := m.expr("at")
		if err != nil {
			return nil, err
		}
		return ast.NewPlaceStatement(count, piece, player, at), nil
	case ast.NodeRemoveStatement:
		at, err := m.expr("at")
		if err != nil {
			return nil, err
		}
		return ast.NewRemoveStatement(at), nil
	case ast.NodeMoveStatement:
		from, err := m.expr("from")
		if err != nil {
			return nil, err
		}
		to, err := m.expr("to")
		if err != nil {
			return nil, err
		}
		return ast.NewMoveStatement(from, to), nil
	case ast.NodeWinStatement:
		player, err := m.expr("player")
		if err != nil {
			return nil, err
		}
		return ast.NewWinStatement(player), nil
	case ast.NodeDrawStatement:
		return ast.NewDrawStatement(), nil
	case ast.NodeQuitStatement:
		return ast.NewQuitStatement(), nil
	case ast.NodeCallStatement:
		rule, err := m.str("rule")
		if err != nil {
			return nil, err
		}
		args, err := m.exprList("args")
		if err != nil {
			return nil, err
		}
		return ast.NewCallStatement(rule, args), nil
	case ast.NodePrintStatement:
		values, err := m.exprList("values")
		if err != nil {
			return nil, err
		}
		return ast.NewPrintStatement(values), nil
	default:
		return nil, errAt(m.node, "unknown statement type %q", m.typ)
	}
}

// params accepts identifiers either as plain names or as Identifier nodes.
func (m *mapping) params(name string) ([]*ast.Identifier, error) {
	n := m.get(name)
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errAt(n, "%s.%s must be a list", m.typ, name)
	}
	ids := make([]*ast.Identifier, 0, len(n.Content))
	for _, item := range n.Content {
		item = deref(item)
		if item.Kind == yaml.ScalarNode && item.ShortTag() == "!!str" {
			id := ast.NewIdentifier(item.Value)
			ast.SetSpan(id, ast.Span{Start: ast.Position{Line: item.Line, Column: item.Column}, End: ast.Position{Line: item.Line, Column: item.Column}})
			ids = append(ids, id)
			continue
		}
		expr, err := decodeExpression(item)
		if err != nil {
			return nil, err
		}
		id, ok := expr.(*ast.Identifier)
		if !ok {
			return nil, errAt(item, "%s.%s entries must be identifiers", m.typ, name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

func (m *mapping) expr(name string) (ast.Expression, error) {
	n, err := m.require(name)
	if err != nil {
		return nil, err
	}
	return decodeExpression(n)
}

func (m *mapping) optionalExpr(name string) (ast.Expression, error) {
	n := m.get(name)
	if n == nil {
		return nil, nil
	}
	return decodeExpression(n)
}

func (m *mapping) exprList(name string) ([]ast.Expression, error) {
	n := m.get(name)
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errAt(n, "%s.%s must be a list", m.typ, name)
	}
	exprs := make([]ast.Expression, 0, len(n.Content))
	for _, item := range n.Content {
		expr, err := decodeExpression(item)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// decodeExpression decodes an expression node. Plain integer, boolean and
// null scalars stand for the matching literals.
func decodeExpression(n *yaml.Node) (ast.Expression, error) {
	n = deref(n)
	if n != nil && n.Kind == yaml.ScalarNode {
		return decodeScalarExpression(n)
	}
	m, err := newMapping(n)
	if err != nil {
		return nil, err
	}
	expr, err := decodeExpressionFields(m)
	if err != nil {
		return nil, err
	}
	node, err := m.finish(expr)
	if err != nil {
		return nil, err
	}
	return node.(ast.Expression), nil
}

func decodeScalarExpression(n *yaml.Node) (ast.Expression, error) {
	var expr ast.Expression
	switch n.ShortTag() {
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			return nil, errAt(n, "%v", err)
		}
		expr = ast.NewIntegerLiteral(v)
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, errAt(n, "%v", err)
		}
		expr = ast.NewBooleanLiteral(v)
	case "!!null":
		expr = ast.NewNilLiteral()
	default:
		return nil, errAt(n, "expected an expression node, got %q", n.Value)
	}
	pos := ast.Position{Line: n.Line, Column: n.Column}
	ast.SetSpan(expr, ast.Span{Start: pos, End: pos})
	return expr, nil
}

func decodeExpressionFields(m *mapping) (ast.Expression, error) {
	switch ast.NodeType(m.typ) {
	case ast.NodeIdentifier:
		name, err := m.str("name")
		if err != nil {
			return nil, err
		}
		return ast.NewIdentifier(name), nil
	case ast.NodeIntegerLiteral:
		var v int64
		if err := m.scalar("value", "!!int", &v); err != nil {
			return nil, err
		}
		return ast.NewIntegerLiteral(v), nil
	case ast.NodeStringLiteral:
		v, err := m.str("value")
		if err != nil {
			return nil, err
		}
		return ast.NewStringLiteral(v), nil
	case ast.NodeBooleanLiteral:
		var v bool
		if err := m.scalar("value", "!!bool", &v); err != nil {
			return nil, err
		}
		return ast.NewBooleanLiteral(v), nil
	case ast.NodeNilLiteral:
		return ast.NewNilLiteral(), nil
	case ast.NodeCellLiteral:
		x, err := m.expr("x")
		if err != nil {
			return nil, err
		}
		y, err := m.expr("y")
		if err != nil {
			return nil, err
		}
		return ast.NewCellLiteral(x, y), nil
	case ast.NodeIndexExpression:
		x, err := m.expr("x")
		if err != nil {
			return nil, err
		}
		y, err := m.expr("y")
		if err != nil {
			return nil, err
		}
		return ast.NewIndexExpression(x, y), nil
	case ast.NodeBinaryExpression:
		raw, err := m.str("operator")
		if err != nil {
			return nil, err
		}
		op, ok := binaryOperators[raw]
		if !ok {
			return nil, errAt(m.node, "unknown binary operator %q", raw)
		}
		left, err := m.expr("left")
		if err != nil {
			return nil, err
		}
		right, err := m.expr("right")
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression(op, left, right), nil
	case ast.NodeUnaryExpression:
		raw, err := m.str("operator")
		if err != nil {
			return nil, err
		}
		op, ok := unaryOperators[raw]
		if !ok {
			return nil, errAt(m.node, "unknown unary operator %q", raw)
		}
		operand, err := m.expr("operand")
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(op, operand), nil
	case ast.NodeFunctionCall:
		callee, err := m.str("callee")
		if err != nil {
			return nil, err
		}
		args, err := m.exprList("args")
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionCall(callee, args), nil
	default:
		return nil, errAt(m.node, "unknown expression type %q", m.typ)
	}
}
