package ast

import "strconv"

type NodeType string

const (
	NodeBlock             NodeType = "Block"
	NodeGameStatement     NodeType = "GameStatement"
	NodePlayersStatement  NodeType = "PlayersStatement"
	NodeBoardStatement    NodeType = "BoardStatement"
	NodePieceStatement    NodeType = "PieceStatement"
	NodeSetupBlock        NodeType = "SetupBlock"
	NodeTurnBlock         NodeType = "TurnBlock"
	NodeEndBlock          NodeType = "EndBlock"
	NodeRuleDefinition    NodeType = "RuleDefinition"
	NodeAssignStatement   NodeType = "AssignStatement"
	NodeIfStatement       NodeType = "IfStatement"
	NodeWhileStatement    NodeType = "WhileStatement"
	NodeForCellStatement  NodeType = "ForCellStatement"
	NodeForPieceStatement NodeType = "ForPieceStatement"
	NodePlaceStatement    NodeType = "PlaceStatement"
	NodeRemoveStatement   NodeType = "RemoveStatement"
	NodeMoveStatement     NodeType = "MoveStatement"
	NodeWinStatement      NodeType = "WinStatement"
	NodeDrawStatement     NodeType = "DrawStatement"
	NodeQuitStatement     NodeType = "QuitStatement"
	NodeCallStatement     NodeType = "CallStatement"
	NodePrintStatement    NodeType = "PrintStatement"
	NodeIdentifier        NodeType = "Identifier"
	NodeIntegerLiteral    NodeType = "IntegerLiteral"
	NodeStringLiteral     NodeType = "StringLiteral"
	NodeBooleanLiteral    NodeType = "BooleanLiteral"
	NodeNilLiteral        NodeType = "NilLiteral"
	NodeCellLiteral       NodeType = "CellLiteral"
	NodeBinaryExpression  NodeType = "BinaryExpression"
	NodeUnaryExpression   NodeType = "UnaryExpression"
	NodeIndexExpression   NodeType = "IndexExpression"
	NodeFunctionCall      NodeType = "FunctionCall"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s.Start.Line == 0 && s.Start.Column == 0 && s.End.Line == 0 && s.End.Column == 0
}

func (s Span) String() string {
	if s.IsZero() {
		return "<unknown>"
	}
	return strconv.Itoa(s.Start.Line) + ":" + strconv.Itoa(s.Start.Column)
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

type spanSetter interface {
	setSpan(Span)
}

// SetSpan annotates node with a source location. Nodes that do not embed
// nodeImpl are left untouched.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if s, ok := node.(spanSetter); ok {
		s.setSpan(span)
	}
}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}
