package ast

// Origin names the board corner that holds cell (1,1).
type Origin string

const (
	OriginBottomLeft  Origin = "BL"
	OriginTopLeft     Origin = "TL"
	OriginBottomRight Origin = "BR"
	OriginTopRight    Origin = "TR"
)

// Valid reports whether o is one of the four corners (or empty, meaning the default).
func (o Origin) Valid() bool {
	switch o {
	case "", OriginBottomLeft, OriginTopLeft, OriginBottomRight, OriginTopRight:
		return true
	default:
		return false
	}
}

// Block is both the program root and the body of every compound statement.
type Block struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

// Top-level declarations

type GameStatement struct {
	nodeImpl
	statementMarker

	Name string `json:"name"`
}

func NewGameStatement(name string) *GameStatement {
	return &GameStatement{nodeImpl: newNodeImpl(NodeGameStatement), Name: name}
}

type PlayersStatement struct {
	nodeImpl
	statementMarker

	Count int `json:"count"`
}

func NewPlayersStatement(count int) *PlayersStatement {
	return &PlayersStatement{nodeImpl: newNodeImpl(NodePlayersStatement), Count: count}
}

type BoardStatement struct {
	nodeImpl
	statementMarker

	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Origin  Origin `json:"origin,omitempty"`
	Capture bool   `json:"capture,omitempty"`
}

func NewBoardStatement(width, height int, origin Origin, capture bool) *BoardStatement {
	return &BoardStatement{nodeImpl: newNodeImpl(NodeBoardStatement), Width: width, Height: height, Origin: origin, Capture: capture}
}

type PieceStatement struct {
	nodeImpl
	statementMarker

	Owner   int    `json:"owner"`
	Num     int    `json:"num"`
	Name    string `json:"name"`
	Display string `json:"display"`
}

func NewPieceStatement(owner, num int, name, display string) *PieceStatement {
	return &PieceStatement{nodeImpl: newNodeImpl(NodePieceStatement), Owner: owner, Num: num, Name: name, Display: display}
}

type SetupBlock struct {
	nodeImpl
	statementMarker

	Body *Block `json:"body"`
}

func NewSetupBlock(body *Block) *SetupBlock {
	return &SetupBlock{nodeImpl: newNodeImpl(NodeSetupBlock), Body: body}
}

type TurnBlock struct {
	nodeImpl
	statementMarker

	Body *Block `json:"body"`
}

func NewTurnBlock(body *Block) *TurnBlock {
	return &TurnBlock{nodeImpl: newNodeImpl(NodeTurnBlock), Body: body}
}

type EndBlock struct {
	nodeImpl
	statementMarker

	Body *Block `json:"body"`
}

func NewEndBlock(body *Block) *EndBlock {
	return &EndBlock{nodeImpl: newNodeImpl(NodeEndBlock), Body: body}
}

// RuleDefinition declares a named block callable with `call`.
type RuleDefinition struct {
	nodeImpl
	statementMarker

	Name   string        `json:"name"`
	Params []*Identifier `json:"params,omitempty"`
	Body   *Block        `json:"body"`
}

func NewRuleDefinition(name string, params []*Identifier, body *Block) *RuleDefinition {
	return &RuleDefinition{nodeImpl: newNodeImpl(NodeRuleDefinition), Name: name, Params: params, Body: body}
}

// Statements

// AssignStatement binds Name. Declare selects `:=` (define in the innermost
// frame) over `=` (update the defining frame).
type AssignStatement struct {
	nodeImpl
	statementMarker

	Name    string     `json:"name"`
	Value   Expression `json:"value"`
	Declare bool       `json:"declare"`
}

func NewAssignStatement(name string, value Expression, declare bool) *AssignStatement {
	return &AssignStatement{nodeImpl: newNodeImpl(NodeAssignStatement), Name: name, Value: value, Declare: declare}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      *Block     `json:"then"`
	Else      *Block     `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then *Block, elseBlock *Block) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: elseBlock}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewWhileStatement(condition Expression, body *Block) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

// ForCellStatement iterates the board; X and Y name the coordinate
// bindings and Cell names the occupant binding ("cell" when empty).
type ForCellStatement struct {
	nodeImpl
	statementMarker

	X    string `json:"x"`
	Y    string `json:"y"`
	Cell string `json:"cell,omitempty"`
	Body *Block `json:"body"`
}

func NewForCellStatement(x, y, cell string, body *Block) *ForCellStatement {
	return &ForCellStatement{nodeImpl: newNodeImpl(NodeForCellStatement), X: x, Y: y, Cell: cell, Body: body}
}

type ForPieceStatement struct {
	nodeImpl
	statementMarker

	Var    string     `json:"var"`
	Player Expression `json:"player"`
	Body   *Block     `json:"body"`
}

func NewForPieceStatement(name string, player Expression, body *Block) *ForPieceStatement {
	return &ForPieceStatement{nodeImpl: newNodeImpl(NodeForPieceStatement), Var: name, Player: player, Body: body}
}

// PlaceStatement is `place N of name for player at (x,y)`. Count may be nil
// (one piece).
type PlaceStatement struct {
	nodeImpl
	statementMarker

	Count  Expression `json:"count,omitempty"`
	Piece  string     `json:"piece"`
	Player Expression `json:"player"`
	At     Expression `json:"at"`
}

func NewPlaceStatement(count Expression, piece string, player Expression, at Expression) *PlaceStatement {
	return &PlaceStatement{nodeImpl: newNodeImpl(NodePlaceStatement), Count: count, Piece: piece, Player: player, At: at}
}

type RemoveStatement struct {
	nodeImpl
	statementMarker

	At Expression `json:"at"`
}

func NewRemoveStatement(at Expression) *RemoveStatement {
	return &RemoveStatement{nodeImpl: newNodeImpl(NodeRemoveStatement), At: at}
}

type MoveStatement struct {
	nodeImpl
	statementMarker

	From Expression `json:"from"`
	To   Expression `json:"to"`
}

func NewMoveStatement(from, to Expression) *MoveStatement {
	return &MoveStatement{nodeImpl: newNodeImpl(NodeMoveStatement), From: from, To: to}
}

type WinStatement struct {
	nodeImpl
	statementMarker

	Player Expression `json:"player"`
}

func NewWinStatement(player Expression) *WinStatement {
	return &WinStatement{nodeImpl: newNodeImpl(NodeWinStatement), Player: player}
}

type DrawStatement struct {
	nodeImpl
	statementMarker
}

func NewDrawStatement() *DrawStatement {
	return &DrawStatement{nodeImpl: newNodeImpl(NodeDrawStatement)}
}

type QuitStatement struct {
	nodeImpl
	statementMarker
}

func NewQuitStatement() *QuitStatement {
	return &QuitStatement{nodeImpl: newNodeImpl(NodeQuitStatement)}
}

type CallStatement struct {
	nodeImpl
	statementMarker

	Rule string       `json:"rule"`
	Args []Expression `json:"args,omitempty"`
}

func NewCallStatement(rule string, args []Expression) *CallStatement {
	return &CallStatement{nodeImpl: newNodeImpl(NodeCallStatement), Rule: rule, Args: args}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Values []Expression `json:"values"`
}

func NewPrintStatement(values []Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Values: values}
}
