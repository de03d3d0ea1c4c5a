package ast

// Literal and identifier helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

// At builds the cell literal (x,y) from integer coordinates.
func At(x, y int64) *CellLiteral {
	return NewCellLiteral(Int(x), Int(y))
}

func CellOf(x, y Expression) *CellLiteral {
	return NewCellLiteral(x, y)
}

// Expression helpers.

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Un(op string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(op, operand)
}

func Index(x, y Expression) *IndexExpression {
	return NewIndexExpression(x, y)
}

func Call(callee string, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

// Block helpers.

func Blk(stmts ...Statement) *Block {
	return NewBlock(stmts)
}

func Program(stmts ...Statement) *Block {
	return NewBlock(stmts)
}

// Declaration helpers.

func Game(name string) *GameStatement {
	return NewGameStatement(name)
}

func Players(count int) *PlayersStatement {
	return NewPlayersStatement(count)
}

func Board(width, height int) *BoardStatement {
	return NewBoardStatement(width, height, "", false)
}

func BoardWith(width, height int, origin Origin, capture bool) *BoardStatement {
	return NewBoardStatement(width, height, origin, capture)
}

func Piece(owner, num int, name, display string) *PieceStatement {
	return NewPieceStatement(owner, num, name, display)
}

func Setup(stmts ...Statement) *SetupBlock {
	return NewSetupBlock(NewBlock(stmts))
}

func Turn(stmts ...Statement) *TurnBlock {
	return NewTurnBlock(NewBlock(stmts))
}

func End(stmts ...Statement) *EndBlock {
	return NewEndBlock(NewBlock(stmts))
}

func Rule(name string, params []string, stmts ...Statement) *RuleDefinition {
	ids := make([]*Identifier, 0, len(params))
	for _, p := range params {
		ids = append(ids, ID(p))
	}
	return NewRuleDefinition(name, ids, NewBlock(stmts))
}

// Statement helpers.

func Def(name string, value Expression) *AssignStatement {
	return NewAssignStatement(name, value, true)
}

func Set(name string, value Expression) *AssignStatement {
	return NewAssignStatement(name, value, false)
}

func If(cond Expression, then *Block, elseBlock *Block) *IfStatement {
	return NewIfStatement(cond, then, elseBlock)
}

func While(cond Expression, body *Block) *WhileStatement {
	return NewWhileStatement(cond, body)
}

func ForCells(x, y string, body *Block) *ForCellStatement {
	return NewForCellStatement(x, y, "", body)
}

func ForPieces(name string, player Expression, body *Block) *ForPieceStatement {
	return NewForPieceStatement(name, player, body)
}

func Place(piece string, player Expression, at Expression) *PlaceStatement {
	return NewPlaceStatement(nil, piece, player, at)
}

func PlaceN(count Expression, piece string, player Expression, at Expression) *PlaceStatement {
	return NewPlaceStatement(count, piece, player, at)
}

func Remove(at Expression) *RemoveStatement {
	return NewRemoveStatement(at)
}

func Move(from, to Expression) *MoveStatement {
	return NewMoveStatement(from, to)
}

func Win(player Expression) *WinStatement {
	return NewWinStatement(player)
}

func Draw() *DrawStatement {
	return NewDrawStatement()
}

func Quit() *QuitStatement {
	return NewQuitStatement()
}

func Invoke(rule string, args ...Expression) *CallStatement {
	return NewCallStatement(rule, args)
}

func Print(values ...Expression) *PrintStatement {
	return NewPrintStatement(values)
}
