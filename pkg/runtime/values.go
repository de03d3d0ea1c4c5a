package runtime

import (
	"fmt"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/board"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindInteger
	KindString
	KindBool
	KindCell
	KindTemplate
	KindPiece
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindCell:
		return "cell"
	case KindTemplate:
		return "piece_template"
	case KindPiece:
		return "piece"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

// CellValue is a board coordinate; it need not be in bounds.
type CellValue struct {
	X int
	Y int
}

func (v CellValue) Kind() Kind { return KindCell }

// Cell converts v to the board coordinate type.
func (v CellValue) Cell() board.Cell {
	return board.Cell{X: v.X, Y: v.Y}
}

//-----------------------------------------------------------------------------
// Handles
//-----------------------------------------------------------------------------

// TemplateValue refers to a piece template; equality is by identity.
type TemplateValue struct {
	Template *board.PieceObj
}

func (v TemplateValue) Kind() Kind { return KindTemplate }

// PieceValue refers to a piece instance in the board arena.
type PieceValue struct {
	ID board.PieceID
}

func (v PieceValue) Kind() Kind { return KindPiece }

// Equal compares scalars structurally and handles by identity. Values of
// different kinds are never equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case IntegerValue:
		return av.Val == b.(IntegerValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case NilValue:
		return true
	case CellValue:
		bv := b.(CellValue)
		return av.X == bv.X && av.Y == bv.Y
	case TemplateValue:
		return av.Template == b.(TemplateValue).Template
	case PieceValue:
		return av.ID == b.(PieceValue).ID
	default:
		return false
	}
}
