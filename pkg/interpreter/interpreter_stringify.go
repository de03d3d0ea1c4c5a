package interpreter

import (
	"fmt"
	"strconv"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/runtime"
)

// valueToString renders a value the way print shows it.
func (i *Interpreter) valueToString(val runtime.Value) string {
	switch v := val.(type) {
	case nil:
		return "nil"
	case runtime.IntegerValue:
		return strconv.FormatInt(v.Val, 10)
	case runtime.StringValue:
		return v.Val
	case runtime.BoolValue:
		return strconv.FormatBool(v.Val)
	case runtime.NilValue:
		return "nil"
	case runtime.CellValue:
		return v.Cell().String()
	case runtime.TemplateValue:
		if v.Template == nil {
			return "<template>"
		}
		return v.Template.Name
	case runtime.PieceValue:
		if i.state != nil {
			if piece, ok := i.state.Board.Piece(v.ID); ok {
				return fmt.Sprintf("%s(%d)", piece.Name, piece.Owner)
			}
		}
		return fmt.Sprintf("<piece %d>", v.ID)
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}
