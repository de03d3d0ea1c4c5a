package interpreter

import (
	"math"
	"math/big"
	"strings"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/runtime"
)

var (
	minInt = big.NewInt(math.MinInt64)
	maxInt = big.NewInt(math.MaxInt64)
)

// applyBinaryOperator evaluates every strict operator. and/or never reach
// here because their right operand may not be evaluated.
func applyBinaryOperator(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return evaluateArithmetic(op, left, right)
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return evaluateComparison(op, left, right)
	case ast.OpEq:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case ast.OpNe:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	default:
		return nil, typeErrorf("unsupported binary operator %q", op)
	}
}

func evaluateArithmetic(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	if op == ast.OpAdd {
		if ls, ok := left.(runtime.StringValue); ok {
			if rs, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: ls.Val + rs.Val}, nil
			}
		}
	}
	leftInt, leftIsInt := left.(runtime.IntegerValue)
	rightInt, rightIsInt := right.(runtime.IntegerValue)
	if !leftIsInt || !rightIsInt {
		return nil, typeErrorf("operator %s requires integer operands, got %s and %s", op, kindName(left), kindName(right))
	}
	lv := big.NewInt(leftInt.Val)
	rv := big.NewInt(rightInt.Val)
	result := new(big.Int)
	switch op {
	case ast.OpAdd:
		result.Add(lv, rv)
	case ast.OpSub:
		result.Sub(lv, rv)
	case ast.OpMul:
		result.Mul(lv, rv)
	case ast.OpDiv:
		if rv.Sign() == 0 {
			return nil, arithmeticErrorf("division by zero")
		}
		result.Div(lv, rv)
	case ast.OpMod:
		if rv.Sign() == 0 {
			return nil, arithmeticErrorf("division by zero")
		}
		// Euclidean, paired with Div: a = (a/b)*b + a mod b and the
		// remainder is never negative.
		result.Mod(lv, rv)
	}
	if err := ensureFitsInteger(result); err != nil {
		return nil, err
	}
	return runtime.IntegerValue{Val: result.Int64()}, nil
}

func ensureFitsInteger(v *big.Int) error {
	if v.Cmp(minInt) < 0 || v.Cmp(maxInt) > 0 {
		return arithmeticErrorf("integer overflow: %s", v.String())
	}
	return nil
}

func negate(operand runtime.Value) (runtime.Value, error) {
	iv, ok := operand.(runtime.IntegerValue)
	if !ok {
		return nil, typeErrorf("unary - requires an integer, got %s", kindName(operand))
	}
	result := new(big.Int).Neg(big.NewInt(iv.Val))
	if err := ensureFitsInteger(result); err != nil {
		return nil, err
	}
	return runtime.IntegerValue{Val: result.Int64()}, nil
}

func evaluateComparison(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	if ls, ok := left.(runtime.StringValue); ok {
		if rs, ok := right.(runtime.StringValue); ok {
			return runtime.BoolValue{Val: comparisonOp(op, strings.Compare(ls.Val, rs.Val))}, nil
		}
	}
	li, lok := left.(runtime.IntegerValue)
	ri, rok := right.(runtime.IntegerValue)
	if !lok || !rok {
		return nil, typeErrorf("operator %s requires two integers or two strings, got %s and %s", op, kindName(left), kindName(right))
	}
	cmp := 0
	switch {
	case li.Val < ri.Val:
		cmp = -1
	case li.Val > ri.Val:
		cmp = 1
	}
	return runtime.BoolValue{Val: comparisonOp(op, cmp)}, nil
}

func comparisonOp(op string, cmp int) bool {
	switch op {
	case ast.OpLt:
		return cmp < 0
	case ast.OpLe:
		return cmp <= 0
	case ast.OpGt:
		return cmp > 0
	case ast.OpGe:
		return cmp >= 0
	default:
		return false
	}
}

func kindName(v runtime.Value) string {
	if v == nil {
		return "nothing"
	}
	return v.Kind().String()
}
