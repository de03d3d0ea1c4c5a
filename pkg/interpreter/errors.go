package interpreter

import (
	"errors"
	"fmt"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/board"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/runtime"
)

var (
	ErrProgramStructure = errors.New("invalid program structure")
	ErrType             = errors.New("type error")
	ErrArithmetic       = errors.New("arithmetic error")
	ErrInput            = errors.New("input error")
)

// ErrorKind classifies every error a run can surface to the host.
type ErrorKind string

const (
	KindProgramStructure ErrorKind = "ProgramStructureError"
	KindUnbound          ErrorKind = "UnboundError"
	KindRedefinition     ErrorKind = "RedefinitionError"
	KindType             ErrorKind = "TypeError"
	KindArithmetic       ErrorKind = "ArithmeticError"
	KindOutOfBounds      ErrorKind = "OutOfBoundsError"
	KindCellOccupied     ErrorKind = "CellOccupiedError"
	KindAlreadyPlaced    ErrorKind = "AlreadyPlacedError"
	KindUnknownPiece     ErrorKind = "UnknownPieceError"
	KindEmptyCell        ErrorKind = "EmptyCellError"
	KindInput            ErrorKind = "InputError"
	KindInternal         ErrorKind = "InterpreterError"
)

// ProgramError reports whether the kind is raised by the DSL program itself
// rather than by the host or the interpreter.
func (k ErrorKind) ProgramError() bool {
	switch k {
	case KindInput, KindInternal:
		return false
	default:
		return true
	}
}

// Error is a runtime failure with the source location of the node that
// raised it.
type Error struct {
	Kind    ErrorKind
	Span    ast.Span
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Span.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Span, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf classifies err. Errors that carry no known sentinel are
// interpreter errors.
func KindOf(err error) ErrorKind {
	var rtErr *Error
	if errors.As(err, &rtErr) {
		return rtErr.Kind
	}
	return classify(err)
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrProgramStructure):
		return KindProgramStructure
	case errors.Is(err, runtime.ErrUnbound):
		return KindUnbound
	case errors.Is(err, runtime.ErrRedefinition):
		return KindRedefinition
	case errors.Is(err, ErrType), errors.Is(err, board.ErrInvalidPlayer):
		return KindType
	case errors.Is(err, ErrArithmetic):
		return KindArithmetic
	case errors.Is(err, board.ErrOutOfBounds):
		return KindOutOfBounds
	case errors.Is(err, board.ErrCellOccupied):
		return KindCellOccupied
	case errors.Is(err, board.ErrAlreadyPlaced):
		return KindAlreadyPlaced
	case errors.Is(err, board.ErrUnknownPiece):
		return KindUnknownPiece
	case errors.Is(err, board.ErrEmptyCell):
		return KindEmptyCell
	case errors.Is(err, ErrInput):
		return KindInput
	default:
		return KindInternal
	}
}

// annotate attaches the location of node to err unless err already carries
// one or is a control signal.
func annotate(node ast.Node, err error) error {
	if err == nil || isSignal(err) {
		return err
	}
	var rtErr *Error
	if errors.As(err, &rtErr) {
		return err
	}
	var span ast.Span
	if node != nil {
		span = node.Span()
	}
	return &Error{Kind: classify(err), Span: span, Message: err.Error(), Err: err}
}

func structureError(node ast.Node, format string, args ...any) error {
	err := fmt.Errorf("%w: "+format, append([]any{ErrProgramStructure}, args...)...)
	return annotate(node, err)
}

func typeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrType}, args...)...)
}

func arithmeticErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrArithmetic}, args...)...)
}
