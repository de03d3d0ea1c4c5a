package interpreter

import "fmt"

// CellInput supplies the cells chosen by players through choose_cell().
type CellInput interface {
	ChooseCell(player, turn int) (x, y int, err error)
}

// ScriptedInput replays a fixed list of moves in order.
type ScriptedInput struct {
	Moves []Move
	next  int
}

// Move is one scripted cell choice.
type Move struct {
	X, Y int
}

// NewScriptedInput returns an input that replays moves.
func NewScriptedInput(moves ...Move) *ScriptedInput {
	return &ScriptedInput{Moves: moves}
}

func (s *ScriptedInput) ChooseCell(player, turn int) (int, int, error) {
	if s.next >= len(s.Moves) {
		return 0, 0, fmt.Errorf("%w: no scripted move left for player %d on turn %d", ErrInput, player, turn)
	}
	m := s.Moves[s.next]
	s.next++
	return m.X, m.Y, nil
}

// Remaining returns the number of moves not yet consumed.
func (s *ScriptedInput) Remaining() int {
	return len(s.Moves) - s.next
}
