package interpreter

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/ast"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/runtime"
)

// gameLoop runs setup once, then alternates turn and end blocks until the
// status leaves running. A gameEndSignal stops here and nowhere else.
func (i *Interpreter) gameLoop(prog *program) error {
	state := i.state
	i.log.Debug("running setup")
	if err := i.evaluateBlock(prog.setup.Body, state.Global); err != nil {
		return i.settle(err)
	}
	if !state.Status.Running() {
		return nil
	}

	for state.Status.Running() {
		if i.opts.MaxTurns > 0 && state.Turn >= i.opts.MaxTurns {
			i.log.WithField("max_turns", i.opts.MaxTurns).Warn("turn limit reached, aborting game")
			state.Status = Status{Kind: StatusAborted}
			return nil
		}
		state.Turn++
		turnLog := i.log.WithFields(logrus.Fields{"turn": state.Turn, "player": state.CurrentPlayer})
		turnLog.Debug("turn starting")

		if err := i.withFrame(nil, func(env *runtime.Environment) error {
			return i.evaluateBlock(prog.turn.Body, env)
		}); err != nil {
			return i.settle(err)
		}
		if prog.end != nil {
			if err := i.withFrame(nil, func(env *runtime.Environment) error {
				return i.evaluateBlock(prog.end.Body, env)
			}); err != nil {
				return i.settle(err)
			}
		}
		if !state.Status.Running() {
			break
		}
		state.CurrentPlayer = state.CurrentPlayer%state.Players + 1
	}
	return nil
}

// settle absorbs the game end signal and passes every other error through.
func (i *Interpreter) settle(err error) error {
	var sig gameEndSignal
	if errors.As(err, &sig) {
		i.log.WithField("status", sig.status.String()).Info("game ended")
		return nil
	}
	return err
}

// withFrame runs fn in a freshly pushed frame whose lexical parent is
// parent, popping it on every exit path.
func (i *Interpreter) withFrame(parent *runtime.Environment, fn func(env *runtime.Environment) error) (err error) {
	frame := i.stack.Push(parent)
	defer func() {
		if popErr := i.stack.Pop(frame); popErr != nil && err == nil {
			err = popErr
		}
	}()
	return fn(frame)
}

// end records a terminal status. Once the game has ended further calls are
// no-ops, so the first win of a turn stands.
func (i *Interpreter) end(node ast.Node, status Status) error {
	if !i.state.Status.Running() {
		return nil
	}
	i.state.Status = status
	i.log.WithFields(logrus.Fields{"status": status.String(), "at": node.Span().String()}).Debug("status changed")
	return gameEndSignal{status: status}
}
