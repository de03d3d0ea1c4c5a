package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/driver"
	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/interpreter"
)

// promptInput asks the current player for a cell on the terminal. The
// readline instance is opened on the first question, so programs that
// never call choose_cell never touch stdin.
type promptInput struct {
	in    io.Reader
	out   io.Writer
	board func() string
	rl    *readline.Instance
}

func newPromptInput(in io.Reader, out io.Writer) *promptInput {
	return &promptInput{in: in, out: out}
}

func (p *promptInput) ChooseCell(player, turn int) (int, int, error) {
	if p.rl == nil {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "> ",
			Stdin:           io.NopCloser(p.in),
			Stdout:          p.out,
			InterruptPrompt: "^C",
		})
		if err != nil {
			return 0, 0, fmt.Errorf("%w: open prompt: %v", interpreter.ErrInput, err)
		}
		p.rl = rl
	}
	if p.board != nil {
		fmt.Fprintln(p.out, p.board())
	}
	p.rl.SetPrompt(fmt.Sprintf("turn %d, player %d (x,y)> ", turn, player))
	for {
		line, err := p.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return 0, 0, fmt.Errorf("%w: input closed", interpreter.ErrInput)
		}
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", interpreter.ErrInput, err)
		}
		m, err := driver.ParseMove(line)
		if err != nil {
			fmt.Fprintln(p.rl.Stderr(), err)
			continue
		}
		return m.X, m.Y, nil
	}
}

func (p *promptInput) Close() error {
	if p.rl == nil {
		return nil
	}
	return p.rl.Close()
}
