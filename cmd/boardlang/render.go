package main

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/The-Code-In-Sheep-s-Clothing/TomProtoype/pkg/interpreter"
)

var (
	styleBoard = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	styleEmpty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleWon = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	styleOver = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	playerColors = []lipgloss.Color{"99", "214", "42", "196", "39", "201"}
)

func playerStyle(player int) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(playerColors[(player-1)%len(playerColors)])
}

// renderState draws the board, styled unless plain is set.
func renderState(state *interpreter.GameState, plain bool) string {
	if state == nil || state.Board == nil {
		return ""
	}
	if plain {
		return state.Render()
	}
	rows := state.Board.Rows()
	lines := make([]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			style := styleEmpty
			if cell.Owner > 0 {
				style = playerStyle(cell.Owner)
			}
			cells[c] = style.Render(cell.Text)
		}
		lines[r] = strings.Join(cells, " ")
	}
	return styleBoard.Render(strings.Join(lines, "\n"))
}

func renderStatus(state *interpreter.GameState, plain bool) string {
	text := "status: " + state.Status.String()
	if plain {
		return text
	}
	if state.Status.Kind == interpreter.StatusWon {
		return styleWon.Render(text)
	}
	return styleOver.Render(text)
}

// result is the --format yaml document.
type result struct {
	Game   string       `yaml:"game"`
	Status string       `yaml:"status"`
	Winner int          `yaml:"winner,omitempty"`
	Turn   int          `yaml:"turn"`
	Layout *layout      `yaml:"layout,omitempty"`
	Board  []string     `yaml:"board"`
	Error  *resultError `yaml:"error,omitempty"`
}

// layout describes the grid the board lines were drawn from.
type layout struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Origin  string `yaml:"origin"`
	Players int    `yaml:"players"`
	Capture string `yaml:"capture"`
}

type resultError struct {
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
	Line    int    `yaml:"line,omitempty"`
	Column  int    `yaml:"column,omitempty"`
}

func newResult(state *interpreter.GameState, runErr error) result {
	var res result
	if state != nil {
		res.Game = state.Game
		res.Status = state.Status.Kind.String()
		res.Winner = state.Status.Winner
		res.Turn = state.Turn
		res.Board = strings.Split(state.Render(), "\n")
		if b := state.Board; b != nil {
			capture := "explicit"
			if b.Capturing() {
				capture = "implicit"
			}
			res.Layout = &layout{
				Width:   b.Width(),
				Height:  b.Height(),
				Origin:  b.Origin().String(),
				Players: b.Players(),
				Capture: capture,
			}
		}
	}
	if runErr != nil {
		res.Error = &resultError{Kind: string(interpreter.KindOf(runErr)), Message: runErr.Error()}
		var rtErr *interpreter.Error
		if errors.As(runErr, &rtErr) {
			res.Error.Message = rtErr.Message
			res.Error.Line = rtErr.Span.Start.Line
			res.Error.Column = rtErr.Span.Start.Column
		}
	}
	return res
}

func writeResult(w io.Writer, res result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return err
	}
	return enc.Close()
}
