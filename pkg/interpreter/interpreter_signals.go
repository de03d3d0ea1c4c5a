package interpreter

import "errors"

// gameEndSignal unwinds from win, draw or quit to the game loop. The status
// has already been recorded on the game state when it is raised.
type gameEndSignal struct {
	status Status
}

func (g gameEndSignal) Error() string {
	return "game ended: " + g.status.String()
}

func isSignal(err error) bool {
	var sig gameEndSignal
	return errors.As(err, &sig)
}
