package core

type State int

const (
	StateOngoing State = iota
	StateWhiteWins
	StateBlackWins
)

// WinnerState returns the terminal state for a checkmate delivered by c
func WinnerState(c Color) State {
	if c == ColorWhite {
		return StateWhiteWins
	}
	return StateBlackWins
}

func (s State) IsOver() bool {
	return s != StateOngoing
}

func (s State) String() string {
	switch s {
	case StateWhiteWins:
		return "white wins"
	case StateBlackWins:
		return "black wins"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// PGNResult returns the PGN result token
func (s State) PGNResult() string {
	switch s {
	case StateWhiteWins:
		return "1-0"
	case StateBlackWins:
		return "0-1"
	default:
		return "*"
	}
}
