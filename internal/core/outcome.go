package core

// Outcome is the result of a move attempt. Rule violations are outcomes, not errors.
type Outcome int

const (
	OutcomeMoved Outcome = iota + 1
	OutcomeCaptured
	OutcomeSameSquare
	OutcomeEmptyOrigin
	OutcomeWrongColorOrigin
	OutcomeOwnPieceAtDestination
	OutcomeIllegalQuietMove
	OutcomeIllegalCapture
	OutcomeIllegalSelfCheck
)

// Success is true for Moved and Captured only
func (o Outcome) Success() bool {
	return o == OutcomeMoved || o == OutcomeCaptured
}

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeCaptured:
		return "captured"
	case OutcomeSameSquare:
		return "same square"
	case OutcomeEmptyOrigin:
		return "empty origin"
	case OutcomeWrongColorOrigin:
		return "wrong color origin"
	case OutcomeOwnPieceAtDestination:
		return "own piece at destination"
	case OutcomeIllegalQuietMove:
		return "illegal quiet move"
	case OutcomeIllegalCapture:
		return "illegal capture"
	case OutcomeIllegalSelfCheck:
		return "illegal self check"
	default:
		return "unknown"
	}
}

// Code returns the API error code for a failed outcome, empty for success
func (o Outcome) Code() string {
	switch o {
	case OutcomeSameSquare:
		return ErrSameSquare
	case OutcomeEmptyOrigin:
		return ErrEmptyOrigin
	case OutcomeWrongColorOrigin:
		return ErrWrongColor
	case OutcomeOwnPieceAtDestination:
		return ErrOwnPiece
	case OutcomeIllegalQuietMove, OutcomeIllegalCapture:
		return ErrInvalidMove
	case OutcomeIllegalSelfCheck:
		return ErrSelfCheck
	case OutcomeMoved, OutcomeCaptured:
		return ""
	default:
		return ErrInternalError
	}
}
