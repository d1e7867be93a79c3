package callback

import (
	"fmt"

	"github.com/dmitrijs2005/dochost/internal/common"
)

// State is the closed set of callback outcomes the ingestor acts on.
type State int

const (
	NoOp State = iota
	Editing
	ReadyToSave
	Error
)

func (s State) String() string {
	switch s {
	case NoOp:
		return "no-op"
	case Editing:
		return "editing"
	case ReadyToSave:
		return "ready-to-save"
	case Error:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Editing server status codes.
const (
	StatusNotFound       = 0
	StatusEditing        = 1
	StatusReadyToSave    = 2
	StatusSaveError      = 3
	StatusClosedNoChange = 4
	StatusForceSave      = 6
	StatusForceSaveError = 7
)

// StateOf classifies a raw status code. Codes outside the known set are
// rejected with common.ErrUnknownStatus instead of being treated as no-ops.
func StateOf(status int) (State, error) {
	switch status {
	case StatusNotFound, StatusClosedNoChange:
		return NoOp, nil
	case StatusEditing:
		return Editing, nil
	case StatusReadyToSave, StatusForceSave:
		return ReadyToSave, nil
	case StatusSaveError, StatusForceSaveError:
		return Error, nil
	default:
		return NoOp, fmt.Errorf("%w: %d", common.ErrUnknownStatus, status)
	}
}
