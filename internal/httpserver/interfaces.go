package httpserver

import (
	"github.com/exitwise/gracedown/shutdown"
)

// stater is an internal interface reporting the coordinator's state.
type stater interface {
	State() shutdown.State
}
