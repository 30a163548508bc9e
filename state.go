package executor

import "sync/atomic"

// state is a RunningExecutor's position in its lifecycle, tracked as an
// atomic int32 so Exec/Close from different goroutines can observe it
// without a mutex.
type state int32

const (
	stateConfigured state = iota
	stateBuilding
	stateCreated
	stateStarting
	stateReady
	stateStopping
	stateStopped
)

func (s state) String() string {
	switch s {
	case stateConfigured:
		return "configured"
	case stateBuilding:
		return "building"
	case stateCreated:
		return "created"
	case stateStarting:
		return "starting"
	case stateReady:
		return "ready"
	case stateStopping:
		return "stopping"
	case stateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type stateBox struct {
	v atomic.Int32
}

func (b *stateBox) set(s state) { b.v.Store(int32(s)) }
func (b *stateBox) get() state  { return state(b.v.Load()) }
