package scheduler

import (
	"sync/atomic"
)

// State is the phase of the current generation cycle.
type State string

// Cycle states. Only one cycle may be outside Idle at any time.
const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting"
	StateAnalyzing  State = "analyzing"
	StateRendering  State = "rendering"
	StateCataloging State = "cataloging"
	StateFailed     State = "failed"
)

// stateMachine is the single mutual-exclusion point between the background
// timer and on-demand triggers. Acquisition is the only blocking decision;
// everything after it runs on snapshotted inputs.
type stateMachine struct {
	busy    atomic.Bool
	current atomic.Value
}

func newStateMachine() *stateMachine {
	m := &stateMachine{}
	m.current.Store(StateIdle)
	return m
}

// TryAcquire attempts to start a cycle. It fails without side effects when
// another cycle is active.
func (m *stateMachine) TryAcquire() bool {
	if !m.busy.CompareAndSwap(false, true) {
		return false
	}
	m.current.Store(StateCollecting)
	return true
}

// Advance moves the active cycle to the next phase. Only the goroutine that
// acquired the machine may call it.
func (m *stateMachine) Advance(s State) {
	m.current.Store(s)
}

// Release returns the machine to Idle and reopens acquisition.
func (m *stateMachine) Release() {
	m.current.Store(StateIdle)
	m.busy.Store(false)
}

// Current returns the externally visible cycle state.
func (m *stateMachine) Current() State {
	return m.current.Load().(State)
}
