package voicecall

import "sync"

// teardownRoutine releases the live resources of exactly one session
// generation. It runs at most once no matter how many paths request it
// (explicit stop, remote close, error, or a restart replacing it).
type teardownRoutine struct {
	once    sync.Once
	release func()
}

// teardownGuard tracks which generation's teardown is current. Running a
// routine that has since been replaced is a no-op: a stale teardown must
// never touch resources belonging to a newer generation.
type teardownGuard struct {
	mu     sync.Mutex
	active *teardownRoutine
}

func (g *teardownGuard) arm(release func()) *teardownRoutine {
	routine := &teardownRoutine{release: release}

	g.mu.Lock()
	g.active = routine
	g.mu.Unlock()

	return routine
}

func (g *teardownGuard) run(routine *teardownRoutine) {
	if routine == nil {
		return
	}

	g.mu.Lock()
	isActive := g.active == routine
	g.mu.Unlock()

	if !isActive {
		return
	}
	routine.once.Do(routine.release)
}
