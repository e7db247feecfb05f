package voicecall

import "testing"

func TestTeardownRoutineRunsAtMostOnce(t *testing.T) {
	guard := teardownGuard{}

	runs := 0
	routine := guard.arm(func() { runs++ })

	guard.run(routine)
	guard.run(routine)

	if runs != 1 {
		t.Fatalf("expected exactly one release, got %d", runs)
	}
}

func TestStaleTeardownDoesNotRun(t *testing.T) {
	guard := teardownGuard{}

	staleRuns := 0
	stale := guard.arm(func() { staleRuns++ })

	currentRuns := 0
	current := guard.arm(func() { currentRuns++ })

	guard.run(stale)
	if staleRuns != 0 {
		t.Fatalf("expected replaced routine not to run, got %d runs", staleRuns)
	}

	guard.run(current)
	if currentRuns != 1 {
		t.Fatalf("expected active routine to run once, got %d runs", currentRuns)
	}
}

func TestRunningNilRoutineIsANoOp(t *testing.T) {
	guard := teardownGuard{}
	guard.run(nil)
}
