package assessment

import (
	"errors"
	"testing"
)

func TestFlowLinearSequence(t *testing.T) {
	flow := NewFlow()

	if flow.Current() != StepEyeTracking {
		t.Fatalf("expected initial step eye-tracking, got %s", flow.Current())
	}
	if flow.Progress() != 0 {
		t.Fatalf("expected 0%% at start, got %d", flow.Progress())
	}

	want := []struct {
		step     Step
		progress int
	}{
		{StepBreathing, 33},
		{StepPosture, 66},
		{StepComplete, 100},
	}
	for _, w := range want {
		step, err := flow.Advance()
		if err != nil {
			t.Fatalf("advance to %s: %v", w.step, err)
		}
		if step != w.step || flow.Current() != w.step {
			t.Fatalf("expected step %s, got %s", w.step, step)
		}
		if flow.Progress() != w.progress {
			t.Fatalf("expected %d%% at %s, got %d", w.progress, w.step, flow.Progress())
		}
	}

	if !flow.IsComplete() {
		t.Fatalf("expected flow complete after final advance")
	}
}

func TestFlowCompleteIsTerminal(t *testing.T) {
	flow := NewFlow()
	for !flow.IsComplete() {
		if _, err := flow.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}

	step, err := flow.Advance()
	if !errors.Is(err, ErrFlowComplete) {
		t.Fatalf("expected ErrFlowComplete, got %v", err)
	}
	if step != StepComplete {
		t.Fatalf("expected terminal step to stay complete, got %s", step)
	}
	if flow.Progress() != 100 {
		t.Fatalf("expected progress pinned at 100, got %d", flow.Progress())
	}
}

func TestStepMetadata(t *testing.T) {
	for _, s := range []Step{StepEyeTracking, StepBreathing, StepPosture, StepComplete} {
		if s.Title() == "" {
			t.Fatalf("missing title for %s", s)
		}
		if s.Instruction() == "" {
			t.Fatalf("missing instruction for %s", s)
		}
	}
}
