// Package assessment drives the guided wellness check a driver walks
// through before a trip. The check is a fixed sequence of steps; each
// step has on-screen guidance and the flow reports how far along the
// driver is.
package assessment

import "errors"

// ErrFlowComplete is returned by Advance once the flow has reached its
// final step.
var ErrFlowComplete = errors.New("assessment: flow already complete")

// Step is one stage of the wellness assessment.
type Step string

const (
	StepEyeTracking Step = "eye-tracking"
	StepBreathing   Step = "breathing"
	StepPosture     Step = "posture"
	StepComplete    Step = "complete"
)

// steps is the canonical order of the flow.
var steps = []Step{StepEyeTracking, StepBreathing, StepPosture, StepComplete}

var stepTitles = map[Step]string{
	StepEyeTracking: "Eye Tracking",
	StepBreathing:   "Breathing Exercise",
	StepPosture:     "Posture Check",
	StepComplete:    "Assessment Complete",
}

var stepInstructions = map[Step]string{
	StepEyeTracking: "Follow the moving dot with your eyes while keeping your head still.",
	StepBreathing:   "Take slow, deep breaths. Inhale for four seconds, exhale for four seconds.",
	StepPosture:     "Sit upright with your back against the seat and both hands on the wheel.",
	StepComplete:    "You're all set. Drive safe!",
}

// Title returns the on-screen heading for a step.
func (s Step) Title() string { return stepTitles[s] }

// Instruction returns the guidance text shown for a step.
func (s Step) Instruction() string { return stepInstructions[s] }

// Flow tracks progress through the assessment. The zero value is not
// usable; create one with NewFlow.
type Flow struct {
	index int
}

// NewFlow returns a flow positioned at the first step.
func NewFlow() *Flow {
	return &Flow{}
}

// Current returns the step the flow is on.
func (f *Flow) Current() Step {
	return steps[f.index]
}

// Progress reports completion as a whole percentage. Each finished
// step contributes an equal share; the final step reads 100.
func (f *Flow) Progress() int {
	return f.index * 100 / (len(steps) - 1)
}

// IsComplete reports whether the flow has reached its final step.
func (f *Flow) IsComplete() bool {
	return steps[f.index] == StepComplete
}

// Advance moves the flow to the next step and returns it. Once the
// flow is complete it stays there and Advance returns ErrFlowComplete.
func (f *Flow) Advance() (Step, error) {
	if f.IsComplete() {
		return StepComplete, ErrFlowComplete
	}
	f.index++
	return steps[f.index], nil
}
