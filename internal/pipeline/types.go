// Package pipeline defines the progress events the package driver
// emits while converting files, consumed by the terminal UI and the
// CLI reporters.
package pipeline

import "time"

// Stage describes a phase of the per-file conversion pipeline.
type Stage string

const (
	// StageScan is the input-directory scan and alias-index build.
	StageScan Stage = "scan"
	// StageParse is the lex/parse stage.
	StageParse Stage = "parse"
	// StageConvert is the Rd-to-markdown lowering stage.
	StageConvert Stage = "convert"
	// StageWrite is the output serialization stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently processing.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished.
	StatusDone Status = "done"
	// StatusSkipped indicates the file was skipped (internal keyword).
	StatusSkipped Status = "skipped"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Event reports progress for a file, or for the overall run when File
// is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Add accumulates a duration for the given stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
