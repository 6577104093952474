package pipeline

import "time"

// Stage is a step of the ingestion state machine.
type Stage string

const (
	StageIdle       Stage = "Idle"
	StageFetching   Stage = "Fetching"
	StageExtracting Stage = "Extracting"
	StageAnalyzing  Stage = "Analyzing"
	StageFinalizing Stage = "Finalizing"
	StageComplete   Stage = "Complete"
	StageError      Stage = "Error"
)

// Terminal reports whether no further transition happens without a retry.
func (s Stage) Terminal() bool {
	return s == StageComplete || s == StageError
}

// StageSpec declares how long a stage lasts, the progress shown on entry and
// which stage follows once its action succeeds.
type StageSpec struct {
	Stage    Stage
	Duration time.Duration
	Progress int
	Next     Stage
	Action   action
}

// Durations holds the target time spent in each timed stage.
type Durations struct {
	Fetching   time.Duration
	Extracting time.Duration
	Analyzing  time.Duration
	Finalizing time.Duration
	// Highlight is how long a completed record is flagged as new.
	Highlight time.Duration
}

// DefaultDurations matches the simulated processing screen.
func DefaultDurations() Durations {
	return Durations{
		Fetching:   3 * time.Second,
		Extracting: 2 * time.Second,
		Analyzing:  5 * time.Second,
		Finalizing: 1 * time.Second,
		Highlight:  3 * time.Second,
	}
}

// stageTable is ordered; a run only ever moves forward through it.
func stageTable(d Durations) map[Stage]StageSpec {
	return map[Stage]StageSpec{
		StageIdle:       {Stage: StageIdle, Progress: 0, Next: StageFetching},
		StageFetching:   {Stage: StageFetching, Duration: d.Fetching, Progress: 10, Next: StageExtracting, Action: actFetch},
		StageExtracting: {Stage: StageExtracting, Duration: d.Extracting, Progress: 30, Next: StageAnalyzing, Action: actExtract},
		StageAnalyzing:  {Stage: StageAnalyzing, Duration: d.Analyzing, Progress: 70, Next: StageFinalizing, Action: actAnalyze},
		StageFinalizing: {Stage: StageFinalizing, Duration: d.Finalizing, Progress: 90, Next: StageComplete, Action: actFinalize},
		StageComplete:   {Stage: StageComplete, Duration: d.Highlight, Progress: 100},
		StageError:      {Stage: StageError, Progress: 0},
	}
}
