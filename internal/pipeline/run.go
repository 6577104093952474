package pipeline

import (
	"time"

	"documind/internal/model"
)

// File references the source file a run processes.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Key         string `json:"key"`
	UploadedBy  string `json:"uploaded_by"`
}

// Transition is one entry of a run's stage history.
type Transition struct {
	From  Stage     `json:"from"`
	To    Stage     `json:"to"`
	At    time.Time `json:"at"`
	Error string    `json:"error,omitempty"`
}

// Run is the processing state of one submitted file. It occupies exactly one
// stage at a time.
type Run struct {
	ID         string          `json:"id"`
	File       File            `json:"file"`
	Stage      Stage           `json:"stage"`
	Progress   int             `json:"progress"`
	Attempt    int             `json:"attempt"`
	Error      string          `json:"error,omitempty"`
	EnteredAt  time.Time       `json:"entered_at"`
	DueAt      time.Time       `json:"due_at"`
	Pages      int             `json:"pages,omitempty"`
	Fallback   bool            `json:"fallback,omitempty"`
	Analysis   *model.Analysis `json:"analysis,omitempty"`
	Category   model.Category  `json:"category,omitempty"`
	DocumentID string          `json:"document_id,omitempty"`
	// HighlightUntil marks the end of the "new record" window after completion.
	HighlightUntil time.Time    `json:"highlight_until,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	History        []Transition `json:"history"`

	data []byte
	text string
}

// Highlighted reports whether the completed run's record is still flagged as new.
func (r Run) Highlighted(now time.Time) bool {
	return r.Stage == StageComplete && now.Before(r.HighlightUntil)
}

// snapshot returns a copy safe to hand out of the engine lock.
func (r *Run) snapshot() Run {
	out := *r
	out.History = append([]Transition(nil), r.History...)
	if r.Analysis != nil {
		a := *r.Analysis
		out.Analysis = &a
	}
	out.data = nil
	out.text = ""
	return out
}

// reset discards partial state ahead of a restart.
func (r *Run) reset() {
	r.Error = ""
	r.Pages = 0
	r.Fallback = false
	r.Analysis = nil
	r.Category = ""
	r.DocumentID = ""
	r.HighlightUntil = time.Time{}
	r.data = nil
	r.text = ""
}

func (r *Run) enter(spec StageSpec, now time.Time, errMsg string) {
	r.History = append(r.History, Transition{From: r.Stage, To: spec.Stage, At: now, Error: errMsg})
	r.Stage = spec.Stage
	r.Progress = spec.Progress
	r.EnteredAt = now
	r.DueAt = now.Add(spec.Duration)
	r.Error = errMsg
}
