package notify

import "time"

// Outcome values carried by BuildEvent.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// ScriptStatus reports one remote script of a build.
type ScriptStatus struct {
	Name   string `json:"name"`
	Status int    `json:"status,omitempty"`
	Bytes  int    `json:"bytes,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BuildEvent is published once per build.
type BuildEvent struct {
	BuildID    string            `json:"build_id"`
	Outcome    string            `json:"outcome"`
	Timestamp  time.Time         `json:"timestamp"`
	DurationMS int64             `json:"duration_ms"`
	Pages      []string          `json:"pages,omitempty"`
	Articles   map[string]string `json:"articles,omitempty"` // id -> content fingerprint
	Scripts    []ScriptStatus    `json:"scripts,omitempty"`
	Error      string            `json:"error,omitempty"`
}
