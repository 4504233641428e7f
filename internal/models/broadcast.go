package models

import (
	"fmt"
	"time"
)

// BroadcastMessage is the envelope pushed to every realtime client.
type BroadcastMessage struct {
	ID        string           `json:"id"`
	Timestamp string           `json:"timestamp"`
	Source    string           `json:"source"`
	Message   string           `json:"message"`
	Level     string           `json:"level"`
	Metrics   *MetricsSnapshot `json:"metrics,omitempty"`
}

const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

const (
	SourceSystem     = "SYSTEM"
	SourceJarvis     = "JARVIS"
	SourceMultimedia = "MULTIMEDIA"
	SourceCreative   = "CREATIVE"
	SourceEcho       = "ECHO"
	SourceContent    = "CONTENT"
)

// NewBroadcastMessage stamps a message with an id of the form "<kind>_<unix seconds>".
func NewBroadcastMessage(kind, source, level, message string) BroadcastMessage {
	now := time.Now()
	return BroadcastMessage{
		ID:        fmt.Sprintf("%s_%d", kind, now.Unix()),
		Timestamp: now.Format(time.RFC3339),
		Source:    source,
		Message:   message,
		Level:     level,
	}
}

// WithMetrics returns a copy carrying the given snapshot.
func (m BroadcastMessage) WithMetrics(snapshot MetricsSnapshot) BroadcastMessage {
	dup := snapshot
	m.Metrics = &dup
	return m
}
