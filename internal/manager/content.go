package manager

import (
	"fmt"
	"strings"

	"jarvisgw/internal/models"
)

// DefaultVideoDuration is the length in seconds assumed when a request omits it.
const DefaultVideoDuration = 30

const (
	defaultVideoTitle = "Untitled Video"
	defaultVideoStyle = "Cinematic"
	recentVideosLimit = 10
)

// TrackVideo records a generated video, books its cost and returns the stored
// entry with its itemized cost. Empty title/style and negative durations take
// defaults; a zero duration is kept and only the script cost applies.
func (m *Manager) TrackVideo(title, style string, durationSeconds int) (models.VideoEntry, models.VideoCost) {
	if strings.TrimSpace(title) == "" {
		title = defaultVideoTitle
	}
	if strings.TrimSpace(style) == "" {
		style = defaultVideoStyle
	}
	if durationSeconds < 0 {
		durationSeconds = DefaultVideoDuration
	}
	cost := m.ledger.TrackVideo(float64(durationSeconds))
	entry := models.VideoEntry{
		Title:     title,
		Duration:  FormatDuration(durationSeconds),
		Style:     style,
		Timestamp: nowISO(),
		Cost:      cost.Total,
	}
	m.videos.Append(entry)
	m.logf("Video tracked: %q (%s) cost=%.4f", title, entry.Duration, cost.Total)
	return entry, cost
}

// RecentVideos returns the newest tracked videos, oldest first, and the
// number of videos held in history.
func (m *Manager) RecentVideos() ([]models.VideoEntry, int) {
	return m.videos.Tail(recentVideosLimit), m.videos.Len()
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// SaveDraft stores content under the next draft id. An empty persona is
// recorded as the default persona.
func (m *Manager) SaveDraft(content, persona string) models.ContentDraft {
	if strings.TrimSpace(persona) == "" {
		persona = models.DefaultPersona
	}
	m.draftMu.Lock()
	m.draftSeq++
	draft := models.ContentDraft{
		ID:        m.draftSeq,
		Content:   content,
		Persona:   persona,
		Timestamp: nowISO(),
		WordCount: len(strings.Fields(content)),
	}
	// Append under draftMu so ids stay ordered in the history.
	m.drafts.Append(draft)
	m.draftMu.Unlock()
	return draft
}

// Drafts returns the saved drafts, newest first.
func (m *Manager) Drafts() []models.ContentDraft {
	drafts := m.drafts.Snapshot()
	for i, j := 0, len(drafts)-1; i < j; i, j = i+1, j-1 {
		drafts[i], drafts[j] = drafts[j], drafts[i]
	}
	return drafts
}
