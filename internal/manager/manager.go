// Package manager owns the gateway's process-wide state: host telemetry,
// service probing, workspace catalogs, the cost ledger and the bounded
// content histories.
package manager

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"jarvisgw/internal/models"
	"jarvisgw/internal/utils"
)

// Broadcaster fans a message out to every realtime client and reports how
// many received it.
type Broadcaster interface {
	BroadcastJSON(v interface{}) int
}

// Manager is created once per process. Every collection it holds carries its
// own lock; the zero value is not usable, build one with New.
type Manager struct {
	Config *Config
	Paths  *utils.Paths
	Log    *utils.Logger

	host    HostProbe
	hub     Broadcaster
	hubMu   sync.RWMutex
	ledger  *CostLedger
	metrics *boundedList[models.MetricsSample]
	videos  *boundedList[models.VideoEntry]
	drafts  *boundedList[models.ContentDraft]

	draftSeq int64
	draftMu  sync.Mutex

	activeModel   string
	activeModelMu sync.RWMutex

	telemetryMu   sync.Mutex
	telemetryStop chan struct{}
	telemetryWG   sync.WaitGroup
}

// Option customizes a Manager at construction.
type Option func(*Manager)

// WithHostProbe replaces the gopsutil-backed host probe.
func WithHostProbe(p HostProbe) Option {
	return func(m *Manager) {
		if p != nil {
			m.host = p
		}
	}
}

// WithLogger sets the logger used for suppressed failures.
func WithLogger(l *utils.Logger) Option {
	return func(m *Manager) { m.Log = l }
}

// New builds a Manager for cfg. A nil cfg uses DefaultConfig.
func New(cfg *Config, opts ...Option) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	m := &Manager{
		Config:      cfg,
		Paths:       utils.NewPaths(cfg.WorkspaceBase),
		host:        NewHostProbe(),
		ledger:      NewCostLedger(),
		metrics:     newBoundedList[models.MetricsSample](maxMetricsHistory),
		videos:      newBoundedList[models.VideoEntry](maxVideoHistory),
		drafts:      newBoundedList[models.ContentDraft](maxContentDrafts),
		activeModel: cfg.Completion.DefaultModelID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetBroadcaster attaches the realtime hub. Broadcasts before this call are dropped.
func (m *Manager) SetBroadcaster(b Broadcaster) {
	m.hubMu.Lock()
	m.hub = b
	m.hubMu.Unlock()
}

// Broadcast stamps and fans out a message, returning the delivery count.
func (m *Manager) Broadcast(msg models.BroadcastMessage) int {
	m.hubMu.RLock()
	hub := m.hub
	m.hubMu.RUnlock()
	if hub == nil {
		return 0
	}
	return hub.BroadcastJSON(msg)
}

// Ledger exposes the cost ledger.
func (m *Manager) Ledger() *CostLedger {
	return m.ledger
}

// ActiveModel returns the id of the currently selected text model.
func (m *Manager) ActiveModel() string {
	m.activeModelMu.RLock()
	defer m.activeModelMu.RUnlock()
	return m.activeModel
}

// SwitchModel records id as the active model and announces it.
func (m *Manager) SwitchModel(id string) {
	id = strings.TrimSpace(id)
	m.activeModelMu.Lock()
	m.activeModel = id
	m.activeModelMu.Unlock()
	m.logf("Active model switched to %s", id)
	m.Broadcast(models.NewBroadcastMessage("model_switch", models.SourceJarvis, models.LevelSuccess, "Switched to model: "+id))
}

func (m *Manager) logf(format string, args ...interface{}) {
	if m == nil || m.Log == nil {
		return
	}
	m.Log.Write(fmt.Sprintf(format, args...))
}

func nowISO() string {
	return time.Now().Format(time.RFC3339)
}
