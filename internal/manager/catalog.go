package manager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"jarvisgw/internal/models"
	"jarvisgw/internal/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrWorkflowNotFound is returned when no workflow file matches an id.
var ErrWorkflowNotFound = errors.New("workflow not found")

const skillDocFile = "SKILL.md"

// Skills lists skill directories that carry a SKILL.md, sorted by display name.
// A missing library yields an empty list.
func (m *Manager) Skills() []models.Skill {
	dir := m.Paths.SkillsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.logf("Skills: read %s failed: %v", dir, err)
		}
		return []models.Skill{}
	}
	skills := make([]models.Skill, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		location := filepath.Join(dir, e.Name())
		if _, err := os.Stat(filepath.Join(location, skillDocFile)); err != nil {
			continue
		}
		skills = append(skills, models.Skill{
			ID:       e.Name(),
			Name:     skillDisplayName(e.Name()),
			Location: location,
			HasDocs:  true,
		})
	}
	sort.SliceStable(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills
}

// skillDisplayName turns a directory name into a display name: hyphens become
// spaces and every run of letters is title-cased, so "pdf2word-tool" reads
// "Pdf2Word Tool" and "mcp_builder" reads "Mcp_Builder".
func skillDisplayName(dir string) string {
	name := strings.ReplaceAll(dir, "-", " ")
	title := cases.Title(language.Und)
	var b strings.Builder
	start := -1
	for i, r := range name {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(title.String(name[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(title.String(name[start:]))
	}
	return b.String()
}

// Workflows summarizes every *.json definition in the workflows directory.
// Unreadable or malformed files are skipped.
func (m *Manager) Workflows() []models.WorkflowSummary {
	files, err := filepath.Glob(filepath.Join(m.Paths.WorkflowsDir(), "*.json"))
	if err != nil {
		m.logf("Workflows: glob failed: %v", err)
		return []models.WorkflowSummary{}
	}
	out := make([]models.WorkflowSummary, 0, len(files))
	for _, path := range files {
		doc, err := readWorkflowFile(path)
		if err != nil {
			m.logf("Workflows: skipping %s: %v", filepath.Base(path), err)
			continue
		}
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out = append(out, models.WorkflowSummary{
			ID:          id,
			Name:        stringField(doc, "name", id),
			Description: stringField(doc, "description", ""),
			Steps:       stepCount(doc),
			Created:     stringField(doc, "created", "unknown"),
		})
	}
	return out
}

// Workflow loads one workflow document by id. Any JSON document is returned
// as parsed; when its root is an object it also gains "id" and "step_count".
func (m *Manager) Workflow(id string) (interface{}, error) {
	path, err := utils.SecureChildFile(m.Paths.WorkflowsDir(), id, ".json")
	if err != nil {
		return nil, ErrWorkflowNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrWorkflowNotFound
		}
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if obj, ok := doc.(map[string]interface{}); ok {
		obj["id"] = id
		obj["step_count"] = stepCount(obj)
	}
	return doc, nil
}

func readWorkflowFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}

func stringField(doc map[string]interface{}, key, fallback string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return fallback
}

func stepCount(doc map[string]interface{}) int {
	if steps, ok := doc["steps"].([]interface{}); ok {
		return len(steps)
	}
	return 0
}

var fallbackModels = []models.AIModel{
	{ID: "claude", Name: "Claude Sonnet", Provider: "Anthropic", Icon: "🎭", ContextWindow: "200k", Type: "text"},
	{ID: "grok", Name: "Grok 2", Provider: "xAI", Icon: "🚀", ContextWindow: "128k", Type: "text"},
	{ID: "gemini", Name: "Gemini Pro", Provider: "Google", Icon: "♊", ContextWindow: "1M", Type: "text"},
	{ID: "chatgpt", Name: "ChatGPT 4", Provider: "OpenAI", Icon: "🤖", ContextWindow: "128k", Type: "text"},
	{ID: "mistral", Name: "Mistral Large 3", Provider: "Mistral", Icon: "🇫🇷", ContextWindow: "256k", Type: "text"},
}

type driverConfig struct {
	Drivers map[string]struct {
		Name          string      `json:"name"`
		Icon          string      `json:"icon"`
		ContextWindow interface{} `json:"context_window"`
	} `json:"drivers"`
}

// AIModels lists the models from the driver registry, or the built-in list
// when the registry is absent or unreadable.
func (m *Manager) AIModels() []models.AIModel {
	path := m.Paths.DriverConfigFile()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.logf("Models: read %s failed: %v", path, err)
		}
		return defaultModels()
	}
	var cfg driverConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		m.logf("Models: parse %s failed: %v", path, err)
		return defaultModels()
	}
	ids := make([]string, 0, len(cfg.Drivers))
	for id := range cfg.Drivers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]models.AIModel, 0, len(ids))
	for _, id := range ids {
		d := cfg.Drivers[id]
		model := models.AIModel{
			ID:            id,
			Name:          d.Name,
			Provider:      "Unknown",
			Icon:          d.Icon,
			ContextWindow: contextWindowLabel(d.ContextWindow),
			Type:          "text",
		}
		if model.Name == "" {
			model.Name = id
		}
		if fields := strings.Fields(d.Name); len(fields) > 0 {
			model.Provider = fields[0]
		}
		if model.Icon == "" {
			model.Icon = "🤖"
		}
		out = append(out, model)
	}
	return out
}

func defaultModels() []models.AIModel {
	out := make([]models.AIModel, len(fallbackModels))
	copy(out, fallbackModels)
	return out
}

func contextWindowLabel(v interface{}) string {
	switch cw := v.(type) {
	case nil:
		return "N/A"
	case string:
		return cw
	case float64:
		return strconv.FormatFloat(cw, 'f', -1, 64)
	default:
		return fmt.Sprint(cw)
	}
}

// Antigravity reads the anti-gravity settings file. Keys missing from the
// file keep their defaults; a missing or malformed file yields the defaults.
func (m *Manager) Antigravity() models.AntigravityConfig {
	cfg := models.DefaultAntigravityConfig()
	path := m.Paths.AntigravityConfigFile()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.logf("Antigravity: read %s failed: %v", path, err)
		}
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		m.logf("Antigravity: parse %s failed: %v", path, err)
		return models.DefaultAntigravityConfig()
	}
	return cfg
}

// Dashboards returns the peer UIs with their live status.
func (m *Manager) Dashboards(ctx context.Context) []models.Dashboard {
	services := m.ServiceStatuses(ctx)
	return []models.Dashboard{
		{
			ID:        "ai-command-center",
			Name:      "AI Command Center",
			URL:       "http://localhost:3000",
			VercelURL: "https://jarvis.nikoskatsaounis.com",
			Status:    services[ServiceAICommandCenter].Status,
			Type:      "react",
		},
		{
			ID:     "workflow-studio",
			Name:   "Workflow Studio",
			URL:    "http://localhost:8560",
			Status: services[ServiceWorkflowStudio].Status,
			Type:   "streamlit",
		},
		{
			ID:     "ultimate-hub",
			Name:   "Ultimate Dashboard Hub",
			URL:    "http://localhost:8550",
			Status: services[ServiceUltimateHub].Status,
			Type:   "streamlit",
		},
	}
}
