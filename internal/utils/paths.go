// Package utils contains utility types for logging and filesystem path
// management used throughout the gateway.
package utils

import (
	"os"
	"path/filepath"
)

// Paths resolves the workspace locations the gateway reads from.
type Paths struct {
	RootPath string `json:"root_path" yaml:"root_path"`
}

// NewPaths constructs Paths rooted at the workspace base directory.
func NewPaths(rootPath string) *Paths {
	return &Paths{RootPath: rootPath}
}

// CoreDir returns the directory holding the gateway's own assets.
func (p *Paths) CoreDir() string {
	return filepath.Join(p.RootPath, "CORE", "jarvis")
}

// SkillsDir returns the skills library directory.
func (p *Paths) SkillsDir() string {
	return filepath.Join(p.RootPath, "SKILLS_LIBRARY", "anthropic-skills")
}

// WorkflowsDir returns the directory of saved workflow definitions.
func (p *Paths) WorkflowsDir() string {
	return filepath.Join(p.CoreDir(), "workflows")
}

// ConfigDir returns the gateway configuration directory.
func (p *Paths) ConfigDir() string {
	return filepath.Join(p.CoreDir(), "config")
}

// DriverConfigFile returns the AI driver registry file.
func (p *Paths) DriverConfigFile() string {
	return filepath.Join(p.ConfigDir(), "ai_driver_config.json")
}

// AntigravityConfigFile returns the anti-gravity settings file.
func (p *Paths) AntigravityConfigFile() string {
	return filepath.Join(p.RootPath, "ANTIGRAVITY_CONFIG.json")
}

// LogsDir returns the logs directory.
func (p *Paths) LogsDir() string {
	return filepath.Join(p.RootPath, "logs")
}

// LogFile returns the main gateway log file path.
func (p *Paths) LogFile() string {
	return filepath.Join(p.LogsDir(), "jarvisgw.log")
}

// Exists reports whether the workspace root is present on this host.
func (p *Paths) Exists() bool {
	if p == nil || p.RootPath == "" {
		return false
	}
	info, err := os.Stat(p.RootPath)
	return err == nil && info.IsDir()
}

// MetricsDiskPath returns the path whose filesystem is reported in metrics:
// the workspace when mounted, else the filesystem root.
func (p *Paths) MetricsDiskPath() string {
	if p.Exists() {
		return p.RootPath
	}
	return string(filepath.Separator)
}
