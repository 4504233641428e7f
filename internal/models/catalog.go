package models

// Skill is an automation skill discovered in the skills library.
type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	HasDocs  bool   `json:"has_docs"`
}

// WorkflowSummary is the listing view of a saved workflow definition.
type WorkflowSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Steps       int    `json:"steps"`
	Created     string `json:"created"`
}

// AIModel describes a selectable text model.
type AIModel struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	Icon          string `json:"icon"`
	ContextWindow string `json:"contextWindow"`
	Type          string `json:"type"`
}

// Dashboard describes one of the peer UIs served alongside the gateway.
type Dashboard struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	VercelURL string `json:"vercel_url,omitempty"`
	Status    string `json:"status"`
	Type      string `json:"type"`
}

// AntigravityConfig mirrors ANTIGRAVITY_CONFIG.json.
type AntigravityConfig struct {
	Enabled           bool    `json:"antigravity_enabled"`
	WeightlessMode    bool    `json:"weightless_mode"`
	OptimizationLevel string  `json:"optimization_level"`
	GravityLevel      float64 `json:"gravity_level"`
	PerformanceBoost  float64 `json:"performance_boost"`
}

// DefaultAntigravityConfig is used when no config file is present.
func DefaultAntigravityConfig() AntigravityConfig {
	return AntigravityConfig{
		Enabled:           true,
		WeightlessMode:    true,
		OptimizationLevel: "maximum",
		GravityLevel:      0.1,
		PerformanceBoost:  0.9,
	}
}
