package models

// VideoEntry records one tracked video generation.
type VideoEntry struct {
	Title     string  `json:"title"`
	Duration  string  `json:"duration"`
	Style     string  `json:"style"`
	Timestamp string  `json:"timestamp"`
	Cost      float64 `json:"cost"`
}

// VideoCost itemizes the cost of a generated video.
type VideoCost struct {
	Script float64 `json:"script"`
	Images float64 `json:"images"`
	Voice  float64 `json:"voice"`
	Total  float64 `json:"total"`
}

// ContentDraft is a saved piece of generated or edited content.
type ContentDraft struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Persona   string `json:"persona"`
	Timestamp string `json:"timestamp"`
	WordCount int    `json:"word_count"`
}

// CostSnapshot is the public view of the cost ledger.
type CostSnapshot struct {
	TotalCost float64            `json:"total_cost"`
	Breakdown map[string]float64 `json:"breakdown"`
	Currency  string             `json:"currency"`
	Period    string             `json:"period"`
}

// Personas accepted by content generation, in display order.
var Personas = []string{"Storyteller", "Poet", "Journalist", "Philosopher", "Comedian", "Mentor"}

// DefaultPersona is applied when a request leaves persona empty.
const DefaultPersona = "Storyteller"

// IsPersona reports whether name is one of the supported personas.
func IsPersona(name string) bool {
	for _, p := range Personas {
		if p == name {
			return true
		}
	}
	return false
}
