package manager

import (
	"sync"

	"jarvisgw/internal/models"

	"github.com/shopspring/decimal"
)

// Ledger categories.
const (
	CostInfrastructure = "infrastructure"
	CostAIAPIs         = "ai_apis"
	CostStorage        = "storage"
)

var (
	videoScriptCost  = decimal.RequireFromString("0.03")
	videoImagesRate  = decimal.RequireFromString("0.04") // per 30s
	videoVoiceRate   = decimal.RequireFromString("0.15") // per minute
	tokensPerMillion = decimal.NewFromInt(1_000_000)
)

// CostLedger accumulates spend per category. Amounts are only ever added.
type CostLedger struct {
	mu        sync.RWMutex
	total     decimal.Decimal
	breakdown map[string]decimal.Decimal
}

// NewCostLedger returns a ledger with every category at zero.
func NewCostLedger() *CostLedger {
	return &CostLedger{
		breakdown: map[string]decimal.Decimal{
			CostInfrastructure: decimal.Zero,
			CostAIAPIs:         decimal.Zero,
			CostStorage:        decimal.Zero,
		},
	}
}

// Track adds amount to category and the running total. Unknown categories
// and negative amounts are ignored and reported as not applied.
func (l *CostLedger) Track(category string, amount decimal.Decimal) bool {
	if amount.IsNegative() {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	current, ok := l.breakdown[category]
	if !ok {
		return false
	}
	l.breakdown[category] = current.Add(amount)
	l.total = l.total.Add(amount)
	return true
}

// VideoCost prices a generated video of the given length in seconds.
func VideoCost(durationSeconds float64) models.VideoCost {
	d := decimal.NewFromFloat(durationSeconds)
	images := d.Div(decimal.NewFromInt(30)).Mul(videoImagesRate).Round(4)
	voice := d.Div(decimal.NewFromInt(60)).Mul(videoVoiceRate).Round(4)
	total := videoScriptCost.Add(images).Add(voice).Round(4)
	return models.VideoCost{
		Script: videoScriptCost.InexactFloat64(),
		Images: images.InexactFloat64(),
		Voice:  voice.InexactFloat64(),
		Total:  total.InexactFloat64(),
	}
}

// TrackVideo prices a video and books it under ai_apis.
func (l *CostLedger) TrackVideo(durationSeconds float64) models.VideoCost {
	cost := VideoCost(durationSeconds)
	l.Track(CostAIAPIs, decimal.NewFromFloat(cost.Total))
	return cost
}

// TrackTokens books a completion call priced per million tokens and returns
// the amount charged.
func (l *CostLedger) TrackTokens(inputTokens, outputTokens int64, inputPerMTok, outputPerMTok float64) float64 {
	in := decimal.NewFromInt(inputTokens).Mul(decimal.NewFromFloat(inputPerMTok))
	out := decimal.NewFromInt(outputTokens).Mul(decimal.NewFromFloat(outputPerMTok))
	amount := in.Add(out).Div(tokensPerMillion).Round(6)
	l.Track(CostAIAPIs, amount)
	return amount.InexactFloat64()
}

// Total returns the running total rounded to four decimals.
func (l *CostLedger) Total() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total.Round(4).InexactFloat64()
}

// Snapshot returns the ledger's public view.
func (l *CostLedger) Snapshot() models.CostSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	breakdown := make(map[string]float64, len(l.breakdown))
	for k, v := range l.breakdown {
		breakdown[k] = v.InexactFloat64()
	}
	return models.CostSnapshot{
		TotalCost: l.total.Round(4).InexactFloat64(),
		Breakdown: breakdown,
		Currency:  "USD",
		Period:    "current_month",
	}
}
