package entities

// BriefingQuality selects the cost/quality tier for briefing generation
type BriefingQuality string

const (
	BriefingQualityCompact  BriefingQuality = "compact"
	BriefingQualityStandard BriefingQuality = "standard"
	BriefingQualityDeep     BriefingQuality = "deep"
)

// CallType distinguishes extraction-style LLM calls from generative ones
type CallType string

const (
	CallTypeExtraction CallType = "extraction"
	CallTypeCreative   CallType = "creative"
)

// EnrichmentSettings controls how much enrichment a briefing job performs
type EnrichmentSettings struct {
	BriefingQuality          BriefingQuality `json:"briefingQuality"`
	EnableLinkedInEnrichment bool            `json:"enableLinkedInEnrichment"`
	NotificationsEnabled     bool            `json:"notificationsEnabled"`
}

// Normalize fills in the default quality tier for empty or unknown values
func (s *EnrichmentSettings) Normalize() {
	switch s.BriefingQuality {
	case BriefingQualityCompact, BriefingQualityStandard, BriefingQualityDeep:
	default:
		s.BriefingQuality = BriefingQualityStandard
	}
}

// Model maps the quality tier to an LLM model identifier
func (q BriefingQuality) Model() string {
	switch q {
	case BriefingQualityDeep:
		return "gpt-4o"
	default:
		return "gpt-4o-mini"
	}
}

// MaxTokens is the pipeline-wide output token budget for the tier
func (q BriefingQuality) MaxTokens() int {
	switch q {
	case BriefingQualityCompact:
		return 500
	case BriefingQualityDeep:
		return 2000
	default:
		return 1000
	}
}

// CompanySummaryMaxTokens is the per-call budget for the company summary stage
func (q BriefingQuality) CompanySummaryMaxTokens() int {
	if q == BriefingQualityCompact {
		return 200
	}
	return 400
}

// AttendeeSummaryMaxTokens is the per-call budget for a single attendee summary
func (q BriefingQuality) AttendeeSummaryMaxTokens() int {
	if q == BriefingQualityCompact {
		return 150
	}
	return 300
}

// TemperatureFor returns the sampling temperature for a call type:
// low for extraction calls, higher for generative talking-point calls
func TemperatureFor(t CallType) float64 {
	if t == CallTypeExtraction {
		return 0.2
	}
	return 0.6
}
