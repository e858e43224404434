package briefing

import (
	"encoding/json"
	"fmt"
	"strings"
)

// companySummaryResponse is the parsed company-summary LLM output
type companySummaryResponse struct {
	Description string `json:"description"`
	OneLine     string `json:"oneLine"`
	Summary     string `json:"summary"`
}

// Text returns the first populated description-like field
func (r companySummaryResponse) Text() string {
	if r.Description != "" {
		return r.Description
	}
	if r.OneLine != "" {
		return r.OneLine
	}
	return r.Summary
}

// attendeeSummaryResponse is the parsed attendee-summary LLM output
type attendeeSummaryResponse struct {
	Name             string   `json:"name"`
	Title            string   `json:"title"`
	Summary          string   `json:"summary"`
	FocusAreas       []string `json:"focusAreas"`
	RecentHighlights []string `json:"recentHighlights"`
	Confidence       *float64 `json:"confidence"`
}

// talkingPointItem tolerates both "point" and "bullet" field names from the model
type talkingPointItem struct {
	Point     string
	Rationale string
}

func (t *talkingPointItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Point      string `json:"point"`
		Bullet     string `json:"bullet"`
		Rationale  string `json:"rationale"`
		WhyItWorks string `json:"whyItWorks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Point = firstNonEmpty(raw.Point, raw.Bullet)
	t.Rationale = firstNonEmpty(raw.Rationale, raw.WhyItWorks)
	return nil
}

// icebreakerItem tolerates both "icebreaker" and "line" field names
type icebreakerItem struct {
	Icebreaker string
	Rationale  string
}

func (i *icebreakerItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Icebreaker string `json:"icebreaker"`
		Line       string `json:"line"`
		Rationale  string `json:"rationale"`
		WhyItWorks string `json:"whyItWorks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	i.Icebreaker = firstNonEmpty(raw.Icebreaker, raw.Line)
	i.Rationale = firstNonEmpty(raw.Rationale, raw.WhyItWorks)
	return nil
}

// talkingPointsResponse is the parsed terminal-stage LLM output
type talkingPointsResponse struct {
	TalkingPoints []talkingPointItem `json:"talkingPoints"`
	Icebreakers   []icebreakerItem   `json:"icebreakers"`
}

// parseCompanySummary parses the company-summary response. A non-JSON
// response is returned verbatim as the summary text.
func parseCompanySummary(content string) string {
	cleaned := extractJSON(content)

	var resp companySummaryResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err == nil {
		if text := resp.Text(); text != "" {
			return text
		}
	}
	return strings.TrimSpace(content)
}

// parseAttendeeSummary parses the attendee-summary response: a JSON object,
// the first element of a JSON array, or nil for free text
func parseAttendeeSummary(content string) *attendeeSummaryResponse {
	cleaned := extractJSON(content)

	var obj attendeeSummaryResponse
	if err := json.Unmarshal([]byte(cleaned), &obj); err == nil {
		return &obj
	}

	var list []attendeeSummaryResponse
	if err := json.Unmarshal([]byte(cleaned), &list); err == nil && len(list) > 0 {
		return &list[0]
	}

	return nil
}

// parseTalkingPoints parses the terminal-stage response. Unlike the earlier
// stages there is no free-text fallback: an unparseable response is an error.
func parseTalkingPoints(content string) (*talkingPointsResponse, error) {
	cleaned := extractJSON(content)

	var resp talkingPointsResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse talking points response: %w", err)
	}
	if len(resp.TalkingPoints) == 0 && len(resp.Icebreakers) == 0 {
		return nil, fmt.Errorf("talking points response contained no suggestions")
	}
	return &resp, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
