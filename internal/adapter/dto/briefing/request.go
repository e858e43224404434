package briefing

// GenerateBriefingRequest is the body for POST /v1/meetings/:id/briefing
type GenerateBriefingRequest struct {
	BriefingQuality          string `json:"briefingQuality" validate:"briefing_quality"`
	EnableLinkedInEnrichment bool   `json:"enableLinkedInEnrichment"`
	NotificationsEnabled     bool   `json:"notificationsEnabled"`
}

// ListMeetingsRequest carries the query parameters for GET /v1/meetings
type ListMeetingsRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}
