package briefing

import (
	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
)

// GenerateBriefingResponse is returned synchronously from an enqueue request
type GenerateBriefingResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// BriefingResponse is the polling shape of a briefing record
type BriefingResponse struct {
	*entities.BriefingRecord
}

// ToBriefingResponse wraps a record for the polling endpoint
func ToBriefingResponse(record *entities.BriefingRecord) BriefingResponse {
	return BriefingResponse{BriefingRecord: record}
}

// MeetingListResponse is the cached meeting list shape
type MeetingListResponse struct {
	Meetings []entities.Meeting `json:"meetings"`
	Count    int                `json:"count"`
}
