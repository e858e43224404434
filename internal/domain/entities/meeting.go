package entities

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Participant is a person attached to a calendar meeting
type Participant struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Organizer   bool   `json:"organizer,omitempty"`
}

// ParticipantList is a jsonb-serialized attendee list
type ParticipantList []Participant

// Scan implements sql.Scanner interface for GORM
func (l *ParticipantList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer interface for GORM
func (l ParticipantList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Meeting is a read-mostly snapshot of an external calendar event.
// The core does not fetch calendar data itself; rows are written by the
// calendar sync layer and consumed as enrichment input.
type Meeting struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     string          `json:"ownerId" gorm:"type:varchar(128);not null;uniqueIndex:idx_meetings_owner_meeting,priority:1"`
	MeetingID   string          `json:"meetingId" gorm:"type:varchar(255);not null;uniqueIndex:idx_meetings_owner_meeting,priority:2"`
	Summary     string          `json:"summary" gorm:"type:text"`
	Description string          `json:"description" gorm:"type:text"`
	Organizer   Participant     `json:"organizer" gorm:"type:jsonb;serializer:json"`
	Attendees   ParticipantList `json:"attendees" gorm:"type:jsonb"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     time.Time       `json:"endTime"`

	CachedAt      time.Time `json:"cachedAt" gorm:"autoCreateTime"`
	LastFetchedAt time.Time `json:"lastFetchedAt"`
}

// IsStale reports whether the snapshot is older than the given TTL
func (m *Meeting) IsStale(ttl time.Duration, now time.Time) bool {
	return now.Sub(m.LastFetchedAt) > ttl
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}
