package entities

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BriefingStatus represents the lifecycle state of a briefing record
type BriefingStatus string

const (
	BriefingStatusProcessing BriefingStatus = "processing" // Job enqueued or running
	BriefingStatusCompleted  BriefingStatus = "completed"  // All stages finished
	BriefingStatusFailed     BriefingStatus = "failed"     // Terminal failure, error captured
)

// CompanyInfo is the company enrichment result
type CompanyInfo struct {
	Domain     string  `json:"domain"`
	Name       string  `json:"name"`
	Summary    string  `json:"summary,omitempty"`
	Logo       string  `json:"logo,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Scan implements sql.Scanner interface for GORM
func (c *CompanyInfo) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, c)
}

// Value implements driver.Valuer interface for GORM
func (c CompanyInfo) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// AttendeeInfo is the enrichment result for a single attendee
type AttendeeInfo struct {
	Email            string   `json:"email"`
	DisplayName      string   `json:"displayName,omitempty"`
	Name             string   `json:"name,omitempty"`
	Title            string   `json:"title,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	FocusAreas       []string `json:"focusAreas,omitempty"`
	RecentHighlights []string `json:"recentHighlights,omitempty"`
	LinkedInURL      string   `json:"linkedInUrl,omitempty"`
	Confidence       float64  `json:"confidence"`
}

// AttendeeInfoList is a jsonb-serialized attendee result list
type AttendeeInfoList []AttendeeInfo

// Scan implements sql.Scanner interface for GORM
func (l *AttendeeInfoList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer interface for GORM
func (l AttendeeInfoList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// TalkingPoint is one suggested discussion item
type TalkingPoint struct {
	Point      string   `json:"point"`
	Rationale  string   `json:"rationale,omitempty"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

// TalkingPointList is a jsonb-serialized talking point list
type TalkingPointList []TalkingPoint

// Scan implements sql.Scanner interface for GORM
func (l *TalkingPointList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer interface for GORM
func (l TalkingPointList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Icebreaker is one suggested conversation opener
type Icebreaker struct {
	Icebreaker string   `json:"icebreaker"`
	Rationale  string   `json:"rationale,omitempty"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

// IcebreakerList is a jsonb-serialized icebreaker list
type IcebreakerList []Icebreaker

// Scan implements sql.Scanner interface for GORM
func (l *IcebreakerList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer interface for GORM
func (l IcebreakerList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// BriefingRecord is the evolving briefing artifact for one (owner, meeting)
// pair. Exactly one record ever exists per pair; regeneration mutates it.
type BriefingRecord struct {
	ID        uuid.UUID      `json:"-" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID   string         `json:"ownerId" gorm:"type:varchar(128);not null;uniqueIndex:idx_briefings_owner_meeting,priority:1"`
	MeetingID string         `json:"meetingId" gorm:"type:varchar(255);not null;uniqueIndex:idx_briefings_owner_meeting,priority:2"`
	Status    BriefingStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	JobID     string         `json:"jobId" gorm:"type:varchar(128)"`

	Model           *string   `json:"model,omitempty" gorm:"type:varchar(64)"`
	LastGeneratedAt time.Time `json:"lastGeneratedAt"`

	Company       *CompanyInfo     `json:"company,omitempty" gorm:"type:jsonb"`
	Attendees     AttendeeInfoList `json:"attendees,omitempty" gorm:"type:jsonb"`
	TalkingPoints TalkingPointList `json:"talkingPoints,omitempty" gorm:"type:jsonb"`
	Icebreakers   IcebreakerList   `json:"icebreakers,omitempty" gorm:"type:jsonb"`

	Error *string `json:"error,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (BriefingRecord) TableName() string {
	return "briefing_records"
}

// BriefingPatch is a partial update applied to a BriefingRecord with
// field-level merge semantics: nil fields are left untouched, so a later
// stage's write can never clear an earlier stage's result.
type BriefingPatch struct {
	Status          *BriefingStatus
	JobID           *string
	Model           *string
	LastGeneratedAt *time.Time
	Company         *CompanyInfo
	Attendees       AttendeeInfoList
	TalkingPoints   TalkingPointList
	Icebreakers     IcebreakerList
	Error           *string
}

// Updates returns the column map for the fields present in the patch
func (p BriefingPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.JobID != nil {
		updates["job_id"] = *p.JobID
	}
	if p.Model != nil {
		updates["model"] = *p.Model
	}
	if p.LastGeneratedAt != nil {
		updates["last_generated_at"] = *p.LastGeneratedAt
	}
	if p.Company != nil {
		updates["company"] = *p.Company
	}
	if p.Attendees != nil {
		updates["attendees"] = p.Attendees
	}
	if p.TalkingPoints != nil {
		updates["talking_points"] = p.TalkingPoints
	}
	if p.Icebreakers != nil {
		updates["icebreakers"] = p.Icebreakers
	}
	if p.Error != nil {
		updates["error"] = *p.Error
	}
	return updates
}

// Apply merges the patch into an in-memory record, mirroring the SQL merge
func (p BriefingPatch) Apply(rec *BriefingRecord) {
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.JobID != nil {
		rec.JobID = *p.JobID
	}
	if p.Model != nil {
		rec.Model = p.Model
	}
	if p.LastGeneratedAt != nil {
		rec.LastGeneratedAt = *p.LastGeneratedAt
	}
	if p.Company != nil {
		rec.Company = p.Company
	}
	if p.Attendees != nil {
		rec.Attendees = p.Attendees
	}
	if p.TalkingPoints != nil {
		rec.TalkingPoints = p.TalkingPoints
	}
	if p.Icebreakers != nil {
		rec.Icebreakers = p.Icebreakers
	}
	if p.Error != nil {
		rec.Error = p.Error
	}
}

// StatusPtr is a convenience for building patches
func StatusPtr(s BriefingStatus) *BriefingStatus { return &s }

// StringPtr is a convenience for building patches
func StringPtr(s string) *string { return &s }

// TimePtr is a convenience for building patches
func TimePtr(t time.Time) *time.Time { return &t }
