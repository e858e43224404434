package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
)

// MeetingRepository handles meeting snapshot data operations
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Get retrieves a meeting snapshot by (owner, meeting)
func (r *MeetingRepository) Get(ctx context.Context, ownerID, meetingID string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND meeting_id = ?", ownerID, meetingID).
		First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// Upsert inserts or refreshes a meeting snapshot
func (r *MeetingRepository) Upsert(ctx context.Context, meeting *entities.Meeting) error {
	if meeting == nil {
		return errors.New("meeting cannot be nil")
	}
	meeting.LastFetchedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}, {Name: "meeting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"summary", "description", "organizer", "attendees",
				"start_time", "end_time", "last_fetched_at",
			}),
		}).
		Create(meeting).Error
}

// ListByRange retrieves an owner's meetings within a time window
func (r *MeetingRepository) ListByRange(ctx context.Context, ownerID string, from, to time.Time) ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND start_time >= ? AND start_time < ?", ownerID, from, to).
		Order("start_time ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}
