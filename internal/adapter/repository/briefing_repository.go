package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
)

// BriefingRepository handles briefing record data operations
type BriefingRepository struct {
	db *gorm.DB
}

// NewBriefingRepository creates a new briefing repository
func NewBriefingRepository(db *gorm.DB) *BriefingRepository {
	return &BriefingRepository{db: db}
}

// Get retrieves the briefing record for an (owner, meeting) pair
func (r *BriefingRepository) Get(ctx context.Context, ownerID, meetingID string) (*entities.BriefingRecord, error) {
	var rec entities.BriefingRecord
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND meeting_id = ?", ownerID, meetingID).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Upsert merges the patch into the record for (owner, meeting), creating the
// record if it does not exist. Only fields present in the patch are written.
func (r *BriefingRepository) Upsert(ctx context.Context, ownerID, meetingID string, patch entities.BriefingPatch) error {
	updates := patch.Updates()
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec entities.BriefingRecord
		err := tx.Where("owner_id = ? AND meeting_id = ?", ownerID, meetingID).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = entities.BriefingRecord{
				ID:        uuid.New(),
				OwnerID:   ownerID,
				MeetingID: meetingID,
				Status:    entities.BriefingStatusProcessing,
			}
			patch.Apply(&rec)
			return tx.Create(&rec).Error
		}
		if err != nil {
			return err
		}

		updates["updated_at"] = time.Now()
		return tx.Model(&entities.BriefingRecord{}).
			Where("owner_id = ? AND meeting_id = ?", ownerID, meetingID).
			Updates(updates).Error
	})
}
