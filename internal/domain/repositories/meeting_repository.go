package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
)

// MeetingRepository stores calendar meeting snapshots per owner.
type MeetingRepository interface {
	Get(ctx context.Context, ownerID, meetingID string) (*entities.Meeting, error)
	Upsert(ctx context.Context, meeting *entities.Meeting) error
	ListByRange(ctx context.Context, ownerID string, from, to time.Time) ([]entities.Meeting, error)
}
