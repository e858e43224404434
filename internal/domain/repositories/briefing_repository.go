package repositories

import (
	"context"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
)

// BriefingRepository is the durable result store for briefing records.
// Upsert performs a field-level merge: only fields present in the patch are
// written, existing sub-results are never cleared. Concurrent upserts for the
// same key are serialized upstream by the queue's one-live-job-per-key
// guarantee, so no locking is required here.
type BriefingRepository interface {
	Get(ctx context.Context, ownerID, meetingID string) (*entities.BriefingRecord, error)
	Upsert(ctx context.Context, ownerID, meetingID string, patch entities.BriefingPatch) error
}
