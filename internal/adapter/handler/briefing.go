package handler

import (
	stdErrors "errors"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/briefing-assistant/errors"
	briefingdto "github.com/johnquangdev/briefing-assistant/internal/adapter/dto/briefing"
	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
	"github.com/johnquangdev/briefing-assistant/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/briefing-assistant/internal/usecase/briefing"
	usecaseErrors "github.com/johnquangdev/briefing-assistant/internal/usecase/errors"
)

// Briefing handles the briefing generation and polling endpoints
type Briefing struct {
	service briefing.Service
	logger  *zap.Logger
}

// NewBriefing creates a briefing handler
func NewBriefing(service briefing.Service, logger *zap.Logger) *Briefing {
	return &Briefing{
		service: service,
		logger:  logger,
	}
}

// Generate enqueues a briefing generation job for a meeting and returns the
// job id synchronously. Resubmission while a job is in flight returns the
// live job's id.
// POST /v1/meetings/:id/briefing
func (h *Briefing) Generate(c echo.Context) error {
	ownerID := middleware.OwnerID(c)
	meetingID := c.Param("id")

	var req briefingdto.GenerateBriefingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("briefingQuality must be compact, standard or deep"))
	}

	settings := entities.EnrichmentSettings{
		BriefingQuality:          entities.BriefingQuality(req.BriefingQuality),
		EnableLinkedInEnrichment: req.EnableLinkedInEnrichment,
		NotificationsEnabled:     req.NotificationsEnabled,
	}

	jobID, err := h.service.GenerateBriefing(c.Request().Context(), ownerID, meetingID, settings)
	if err != nil {
		return HandleError(h.logger, c, mapBriefingError(err, meetingID))
	}

	return HandleSuccess(h.logger, c, briefingdto.GenerateBriefingResponse{
		JobID:  jobID.String(),
		Status: string(entities.BriefingStatusProcessing),
	})
}

// Get returns the current briefing record for polling.
// GET /v1/meetings/:id/briefing
func (h *Briefing) Get(c echo.Context) error {
	ownerID := middleware.OwnerID(c)
	meetingID := c.Param("id")

	record, err := h.service.GetBriefing(c.Request().Context(), ownerID, meetingID)
	if err != nil {
		return HandleError(h.logger, c, mapBriefingError(err, meetingID))
	}

	return HandleSuccess(h.logger, c, briefingdto.ToBriefingResponse(record))
}

// ListMeetings returns the owner's meeting snapshots in a time range.
// GET /v1/meetings?from=...&to=...
func (h *Briefing) ListMeetings(c echo.Context) error {
	ownerID := middleware.OwnerID(c)

	var req briefingdto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("from/to must be RFC3339 timestamps"))
	}

	meetings, err := h.service.ListMeetings(c.Request().Context(), ownerID, from, to)
	if err != nil {
		return HandleError(h.logger, c, mapBriefingError(err, ""))
	}

	return HandleSuccess(h.logger, c, briefingdto.MeetingListResponse{
		Meetings: meetings,
		Count:    len(meetings),
	})
}

// parseRange parses the optional from/to query params, defaulting to the next
// seven days
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now
	to := now.Add(7 * 24 * time.Hour)

	var err error
	if fromStr != "" {
		if from, err = time.Parse(time.RFC3339, fromStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toStr != "" {
		if to, err = time.Parse(time.RFC3339, toStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

// mapBriefingError translates use case errors into API error envelopes
func mapBriefingError(err error, meetingID string) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrOwnerRequired):
		return errors.ErrUnauthenticated()
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput),
		stdErrors.Is(err, usecaseErrors.ErrInvalidQualityTier):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrBriefingNotFound):
		return errors.ErrBriefingNotFound(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrQueueUnavailable):
		return errors.ErrQueueUnavailable(err)
	default:
		return errors.ErrInternal(err)
	}
}
