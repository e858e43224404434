package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/briefing-assistant/internal/usecase/errors"
	"github.com/johnquangdev/briefing-assistant/pkg/config"
	pkgvalidator "github.com/johnquangdev/briefing-assistant/pkg/validator"
)

// stubService scripts the briefing use case for handler tests
type stubService struct {
	jobID       uuid.UUID
	generateErr error
	record      *entities.BriefingRecord
	getErr      error
	meetings    []entities.Meeting

	gotOwnerID   string
	gotMeetingID string
	gotSettings  entities.EnrichmentSettings
}

func (s *stubService) GenerateBriefing(_ context.Context, ownerID, meetingID string, settings entities.EnrichmentSettings) (uuid.UUID, error) {
	s.gotOwnerID = ownerID
	s.gotMeetingID = meetingID
	s.gotSettings = settings
	return s.jobID, s.generateErr
}

func (s *stubService) GetBriefing(_ context.Context, ownerID, meetingID string) (*entities.BriefingRecord, error) {
	s.gotOwnerID = ownerID
	s.gotMeetingID = meetingID
	return s.record, s.getErr
}

func (s *stubService) ListMeetings(_ context.Context, ownerID string, _, _ time.Time) ([]entities.Meeting, error) {
	s.gotOwnerID = ownerID
	return s.meetings, nil
}

func setupEcho(svc *stubService) *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()

	cfg := &config.Config{}
	router := NewRouter(cfg, NewBriefing(svc, zap.NewNop()), zap.NewNop())
	router.Setup(e)
	return e
}

func doRequest(e *echo.Echo, method, path, ownerID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if ownerID != "" {
		req.Header.Set("X-Owner-ID", ownerID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGenerateBriefingEndpoint(t *testing.T) {
	jobID := uuid.New()
	svc := &stubService{jobID: jobID}
	e := setupEcho(svc)

	rec := doRequest(e, http.MethodPost, "/v1/meetings/mtg-1/briefing", "owner-1",
		`{"briefingQuality":"deep","enableLinkedInEnrichment":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner-1", svc.gotOwnerID)
	assert.Equal(t, "mtg-1", svc.gotMeetingID)
	assert.Equal(t, entities.BriefingQualityDeep, svc.gotSettings.BriefingQuality)
	assert.True(t, svc.gotSettings.EnableLinkedInEnrichment)

	var body struct {
		Data struct {
			JobID  string `json:"jobId"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, jobID.String(), body.Data.JobID)
	assert.Equal(t, "processing", body.Data.Status)
}

func TestGenerateBriefingRequiresOwner(t *testing.T) {
	e := setupEcho(&stubService{jobID: uuid.New()})

	rec := doRequest(e, http.MethodPost, "/v1/meetings/mtg-1/briefing", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateBriefingInvalidQuality(t *testing.T) {
	e := setupEcho(&stubService{jobID: uuid.New()})

	rec := doRequest(e, http.MethodPost, "/v1/meetings/mtg-1/briefing", "owner-1",
		`{"briefingQuality":"ultra"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateBriefingErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"meeting not found", usecaseErrors.ErrMeetingNotFound, http.StatusNotFound},
		{"queue unavailable", usecaseErrors.ErrQueueUnavailable, http.StatusServiceUnavailable},
		{"unexpected error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupEcho(&stubService{generateErr: tt.err})
			rec := doRequest(e, http.MethodPost, "/v1/meetings/mtg-1/briefing", "owner-1", `{}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestGetBriefingEndpoint(t *testing.T) {
	svc := &stubService{record: &entities.BriefingRecord{
		OwnerID:   "owner-1",
		MeetingID: "mtg-1",
		Status:    entities.BriefingStatusCompleted,
		Company:   &entities.CompanyInfo{Domain: "acme.com", Name: "Acme", Confidence: 0.8},
	}}
	e := setupEcho(svc)

	rec := doRequest(e, http.MethodGet, "/v1/meetings/mtg-1/briefing", "owner-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Status  string `json:"status"`
			Company *struct {
				Domain string `json:"domain"`
			} `json:"company"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "completed", body.Data.Status)
	require.NotNil(t, body.Data.Company)
	assert.Equal(t, "acme.com", body.Data.Company.Domain)
}

func TestGetBriefingNotFound(t *testing.T) {
	e := setupEcho(&stubService{getErr: usecaseErrors.ErrBriefingNotFound})

	rec := doRequest(e, http.MethodGet, "/v1/meetings/mtg-1/briefing", "owner-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMeetingsEndpoint(t *testing.T) {
	svc := &stubService{meetings: []entities.Meeting{
		{OwnerID: "owner-1", MeetingID: "mtg-1", Summary: "Sync"},
	}}
	e := setupEcho(svc)

	rec := doRequest(e, http.MethodGet, "/v1/meetings?from=2026-08-01T00:00:00Z&to=2026-08-08T00:00:00Z", "owner-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Count    int `json:"count"`
			Meetings []struct {
				MeetingID string `json:"meetingId"`
			} `json:"meetings"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Count)
	require.Len(t, body.Data.Meetings, 1)
	assert.Equal(t, "mtg-1", body.Data.Meetings[0].MeetingID)
}

func TestListMeetingsBadRange(t *testing.T) {
	e := setupEcho(&stubService{})

	rec := doRequest(e, http.MethodGet, "/v1/meetings?from=yesterday", "owner-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	e := setupEcho(&stubService{})

	rec := doRequest(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
