package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
	"github.com/johnquangdev/briefing-assistant/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/briefing-assistant/internal/usecase/errors"
	"github.com/johnquangdev/briefing-assistant/pkg/ai"
	"github.com/johnquangdev/briefing-assistant/pkg/prompts"
)

// Enrichment cost controls
const (
	maxEnrichedAttendees = 5

	companyConfidenceWithSnippet = 0.8
	companyConfidenceBare        = 0.5
	attendeeConfidenceLinkedIn   = 0.7
	attendeeConfidenceBare       = 0.3
	suggestionConfidence         = 0.7
)

// LLMClient is the chat-completion provider used by the pipeline
type LLMClient interface {
	ChatCompletion(ctx context.Context, request ai.ChatRequest) (string, error)
}

// LookupClient performs best-effort public lookups for company signals
type LookupClient interface {
	LookupLogoURL(ctx context.Context, domain string) string
	FetchHomepageSnippet(ctx context.Context, domain string) string
}

// Pipeline runs the ordered enrichment stages for one briefing job, persisting
// each stage's contribution before the next stage starts. A crash mid-pipeline
// leaves a partially enriched, still-usable record.
type Pipeline struct {
	llm       LLMClient
	lookup    LookupClient
	briefings repositories.BriefingRepository
	meetings  repositories.MeetingRepository
	prompts   *prompts.Loader
	logger    *zap.Logger
}

// NewPipeline creates an enrichment pipeline
func NewPipeline(
	llm LLMClient,
	lookup LookupClient,
	briefings repositories.BriefingRepository,
	meetings repositories.MeetingRepository,
	promptLoader *prompts.Loader,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		llm:       llm,
		lookup:    lookup,
		briefings: briefings,
		meetings:  meetings,
		prompts:   promptLoader,
		logger:    logger,
	}
}

// Run executes the full pipeline for a job. Company and attendee stage
// failures degrade the record and continue; only the terminal talking-points
// stage returns an error, which fails the job.
func (p *Pipeline) Run(ctx context.Context, job *entities.BriefingJob) error {
	settings := job.Settings.Data()
	settings.Normalize()
	quality := settings.BriefingQuality

	meeting, err := p.meetings.Get(ctx, job.OwnerID, job.MeetingID)
	if err != nil {
		return fmt.Errorf("failed to load meeting %s: %w", job.MeetingID, err)
	}
	if meeting == nil {
		return usecaseErrors.ErrMeetingNotFound
	}

	logger := p.logger.With(
		zap.String("job_id", job.ID.String()),
		zap.String("owner_id", job.OwnerID),
		zap.String("meeting_id", job.MeetingID),
		zap.String("quality", string(quality)),
	)

	// Stages 1-3: company enrichment. A missing corporate domain or an LLM
	// failure leaves the company field absent, never fails the job.
	if company := p.enrichCompany(ctx, meeting, quality, logger); company != nil {
		if err := p.briefings.Upsert(ctx, job.OwnerID, job.MeetingID, entities.BriefingPatch{
			Company: company,
		}); err != nil {
			return fmt.Errorf("failed to persist company enrichment: %w", err)
		}
		logger.Info("✅ Company enrichment persisted", zap.String("domain", company.Domain))
	}

	// Stage 4: attendee enrichment, always producing a (possibly degraded) list
	attendees := p.enrichAttendees(ctx, meeting, settings, logger)
	if len(attendees) > 0 {
		if err := p.briefings.Upsert(ctx, job.OwnerID, job.MeetingID, entities.BriefingPatch{
			Attendees: attendees,
		}); err != nil {
			return fmt.Errorf("failed to persist attendee enrichment: %w", err)
		}
		logger.Info("✅ Attendee enrichment persisted", zap.Int("count", len(attendees)))
	}

	// Stage 5: talking points and icebreakers. This is the terminal stage;
	// failure here fails the job while earlier results stay persisted.
	record, err := p.briefings.Get(ctx, job.OwnerID, job.MeetingID)
	if err != nil {
		return fmt.Errorf("failed to reload briefing record: %w", err)
	}

	talkingPoints, icebreakers, err := p.generateSuggestions(ctx, meeting, record, quality)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := p.briefings.Upsert(ctx, job.OwnerID, job.MeetingID, entities.BriefingPatch{
		Status:          entities.StatusPtr(entities.BriefingStatusCompleted),
		Model:           entities.StringPtr(quality.Model()),
		LastGeneratedAt: entities.TimePtr(now),
		TalkingPoints:   talkingPoints,
		Icebreakers:     icebreakers,
	}); err != nil {
		return fmt.Errorf("failed to finalize briefing record: %w", err)
	}

	logger.Info("✅ Briefing generated",
		zap.Int("talking_points", len(talkingPoints)),
		zap.Int("icebreakers", len(icebreakers)))
	return nil
}

// enrichCompany runs the domain inference, signal gathering and summary
// stages. Returns nil when company enrichment is skipped or degrades away.
func (p *Pipeline) enrichCompany(ctx context.Context, meeting *entities.Meeting, quality entities.BriefingQuality, logger *zap.Logger) *entities.CompanyInfo {
	domain := InferCompanyDomain(meeting)
	if domain == "" {
		logger.Info("🔄 No corporate domain found, skipping company enrichment")
		return nil
	}

	logo := p.lookup.LookupLogoURL(ctx, domain)
	snippet := p.lookup.FetchHomepageSnippet(ctx, domain)

	name := CompanyNameFromDomain(domain)
	aboutText := snippet
	if aboutText == "" {
		aboutText = "No public company information available."
	}

	tmpl, err := p.prompts.Load(prompts.TemplateCompanySummary)
	if err != nil {
		logger.Warn("❌ Company summary prompt unavailable", zap.Error(err))
		return nil
	}

	messages := prompts.RenderMessages(tmpl, map[string]string{
		"company.name":      name,
		"company.domain":    domain,
		"company.aboutText": aboutText,
	})

	content, err := p.llm.ChatCompletion(ctx, ai.ChatRequest{
		Model:       quality.Model(),
		Messages:    toChatMessages(messages),
		Temperature: entities.TemperatureFor(entities.CallTypeExtraction),
		MaxTokens:   quality.CompanySummaryMaxTokens(),
	})
	if err != nil {
		logger.Warn("❌ Company summary generation failed", zap.String("domain", domain), zap.Error(err))
		return nil
	}

	confidence := companyConfidenceBare
	if snippet != "" {
		confidence = companyConfidenceWithSnippet
	}

	return &entities.CompanyInfo{
		Domain:     domain,
		Name:       name,
		Summary:    parseCompanySummary(content),
		Logo:       logo,
		Confidence: confidence,
	}
}

// enrichAttendees enriches at most the first maxEnrichedAttendees attendees.
// Per-attendee failures yield a degraded record, never abort the stage.
func (p *Pipeline) enrichAttendees(ctx context.Context, meeting *entities.Meeting, settings entities.EnrichmentSettings, logger *zap.Logger) entities.AttendeeInfoList {
	attendees := meeting.Attendees
	if len(attendees) > maxEnrichedAttendees {
		attendees = attendees[:maxEnrichedAttendees]
	}
	if len(attendees) == 0 {
		return nil
	}

	var profileURLs []string
	if settings.EnableLinkedInEnrichment {
		profileURLs = ExtractLinkedInURLs(meeting.Description)
	}

	results := make(entities.AttendeeInfoList, 0, len(attendees))
	for _, attendee := range attendees {
		results = append(results, p.enrichAttendee(ctx, meeting, attendee, profileURLs, settings, logger))
	}
	return results
}

func (p *Pipeline) enrichAttendee(ctx context.Context, meeting *entities.Meeting, attendee entities.Participant, profileURLs []string, settings entities.EnrichmentSettings, logger *zap.Logger) entities.AttendeeInfo {
	info := entities.AttendeeInfo{
		Email:       attendee.Email,
		DisplayName: attendee.DisplayName,
	}

	linkedInURL := ""
	if settings.EnableLinkedInEnrichment {
		linkedInURL = MatchLinkedInURL(attendee, profileURLs)
	}
	info.LinkedInURL = linkedInURL

	tmpl, err := p.prompts.Load(prompts.TemplateAttendeeSummary)
	if err != nil {
		logger.Warn("❌ Attendee summary prompt unavailable", zap.Error(err))
		return info
	}

	displayName := attendee.DisplayName
	if displayName == "" {
		displayName = attendee.Email
	}

	messages := prompts.RenderMessages(tmpl, map[string]string{
		"name":           displayName,
		"email":          attendee.Email,
		"linkedinUrl":    linkedInURL,
		"meetingContext": meeting.Summary,
	})

	quality := settings.BriefingQuality
	content, err := p.llm.ChatCompletion(ctx, ai.ChatRequest{
		Model:       quality.Model(),
		Messages:    toChatMessages(messages),
		Temperature: entities.TemperatureFor(entities.CallTypeExtraction),
		MaxTokens:   quality.AttendeeSummaryMaxTokens(),
	})
	if err != nil {
		logger.Warn("❌ Attendee enrichment failed",
			zap.String("email", attendee.Email), zap.Error(err))
		return info // degraded: bare email/displayName, confidence 0
	}

	info.Confidence = attendeeConfidenceBare
	if linkedInURL != "" {
		info.Confidence = attendeeConfidenceLinkedIn
	}

	parsed := parseAttendeeSummary(content)
	if parsed == nil {
		info.Summary = content
		return info
	}

	info.Name = parsed.Name
	info.Title = parsed.Title
	info.Summary = parsed.Summary
	info.FocusAreas = parsed.FocusAreas
	info.RecentHighlights = parsed.RecentHighlights
	if parsed.Confidence != nil {
		info.Confidence = *parsed.Confidence
	}
	return info
}

// generateSuggestions runs the terminal talking-points/icebreakers stage
func (p *Pipeline) generateSuggestions(ctx context.Context, meeting *entities.Meeting, record *entities.BriefingRecord, quality entities.BriefingQuality) (entities.TalkingPointList, entities.IcebreakerList, error) {
	tmpl, err := p.prompts.Load(prompts.TemplateTalkingPoints)
	if err != nil {
		return nil, nil, err
	}

	messages := prompts.RenderMessages(tmpl, map[string]string{
		"companyBriefJson": companyBrief(record),
		"attendeesArray":   attendeesBrief(record),
		"meeting.intent":   meeting.Description,
		"tone":             "warm, professional",
		"length":           lengthFor(quality),
	})

	content, err := p.llm.ChatCompletion(ctx, ai.ChatRequest{
		Model:       quality.Model(),
		Messages:    toChatMessages(messages),
		Temperature: entities.TemperatureFor(entities.CallTypeCreative),
		MaxTokens:   quality.MaxTokens(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("talking points generation failed: %w", err)
	}

	parsed, err := parseTalkingPoints(content)
	if err != nil {
		return nil, nil, err
	}

	talkingPoints := make(entities.TalkingPointList, 0, len(parsed.TalkingPoints))
	for _, item := range parsed.TalkingPoints {
		talkingPoints = append(talkingPoints, entities.TalkingPoint{
			Point:      item.Point,
			Rationale:  item.Rationale,
			Confidence: suggestionConfidence,
			Sources:    []string{},
		})
	}

	icebreakers := make(entities.IcebreakerList, 0, len(parsed.Icebreakers))
	for _, item := range parsed.Icebreakers {
		icebreakers = append(icebreakers, entities.Icebreaker{
			Icebreaker: item.Icebreaker,
			Rationale:  item.Rationale,
			Confidence: suggestionConfidence,
			Sources:    []string{},
		})
	}

	return talkingPoints, icebreakers, nil
}

// companyBrief renders a compact JSON summary of the company result for the
// terminal-stage prompt
func companyBrief(record *entities.BriefingRecord) string {
	if record == nil || record.Company == nil {
		return "{}"
	}
	brief := map[string]string{
		"name":        record.Company.Name,
		"domain":      record.Company.Domain,
		"description": record.Company.Summary,
	}
	b, _ := json.Marshal(brief)
	return string(b)
}

// attendeesBrief renders a compact JSON summary of the attendee results
func attendeesBrief(record *entities.BriefingRecord) string {
	if record == nil || len(record.Attendees) == 0 {
		return "[]"
	}
	briefs := make([]map[string]string, 0, len(record.Attendees))
	for _, a := range record.Attendees {
		name := a.Name
		if name == "" {
			name = a.DisplayName
		}
		if name == "" {
			name = a.Email
		}
		briefs = append(briefs, map[string]string{
			"name":    name,
			"summary": a.Summary,
		})
	}
	b, _ := json.Marshal(briefs)
	return string(b)
}

func lengthFor(quality entities.BriefingQuality) string {
	switch quality {
	case entities.BriefingQualityCompact:
		return "short"
	case entities.BriefingQualityDeep:
		return "detailed"
	default:
		return "medium"
	}
}

func toChatMessages(messages []prompts.Message) []ai.ChatMessage {
	out := make([]ai.ChatMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, ai.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
