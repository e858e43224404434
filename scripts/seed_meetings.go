package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/johnquangdev/briefing-assistant/internal/adapter/repository"
	"github.com/johnquangdev/briefing-assistant/internal/domain/entities"
	"github.com/johnquangdev/briefing-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/briefing-assistant/pkg/config"
)

func main() {
	log.Println("🚀 Starting test meeting creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	meetingRepo := repository.NewMeetingRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	// Define test meetings for the demo owner
	testMeetings := []*entities.Meeting{
		{
			OwnerID:     "owner-demo",
			MeetingID:   "mtg-acme-quarterly",
			Summary:     "Quarterly sync with Acme",
			Description: "Roadmap review.\nProfiles: https://www.linkedin.com/in/jane-doe",
			Organizer:   entities.Participant{Email: "host@acme.com", DisplayName: "Acme Host", Organizer: true},
			Attendees: entities.ParticipantList{
				{Email: "janedoe@acme.com", DisplayName: "Jane Doe"},
				{Email: "bob@acme.com", DisplayName: "Bob Smith"},
			},
			StartTime:     now.Add(24 * time.Hour),
			EndTime:       now.Add(25 * time.Hour),
			LastFetchedAt: now,
		},
		{
			OwnerID:     "owner-demo",
			MeetingID:   "mtg-widgets-intro",
			Summary:     "Intro call with Widgets.io",
			Description: "First contact, no agenda yet.",
			Organizer:   entities.Participant{Email: "founder@widgets.io", DisplayName: "Widgets Founder", Organizer: true},
			Attendees: entities.ParticipantList{
				{Email: "cto@widgets.io", DisplayName: "Widgets CTO"},
			},
			StartTime:     now.Add(48 * time.Hour),
			EndTime:       now.Add(49 * time.Hour),
			LastFetchedAt: now,
		},
		{
			OwnerID:     "owner-demo",
			MeetingID:   "mtg-personal",
			Summary:     "Coffee chat",
			Description: "Catch-up, personal accounts only.",
			Organizer:   entities.Participant{Email: "friend@gmail.com", Organizer: true},
			Attendees: entities.ParticipantList{
				{Email: "other@yahoo.com"},
			},
			StartTime:     now.Add(72 * time.Hour),
			EndTime:       now.Add(73 * time.Hour),
			LastFetchedAt: now,
		},
	}

	log.Println("📅 Creating test meetings...")
	for _, meeting := range testMeetings {
		if err := meetingRepo.Upsert(ctx, meeting); err != nil {
			log.Printf("❌ Failed to create meeting %s: %v", meeting.MeetingID, err)
			continue
		}
		log.Printf("✅ Meeting created: %s (%s)", meeting.MeetingID, meeting.Summary)
	}

	fmt.Println()
	log.Println("✅ Done! Generate a briefing with:")
	log.Println(`   curl -X POST -H "X-Owner-ID: owner-demo" http://localhost:8080/v1/meetings/mtg-acme-quarterly/briefing`)
}
