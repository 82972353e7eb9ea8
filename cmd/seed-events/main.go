package main

import (
	"context"
	"log"
	"time"

	"eventbroker/internal/config"
	"eventbroker/internal/database"
	"eventbroker/internal/models"
	"eventbroker/internal/repositories"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	eventRepo := repositories.NewEventRepository(db.DB)
	now := time.Now()

	seeds := []*models.EventCreateRequest{
		{
			Title:       "Midnight Jazz Collective",
			Description: "An intimate evening of improvised jazz with a rotating quartet.",
			Date:        now.AddDate(0, 0, 14).Truncate(time.Hour).Add(19 * time.Hour),
			Venue:       "Blue Hall, Riverside",
			Capacity:    120,
			TicketPrice: 25,
		},
		{
			Title:       "Open Air Film Festival",
			Description: "Three nights of classics under the stars. Ticket covers one night.",
			Date:        now.AddDate(0, 1, 0).Truncate(time.Hour).Add(20 * time.Hour),
			Venue:       "Victoria Park Amphitheatre",
			Capacity:    600,
			TicketPrice: 12.5,
		},
		{
			Title:       "Intro to Ceramics Workshop",
			Description: "Hands-on wheel throwing for complete beginners. Materials included.",
			Date:        now.AddDate(0, 0, 21).Truncate(time.Hour).Add(10 * time.Hour),
			Venue:       "Clayworks Studio",
			Capacity:    16,
			TicketPrice: 45,
		},
	}

	ctx := context.Background()
	for _, seed := range seeds {
		event, err := eventRepo.Create(ctx, seed)
		if err != nil {
			log.Fatalf("Failed to seed event %q: %v", seed.Title, err)
		}
		log.Printf("Seeded event %s (%s)", event.Title, event.ID)
	}
}
