package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"eventbroker/internal/config"
	"eventbroker/internal/database"
	"eventbroker/internal/repositories"
	"eventbroker/internal/utils"
)

func main() {
	name := flag.String("name", "", "admin display name")
	email := flag.String("email", "", "admin email (must carry the admin domain)")
	password := flag.String("password", "", "initial password (min 8 characters)")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		log.Fatalf("Usage: create-admin -name NAME -email EMAIL -password PASSWORD")
	}
	if len(*password) < 8 {
		log.Fatalf("Password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if !strings.HasSuffix(strings.ToLower(*email), strings.ToLower(cfg.Admin.EmailDomain)) {
		log.Fatalf("Email %q does not carry the admin domain %q; the account would have no admin rights", *email, cfg.Admin.EmailDomain)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	userRepo := repositories.NewUserRepository(db.DB)
	user, err := userRepo.Create(context.Background(), *name, *email, hash)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Created admin user %s (%s)\n", user.Email, user.ID)
}
