package main

import (
	"flag"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/hirematch/internal/config"
	"alfredoptarigan/hirematch/internal/models"
	"alfredoptarigan/hirematch/internal/repositories"
)

// Bootstraps the first admin user. Admins manage API clients and
// analytics; the HTTP API has no endpoint to create them.
func main() {
	email := flag.String("email", "", "admin email address")
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("❌ -email and -password are required")
	}
	if len(*password) < 8 {
		log.Fatal("❌ Password must be at least 8 characters")
	}

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)

	if _, err := userRepo.FindByUsername(*username); err == nil {
		log.Fatalf("❌ User %q already exists", *username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	admin := &models.User{
		ID:             uuid.New(),
		Email:          *email,
		Username:       *username,
		HashedPassword: string(hashed),
		IsActive:       true,
		IsAdmin:        true,
	}

	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("❌ Failed to create admin user: %v", err)
	}

	log.Printf("✅ Admin user %q created (id %s)\n", admin.Username, admin.ID)
}
