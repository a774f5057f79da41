// Command create-admin inserts an ADMIN account. Self-registration only ever
// creates STAFF users, so the first administrator comes from here.
//
//	create-admin -email admin@hotel.local -password 's3cret-pass' -name 'Front Office'
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/hotel-manager/internal/config"
	"github.com/iliyamo/hotel-manager/internal/database"
	"github.com/iliyamo/hotel-manager/internal/model"
	"github.com/iliyamo/hotel-manager/internal/repository"
	"github.com/iliyamo/hotel-manager/internal/utils"
)

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	name := flag.String("name", "Administrator", "full name")
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		log.Fatal("create-admin: -email is required")
	}
	if len(*password) < utils.MinPasswordLength {
		log.Fatalf("create-admin: %v", utils.ErrPasswordTooShort)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("env: .env not loaded: %v", err)
	}

	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("create-admin: db: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	id, err := repository.NewUserRepo(db).Create(ctx, *email, *password, strings.TrimSpace(*name), model.RoleAdmin, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("create-admin: %v", err)
	}
	log.Printf("create-admin: created admin %s (id=%d)", strings.ToLower(strings.TrimSpace(*email)), id)
}
