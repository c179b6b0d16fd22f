package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/opsdash-dev/opsdash/db"
	"github.com/opsdash-dev/opsdash/internal/auth"
	"github.com/opsdash-dev/opsdash/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if os.Getenv("SEED_DATABASE") == "true" {
		if err := db.SeedDatabase(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	if os.Getenv("AUTH_DISABLED") != "true" {
		if err := auth.InitJWTSecret(); err != nil {
			log.Fatalf("Failed to initialize auth: %v", err)
		}
	} else {
		log.Println("AUTH_DISABLED=true, running with open routes")
	}

	r := router.NewRouter()

	port := os.Getenv("PORT")

	if port == "" {
		port = "8001"
		log.Println("PORT not set, defaulting to 8001")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
