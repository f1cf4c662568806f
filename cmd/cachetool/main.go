package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Graceus777/Route-Optimizer/internal/adapters/cache"
	"github.com/Graceus777/Route-Optimizer/internal/platform/db"
)

// cachetool initializes the Postgres geocode cache schema. Run once per
// deployment that uses the postgres cache backend.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL, db.PoolLimits{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("Initializing geocode cache schema...")
	if err := cache.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
