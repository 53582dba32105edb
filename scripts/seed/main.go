// Seed creates a demo user and 1,000 todos. Run from project root: go run ./scripts/seed
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"todolist-api/internal/auth"
	"todolist-api/internal/config"
	"todolist-api/internal/database"
	"todolist-api/internal/models"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Config failed:", err)
		os.Exit(1)
	}
	db, err := database.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "DATABASE_URL not set or DB connection failed:", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Hash failed:", err)
		os.Exit(1)
	}
	userID := uuid.New()
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, created_at, updated_at)
		 VALUES ($1, $2, $3, NOW(), NOW()) ON CONFLICT (username) DO NOTHING`,
		userID, "seed-user", hash)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Insert user failed:", err)
		os.Exit(1)
	}

	const total = 1_000
	const batchSize = 250
	statuses := []models.Status{
		models.StatusDraft, models.StatusTodo, models.StatusDoing,
		models.StatusDone, models.StatusTrash,
	}
	start := time.Now()

	for batch := 0; batch < total/batchSize; batch++ {
		args := make([]interface{}, 0, batchSize*5)
		placeholders := make([]string, 0, batchSize)
		for i := 0; i < batchSize; i++ {
			n := batch*batchSize + i + 1
			placeholders = append(placeholders, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,NOW(),NOW())",
				5*i+1, 5*i+2, 5*i+3, 5*i+4, 5*i+5))
			args = append(args,
				uuid.New(),
				fmt.Sprintf("Todo %d", n),
				fmt.Sprintf("Description for todo %d", n),
				statuses[n%len(statuses)],
				userID,
			)
		}
		q := `INSERT INTO todos (id, title, description, status, user_id, created_at, updated_at) VALUES ` +
			strings.Join(placeholders, ",")
		if _, err := db.ExecContext(ctx, q, args...); err != nil {
			fmt.Fprintln(os.Stderr, "Insert failed:", err)
			os.Exit(1)
		}
		fmt.Printf("\rInserted %d / %d", (batch+1)*batchSize, total)
	}

	fmt.Printf("\nDone: %d todos for seed-user in %v\n", total, time.Since(start))
}
