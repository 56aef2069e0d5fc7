package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geloraapp/gelora/internal/pkg/config"
)

// Migrations run in order; each file is idempotent so re-running "up" is safe.
var migrationFiles = []string{
	"migrations/001_init_extensions.sql",
	"migrations/002_core_tables.sql",
	"migrations/003_seed_provinces.sql",
}

func main() {
	if len(os.Args) < 2 || os.Args[1] != "up" {
		log.Fatal("usage: migrate up")
	}

	cfg, err := config.Load("gelora-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	for _, f := range migrationFiles {
		if err := apply(ctx, pool, f); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("OK  %s\n", f)
	}
	log.Println("all migrations applied")
}

func apply(ctx context.Context, pool *pgxpool.Pool, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	if _, err := pool.Exec(ctx, string(data)); err != nil {
		return fmt.Errorf("exec %s: %w", file, err)
	}
	return nil
}
