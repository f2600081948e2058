package main

import (
	"context"
	"fmt"
	"log"

	"ledger-backend/internal/config"
	"ledger-backend/internal/db"
)

// Ledger tables in dependency order. users and the label lists are kept.
var tables = []string{"paiements", "achats", "clients"}

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Ledger Data")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: this deletes every client, payment and purchase.")
	fmt.Println("Users, types and classes are kept.")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  cleared %s\n", table)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v\n", err)
	}
	fmt.Println()
	fmt.Println("Database reset complete.")
}
