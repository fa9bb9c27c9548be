package main

import (
	"context"
	"log"
	"lost-found/infra"
)

func main() {
	infra.Initialize()
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	db := infra.NewDatabase(cfg)
	if err := db.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// users, items, sessions
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Migration completed")
}
