package main

import (
	"habit_tracker/internal/config" // Custom import path (Config)
	"habit_tracker/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Create tables and seed default frequency options
}
