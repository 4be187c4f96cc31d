package db

import (
	"errors"                        // Error inspection
	"habit_tracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to MySQL with driver errors translated to gorm's sentinels
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate performs automatic migration for the database schema and seeds the default options
func Migrate(dsn string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.User{}, &domain.FrequencyOption{}, &domain.Habit{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	seeded, err := SeedFrequencyOptions(db)
	if err != nil {
		logrus.Fatalf("seeding frequency options failed: %v", err)
	}
	logrus.WithField("seeded_frequency_options", seeded).Info("Migration completed.") // Log successful migration
}

// SeedFrequencyOptions inserts the default options that are not present yet
// and returns how many were added. Running it twice adds nothing.
func SeedFrequencyOptions(db *gorm.DB) (int, error) {
	added := 0
	for _, name := range domain.DefaultFrequencyNames {
		var existing domain.FrequencyOption
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue // Already seeded
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return added, err
		}
		if err := db.Create(&domain.FrequencyOption{Name: name, IsDefault: true}).Error; err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
