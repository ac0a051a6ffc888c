package database

import (
	"fmt"
	"log"
	"time"

	"github.com/spotstay/booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate creates the schema plus the constraints AutoMigrate cannot express:
// start before end, and no two bookings on a spot overlapping as [start, end).
// spots is a synced read copy, so bookings carry no foreign key to it.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Spot{}, &models.Booking{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	statements := []string{
		`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS fk_bookings_spot`,
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_bookings_date_order') THEN
				ALTER TABLE bookings ADD CONSTRAINT chk_bookings_date_order CHECK (start_date < end_date);
			END IF;
		END $$`,
		`DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'excl_bookings_spot_overlap') THEN
				ALTER TABLE bookings ADD CONSTRAINT excl_bookings_spot_overlap
					EXCLUDE USING gist (spot_id WITH =, daterange(start_date, end_date, '[)') WITH &&);
			END IF;
		END $$`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}

	return nil
}
