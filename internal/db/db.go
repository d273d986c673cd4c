package db

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/careconnect/homecare/internal/models"
)

var conn *gorm.DB

// Init opens (or creates) the SQLite database at path and migrates the schema.
func Init(path string) error {
	var err error
	conn, err = gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.AutoMigrate(
		&models.User{},
		&models.CaregiverProfile{},
		&models.CustomerProfile{},
		&models.Booking{},
		&models.NurseID{},
	); err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}

	// Composite indexes that GORM doesn't auto-create from struct tags.
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_booking_caregiver_status ON bookings(caregiver_id, status)")
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_booking_customer_status  ON bookings(customer_id, status)")

	return nil
}

func Conn() *gorm.DB {
	return conn
}
