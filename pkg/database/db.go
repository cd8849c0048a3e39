package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	KeyID          uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date           string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount   int    `gorm:"default:0" json:"request_count"`
	TotalItems     int    `gorm:"default:0" json:"total_items"`
	TotalAssignees int    `gorm:"default:0" json:"total_assignees"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Holiday represents the national_holidays table. Bounds are inclusive
// and apply to every assignee.
type Holiday struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StartDate time.Time `gorm:"not null" json:"start"`
	EndDate   time.Time `gorm:"not null" json:"end"`
	Reason    string    `gorm:"not null" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Vacation represents the user_vacations table. Bounds are inclusive and
// apply only to the referenced user.
type Vacation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"index;not null" json:"user_id"`
	DateFrom  time.Time `gorm:"not null" json:"date_from"`
	DateTo    time.Time `gorm:"not null" json:"date_to"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// UserThreshold represents the user_thresholds table, the per-user
// capacity configuration together with the user's main group.
type UserThreshold struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          int       `gorm:"uniqueIndex;not null" json:"user_id"`
	ThresholdLow    float64   `gorm:"default:0" json:"threshold_low"`
	ThresholdNormal float64   `gorm:"default:0" json:"threshold_normal"`
	ThresholdHigh   float64   `gorm:"default:0" json:"threshold_high"`
	MainGroupID     int       `gorm:"default:0" json:"main_group_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "workload.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto Migration
	db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &Holiday{}, &Vacation{}, &UserThreshold{})

	return db
}
