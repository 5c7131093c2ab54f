package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// BookingPolicy holds the two knobs the booking flow leaves configurable:
// whether a pending reservation blocks a room for overlapping dates, and
// which discount wins when a category discount and a date-level discount are
// both active on the booking date.
type BookingPolicy struct {
	PendingBlocksAvailability bool
	DiscountPrecedence        string // "category" or "date"
}

var Policy = BookingPolicy{
	PendingBlocksAvailability: true,
	DiscountPrecedence:        "category",
}

// LoadPolicy reads policy overrides from the environment. Called once at
// startup; defaults apply when the variables are unset.
func LoadPolicy() {
	if v := Config("PENDING_BLOCKS_AVAILABILITY"); v == "false" {
		Policy.PendingBlocksAvailability = false
	}
	if v := Config("DISCOUNT_PRECEDENCE"); v == "date" {
		Policy.DiscountPrecedence = "date"
	}
	log.Printf("Booking policy: pending_blocks=%v discount_precedence=%s",
		Policy.PendingBlocksAvailability, Policy.DiscountPrecedence)
}
