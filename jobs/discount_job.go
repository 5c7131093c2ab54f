package jobs

import (
	"log"
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
)

// ExpireLapsedDiscounts clears the discount flag on room categories whose
// discount window has ended. Pricing never trusts the flag alone, so this is
// hygiene for listings and dashboards rather than correctness.
func ExpireLapsedDiscounts() {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	result := database.DB.Model(&models.RoomCategory{}).
		Where("has_discount = ? AND discount_end_date IS NOT NULL AND discount_end_date < ?", true, today).
		Updates(map[string]interface{}{
			"has_discount":        false,
			"discount_percentage": nil,
		})
	if result.Error != nil {
		log.Printf("Discount sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Discount sweep: expired %d lapsed category discount(s)", result.RowsAffected)
	}
}
