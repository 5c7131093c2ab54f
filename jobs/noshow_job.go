package jobs

import (
	"log"
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/database"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/models"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/services"
)

// SweepNoShows marks confirmed reservations as no_show once their check-in
// date has passed with no recorded arrival. The stay's room becomes bookable
// again for any remaining nights.
func SweepNoShows() {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	var candidates []models.Reservation
	err := database.DB.
		Where("status = ? AND check_in < ?", models.ReservationConfirmed, today).
		Where("id NOT IN (?)", database.DB.Model(&models.CheckIn{}).Select("reservation_id")).
		Find(&candidates).Error
	if err != nil {
		log.Printf("No-show sweep failed to load candidates: %v", err)
		return
	}

	marked := 0
	for _, r := range candidates {
		if _, err := services.MarkNoShow(r.ID); err != nil {
			// Guest may have checked in between the query and the update.
			if err == services.ErrInvalidTransition {
				continue
			}
			log.Printf("No-show sweep: reservation %s: %v", r.Reference, err)
			continue
		}
		marked++
	}
	if marked > 0 {
		log.Printf("No-show sweep: marked %d reservation(s)", marked)
	}
}
