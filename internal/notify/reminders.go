package notify

import (
	"time"

	"github.com/careconnect/homecare/internal/config"
	"github.com/careconnect/homecare/internal/db"
	"github.com/careconnect/homecare/internal/logger"
	"github.com/careconnect/homecare/internal/models"
)

// StartReminderLoop emits upcoming-booking reminders for confirmed
// bookings. Reminders are logged so an outbound channel (email, SMS) can be
// attached downstream.
func StartReminderLoop(cfg config.ReminderConfig, log logger.Logger) {
	if !cfg.Enabled {
		return
	}
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			runReminders(cfg.Offsets, time.Now(), log)
		}
	}()
}

func runReminders(offsets []time.Duration, now time.Time, log logger.Logger) {
	// Strict 1-minute window: [tick, tick+1m) so a booking is reminded once
	// per offset.
	tick := now.Truncate(time.Minute)
	next := tick.Add(time.Minute)

	for _, ahead := range offsets {
		// Bookings due in this tick: start_date in [tick+ahead, next+ahead).
		start := tick.Add(ahead)
		end := next.Add(ahead)

		var rows []models.Booking
		if err := db.Conn().
			Where("start_date >= ? AND start_date < ? AND status = ?", start, end, models.BookingConfirmed).
			Find(&rows).Error; err != nil {
			continue
		}

		for _, b := range rows {
			log.Info("booking reminder", map[string]interface{}{
				"code":          b.Code,
				"customerName":  b.CustomerName,
				"caregiverName": b.CaregiverName,
				"startDate":     b.StartDate.Format("2006-01-02"),
				"ahead":         ahead.String(),
			})
		}
	}
}
