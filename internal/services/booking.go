package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/careconnect/homecare/internal/db"
	"github.com/careconnect/homecare/internal/events"
	"github.com/careconnect/homecare/internal/models"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidTransition  = errors.New("booking status transition not allowed")
	ErrNotBookingOwner    = errors.New("booking does not belong to this user")
	ErrInvalidBookingSpan = errors.New("booking end date before start date")
	ErrUnknownDuration    = errors.New("unknown booking duration")
)

// allowedTransitions is the whitelist of booking status changes. Anything
// not listed (cancel after completion, un-cancel, re-confirm) is refused.
var allowedTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// TransitionBooking moves the booking with the given code to a new status,
// enforcing the whitelist, and fires the status-change hook on success.
// Transitioning to the current status is a no-op.
func TransitionBooking(code, to string) (*models.Booking, error) {
	var reg models.Booking
	err := db.Conn().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code = ?", code).First(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if reg.Status == to {
			return nil
		}
		if !transitionAllowed(reg.Status, to) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, reg.Status, to)
		}
		from := reg.Status
		reg.Status = to
		if to == models.BookingCancelled && reg.PaymentStatus == "paid" {
			reg.PaymentStatus = "refunded"
		}
		if err := tx.Save(&reg).Error; err != nil {
			return err
		}
		if events.OnBookingStatusChange != nil {
			events.OnBookingStatusChange(reg, from)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// CancelByCode marks a booking cancelled. Only pending and confirmed
// bookings can be cancelled; completed ones cannot.
func CancelByCode(code string) (*models.Booking, error) {
	return TransitionBooking(code, models.BookingCancelled)
}

// BookingTotal prices a span against a caregiver's rates. Days are counted
// inclusively; hourly bookings assume an 8-hour day, weekly bookings round
// up to whole weeks.
func BookingTotal(cg *models.CaregiverProfile, duration string, start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, ErrInvalidBookingSpan
	}
	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1

	switch duration {
	case "hourly":
		return cg.HourlyRate.Mul(decimal.NewFromInt(int64(days * 8))), nil
	case "daily":
		return cg.DailyRate.Mul(decimal.NewFromInt(int64(days))), nil
	case "weekly":
		weeks := (days + 6) / 7
		return cg.WeeklyRate.Mul(decimal.NewFromInt(int64(weeks))), nil
	}
	return decimal.Zero, ErrUnknownDuration
}

// GenerateBookingCode creates a unique BKG-XXXXXXXX code (uppercase hex).
func GenerateBookingCode() string {
	for i := 0; i < 20; i++ {
		code := fmt.Sprintf("BKG-%08X", rand.Uint32())
		var exists int64
		_ = db.Conn().Model(&models.Booking{}).Where("code = ?", code).Count(&exists).Error
		if exists == 0 {
			return code
		}
	}
	return ""
}

// CreateBooking prices and persists a new pending booking between a customer
// and a caregiver. The booking fee is treated as paid upfront, mirroring the
// booking checkout flow.
func CreateBooking(customer *models.CustomerProfile, cg *models.CaregiverProfile, duration string, start, end time.Time, details string) (*models.Booking, error) {
	total, err := BookingTotal(cg, duration, start, end)
	if err != nil {
		return nil, err
	}
	code := GenerateBookingCode()
	if code == "" {
		return nil, errors.New("failed to generate booking code")
	}
	b := models.Booking{
		Code:           code,
		CustomerID:     customer.ID,
		CaregiverID:    cg.ID,
		Service:        cg.Service,
		StartDate:      start,
		EndDate:        end,
		Duration:       duration,
		TotalAmount:    total,
		Status:         models.BookingPending,
		PaymentStatus:  "paid",
		CustomerName:   customer.FullName,
		CaregiverName:  cg.FullName,
		ServiceDetails: details,
	}
	if err := db.Conn().Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// BookingsByUser lists bookings for one side of the marketplace.
func BookingsByUser(profileID uint, role string) ([]models.Booking, error) {
	var out []models.Booking
	q := db.Conn().Order("created_at desc")
	if role == models.RoleCaregiver {
		q = q.Where("caregiver_id = ?", profileID)
	} else {
		q = q.Where("customer_id = ?", profileID)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Earnings sums the total amounts of a caregiver's completed bookings.
func Earnings(caregiverID uint) (decimal.Decimal, error) {
	var rows []models.Booking
	if err := db.Conn().
		Where("caregiver_id = ? AND status = ?", caregiverID, models.BookingCompleted).
		Find(&rows).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, b := range rows {
		total = total.Add(b.TotalAmount)
	}
	return total, nil
}
