package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role values for User.
const (
	RoleCaregiver = "caregiver"
	RoleCustomer  = "customer"
)

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	FullName     string
	Role         string // caregiver | customer
}

// CaregiverProfile is created when the registration wizard completes.
// List-valued fields (specializations, languages, days, time slots) are
// stored comma-separated.
type CaregiverProfile struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID  uint   `gorm:"index"`
	Service string `gorm:"index"` // nursing | physiotherapy | babysitting | postnatal

	FullName        string
	Email           string
	Phone           string
	Age             int
	Address         string
	Qualification   string
	YearsExperience int

	Specializations string
	Languages       string
	Description     string

	HourlyRate decimal.Decimal `gorm:"type:numeric"`
	DailyRate  decimal.Decimal `gorm:"type:numeric"`
	WeeklyRate decimal.Decimal `gorm:"type:numeric"`

	Days      string
	TimeSlots string

	Verified         bool
	AssessmentScore  *int
	TransactionRef   string
	RegistrationPaid bool

	RatingAverage float64
	RatingCount   int
}

type CustomerProfile struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID   uint `gorm:"index"`
	FullName string
	Email    string
	Phone    string
	Address  string
}

// Booking status values. Pending bookings may be confirmed or cancelled,
// confirmed ones completed or cancelled; everything else is refused in
// services.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Code string `gorm:"uniqueIndex"` // e.g. BKG-1A2B3C4D

	CustomerID  uint `gorm:"index"`
	CaregiverID uint `gorm:"index"`

	Service   string
	StartDate time.Time
	EndDate   time.Time
	Duration  string // hourly | daily | weekly

	TotalAmount   decimal.Decimal `gorm:"type:numeric"`
	Status        string
	PaymentStatus string // pending | paid | refunded

	CustomerName   string
	CaregiverName  string
	ServiceDetails string
}

// NurseID is the registry backing /api/verify-nuid.
type NurseID struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	NUID string `gorm:"column:nuid;uniqueIndex;not null"`
}
