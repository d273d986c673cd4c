package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/careconnect/homecare/internal/db"
	"github.com/careconnect/homecare/internal/models"
	"github.com/careconnect/homecare/internal/wizard"
)

var ErrCaregiverNotFound = errors.New("caregiver not found")

// CaregiversByService lists verified caregiver profiles, optionally filtered
// by service type. An empty service returns everyone.
func CaregiversByService(service string) ([]models.CaregiverProfile, error) {
	var out []models.CaregiverProfile
	q := db.Conn().Order("rating_average desc, created_at asc")
	if strings.TrimSpace(service) != "" {
		q = q.Where("service = ?", service)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CaregiverByID fetches one profile.
func CaregiverByID(id uint) (*models.CaregiverProfile, error) {
	var cg models.CaregiverProfile
	if err := db.Conn().First(&cg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaregiverNotFound
		}
		return nil, err
	}
	return &cg, nil
}

// CreateCaregiverFromWizard materializes a completed registration wizard
// into a persisted caregiver profile.
func CreateCaregiverFromWizard(userID uint, st *wizard.State) (*models.CaregiverProfile, error) {
	var score *int
	if st.Assessment != nil {
		s := st.Assessment.Score
		score = &s
	}
	cg := models.CaregiverProfile{
		UserID:  userID,
		Service: string(st.Service),

		FullName:        st.Personal.FullName,
		Email:           st.Personal.Email,
		Phone:           st.Personal.Phone,
		Age:             st.Personal.Age,
		Address:         st.Personal.Address,
		Qualification:   st.Personal.Qualification,
		YearsExperience: st.Personal.YearsExperience,

		Specializations: strings.Join(st.Profile.Specializations, ","),
		Languages:       strings.Join(st.Profile.Languages, ","),
		Description:     st.Profile.Description,

		HourlyRate: st.Profile.Pricing.Hourly,
		DailyRate:  st.Profile.Pricing.Daily,
		WeeklyRate: st.Profile.Pricing.Weekly,

		Days:      strings.Join(st.Profile.Availability.Days, ","),
		TimeSlots: strings.Join(st.Profile.Availability.TimeSlots, ","),

		Verified:         st.Verification.Status == wizard.VerificationSuccess,
		AssessmentScore:  score,
		TransactionRef:   st.Payment.TransactionRef,
		RegistrationPaid: st.Payment.Completed,
	}
	if err := db.Conn().Create(&cg).Error; err != nil {
		return nil, err
	}
	return &cg, nil
}

// VerifyNUID checks a nurse registration number against the registry.
func VerifyNUID(nuid string) (bool, error) {
	var row models.NurseID
	err := db.Conn().Where("nuid = ?", nuid).First(&row).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
