package wizard

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// FieldErrors maps field name to a human-readable message. These surface as
// inline per-field errors; a step never advances while any exist.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for f, msg := range e {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "failed validation on '" + fe.Tag() + "'"
}

func structErrors(v interface{}) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	out := FieldErrors{}
	if ves, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ves {
			out[lowerFirst(fe.Field())] = fieldMessage(fe)
		}
	} else {
		out["_global"] = err.Error()
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ValidateBasic checks the basic-info step: all personal fields present,
// age within 18–65, experience non-negative, a service selected.
func (s *State) ValidateBasic() FieldErrors {
	errs := structErrors(s.Personal)
	if errs == nil {
		errs = FieldErrors{}
	}
	if !s.Service.Valid() {
		errs["serviceType"] = "please select a service type"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Pricing floors for new profiles, matching the platform's configured
// minimums.
var (
	MinHourlyRate = decimal.NewFromInt(50)
	MinDailyRate  = decimal.NewFromInt(300)
	MinWeeklyRate = decimal.NewFromInt(1500)
)

const minQualificationLen = 5

// ValidateProfessional checks the professional-info step: experience must be
// positive, the qualification at least 5 characters, and for services with a
// registration body the professional ID must be supplied.
func (s *State) ValidateProfessional() FieldErrors {
	errs := FieldErrors{}
	if s.Personal.YearsExperience <= 0 {
		errs["yearsExperience"] = "experience must be greater than zero"
	}
	if len(strings.TrimSpace(s.Personal.Qualification)) < minQualificationLen {
		errs["qualification"] = fmt.Sprintf("must be at least %d characters", minQualificationLen)
	}
	if s.Service.RequiresProfessionalID() && strings.TrimSpace(s.Documents.ProfessionalID) == "" {
		errs["professionalId"] = "professional registration ID is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateDocuments checks that every document the service requires has been
// uploaded.
func (s *State) ValidateDocuments() FieldErrors {
	errs := FieldErrors{}
	for _, key := range RequiredDocuments(s.Service) {
		if !s.Uploaded[key] || s.Documents.Ref(key) == "" {
			errs[string(key)] = "upload required"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateProfileStep checks the final profile-creation step.
func (s *State) ValidateProfileStep() FieldErrors {
	errs := FieldErrors{}
	p := s.Profile
	if len(p.Specializations) == 0 {
		errs["specializations"] = "select at least one specialization"
	}
	if len(p.Languages) == 0 {
		errs["languages"] = "select at least one language"
	}
	if strings.TrimSpace(p.Description) == "" {
		errs["description"] = "this field is required"
	}
	if p.Pricing.Hourly.LessThan(MinHourlyRate) {
		errs["pricing.hourly"] = "below minimum rate of " + MinHourlyRate.String()
	}
	if p.Pricing.Daily.LessThan(MinDailyRate) {
		errs["pricing.daily"] = "below minimum rate of " + MinDailyRate.String()
	}
	if p.Pricing.Weekly.LessThan(MinWeeklyRate) {
		errs["pricing.weekly"] = "below minimum rate of " + MinWeeklyRate.String()
	}
	if len(p.Availability.Days) == 0 {
		errs["availability.days"] = "select at least one day"
	}
	if len(p.Availability.TimeSlots) == 0 {
		errs["availability.timeSlots"] = "select at least one time slot"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func applyRate(dst *decimal.Decimal, raw *string) error {
	if raw == nil {
		return nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil || d.IsNegative() {
		return fmt.Errorf("wizard: invalid rate %q", *raw)
	}
	*dst = d
	return nil
}
