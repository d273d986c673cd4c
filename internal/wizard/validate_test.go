package wizard

import (
	"testing"
)

func filledPersonal() PersonalInfo {
	return PersonalInfo{
		FullName:        "Siti Rahma",
		Email:           "siti@example.com",
		Phone:           "08123456789",
		Age:             29,
		Address:         "Jl. Melati 5, Jakarta",
		Qualification:   "Registered Nurse",
		YearsExperience: 4,
	}
}

func TestValidateBasic(t *testing.T) {
	s := New()
	s.Personal = filledPersonal()
	if err := s.SetService(ServiceNursing); err != nil {
		t.Fatal(err)
	}
	if errs := s.ValidateBasic(); errs != nil {
		t.Fatalf("valid input rejected: %v", errs)
	}

	s.Personal.Email = "not-an-email"
	s.Personal.Age = 17
	errs := s.ValidateBasic()
	if errs == nil {
		t.Fatal("invalid input accepted")
	}
	if _, ok := errs["email"]; !ok {
		t.Errorf("missing email error: %v", errs)
	}
	if _, ok := errs["age"]; !ok {
		t.Errorf("missing age error: %v", errs)
	}

	unset := New()
	unset.Personal = filledPersonal()
	errs = unset.ValidateBasic()
	if _, ok := errs["serviceType"]; !ok {
		t.Errorf("missing serviceType error: %v", errs)
	}
}

func TestValidateProfessional_IDRequiredByService(t *testing.T) {
	s := New()
	s.Personal = filledPersonal()
	if err := s.SetService(ServiceNursing); err != nil {
		t.Fatal(err)
	}
	errs := s.ValidateProfessional()
	if _, ok := errs["professionalId"]; !ok {
		t.Errorf("nursing without professional ID accepted: %v", errs)
	}
	if err := s.MarkUploaded(DocProfessionalID, "NUID123"); err != nil {
		t.Fatal(err)
	}
	if errs := s.ValidateProfessional(); errs != nil {
		t.Errorf("valid nursing professional info rejected: %v", errs)
	}

	b := New()
	b.Personal = filledPersonal()
	if err := b.SetService(ServiceBabysitting); err != nil {
		t.Fatal(err)
	}
	if errs := b.ValidateProfessional(); errs != nil {
		t.Errorf("babysitting must not require a professional ID: %v", errs)
	}
}

func TestValidateProfessional_ExperienceAndQualification(t *testing.T) {
	s := New()
	s.Personal = filledPersonal()
	s.Personal.YearsExperience = 0
	s.Personal.Qualification = "RN"
	if err := s.SetService(ServicePostnatal); err != nil {
		t.Fatal(err)
	}
	errs := s.ValidateProfessional()
	if _, ok := errs["yearsExperience"]; !ok {
		t.Errorf("zero experience accepted: %v", errs)
	}
	if _, ok := errs["qualification"]; !ok {
		t.Errorf("short qualification accepted: %v", errs)
	}
}

func TestValidateProfileStep_PricingFloors(t *testing.T) {
	s := New()
	if err := s.SetService(ServiceNursing); err != nil {
		t.Fatal(err)
	}
	desc := "Experienced home nurse for post-surgery care."
	hourly, daily, weekly := "75", "400", "2000"
	if err := s.ApplyProfile(ProfilePatch{
		Specializations: []string{"elderly care"},
		Languages:       []string{"Indonesian", "English"},
		Description:     &desc,
		Pricing:         &PricingPatch{Hourly: &hourly, Daily: &daily, Weekly: &weekly},
		Availability:    &AvailabilityPatch{Days: []string{"monday"}, TimeSlots: []string{"morning"}},
	}); err != nil {
		t.Fatal(err)
	}
	if errs := s.ValidateProfileStep(); errs != nil {
		t.Fatalf("valid profile rejected: %v", errs)
	}

	low := "10"
	if err := s.ApplyProfile(ProfilePatch{Pricing: &PricingPatch{Hourly: &low}}); err != nil {
		t.Fatal(err)
	}
	errs := s.ValidateProfileStep()
	if _, ok := errs["pricing.hourly"]; !ok {
		t.Errorf("below-minimum hourly rate accepted: %v", errs)
	}
}

// Two patches touching different substructures must not clobber each other.
func TestApplyProfile_MergesNestedValues(t *testing.T) {
	s := New()
	hourly := "80"
	if err := s.ApplyProfile(ProfilePatch{Pricing: &PricingPatch{Hourly: &hourly}}); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyProfile(ProfilePatch{Availability: &AvailabilityPatch{Days: []string{"friday"}}}); err != nil {
		t.Fatal(err)
	}
	if s.Profile.Pricing.Hourly.String() != "80" {
		t.Errorf("availability patch dropped pricing: %s", s.Profile.Pricing.Hourly)
	}
	if len(s.Profile.Availability.Days) != 1 {
		t.Errorf("availability not applied: %v", s.Profile.Availability.Days)
	}

	bad := "not-a-number"
	if err := s.ApplyProfile(ProfilePatch{Pricing: &PricingPatch{Daily: &bad}}); err == nil {
		t.Error("malformed rate accepted")
	}
}

func TestApplyPersonalInfo_PartialUpdate(t *testing.T) {
	s := New()
	s.Personal = filledPersonal()
	phone := "08999999999"
	s.ApplyPersonalInfo(PersonalInfoPatch{Phone: &phone})
	if s.Personal.Phone != phone {
		t.Errorf("phone not updated")
	}
	if s.Personal.FullName != "Siti Rahma" {
		t.Errorf("partial patch clobbered sibling field: %q", s.Personal.FullName)
	}
}
