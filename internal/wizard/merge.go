package wizard

// Patch types carry partial updates for the nested substructures of State.
// Each Apply* helper merges into the existing nested value instead of
// replacing it wholesale, so two steps touching different sub-fields of the
// same structure can never clobber each other's writes.

type PersonalInfoPatch struct {
	FullName        *string `json:"fullName,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Age             *int    `json:"age,omitempty"`
	Address         *string `json:"address,omitempty"`
	Qualification   *string `json:"qualification,omitempty"`
	YearsExperience *int    `json:"yearsExperience,omitempty"`
}

func (s *State) ApplyPersonalInfo(p PersonalInfoPatch) {
	if p.FullName != nil {
		s.Personal.FullName = *p.FullName
	}
	if p.Email != nil {
		s.Personal.Email = *p.Email
	}
	if p.Phone != nil {
		s.Personal.Phone = *p.Phone
	}
	if p.Age != nil {
		s.Personal.Age = *p.Age
	}
	if p.Address != nil {
		s.Personal.Address = *p.Address
	}
	if p.Qualification != nil {
		s.Personal.Qualification = *p.Qualification
	}
	if p.YearsExperience != nil {
		s.Personal.YearsExperience = *p.YearsExperience
	}
}

type ProfilePatch struct {
	Specializations []string           `json:"specializations,omitempty"`
	Languages       []string           `json:"languages,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Pricing         *PricingPatch      `json:"pricing,omitempty"`
	Availability    *AvailabilityPatch `json:"availability,omitempty"`
}

type PricingPatch struct {
	Hourly *string `json:"hourly,omitempty"`
	Daily  *string `json:"daily,omitempty"`
	Weekly *string `json:"weekly,omitempty"`
}

type AvailabilityPatch struct {
	Days      []string `json:"days,omitempty"`
	TimeSlots []string `json:"timeSlots,omitempty"`
}

func (s *State) ApplyProfile(p ProfilePatch) error {
	if p.Specializations != nil {
		s.Profile.Specializations = p.Specializations
	}
	if p.Languages != nil {
		s.Profile.Languages = p.Languages
	}
	if p.Description != nil {
		s.Profile.Description = *p.Description
	}
	if p.Pricing != nil {
		if err := applyRate(&s.Profile.Pricing.Hourly, p.Pricing.Hourly); err != nil {
			return err
		}
		if err := applyRate(&s.Profile.Pricing.Daily, p.Pricing.Daily); err != nil {
			return err
		}
		if err := applyRate(&s.Profile.Pricing.Weekly, p.Pricing.Weekly); err != nil {
			return err
		}
	}
	if p.Availability != nil {
		if p.Availability.Days != nil {
			s.Profile.Availability.Days = p.Availability.Days
		}
		if p.Availability.TimeSlots != nil {
			s.Profile.Availability.TimeSlots = p.Availability.TimeSlots
		}
	}
	return nil
}
