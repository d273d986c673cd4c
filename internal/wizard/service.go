package wizard

// ServiceType is the caregiver service category selected in the first step.
// It drives every downstream branch: the active step sequence, which
// documents are required, and which professional-ID prefix verification
// expects.
type ServiceType string

const (
	ServiceUnset         ServiceType = ""
	ServiceNursing       ServiceType = "nursing"
	ServicePhysiotherapy ServiceType = "physiotherapy"
	ServiceBabysitting   ServiceType = "babysitting"
	ServicePostnatal     ServiceType = "postnatal"
)

// ServiceTypes lists the selectable categories.
var ServiceTypes = []ServiceType{
	ServiceNursing,
	ServicePhysiotherapy,
	ServiceBabysitting,
	ServicePostnatal,
}

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceNursing, ServicePhysiotherapy, ServiceBabysitting, ServicePostnatal:
		return true
	}
	return false
}

// RequiresAssessment reports whether the competency quiz step is part of the
// sequence for this service.
func (s ServiceType) RequiresAssessment() bool {
	return s == ServiceBabysitting || s == ServicePostnatal
}

// RequiresProfessionalID reports whether a professional registration ID
// (NUID / IAP) must be supplied and format-checked.
func (s ServiceType) RequiresProfessionalID() bool {
	return s == ServiceNursing || s == ServicePhysiotherapy
}

// RequiresPoliceVerification reports whether a police verification
// certificate is a required document.
func (s ServiceType) RequiresPoliceVerification() bool {
	return s == ServiceBabysitting || s == ServicePostnatal
}
