package wizard

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Step identifies one screen of the registration flow.
type Step string

const (
	StepBasic        Step = "basic"
	StepProfessional Step = "professional"
	StepAssessment   Step = "assessment"
	StepDocuments    Step = "documents"
	StepVerification Step = "verification"
	StepPayment      Step = "payment"
	StepProfile      Step = "profile"
)

// Sequence returns the ordered active step list for a service type. The
// assessment step exists in the sequence if and only if the service requires
// it; navigation just walks this list, so the skip logic lives in exactly one
// place.
func Sequence(s ServiceType) []Step {
	steps := []Step{StepBasic, StepProfessional}
	if s.RequiresAssessment() {
		steps = append(steps, StepAssessment)
	}
	return append(steps, StepDocuments, StepVerification, StepPayment, StepProfile)
}

// DocKey names one of the uploadable document slots.
type DocKey string

const (
	DocNationalID         DocKey = "nationalId"
	DocTaxID              DocKey = "taxId"
	DocProfessionalID     DocKey = "professionalId"
	DocPoliceVerification DocKey = "policeVerification"
)

// RequiredDocuments returns the document slots a service type must upload
// before verification is reachable.
func RequiredDocuments(s ServiceType) []DocKey {
	docs := []DocKey{DocNationalID, DocTaxID}
	if s.RequiresProfessionalID() {
		docs = append(docs, DocProfessionalID)
	}
	if s.RequiresPoliceVerification() {
		docs = append(docs, DocPoliceVerification)
	}
	return docs
}

type PersonalInfo struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=7"`
	Age             int    `json:"age" validate:"gte=18,lte=65"`
	Address         string `json:"address" validate:"required"`
	Qualification   string `json:"qualification" validate:"required"`
	YearsExperience int    `json:"yearsExperience" validate:"gte=0"`
}

// Documents holds opaque references to uploaded files. Presence, not
// content, is what gets validated. ProfessionalID doubles as the registration
// number that verification prefix-checks.
type Documents struct {
	NationalID         string `json:"nationalId"`
	TaxID              string `json:"taxId"`
	ProfessionalID     string `json:"professionalId"`
	PoliceVerification string `json:"policeVerification"`
}

// Ref returns the stored reference for a document slot.
func (d Documents) Ref(key DocKey) string {
	switch key {
	case DocNationalID:
		return d.NationalID
	case DocTaxID:
		return d.TaxID
	case DocProfessionalID:
		return d.ProfessionalID
	case DocPoliceVerification:
		return d.PoliceVerification
	}
	return ""
}

// VerificationStatus is the outcome of the simulated identity check.
type VerificationStatus string

const (
	VerificationUnset   VerificationStatus = "unset"
	VerificationSuccess VerificationStatus = "success"
	VerificationFailed  VerificationStatus = "failed"
)

type VerificationState struct {
	Status              VerificationStatus `json:"status"`
	DocumentsValid      bool               `json:"documentsValid"`
	ProfessionalIDValid bool               `json:"professionalIdValid"`
}

type PaymentState struct {
	Completed      bool            `json:"completed"`
	Amount         decimal.Decimal `json:"amount"`
	TransactionRef string          `json:"transactionRef"`
}

type Pricing struct {
	Hourly decimal.Decimal `json:"hourly"`
	Daily  decimal.Decimal `json:"daily"`
	Weekly decimal.Decimal `json:"weekly"`
}

type Availability struct {
	Days      []string `json:"days"`
	TimeSlots []string `json:"timeSlots"`
}

type Profile struct {
	Specializations []string     `json:"specializations"`
	Languages       []string     `json:"languages"`
	Description     string       `json:"description"`
	Pricing         Pricing      `json:"pricing"`
	Availability    Availability `json:"availability"`
}

// State is the accumulated registration form, owned by one wizard session
// from entry until profile creation. It is never shared across sessions and
// carries no locking of its own; the session store serializes access for
// concurrent requests on one token.
type State struct {
	Service      ServiceType       `json:"serviceType"`
	Personal     PersonalInfo      `json:"personalInfo"`
	Documents    Documents         `json:"documents"`
	Uploaded     map[DocKey]bool   `json:"uploaded"`
	Verification VerificationState `json:"verification"`
	Payment      PaymentState      `json:"payment"`
	Assessment   *AssessmentResult `json:"assessment,omitempty"`
	Profile      Profile           `json:"profile"`

	steps []Step
	idx   int
}

// New returns a fresh wizard at the first step. The step sequence is the
// no-assessment default until a service type is selected.
func New() *State {
	return &State{
		Uploaded:     map[DocKey]bool{},
		Verification: VerificationState{Status: VerificationUnset},
		steps:        Sequence(ServiceUnset),
	}
}

var (
	ErrInvalidService     = errors.New("wizard: invalid service type")
	ErrServiceLocked      = errors.New("wizard: service type cannot change after verification")
	ErrWrongStep          = errors.New("wizard: operation not valid for current step")
	ErrVerificationFailed = errors.New("wizard: verification has not succeeded")
	ErrPaymentDue         = errors.New("wizard: registration fee has not been paid")
)

// SetService records the selected category and recomputes the active step
// sequence. The current position is preserved by step identity, not index.
// Changing service after verification started would invalidate the checks
// already committed, so it is refused.
func (s *State) SetService(t ServiceType) error {
	if !t.Valid() {
		return ErrInvalidService
	}
	if s.Service == t {
		return nil
	}
	if s.Verification.Status != VerificationUnset {
		return ErrServiceLocked
	}
	cur := s.Current()
	s.Service = t
	s.steps = Sequence(t)
	if !t.RequiresAssessment() {
		s.Assessment = nil
	}
	s.idx = s.indexOf(cur)
	return nil
}

func (s *State) indexOf(step Step) int {
	for i, st := range s.steps {
		if st == step {
			return i
		}
	}
	return 0
}

// Current returns the active step.
func (s *State) Current() Step {
	if s.idx >= len(s.steps) {
		return s.steps[len(s.steps)-1]
	}
	return s.steps[s.idx]
}

// Steps returns a copy of the active step sequence.
func (s *State) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Advance moves one position forward in the active sequence; no-op past the
// final step.
func (s *State) Advance() {
	if s.idx < len(s.steps)-1 {
		s.idx++
	}
}

// Retreat moves one position backward; no-op before the first step. Because
// navigation walks the computed sequence, a step skipped going forward is
// skipped coming back too.
func (s *State) Retreat() {
	if s.idx > 0 {
		s.idx--
	}
}

// StepNumber is the 1-based position of the current step.
func (s *State) StepNumber() int { return s.idx + 1 }

// TotalSteps is the number of active steps for the chosen service.
func (s *State) TotalSteps() int { return len(s.steps) }

// Progress returns completion percent: the 0-based step index over the
// total active steps. 0 at the first step; the final step reads just under
// 100 because the wizard only completes once that step is submitted.
func (s *State) Progress() float64 {
	return float64(s.idx) / float64(len(s.steps)) * 100
}

// Completed reports whether the wizard stands at the final (profile) step
// with verification and payment done.
func (s *State) Completed() bool {
	return s.Current() == StepProfile &&
		s.Verification.Status == VerificationSuccess &&
		s.Payment.Completed
}

// MarkUploaded records a completed upload for a document slot. The ref is an
// opaque handle to the stored file.
func (s *State) MarkUploaded(key DocKey, ref string) error {
	if ref == "" {
		return fmt.Errorf("wizard: empty reference for document %q", key)
	}
	switch key {
	case DocNationalID:
		s.Documents.NationalID = ref
	case DocTaxID:
		s.Documents.TaxID = ref
	case DocProfessionalID:
		s.Documents.ProfessionalID = ref
	case DocPoliceVerification:
		s.Documents.PoliceVerification = ref
	default:
		return fmt.Errorf("wizard: unknown document %q", key)
	}
	s.Uploaded[key] = true
	return nil
}

// DocumentsComplete reports whether every document the service requires has
// been uploaded (not merely referenced).
func (s *State) DocumentsComplete() bool {
	for _, key := range RequiredDocuments(s.Service) {
		if !s.Uploaded[key] || s.Documents.Ref(key) == "" {
			return false
		}
	}
	return true
}

// CommitVerification records a verification outcome. Success is terminal:
// once verified, a later failed result is not applied.
func (s *State) CommitVerification(v VerificationState) {
	if s.Verification.Status == VerificationSuccess {
		return
	}
	s.Verification = v
}

// ResetVerification clears a failed attempt back to unset so the caller can
// retry. Uploaded documents survive. No retry limit is enforced.
func (s *State) ResetVerification() {
	if s.Verification.Status == VerificationSuccess {
		return
	}
	s.Verification = VerificationState{Status: VerificationUnset}
}

// CommitPayment records a completed charge. Completed is monotonic; a second
// receipt never replaces the first.
func (s *State) CommitPayment(amount decimal.Decimal, ref string) {
	if s.Payment.Completed {
		return
	}
	s.Payment = PaymentState{Completed: true, Amount: amount, TransactionRef: ref}
}
