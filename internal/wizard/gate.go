package wizard

import "errors"

// ErrAssessmentNotPassed blocks advancement out of the assessment step until
// a passing attempt is recorded.
var ErrAssessmentNotPassed = errors.New("wizard: assessment score below pass mark")

// GateAdvance reports whether the current step permits moving forward.
// Field-level problems come back as FieldErrors; flow-level blocks (failed
// assessment, pending verification, unpaid fee) as sentinel errors.
func (s *State) GateAdvance() error {
	switch s.Current() {
	case StepBasic:
		if errs := s.ValidateBasic(); errs != nil {
			return errs
		}
	case StepProfessional:
		if errs := s.ValidateProfessional(); errs != nil {
			return errs
		}
	case StepAssessment:
		if !s.AssessmentPassed() {
			return ErrAssessmentNotPassed
		}
	case StepDocuments:
		if errs := s.ValidateDocuments(); errs != nil {
			return errs
		}
	case StepVerification:
		if s.Verification.Status != VerificationSuccess {
			return ErrVerificationFailed
		}
	case StepPayment:
		if !s.Payment.Completed {
			return ErrPaymentDue
		}
	case StepProfile:
		if errs := s.ValidateProfileStep(); errs != nil {
			return errs
		}
	}
	return nil
}
