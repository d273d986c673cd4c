package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/careconnect/homecare/internal/logger"
	"github.com/careconnect/homecare/internal/metrics"
	"github.com/careconnect/homecare/internal/payment"
	"github.com/careconnect/homecare/internal/services"
	"github.com/careconnect/homecare/internal/session"
	"github.com/careconnect/homecare/internal/verify"
	"github.com/careconnect/homecare/internal/wizard"
)

// RegistrationHandler drives the caregiver registration wizard over HTTP.
// Each step endpoint validates, applies its payload to the session's wizard
// state and advances on success; the response always carries the full wizard
// view so the client never has to reconstruct position locally.
type RegistrationHandler struct {
	Sessions *session.Store
	Verifier *verify.Checker
	Payments *payment.Processor
	Metrics  *metrics.Metrics
	Log      logger.Logger
}

type wizardView struct {
	Token        string                   `json:"token"`
	Step         wizard.Step              `json:"step"`
	StepNumber   int                      `json:"stepNumber"`
	TotalSteps   int                      `json:"totalSteps"`
	Progress     float64                  `json:"progress"`
	Completed    bool                     `json:"completed"`
	ServiceType  wizard.ServiceType       `json:"serviceType"`
	RequiredDocs []wizard.DocKey          `json:"requiredDocuments"`
	Uploaded     map[wizard.DocKey]bool   `json:"uploaded"`
	Verification wizard.VerificationState `json:"verification"`
	Payment      wizard.PaymentState      `json:"payment"`
	Assessment   *wizard.AssessmentResult `json:"assessment,omitempty"`
}

func viewOf(token string, st *wizard.State) wizardView {
	return wizardView{
		Token:        token,
		Step:         st.Current(),
		StepNumber:   st.StepNumber(),
		TotalSteps:   st.TotalSteps(),
		Progress:     st.Progress(),
		Completed:    st.Completed(),
		ServiceType:  st.Service,
		RequiredDocs: wizard.RequiredDocuments(st.Service),
		Uploaded:     st.Uploaded,
		Verification: st.Verification,
		Payment:      st.Payment,
		Assessment:   st.Assessment,
	}
}

// Start opens a new wizard session.
func (h *RegistrationHandler) Start(w http.ResponseWriter, r *http.Request) {
	token, st := h.Sessions.Create()
	h.Log.Info("registration started", map[string]interface{}{"token": token})
	respondJSON(w, http.StatusCreated, viewOf(token, st))
}

// state resolves the session token and takes the session lock, so each
// handler's read-mutate-respond span is atomic with respect to concurrent
// submissions for the same token. Callers must defer release.
func (h *RegistrationHandler) state(w http.ResponseWriter, r *http.Request) (string, *wizard.State, func(), bool) {
	token := chi.URLParam(r, "token")
	st, release, ok := h.Sessions.Acquire(token)
	if !ok {
		respondError(w, http.StatusNotFound, "registration session not found or expired")
		return "", nil, nil, false
	}
	return token, st, release, true
}

// State returns the current wizard view.
func (h *RegistrationHandler) State(w http.ResponseWriter, r *http.Request) {
	token, st, release, ok := h.state(w, r)
	if !ok {
		return
	}
	defer release()
	respondJSON(w, http.StatusOK, viewOf(token, st))
}

// Back retreats one step.
func (h *RegistrationHandler) Back(w http.ResponseWriter, r *http.Request) {
	token, st, release, ok := h.state(w, r)
	if !ok {
		return
	}
	defer release()
	st.Retreat()
	respondJSON(w, http.StatusOK, viewOf(token, st))
}

func respondGateError(w http.ResponseWriter, err error) {
	var fieldErrs wizard.FieldErrors
	if errors.As(err, &fieldErrs) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": fieldErrs})
		return
	}
	switch {
	case errors.Is(err, wizard.ErrAssessmentNotPassed):
		respondError(w, http.StatusConflict, "assessment score below pass mark; retake to continue")
	case errors.Is(err, wizard.ErrVerificationFailed):
		respondError(w, http.StatusConflict, "verification has not succeeded")
	case errors.Is(err, wizard.ErrPaymentDue):
		respondError(w, http.StatusConflict, "registration fee must be paid first")
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}

type basicStepRequest struct {
	ServiceType wizard.ServiceType       `json:"serviceType"`
	Personal    wizard.PersonalInfoPatch `json:"personalInfo"`
}

// SubmitBasic handles the basic-info step: personal details plus the service
// selection that fixes the step sequence.
func (h *RegistrationHandler) SubmitBasic(w http.ResponseWriter, r *http.Request) {
	token, st, release, ok := h.state(w, r)
	if !ok {
		return
	}
	defer release()
	if st.Current() != wizard.StepBasic {
		respondError(w, http.StatusConflict, "not at the basic-info step")
		return
	}
	var req basicStepRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st.ApplyPersonalInfo(req.Personal)
	if req.ServiceType != wizard.ServiceUnset {
		if err := st.SetService(req.ServiceType); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := st.GateAdvance(); err != nil {
		respondGateError(w, err)
		return
	}
	st.Advance()
	respondJSON(w, http.StatusOK, viewOf(token, st))
}

type professionalStepRequest struct {
	YearsExperience *int    `json:"yearsExperience,omitempty"`
	Qualification   *string `json:"qualification,omitempty"`
	ProfessionalID  *string `json:"professionalId,omitempty"`
}

// SubmitProfessional handles the professional-info step.
func (h *RegistrationHandler) SubmitProfessional(w http.ResponseWriter, r *http.Request) {
	token, st, release, ok := h.state(w, r)
	if !ok {
		return
	}
	defer release()
	if st.Current() != wizard.StepProfessional {
		respondError(w, http.StatusConflict, "not at the professional-info step")
		return
	}
	var req professionalStepRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	st.ApplyPersonalInfo(wizard.PersonalInfoPatch{
		YearsExperience: req.YearsExperience,
		Qualification:   req.Qualification,
	})
	if req.ProfessionalID != nil && *req.ProfessionalID != "" {
		// The registration number is also the professionalId document slot.
		_ = st.MarkUploaded(wizard.DocProfessionalID, *req.ProfessionalID)
	}
	if err := st.GateAdvance(); err != nil {
		respondGateError(w, err)
		return
	}
	st.Advance()
	respondJSON(w, http.StatusOK, viewOf(token, st))
}

type assessmentRequest struct {
	Answers []bool `json:"answers"`
}

type assessmentResponse struct {
	wizardView
	Questions []string `json:"questions"`
}

// Questions returns the fixed quiz for the assessment step.
func (h *RegistrationHandler) Questions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": wizard.AssessmentQuestions,
		"passScore": wizard.AssessmentPassScore,
	})
}

// SubmitAssessment scores a quiz attempt. A passing score advances; a
// failing one records the result and stays on the step for a retake.
func (h *RegistrationHandler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	token, st, release, ok := h.state(w, r)
	if !ok {
		return
	}
	defer release()
	if st.Current() != wizard.StepAssessment {
		respondError(w, http.StatusConflict, "not at the assessment step")
		return
	}
	var req assessmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := st.SubmitAssessment(req.Answers)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if res.Passed {
		st.Advance()
	}
	respondJSON(w, http.StatusOK, assessmentResponse{
		wizardView: viewOf(token, st),
		Questions:  wizard.AssessmentQuestions,
	})
}

type documentsRequest struct {
	Uploads map[wizard.DocKey]string `json:"uploads"`
}

// SubmitDocuments records completed uploads. The step advances only once
// every service-required slot is uploaded; partial submissions are accepted
// and simply leave the wizard on the documents step.
func (h *RegistrationHandler) SubmitDocuments(w http.ResponseWriter, r *http.Request) {
	token, st, release, ok := h.state(w, r)
	if !ok {
		return
	}
	defer release()
	if st.Current() != wizard.StepDocuments {
		respondError(w, http.StatusConflict, "not at the documents step")
		return
	}
	var req documentsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	for key, ref := range req.Uploads {
		if err := st.MarkUploaded(key, ref); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if st.DocumentsComplete() {
		st.Advance()
	}
	respondJSON(w, http.StatusOK, viewOf(token, st))
}

// RunVerification invokes the simulated provider. Success advances to the
// payment step; failure stays put with the failed result committed so the
// client can surface it and offer a retry.
func (h *RegistrationHandler) RunVerification(w http.ResponseWriter, r *http.Request) {
	token, st, release, ok := h.state(w, r)
	if !ok {
		return
	}
	defer release()
	if st.Current() != wizard.StepVerification {
		respondError(w, http.StatusConflict, "not at the verification step")
		return
	}
	if st.Verification.Status == wizard.VerificationSuccess {
		st.Advance()
		respondJSON(w, http.StatusOK, viewOf(token, st))
		return
	}
	if !st.DocumentsComplete() {
		respondError(w, http.StatusConflict, "upload all required documents before verification")
		return
	}

	result, err := h.Verifier.Verify(r.Context(), st.Service, st.Documents.ProfessionalID)
	if err != nil {
		// Client went away mid-check; commit nothing.
		h.Log.Warn("verification aborted", map[string]interface{}{"token": token, "error": err.Error()})
		return
	}
	st.CommitVerification(result)
	h.Metrics.IncVerification(string(result.Status))
	h.Log.Info("verification finished", map[string]interface{}{
		"token":  token,
		"status": string(result.Status),
	})
	if result.Status == wizard.VerificationSuccess {
		st.Advance()
	}
	respondJSON(w, http.StatusOK, viewOf(token, st))
}

// ResetVerification clears a failed attempt so the applicant can retry.
// Uploaded documents are kept.
func (h *RegistrationHandler) ResetVerification(w http.ResponseWriter, r *http.Request) {
	token, st, release, ok := h.state(w, r)
	if !ok {
		return
	}
	defer release()
	st.ResetVerification()
	respondJSON(w, http.StatusOK, viewOf(token, st))
}

// SubmitPayment charges the registration fee. Once paid the endpoint is
// idempotent: re-submission returns the existing receipt without charging
// again.
func (h *RegistrationHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	token, st, release, ok := h.state(w, r)
	if !ok {
		return
	}
	defer release()
	if st.Current() != wizard.StepPayment {
		respondError(w, http.StatusConflict, "not at the payment step")
		return
	}
	if st.Payment.Completed {
		st.Advance()
		respondJSON(w, http.StatusOK, viewOf(token, st))
		return
	}

	receipt, err := h.Payments.Charge(r.Context())
	if err != nil {
		if errors.Is(err, payment.ErrDeclined) {
			h.Metrics.IncPayment("declined")
			respondError(w, http.StatusPaymentRequired, "payment declined, please retry")
			return
		}
		h.Log.Warn("payment aborted", map[string]interface{}{"token": token, "error": err.Error()})
		return
	}
	st.CommitPayment(receipt.Amount, receipt.TransactionRef)
	h.Metrics.IncPayment("success")
	h.Log.Info("registration fee paid", map[string]interface{}{
		"token":          token,
		"transactionRef": receipt.TransactionRef,
	})
	st.Advance()
	respondJSON(w, http.StatusOK, viewOf(token, st))
}

type profileStepRequest struct {
	Profile wizard.ProfilePatch `json:"profile"`
}

// SubmitProfile is the final step: it validates the service profile,
// materializes the caregiver record, and discards the wizard session.
func (h *RegistrationHandler) SubmitProfile(w http.ResponseWriter, r *http.Request) {
	token, st, release, ok := h.state(w, r)
	if !ok {
		return
	}
	defer release()
	if st.Current() != wizard.StepProfile {
		respondError(w, http.StatusConflict, "not at the profile step")
		return
	}
	var req profileStepRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := st.ApplyProfile(req.Profile); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := st.GateAdvance(); err != nil {
		respondGateError(w, err)
		return
	}
	if !st.Completed() {
		respondError(w, http.StatusConflict, "verification and payment must be completed first")
		return
	}

	var userID uint
	if s, ok := SessionFrom(r.Context()); ok {
		userID = s.UserID
	}
	cg, err := services.CreateCaregiverFromWizard(userID, st)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not create profile")
		return
	}
	h.Sessions.Delete(token)
	h.Metrics.IncRegistrationCompleted()
	h.Log.Info("registration completed", map[string]interface{}{
		"caregiverId": cg.ID,
		"service":     cg.Service,
	})
	respondJSON(w, http.StatusCreated, caregiverView(cg))
}
