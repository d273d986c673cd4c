package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/careconnect/homecare/internal/logger"
	"github.com/careconnect/homecare/internal/models"
	"github.com/careconnect/homecare/internal/services"
)

// CaregiverHandler serves the public caregiver directory and the nurse
// registry lookup.
type CaregiverHandler struct {
	Log logger.Logger
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func caregiverView(cg *models.CaregiverProfile) map[string]interface{} {
	return map[string]interface{}{
		"id":              cg.ID,
		"service":         cg.Service,
		"fullName":        cg.FullName,
		"age":             cg.Age,
		"qualification":   cg.Qualification,
		"yearsExperience": cg.YearsExperience,
		"specializations": splitList(cg.Specializations),
		"languages":       splitList(cg.Languages),
		"description":     cg.Description,
		"hourlyRate":      cg.HourlyRate,
		"dailyRate":       cg.DailyRate,
		"weeklyRate":      cg.WeeklyRate,
		"days":            splitList(cg.Days),
		"timeSlots":       splitList(cg.TimeSlots),
		"verified":        cg.Verified,
		"ratingAverage":   cg.RatingAverage,
		"ratingCount":     cg.RatingCount,
	}
}

// List returns caregivers ordered by rating, optionally filtered by
// ?service=.
func (h *CaregiverHandler) List(w http.ResponseWriter, r *http.Request) {
	service := r.URL.Query().Get("service")
	cgs, err := services.CaregiversByService(service)
	if err != nil {
		h.Log.Error("caregiver list failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "could not list caregivers")
		return
	}
	views := make([]map[string]interface{}, 0, len(cgs))
	for i := range cgs {
		views = append(views, caregiverView(&cgs[i]))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"caregivers": views})
}

// Get returns a single caregiver by id.
func (h *CaregiverHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := stringToUint(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid caregiver id")
		return
	}
	cg, err := services.CaregiverByID(id)
	if err != nil {
		if err == services.ErrCaregiverNotFound {
			respondError(w, http.StatusNotFound, "caregiver not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not load caregiver")
		return
	}
	respondJSON(w, http.StatusOK, caregiverView(cg))
}

type nuidRequest struct {
	NUID string `json:"nuid"`
}

// VerifyNUID checks a nurse unique ID against the registry. Standalone
// lookup, separate from the wizard's verification step.
func (h *CaregiverHandler) VerifyNUID(w http.ResponseWriter, r *http.Request) {
	var req nuidRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.NUID = strings.TrimSpace(req.NUID)
	if req.NUID == "" {
		respondError(w, http.StatusBadRequest, "nuid is required")
		return
	}
	ok, err := services.VerifyNUID(req.NUID)
	if err != nil {
		h.Log.Error("nuid lookup failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "registry lookup failed")
		return
	}
	msg := "NUID not found in the nursing registry"
	if ok {
		msg = "NUID verified against the nursing registry"
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"verified": ok, "message": msg})
}
