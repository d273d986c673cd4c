package handlers

import (
	"errors"
	"net/http"

	"github.com/careconnect/homecare/internal/logger"
	"github.com/careconnect/homecare/internal/models"
	"github.com/careconnect/homecare/internal/services"
)

// DashboardHandler serves the role-specific landing data: profile plus
// bookings, and for caregivers the completed-booking earnings sum.
type DashboardHandler struct {
	Log logger.Logger
}

// Caregiver returns the caregiver's profile, bookings, and earnings.
func (h *DashboardHandler) Caregiver(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	cg, err := services.CaregiverByUser(sess.UserID)
	if err != nil {
		if errors.Is(err, services.ErrCaregiverNotFound) {
			respondError(w, http.StatusNotFound, "no caregiver profile; complete registration first")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not load profile")
		return
	}
	rows, err := services.BookingsByUser(cg.ID, models.RoleCaregiver)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not load bookings")
		return
	}
	earnings, err := services.Earnings(cg.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not total earnings")
		return
	}
	views := make([]map[string]interface{}, 0, len(rows))
	for i := range rows {
		views = append(views, bookingView(&rows[i]))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile":  caregiverView(cg),
		"bookings": views,
		"earnings": earnings,
	})
}

func customerView(c *models.CustomerProfile) map[string]interface{} {
	return map[string]interface{}{
		"id":       c.ID,
		"fullName": c.FullName,
		"email":    c.Email,
		"phone":    c.Phone,
		"address":  c.Address,
	}
}

// Customer returns the customer's profile and bookings. A missing profile
// is not an error here; the client uses it to prompt for profile setup.
func (h *DashboardHandler) Customer(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	out := map[string]interface{}{
		"profile":  nil,
		"bookings": []interface{}{},
	}
	c, err := services.CustomerByUser(sess.UserID)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			respondJSON(w, http.StatusOK, out)
			return
		}
		respondError(w, http.StatusInternalServerError, "could not load profile")
		return
	}
	out["profile"] = customerView(c)
	rows, err := services.BookingsByUser(c.ID, models.RoleCustomer)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not load bookings")
		return
	}
	views := make([]map[string]interface{}, 0, len(rows))
	for i := range rows {
		views = append(views, bookingView(&rows[i]))
	}
	out["bookings"] = views
	respondJSON(w, http.StatusOK, out)
}

type customerProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpsertCustomerProfile creates or updates the customer's contact profile.
func (h *DashboardHandler) UpsertCustomerProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	var req customerProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.FullName == "" || req.Email == "" || req.Phone == "" {
		respondError(w, http.StatusUnprocessableEntity, "fullName, email and phone are required")
		return
	}
	c, err := services.UpsertCustomer(sess.UserID, req.FullName, req.Email, req.Phone, req.Address)
	if err != nil {
		h.Log.Error("customer profile save failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "could not save profile")
		return
	}
	respondJSON(w, http.StatusOK, customerView(c))
}
