package handlers

import (
	"errors"
	"image/png"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/careconnect/homecare/internal/logger"
	"github.com/careconnect/homecare/internal/metrics"
	"github.com/careconnect/homecare/internal/models"
	"github.com/careconnect/homecare/internal/services"
)

const bookingDateLayout = "2006-01-02"

// BookingHandler exposes booking creation, listing, and the status
// transitions each side of the marketplace is allowed to make.
type BookingHandler struct {
	Metrics *metrics.Metrics
	Log     logger.Logger
}

func bookingView(b *models.Booking) map[string]interface{} {
	return map[string]interface{}{
		"code":           b.Code,
		"service":        b.Service,
		"startDate":      b.StartDate.Format(bookingDateLayout),
		"endDate":        b.EndDate.Format(bookingDateLayout),
		"duration":       b.Duration,
		"totalAmount":    b.TotalAmount,
		"status":         b.Status,
		"paymentStatus":  b.PaymentStatus,
		"customerName":   b.CustomerName,
		"caregiverName":  b.CaregiverName,
		"serviceDetails": b.ServiceDetails,
		"cancellable":    b.Status == models.BookingPending,
		"createdAt":      b.CreatedAt,
	}
}

type createBookingRequest struct {
	CaregiverID    uint   `json:"caregiverId"`
	Duration       string `json:"duration"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	ServiceDetails string `json:"serviceDetails"`
}

// Create books a caregiver for the logged-in customer.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}
	var req createBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	start, err := time.Parse(bookingDateLayout, req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(bookingDateLayout, req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}

	customer, err := services.CustomerByUser(sess.UserID)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			respondError(w, http.StatusConflict, "set up your customer profile before booking")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not load profile")
		return
	}
	cg, err := services.CaregiverByID(req.CaregiverID)
	if err != nil {
		if errors.Is(err, services.ErrCaregiverNotFound) {
			respondError(w, http.StatusNotFound, "caregiver not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not load caregiver")
		return
	}

	b, err := services.CreateBooking(customer, cg, req.Duration, start, end, req.ServiceDetails)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidBookingSpan), errors.Is(err, services.ErrUnknownDuration):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("booking create failed", map[string]interface{}{"error": err.Error()})
			respondError(w, http.StatusInternalServerError, "could not create booking")
		}
		return
	}
	h.Log.Info("booking created", map[string]interface{}{
		"code":        b.Code,
		"caregiverId": cg.ID,
		"customerId":  customer.ID,
	})
	respondJSON(w, http.StatusCreated, bookingView(b))
}

// List returns the logged-in user's bookings, newest first.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}
	profileID, err := profileIDFor(sess)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"bookings": []interface{}{}})
		return
	}
	rows, err := services.BookingsByUser(profileID, sess.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not list bookings")
		return
	}
	views := make([]map[string]interface{}, 0, len(rows))
	for i := range rows {
		views = append(views, bookingView(&rows[i]))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"bookings": views})
}

// profileIDFor resolves the marketplace profile backing a login.
func profileIDFor(sess *Session) (uint, error) {
	if sess.Role == models.RoleCaregiver {
		cg, err := services.CaregiverByUser(sess.UserID)
		if err != nil {
			return 0, err
		}
		return cg.ID, nil
	}
	c, err := services.CustomerByUser(sess.UserID)
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

// transition applies a status change after checking the caller owns the
// booking on the expected side.
func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, role, to string) {
	sess, ok := SessionFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}
	if sess.Role != role {
		respondError(w, http.StatusForbidden, "not allowed for this account type")
		return
	}
	code := chi.URLParam(r, "code")
	profileID, err := profileIDFor(sess)
	if err != nil {
		respondError(w, http.StatusForbidden, "no profile for this account")
		return
	}
	rows, err := services.BookingsByUser(profileID, sess.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not load bookings")
		return
	}
	owned := false
	for _, b := range rows {
		if b.Code == code {
			owned = true
			break
		}
	}
	if !owned {
		respondError(w, http.StatusNotFound, "booking not found")
		return
	}

	b, err := services.TransitionBooking(code, to)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			respondError(w, http.StatusNotFound, "booking not found")
		case errors.Is(err, services.ErrInvalidTransition):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "could not update booking")
		}
		return
	}
	h.Metrics.IncBookingTransition(to)
	h.Log.Info("booking status changed", map[string]interface{}{"code": code, "status": to})
	respondJSON(w, http.StatusOK, bookingView(b))
}

// Cancel lets the customer cancel a pending or confirmed booking.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.RoleCustomer, models.BookingCancelled)
}

// Confirm lets the caregiver accept a pending booking.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.RoleCaregiver, models.BookingConfirmed)
}

// Complete lets the caregiver close out a confirmed booking.
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.RoleCaregiver, models.BookingCompleted)
}

// QR renders the booking code as a PNG for handoff at the door.
func (h *BookingHandler) QR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	q, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not render code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, q.Image(256)); err != nil {
		h.Log.Warn("qr write failed", map[string]interface{}{"error": err.Error()})
	}
}
