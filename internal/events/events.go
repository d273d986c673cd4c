package events

import "github.com/careconnect/homecare/internal/models"

// OnBookingStatusChange is called after a booking changes status (confirm,
// complete, cancel). services will call this if it's set.
var OnBookingStatusChange func(b models.Booking, from string)
