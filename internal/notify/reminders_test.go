package notify

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/careconnect/homecare/internal/db"
	"github.com/careconnect/homecare/internal/models"
)

// recordingLogger captures Info messages so a test can assert on what was
// emitted.
type recordingLogger struct {
	mu      sync.Mutex
	entries []map[string]interface{}
}

func (l *recordingLogger) Info(message string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := map[string]interface{}{"message": message}
	for k, v := range fields {
		e[k] = v
	}
	l.entries = append(l.entries, e)
}

func (l *recordingLogger) Warn(string, map[string]interface{})  {}
func (l *recordingLogger) Error(string, map[string]interface{}) {}
func (l *recordingLogger) Debug(string, map[string]interface{}) {}

func initTestDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notify_test.db")
	if err := db.Init(path); err != nil {
		t.Fatalf("db.Init: %v", err)
	}
}

func TestRunReminders_WindowAndStatus(t *testing.T) {
	initTestDB(t)

	now := time.Date(2026, 3, 10, 9, 30, 12, 0, time.UTC)
	tick := now.Truncate(time.Minute)

	seed := func(code, status string, start time.Time) {
		b := models.Booking{
			Code:          code,
			Status:        status,
			StartDate:     start,
			CustomerName:  "Dewi",
			CaregiverName: "Sari",
		}
		if err := db.Conn().Create(&b).Error; err != nil {
			t.Fatalf("seed %s: %v", code, err)
		}
	}

	// Due within this tick's 24h-ahead window.
	seed("BKG-00000001", models.BookingConfirmed, tick.Add(24*time.Hour+30*time.Second))
	// Same window but not confirmed: must not fire.
	seed("BKG-00000002", models.BookingPending, tick.Add(24*time.Hour+30*time.Second))
	// Confirmed but outside every window.
	seed("BKG-00000003", models.BookingConfirmed, tick.Add(6*time.Hour))

	rec := &recordingLogger{}
	runReminders([]time.Duration{24 * time.Hour, 2 * time.Hour}, now, rec)

	if len(rec.entries) != 1 {
		t.Fatalf("got %d reminders, want 1: %v", len(rec.entries), rec.entries)
	}
	e := rec.entries[0]
	if e["message"] != "booking reminder" {
		t.Errorf("message = %v", e["message"])
	}
	if e["code"] != "BKG-00000001" {
		t.Errorf("code = %v", e["code"])
	}
	if e["ahead"] != "24h0m0s" {
		t.Errorf("ahead = %v", e["ahead"])
	}
}

func TestRunReminders_FiresOncePerBooking(t *testing.T) {
	initTestDB(t)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	b := models.Booking{
		Code:      "BKG-000000AA",
		Status:    models.BookingConfirmed,
		StartDate: now.Add(2*time.Hour + 10*time.Second),
	}
	if err := db.Conn().Create(&b).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := &recordingLogger{}
	runReminders([]time.Duration{24 * time.Hour, 2 * time.Hour}, now, rec)
	if len(rec.entries) != 1 {
		t.Fatalf("got %d reminders, want 1", len(rec.entries))
	}
	if rec.entries[0]["ahead"] != "2h0m0s" {
		t.Errorf("ahead = %v", rec.entries[0]["ahead"])
	}

	// The next minute's tick must not re-fire the same booking.
	rec2 := &recordingLogger{}
	runReminders([]time.Duration{24 * time.Hour, 2 * time.Hour}, now.Add(time.Minute), rec2)
	if len(rec2.entries) != 0 {
		t.Errorf("re-fired: %v", rec2.entries)
	}
}
