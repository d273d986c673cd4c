package payment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"
)

var txnRE = regexp.MustCompile(`^TXN-[0-9a-f-]{36}$`)

func TestCharge_Receipt(t *testing.T) {
	p := New(DefaultFee, 0, 1.0)
	rcpt, err := p.Charge(context.Background())
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if !rcpt.Amount.Equal(DefaultFee) {
		t.Errorf("amount = %s, want %s", rcpt.Amount, DefaultFee)
	}
	if !txnRE.MatchString(rcpt.TransactionRef) {
		t.Errorf("transaction ref %q does not match TXN-<uuid>", rcpt.TransactionRef)
	}
	if rcpt.PaidAt.IsZero() {
		t.Error("PaidAt not set")
	}
}

func TestCharge_RefsUnique(t *testing.T) {
	p := New(DefaultFee, 0, 1.0)
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		rcpt, err := p.Charge(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if _, dup := seen[rcpt.TransactionRef]; dup {
			t.Fatalf("duplicate transaction ref %q", rcpt.TransactionRef)
		}
		seen[rcpt.TransactionRef] = struct{}{}
	}
}

func TestCharge_Declined(t *testing.T) {
	p := New(DefaultFee, 0, 0)
	if _, err := p.Charge(context.Background()); !errors.Is(err, ErrDeclined) {
		t.Fatalf("rate 0: got %v, want ErrDeclined", err)
	}
}

func TestCharge_CancelledContext(t *testing.T) {
	p := New(DefaultFee, 5*time.Second, 1.0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Charge(ctx); err == nil {
		t.Fatal("expected ctx error")
	}
}
