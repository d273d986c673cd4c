// Package payment simulates the registration-fee charge. The fee is fixed;
// the success policy is explicit configuration rather than an implied coin
// flip, and defaults to unconditional success.
package payment

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultFee is the one-time caregiver registration fee.
var DefaultFee = decimal.NewFromInt(500)

// ErrDeclined is returned when the simulated gateway declines the charge.
// The caller may retry; nothing was committed.
var ErrDeclined = errors.New("payment: declined by gateway")

type Receipt struct {
	Amount         decimal.Decimal `json:"amount"`
	TransactionRef string          `json:"transactionRef"`
	PaidAt         time.Time       `json:"paidAt"`
}

// Processor runs the simulated charge.
type Processor struct {
	Fee   decimal.Decimal
	Delay time.Duration
	// SuccessRate is the probability a charge succeeds. 1.0 (the default
	// policy) never declines.
	SuccessRate float64
	// Rand supplies the decline roll; defaults to the global source.
	Rand *rand.Rand

	now func() time.Time
}

// New returns a Processor charging fee with the given latency and success
// rate.
func New(fee decimal.Decimal, delay time.Duration, successRate float64) *Processor {
	return &Processor{Fee: fee, Delay: delay, SuccessRate: successRate, now: time.Now}
}

func (p *Processor) roll() float64 {
	if p.Rand != nil {
		return p.Rand.Float64()
	}
	return rand.Float64()
}

// Charge waits out the gateway delay and either returns a receipt or
// ErrDeclined. Cancelling the context aborts the charge without committing
// anything.
func (p *Processor) Charge(ctx context.Context) (Receipt, error) {
	if p.Delay > 0 {
		t := time.NewTimer(p.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-t.C:
		}
	}

	if p.roll() >= p.SuccessRate {
		return Receipt{}, ErrDeclined
	}

	nowFn := p.now
	if nowFn == nil {
		nowFn = time.Now
	}
	return Receipt{
		Amount:         p.Fee,
		TransactionRef: "TXN-" + uuid.NewString(),
		PaidAt:         nowFn(),
	}, nil
}
