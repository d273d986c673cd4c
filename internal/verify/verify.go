// Package verify simulates the external identity/credential provider the
// registration wizard submits documents to. The document check stands in for
// a real supplier call and is randomized; the professional-ID check is
// deterministic, keyed on the registration prefix each service body issues.
package verify

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/careconnect/homecare/internal/wizard"
)

// Professional registration prefixes by service body.
const (
	NursePrefix         = "NUID" // National Unique ID for nurses
	PhysiotherapyPrefix = "IAP"  // Indian Association of Physiotherapists
)

// ProfessionalIDValid applies the prefix convention for the given service.
// Services without a registration body always pass.
func ProfessionalIDValid(service wizard.ServiceType, professionalID string) bool {
	switch service {
	case wizard.ServiceNursing:
		return strings.HasPrefix(professionalID, NursePrefix)
	case wizard.ServicePhysiotherapy:
		return strings.HasPrefix(professionalID, PhysiotherapyPrefix)
	}
	return true
}

// Checker runs the simulated verification call.
type Checker struct {
	// Delay is the artificial provider latency.
	Delay time.Duration
	// DocumentPassRate is the probability the randomized document check
	// passes. 1.0 makes the check deterministic-pass.
	DocumentPassRate float64
	// Rand supplies the coin flip; defaults to the global source.
	Rand *rand.Rand
}

// New returns a Checker with the given latency and document pass rate.
func New(delay time.Duration, documentPassRate float64) *Checker {
	return &Checker{Delay: delay, DocumentPassRate: documentPassRate}
}

func (c *Checker) roll() float64 {
	if c.Rand != nil {
		return c.Rand.Float64()
	}
	return rand.Float64()
}

// Verify waits out the provider delay and produces a verification outcome
// for the accumulated documents. It always terminates with a defined status
// unless the context is cancelled first, in which case nothing is committed
// and ctx.Err() is returned.
func (c *Checker) Verify(ctx context.Context, service wizard.ServiceType, professionalID string) (wizard.VerificationState, error) {
	if c.Delay > 0 {
		t := time.NewTimer(c.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return wizard.VerificationState{Status: wizard.VerificationUnset}, ctx.Err()
		case <-t.C:
		}
	}

	documentsValid := c.roll() < c.DocumentPassRate
	professionalIDValid := ProfessionalIDValid(service, professionalID)

	status := wizard.VerificationFailed
	if documentsValid && professionalIDValid {
		status = wizard.VerificationSuccess
	}
	return wizard.VerificationState{
		Status:              status,
		DocumentsValid:      documentsValid,
		ProfessionalIDValid: professionalIDValid,
	}, nil
}
