package verify

import (
	"context"
	"testing"
	"time"

	"github.com/careconnect/homecare/internal/wizard"
)

func TestProfessionalIDValid_PrefixConvention(t *testing.T) {
	cases := []struct {
		service wizard.ServiceType
		id      string
		want    bool
	}{
		{wizard.ServiceNursing, "NUID123", true},
		{wizard.ServiceNursing, "XYZ999", false},
		{wizard.ServicePhysiotherapy, "IAP456", true},
		{wizard.ServicePhysiotherapy, "NUID123", false},
		{wizard.ServiceBabysitting, "", true},
		{wizard.ServicePostnatal, "anything", true},
	}
	for _, tc := range cases {
		if got := ProfessionalIDValid(tc.service, tc.id); got != tc.want {
			t.Errorf("ProfessionalIDValid(%s, %q) = %v, want %v", tc.service, tc.id, got, tc.want)
		}
	}
}

// A completed check always lands on success or failed, never unset.
func TestVerify_TerminatesWithDefinedStatus(t *testing.T) {
	c := New(time.Millisecond, 0.5)
	for i := 0; i < 20; i++ {
		res, err := c.Verify(context.Background(), wizard.ServiceNursing, "NUID123")
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if res.Status != wizard.VerificationSuccess && res.Status != wizard.VerificationFailed {
			t.Fatalf("status %q, want success or failed", res.Status)
		}
	}
}

func TestVerify_DeterministicOutcomes(t *testing.T) {
	pass := New(0, 1.0)
	res, err := pass.Verify(context.Background(), wizard.ServiceNursing, "NUID123")
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != wizard.VerificationSuccess || !res.DocumentsValid || !res.ProfessionalIDValid {
		t.Errorf("rate 1.0 with valid ID: %+v", res)
	}

	res, err = pass.Verify(context.Background(), wizard.ServiceNursing, "XYZ999")
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != wizard.VerificationFailed || res.ProfessionalIDValid {
		t.Errorf("bad prefix must fail even with passing documents: %+v", res)
	}

	fail := New(0, 0)
	res, err = fail.Verify(context.Background(), wizard.ServiceBabysitting, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != wizard.VerificationFailed || res.DocumentsValid {
		t.Errorf("rate 0: %+v", res)
	}
}

func TestVerify_CancelledContextCommitsNothing(t *testing.T) {
	c := New(5*time.Second, 1.0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := c.Verify(ctx, wizard.ServiceNursing, "NUID123")
	if err == nil {
		t.Fatal("expected ctx error")
	}
	if res.Status != wizard.VerificationUnset {
		t.Errorf("aborted check produced status %q, want unset", res.Status)
	}
}
