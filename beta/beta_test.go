package beta_test

import (
	"errors"
	"testing"

	"stlouis-middleware/access"
	"stlouis-middleware/beta"
)

func newVerifier(t *testing.T) (*beta.Verifier, *access.Gate, *int) {
	t.Helper()
	gate := access.NewGate(access.NewMemoryStore())
	granted := 0
	v := beta.NewVerifier(gate, func() { granted++ })
	v.Delay = 0
	return v, gate, &granted
}

func TestAgreementRequired(t *testing.T) {
	v, _, _ := newVerifier(t)

	err := v.SubmitCode("BETA2024STL")
	if !errors.Is(err, beta.ErrAgreementRequired) {
		t.Fatalf("expected ErrAgreementRequired, got %v", err)
	}

	err = v.SubmitAgreement(false)
	if !errors.Is(err, beta.ErrMustAgree) {
		t.Fatalf("expected ErrMustAgree, got %v", err)
	}
	if v.Step() != beta.StepAgreement {
		t.Errorf("step = %v, want agreement", v.Step())
	}

	if err := v.SubmitAgreement(true); err != nil {
		t.Fatalf("SubmitAgreement: %v", err)
	}
	if v.Step() != beta.StepCode {
		t.Errorf("step = %v, want code", v.Step())
	}
}

func TestSubmitCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		ok   bool
	}{
		{"exact", "BETA2024STL", true},
		{"lowercase", "beta2024stl", true},
		{"surrounding whitespace", "  beta2024stl  ", true},
		{"another valid code", "trial9y4u", true},
		{"unknown code", "NOTACODE123", false},
		{"unknown code any casing", "notacode123", false},
		{"empty", "", false},
		{"internal whitespace", "BETA 2024 STL", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, gate, granted := newVerifier(t)
			if err := v.SubmitAgreement(true); err != nil {
				t.Fatalf("SubmitAgreement: %v", err)
			}

			err := v.SubmitCode(tt.code)
			if tt.ok {
				if err != nil {
					t.Fatalf("SubmitCode(%q): %v", tt.code, err)
				}
				if !gate.HasAccess() {
					t.Error("gate should be granted after a valid code")
				}
				if *granted != 1 {
					t.Errorf("granted callback fired %v times, want 1", *granted)
				}
			} else {
				if !errors.Is(err, beta.ErrInvalidCode) {
					t.Fatalf("expected ErrInvalidCode, got %v", err)
				}
				if gate.HasAccess() {
					t.Error("gate must not be granted on a rejected code")
				}
				if *granted != 0 {
					t.Errorf("granted callback fired %v times, want 0", *granted)
				}
			}
		})
	}
}

func TestCodesReturnsCopy(t *testing.T) {
	codes := beta.Codes()
	if len(codes) != 7 {
		t.Fatalf("code count = %v, want 7", len(codes))
	}
	codes[0] = "MUTATED"
	if beta.Codes()[0] == "MUTATED" {
		t.Error("Codes must return a copy")
	}
}
