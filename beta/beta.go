// Package beta implements the two-step beta tester entry flow: agree to the
// testing terms, then enter an access code from the fixed allow-list.
//
// This is a soft UX gate, not an access-control boundary. There is no
// lockout, retry counting, rate limiting or per-user binding, and the code
// list has no expiry or rotation. Do not harden it here without product
// signoff.
package beta

import (
	"stlouis-middleware/access"

	"errors"
	"strings"
	"sync"
	"time"
)

// validCodes is the fixed allow-list. Codes are matched case-insensitively
// after trimming surrounding whitespace.
var validCodes = []string{
	"BETA2024STL",
	"DEMO7X9K2",
	"TESTER4M8P",
	"ALPHA3Q7W",
	"PREVIEW5N1",
	"ACCESS8R6T",
	"TRIAL9Y4U",
}

// DefaultDelay is slept before a code submission resolves, so a rejection
// doesn't feel instant. This is a UX choice only and must not be relied on
// for rate limiting.
const DefaultDelay = 1500 * time.Millisecond

const (
	StepAgreement = "agreement"
	StepCode      = "code"
)

var (
	ErrMustAgree         = errors.New("you must agree to the beta testing terms to continue")
	ErrAgreementRequired = errors.New("agreement step has not been completed")
	ErrInvalidCode       = errors.New("invalid beta tester code, please check your code and try again")
)

// Verifier walks a visitor through the agreement and code steps and grants
// access on success.
type Verifier struct {
	// Delay is the minimum latency before a code submission resolves.
	// Tests set it to zero.
	Delay time.Duration

	gate      *access.Gate
	onGranted func()

	mu   sync.Mutex
	step string
}

// NewVerifier wires a verifier to the gate. onGranted, if non-nil, fires
// once per successful code entry after the grant has been written.
func NewVerifier(gate *access.Gate, onGranted func()) *Verifier {
	return &Verifier{
		Delay:     DefaultDelay,
		gate:      gate,
		onGranted: onGranted,
		step:      StepAgreement,
	}
}

// Step reports which step the flow is on.
func (v *Verifier) Step() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.step
}

// SubmitAgreement gates progression to the code-entry step. Its only side
// effect is the step transition.
func (v *Verifier) SubmitAgreement(agreed bool) error {
	if !agreed {
		return ErrMustAgree
	}
	v.mu.Lock()
	v.step = StepCode
	v.mu.Unlock()
	return nil
}

// SubmitCode normalizes and checks the submitted code. On a match it grants
// access and notifies the callback; on a miss it returns ErrInvalidCode
// without mutating anything.
func (v *Verifier) SubmitCode(code string) error {
	v.mu.Lock()
	step := v.step
	v.mu.Unlock()
	if step != StepCode {
		return ErrAgreementRequired
	}

	if v.Delay > 0 {
		time.Sleep(v.Delay)
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, valid := range validCodes {
		if normalized == valid {
			v.gate.GrantAccess()
			if v.onGranted != nil {
				v.onGranted()
			}
			return nil
		}
	}
	return ErrInvalidCode
}

// Codes returns a copy of the allow-list, for the betactl developer tool.
func Codes() []string {
	out := make([]string, len(validCodes))
	copy(out, validCodes)
	return out
}
