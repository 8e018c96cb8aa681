// Package donate coordinates a single donation form submission: amount and
// field validation, the gateway call, and the one-time redirect side effect.
package donate

import (
	"stlouis-middleware/models"
	"stlouis-middleware/payments"
	"stlouis-middleware/validate"

	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Controller states. Validation strictly precedes the network call; error
// returns to idle on any field change.
const (
	StateIdle       = "idle"
	StateValidating = "validating"
	StateSubmitting = "submitting"
	StateRedirected = "redirected"
	StateError      = "error"
)

// PresetAmounts are the quick-select donation amounts in Ghana Cedis.
var PresetAmounts = []float64{10, 30, 50, 100, 200, 500, 1000, 3000, 5000}

// Gateway is the slice of the payment client the controller needs.
type Gateway interface {
	InitializePayment(ctx context.Context, req models.PaymentRequest) (models.PaymentSession, error)
}

// Form holds the donor's input. Phone and Message are optional.
type Form struct {
	DonorName    string
	Email        string
	Phone        string
	Message      string
	Amount       float64
	DonationType string
}

// Controller is the donation form state machine. Navigation is injected so
// the decision of when to redirect stays testable apart from any actual
// browser navigation.
type Controller struct {
	mu       sync.Mutex
	state    string
	form     Form
	errMsg   string
	session  models.PaymentSession
	gateway  Gateway
	navigate func(url string)
}

func NewController(gateway Gateway, navigate func(url string)) *Controller {
	return &Controller{
		state:    StateIdle,
		gateway:  gateway,
		navigate: navigate,
	}
}

// UpdateForm replaces the form fields. Any surfaced error is cleared and an
// errored controller returns to idle.
func (c *Controller) UpdateForm(form Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
	if c.state == StateError {
		c.state = StateIdle
		c.errMsg = ""
	}
}

// CanSubmit mirrors the submit button's disabled state: required fields
// present, a positive amount, and no submission in flight.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting || c.state == StateValidating {
		return false
	}
	return c.form.DonorName != "" && c.form.Email != "" && c.form.Amount > 0
}

// Submit runs one submission attempt. Each attempt is an independent
// payment request with a fresh reference; there is no queued retry and no
// resubmission guard beyond that.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateSubmitting || c.state == StateValidating {
		c.mu.Unlock()
		return fmt.Errorf("a submission is already in progress")
	}
	c.state = StateValidating
	form := c.form
	c.mu.Unlock()

	attemptID := uuid.NewString()

	if err := validateForm(form); err != nil {
		c.fail(err.Error())
		return err
	}

	req := models.PaymentRequest{
		Email:  form.Email,
		Amount: form.Amount,
		Metadata: models.PaymentMetadata{
			DonorName:    form.DonorName,
			Phone:        form.Phone,
			DonationType: form.DonationType,
			CustomFields: donorFields(form),
		},
	}

	c.setState(StateSubmitting)
	log.Printf("donation attempt %v: submitting %v for %v", attemptID, payments.FormatAmount(form.Amount, "GHS"), form.Email)

	session, err := c.gateway.InitializePayment(ctx, req)
	if err != nil {
		var vErr *payments.ValidationError
		if errors.As(err, &vErr) {
			c.fail(vErr.Reason)
			return err
		}
		log.Printf("donation attempt %v failed: %v", attemptID, err.Error())
		c.fail("Failed to initialize payment. Please try again.")
		return err
	}

	c.mu.Lock()
	c.session = session
	c.state = StateRedirected
	c.errMsg = ""
	navigate := c.navigate
	c.mu.Unlock()

	if navigate != nil {
		navigate(session.AuthorizationURL)
	}
	return nil
}

// State returns the current state.
func (c *Controller) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Error returns the surfaced human-readable message, empty unless errored.
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Session returns the gateway session from a successful submission.
func (c *Controller) Session() models.PaymentSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Controller) setState(state string) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *Controller) fail(msg string) {
	c.mu.Lock()
	c.state = StateError
	c.errMsg = msg
	c.mu.Unlock()
}

func validateForm(form Form) error {
	if form.DonorName == "" || form.Email == "" || form.Amount == 0 {
		return &payments.ValidationError{Field: "form", Reason: "please fill in all required fields"}
	}
	if !validate.Email(form.Email) {
		return &payments.ValidationError{Field: "email", Reason: "please provide a valid email address"}
	}
	if !validate.Amount(form.Amount) {
		return &payments.ValidationError{Field: "amount", Reason: "please provide a valid amount"}
	}
	if form.Phone != "" && !validate.GhanaPhone(form.Phone) {
		return &payments.ValidationError{Field: "phone", Reason: "please provide a valid Ghana phone number"}
	}
	return nil
}

// donorFields mirrors the donation form's dashboard fields: optional values
// get explicit placeholders so the columns are always present.
func donorFields(form Form) []models.CustomField {
	phone := form.Phone
	if phone == "" {
		phone = "Not provided"
	}
	message := form.Message
	if message == "" {
		message = "No message"
	}
	return []models.CustomField{
		{DisplayName: "Donor Name", VariableName: "donor_name", Value: form.DonorName},
		{DisplayName: "Phone Number", VariableName: "phone_number", Value: phone},
		{DisplayName: "Message", VariableName: "message", Value: message},
	}
}
