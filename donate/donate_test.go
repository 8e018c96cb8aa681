package donate_test

import (
	"context"
	"errors"
	"testing"

	"stlouis-middleware/donate"
	"stlouis-middleware/models"
	"stlouis-middleware/payments"
)

type fakeGateway struct {
	calls   int
	lastReq models.PaymentRequest
	session models.PaymentSession
	err     error
}

func (g *fakeGateway) InitializePayment(ctx context.Context, req models.PaymentRequest) (models.PaymentSession, error) {
	g.calls++
	g.lastReq = req
	if g.err != nil {
		return models.PaymentSession{}, g.err
	}
	return g.session, nil
}

func validForm() donate.Form {
	return donate.Form{
		DonorName: "Kofi",
		Email:     "a@b.com",
		Amount:    50,
	}
}

func TestSubmitSuccess(t *testing.T) {
	gw := &fakeGateway{
		session: models.PaymentSession{
			AuthorizationURL: "https://checkout.paystack.com/xyz",
			AccessCode:       "xyz",
			Reference:        "STLOUIS_1_2",
		},
	}
	var navigatedTo string
	navigations := 0
	ctrl := donate.NewController(gw, func(url string) {
		navigatedTo = url
		navigations++
	})

	ctrl.UpdateForm(validForm())
	if !ctrl.CanSubmit() {
		t.Fatal("a complete form should be submittable")
	}
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if ctrl.State() != donate.StateRedirected {
		t.Errorf("state = %v, want redirected", ctrl.State())
	}
	if navigations != 1 {
		t.Errorf("navigate fired %v times, want 1", navigations)
	}
	if navigatedTo != "https://checkout.paystack.com/xyz" {
		t.Errorf("navigated to %v", navigatedTo)
	}
	if gw.lastReq.Amount != 50 {
		t.Errorf("amount = %v, want major units passed through", gw.lastReq.Amount)
	}
	if gw.lastReq.Metadata.DonorName != "Kofi" {
		t.Errorf("donor name = %v", gw.lastReq.Metadata.DonorName)
	}
	// optional fields get explicit placeholders in the dashboard fields
	found := map[string]string{}
	for _, f := range gw.lastReq.Metadata.CustomFields {
		found[f.VariableName] = f.Value
	}
	if found["phone_number"] != "Not provided" {
		t.Errorf("phone field = %q, want placeholder", found["phone_number"])
	}
	if found["message"] != "No message" {
		t.Errorf("message field = %q, want placeholder", found["message"])
	}
}

func TestSubmitBlockedOnBadEmail(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := donate.NewController(gw, nil)
	form := validForm()
	form.Email = "not-an-email"
	ctrl.UpdateForm(form)

	err := ctrl.Submit(context.Background())
	var vErr *payments.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gw.calls != 0 {
		t.Error("gateway must not be called when validation fails")
	}
	if ctrl.State() != donate.StateError {
		t.Errorf("state = %v, want error", ctrl.State())
	}
	if ctrl.Error() == "" {
		t.Error("an inline message should be surfaced")
	}
}

func TestSubmitBlockedOnBadPhone(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := donate.NewController(gw, nil)
	form := validForm()
	form.Phone = "12345"
	ctrl.UpdateForm(form)

	if err := ctrl.Submit(context.Background()); err == nil {
		t.Fatal("expected a validation error for a bad phone")
	}
	if gw.calls != 0 {
		t.Error("gateway must not be called when the phone is malformed")
	}
}

func TestEmptyPhoneIsAccepted(t *testing.T) {
	gw := &fakeGateway{}
	ctrl := donate.NewController(gw, nil)
	ctrl.UpdateForm(validForm())
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit with empty phone: %v", err)
	}
	if gw.calls != 1 {
		t.Errorf("gateway calls = %v, want 1", gw.calls)
	}
}

func TestCanSubmitRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		form donate.Form
		want bool
	}{
		{"complete", validForm(), true},
		{"missing name", donate.Form{Email: "a@b.com", Amount: 50}, false},
		{"missing email", donate.Form{DonorName: "Kofi", Amount: 50}, false},
		{"missing amount", donate.Form{DonorName: "Kofi", Email: "a@b.com"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := donate.NewController(&fakeGateway{}, nil)
			ctrl.UpdateForm(tt.form)
			if got := ctrl.CanSubmit(); got != tt.want {
				t.Errorf("CanSubmit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGatewayErrorSurfacesAndAllowsRetry(t *testing.T) {
	gw := &fakeGateway{err: &payments.GatewayError{Op: "initialize", StatusCode: 502, Message: "down"}}
	ctrl := donate.NewController(gw, nil)
	ctrl.UpdateForm(validForm())

	if err := ctrl.Submit(context.Background()); err == nil {
		t.Fatal("expected an error from the gateway")
	}
	if ctrl.State() != donate.StateError {
		t.Errorf("state = %v, want error", ctrl.State())
	}
	if ctrl.Error() == "" {
		t.Error("a retryable message should be surfaced")
	}

	// a field change clears the error and the next attempt is independent
	ctrl.UpdateForm(validForm())
	if ctrl.State() != donate.StateIdle {
		t.Errorf("state = %v, want idle after field change", ctrl.State())
	}
	gw.err = nil
	gw.session = models.PaymentSession{AuthorizationURL: "https://x"}
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if gw.calls != 2 {
		t.Errorf("gateway calls = %v, want 2", gw.calls)
	}
}
