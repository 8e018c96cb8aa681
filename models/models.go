package models

// CustomField is one entry in the custom_fields array that Paystack renders
// on its dashboard for a transaction.
type CustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

// PaymentMetadata travels with a payment initialization and is echoed back
// by the gateway on verification.
type PaymentMetadata struct {
	DonorName       string        `json:"donor_name,omitempty"`
	Phone           string        `json:"phone,omitempty"`
	DonationType    string        `json:"donation_type,omitempty"`
	SchoolName      string        `json:"school_name,omitempty"`
	DonationPurpose string        `json:"donation_purpose,omitempty"`
	CustomFields    []CustomField `json:"custom_fields,omitempty"`
}

// PaymentRequest is a single donation attempt. Amount is in major currency
// units (Ghana Cedis); conversion to pesewas happens at the gateway client
// boundary, never here.
type PaymentRequest struct {
	Email       string          `json:"email"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	CallbackURL string          `json:"callback_url,omitempty"`
	Metadata    PaymentMetadata `json:"metadata,omitempty"`
}

// PaymentSession is what the gateway hands back on a successful
// initialization. It is consumed immediately for the redirect and never
// persisted.
type PaymentSession struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// PaymentVerificationResult is a read-only projection of the gateway's view
// of a transaction, fetched by reference.
type PaymentVerificationResult struct {
	Reference     string `json:"reference"`
	Status        string `json:"status"` // succeeded, failed or pending
	AmountMinor   int64  `json:"amount_minor"`
	Currency      string `json:"currency"`
	PaidAt        string `json:"paid_at"`
	Channel       string `json:"channel"`
	CustomerEmail string `json:"customer_email"`
}

// TransactionSummary is one row from the gateway's transaction listing.
type TransactionSummary struct {
	Reference     string `json:"reference"`
	Status        string `json:"status"`
	AmountMinor   int64  `json:"amount_minor"`
	Currency      string `json:"currency"`
	PaidAt        string `json:"paid_at"`
	Channel       string `json:"channel"`
	CustomerEmail string `json:"customer_email"`
}

// PaymentPage describes a reusable hosted donation page on the gateway.
type PaymentPage struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount,omitempty"` // major units, optional for variable amounts
	Slug        string  `json:"slug,omitempty"`
	RedirectURL string  `json:"redirect_url,omitempty"`
}

// DeviceProfile buckets a client for layout decisions only. It carries no
// correctness invariant.
type DeviceProfile struct {
	Class   string `json:"class"` // mobile, tablet or desktop
	Label   string `json:"label"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	IsTouch bool   `json:"is_touch"`
}

// DonationBody is the POST body for /api/donations/initialize.
type DonationBody struct {
	DonorName    string  `json:"donor_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Message      string  `json:"message"`
	Amount       float64 `json:"amount"`
	DonationType string  `json:"donation_type"`
}

// BetaVerifyBody is the POST body for /api/beta/verify.
type BetaVerifyBody struct {
	Agreed bool   `json:"agreed"`
	Code   string `json:"code"`
}
