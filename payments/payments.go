package payments

import (
	"stlouis-middleware/config"
	"stlouis-middleware/models"
	"stlouis-middleware/validate"

	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the Paystack REST API root.
	DefaultBaseURL = "https://api.paystack.co"

	// SchoolName and DonationPurpose are injected into every transaction's
	// metadata so the gateway dashboard is populated consistently even when
	// the caller omits detail.
	SchoolName      = "St. Louis Demonstration JHS"
	DonationPurpose = "School Development Fund"

	// DefaultDonationType is used when the caller doesn't pick one.
	DefaultDonationType = "General Donation"
)

// ValidationError means caller-supplied data failed a local precondition.
// It is always detected before any network call and is recoverable by the
// user correcting input, so it's never logged as a system fault.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Field, e.Reason)
}

// GatewayError means the payment provider returned a non-success response or
// the network call failed. The provider detail is for logs; user-facing
// surfaces should show a short retryable summary instead.
type GatewayError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %v failed (status %v): %v", e.Op, e.StatusCode, e.Message)
}

// Client wraps the Paystack transaction API. All calls carry the secret key
// as a bearer token, so this must only ever run server-side.
type Client struct {
	BaseURL     string
	Prefix      string
	CallbackURL string

	secretKey string
	publicKey string
	hc        *http.Client

	mu         sync.Mutex
	lastMillis int64
	now        func() time.Time
}

// NewClient builds a gateway client from config. A missing secret key is a
// configuration error, mirroring the frontend service that refused to start
// without one.
func NewClient(conf config.Config) (*Client, error) {
	if conf.Paystack.SecretKey == "" {
		return nil, fmt.Errorf("paystack secret key is not configured")
	}
	prefix := conf.Paystack.ReferencePrefix
	if prefix == "" {
		prefix = "STLOUIS"
	}
	c := &Client{
		BaseURL:     DefaultBaseURL,
		Prefix:      prefix,
		CallbackURL: conf.Paystack.CallbackURL,
		secretKey:   conf.Paystack.SecretKey,
		publicKey:   conf.Paystack.PublicKey,
		hc: &http.Client{
			Timeout: time.Second * 10,
		},
		now: time.Now,
	}
	mode := "TEST"
	if c.ProductionMode() {
		mode = "PRODUCTION"
	}
	log.Printf("paystack client initialized in %v mode", mode)
	return c, nil
}

// PublicKey returns the publishable key for frontend usage.
func (c *Client) PublicKey() string {
	return c.publicKey
}

// ProductionMode reports whether the configured secret key is a live key.
func (c *Client) ProductionMode() bool {
	return strings.HasPrefix(c.secretKey, "sk_live_")
}

// MinorUnits converts an amount in major currency units (Cedis) to minor
// units (pesewas). The multiply-and-round step goes through the decimal
// string representation with integer arithmetic only, so amounts like 0.1
// or 1.005 convert exactly with no float drift. Rounds half up.
func MinorUnits(amount float64) int64 {
	return minorUnitsFromString(strconv.FormatFloat(amount, 'f', -1, 64))
}

func minorUnitsFromString(s string) int64 {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	whole, _ := strconv.ParseInt(intPart, 10, 64)
	minor := whole * 100

	// first two fractional digits are pesewas, the third decides rounding
	for len(fracPart) < 3 {
		fracPart += "0"
	}
	cents, _ := strconv.ParseInt(fracPart[:2], 10, 64)
	minor += cents
	if fracPart[2] >= '5' {
		minor++
	}
	if neg {
		return -minor
	}
	return minor
}

// GenerateReference produces a transaction reference of the form
// PREFIX_<unixMillis>_<random 0-999>. The millisecond component is forced
// strictly monotonic per process so references generated back to back in
// the same millisecond can't collide.
func (c *Client) GenerateReference() string {
	c.mu.Lock()
	millis := c.now().UnixNano() / int64(time.Millisecond)
	if millis <= c.lastMillis {
		millis = c.lastMillis + 1
	}
	c.lastMillis = millis
	c.mu.Unlock()
	return fmt.Sprintf("%v_%v_%v", c.Prefix, millis, rand.Intn(1000))
}

// initializePayload is the wire shape for POST /transaction/initialize.
// Amount is in minor units per the provider contract.
type initializePayload struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Currency    string                 `json:"currency"`
	Reference   string                 `json:"reference"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    models.PaymentMetadata `json:"metadata"`
}

type initializeResponse struct {
	Status  bool                  `json:"status"`
	Message string                `json:"message"`
	Data    models.PaymentSession `json:"data"`
}

// InitializePayment validates the request locally, shapes it for the
// provider and creates a transaction. On success the returned session's
// AuthorizationURL is where the browser should be sent; this client never
// performs navigation itself.
func (c *Client) InitializePayment(ctx context.Context, req models.PaymentRequest) (session models.PaymentSession, err error) {
	if !validate.Email(req.Email) {
		return session, &ValidationError{Field: "email", Reason: "please provide a valid email address"}
	}
	if !validate.Amount(req.Amount) {
		return session, &ValidationError{Field: "amount", Reason: "please provide a valid amount"}
	}
	if req.Metadata.Phone != "" && !validate.GhanaPhone(req.Metadata.Phone) {
		return session, &ValidationError{Field: "phone", Reason: "please provide a valid Ghana phone number"}
	}

	reference := req.Reference
	if reference == "" {
		reference = c.GenerateReference()
	}
	currency := req.Currency
	if currency == "" {
		currency = "GHS"
	}
	callbackURL := req.CallbackURL
	if callbackURL == "" {
		callbackURL = c.CallbackURL
	}
	donationType := req.Metadata.DonationType
	if donationType == "" {
		donationType = DefaultDonationType
	}

	metadata := req.Metadata
	metadata.SchoolName = SchoolName
	metadata.DonationPurpose = DonationPurpose
	metadata.DonationType = donationType
	// school fields go first so the dashboard is always populated
	// consistently, then whatever the caller supplied
	metadata.CustomFields = append([]models.CustomField{
		{
			DisplayName:  "School Name",
			VariableName: "school_name",
			Value:        SchoolName,
		},
		{
			DisplayName:  "Donation Type",
			VariableName: "donation_type",
			Value:        donationType,
		},
	}, req.Metadata.CustomFields...)

	payload := initializePayload{
		Email:       req.Email,
		Amount:      MinorUnits(req.Amount),
		Currency:    currency,
		Reference:   reference,
		CallbackURL: callbackURL,
		Metadata:    metadata,
	}

	var resp initializeResponse
	err = c.post(ctx, "/transaction/initialize", payload, &resp)
	if err != nil {
		return session, err
	}
	if !resp.Status {
		return session, &GatewayError{
			Op:         "initialize",
			StatusCode: http.StatusOK,
			Message:    resp.Message,
		}
	}
	return resp.Data, nil
}

// verifyResponse is the wire shape for GET /transaction/verify/{reference}.
type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		PaidAt    string `json:"paid_at"`
		Channel   string `json:"channel"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// VerifyPayment re-fetches a transaction's status by reference. Pure read:
// no retries, no caching.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (result models.PaymentVerificationResult, err error) {
	var resp verifyResponse
	err = c.get(ctx, "/transaction/verify/"+url.PathEscape(reference), &resp)
	if err != nil {
		return result, err
	}
	if !resp.Status {
		return result, &GatewayError{
			Op:         "verify",
			StatusCode: http.StatusOK,
			Message:    resp.Message,
		}
	}
	return models.PaymentVerificationResult{
		Reference:     resp.Data.Reference,
		Status:        normalizeStatus(resp.Data.Status),
		AmountMinor:   resp.Data.Amount,
		Currency:      resp.Data.Currency,
		PaidAt:        resp.Data.PaidAt,
		Channel:       resp.Data.Channel,
		CustomerEmail: resp.Data.Customer.Email,
	}, nil
}

func normalizeStatus(status string) string {
	switch status {
	case "success":
		return "succeeded"
	case "failed", "abandoned":
		return "failed"
	default:
		return "pending"
	}
}

// ListTransactionsParams filters the gateway's transaction listing.
type ListTransactionsParams struct {
	PerPage int
	Page    int
	Status  string // failed, success or abandoned
	From    string
	To      string
}

type listResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    []struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		PaidAt    string `json:"paid_at"`
		Channel   string `json:"channel"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// ListTransactions fetches past transactions from the gateway.
func (c *Client) ListTransactions(ctx context.Context, params ListTransactionsParams) (transactions []models.TransactionSummary, err error) {
	q := url.Values{}
	if params.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(params.PerPage))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.From != "" {
		q.Set("from", params.From)
	}
	if params.To != "" {
		q.Set("to", params.To)
	}
	path := "/transaction"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp listResponse
	err = c.get(ctx, path, &resp)
	if err != nil {
		return transactions, err
	}
	if !resp.Status {
		return transactions, &GatewayError{
			Op:         "list",
			StatusCode: http.StatusOK,
			Message:    resp.Message,
		}
	}
	for _, tx := range resp.Data {
		transactions = append(transactions, models.TransactionSummary{
			Reference:     tx.Reference,
			Status:        normalizeStatus(tx.Status),
			AmountMinor:   tx.Amount,
			Currency:      tx.Currency,
			PaidAt:        tx.PaidAt,
			Channel:       tx.Channel,
			CustomerEmail: tx.Customer.Email,
		})
	}
	return transactions, nil
}

// pagePayload is the wire shape for POST /page.
type pagePayload struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Amount       int64             `json:"amount,omitempty"`
	Slug         string            `json:"slug,omitempty"`
	RedirectURL  string            `json:"redirect_url,omitempty"`
	Currency     string            `json:"currency"`
	CustomFields []pageCustomField `json:"custom_fields"`
}

type pageCustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Type         string `json:"type"`
	Required     bool   `json:"required"`
}

type pageResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"data"`
}

// CreatePaymentPage creates a reusable hosted donation page with the
// standard donor field set.
func (c *Client) CreatePaymentPage(ctx context.Context, page models.PaymentPage) (slug string, err error) {
	payload := pagePayload{
		Name:        page.Name,
		Description: page.Description,
		Slug:        page.Slug,
		RedirectURL: page.RedirectURL,
		Currency:    "GHS",
		CustomFields: []pageCustomField{
			{DisplayName: "Full Name", VariableName: "full_name", Type: "text", Required: true},
			{DisplayName: "Phone Number", VariableName: "phone_number", Type: "phone", Required: false},
			{DisplayName: "Message (Optional)", VariableName: "message", Type: "text", Required: false},
		},
	}
	if page.Amount > 0 {
		payload.Amount = MinorUnits(page.Amount)
	}
	if payload.RedirectURL == "" {
		payload.RedirectURL = c.CallbackURL
	}

	var resp pageResponse
	err = c.post(ctx, "/page", payload, &resp)
	if err != nil {
		return "", err
	}
	if !resp.Status {
		return "", &GatewayError{
			Op:         "page",
			StatusCode: http.StatusOK,
			Message:    resp.Message,
		}
	}
	return resp.Data.Slug, nil
}

// FormatAmount renders a major-unit amount for display.
func FormatAmount(amount float64, currency string) string {
	symbol := currency
	if currency == "" || currency == "GHS" {
		symbol = "GH₵"
	}
	return fmt.Sprintf("%v%.2f", symbol, amount)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %v payload: %v", path, err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %v request: %v", path, err.Error())
	}
	return c.do(req, path, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build %v request: %v", path, err.Error())
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return &GatewayError{Op: path, StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return &GatewayError{Op: path, StatusCode: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// keep the provider's message in the logs for diagnostics; callers
		// surface only a short summary to end users
		log.Printf("paystack %v returned status %v: %v", path, resp.StatusCode, string(body))
		return &GatewayError{
			Op:         path,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %v", resp.StatusCode),
		}
	}
	err = json.Unmarshal(body, out)
	if err != nil {
		return &GatewayError{
			Op:         path,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to decode response: %v", err.Error()),
		}
	}
	return nil
}
