package payments

import (
	"stlouis-middleware/config"

	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// International donors (US/UK/Euro bank pages) pay by card through Stripe
// Checkout instead of Paystack. The configured price IDs are the only ones
// that can appear in a session.

type CreateCheckoutSessionResponse struct {
	SessionID string `json:"id"`
}

// https://stripe.com/docs/api/checkout/sessions/create
// query params:
// - ids=csv price IDs from stripe
// - m=either "s" or "p" for subscription (monthly giving) or one-time donation
func CreateCheckoutSession(conf config.Config, csvPriceIDs string, priceMode string) (CreateCheckoutSessionResponse, error) {
	data := CreateCheckoutSessionResponse{}

	sc := &client.API{}
	sc.Init(conf.Stripe.SecretKey, nil)

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		LineItems:  []*stripe.CheckoutSessionLineItemParams{},
		SuccessURL: stripe.String(conf.Stripe.SuccessURL),
		CancelURL:  stripe.String(conf.Stripe.CancelURL),
	}

	switch priceMode {
	case "p":
		params.Mode = stripe.String(string(stripe.CheckoutSessionModePayment))
	case "s":
		params.Mode = stripe.String(string(stripe.CheckoutSessionModeSubscription))
	default:
		return data, fmt.Errorf("priceMode query parameter was not set to either 'p' or 's'")
	}

	// populate the checkout with the requested price ids, if they're
	// configured. Otherwise, add all configured donation prices
	priceIDs := strings.Split(csvPriceIDs, ",")
	if csvPriceIDs == "" {
		priceIDs = conf.Stripe.DonationPriceIDs
	}
	for _, requested := range priceIDs {
		for _, configured := range conf.Stripe.DonationPriceIDs {
			if requested == configured {
				params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
					Price:    stripe.String(requested),
					Quantity: stripe.Int64(1),
				})
				break
			}
		}
	}
	if len(params.LineItems) == 0 {
		return data, fmt.Errorf("no configured donation prices matched ids %v", csvPriceIDs)
	}

	session, err := sc.CheckoutSessions.New(params)
	if err != nil {
		return data, fmt.Errorf("session.New: %v", err.Error())
	}

	data.SessionID = session.ID
	return data, nil
}
