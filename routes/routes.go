package routes

import (
	"stlouis-middleware/access"
	"stlouis-middleware/beta"
	"stlouis-middleware/config"
	"stlouis-middleware/device"
	"stlouis-middleware/donate"
	"stlouis-middleware/helpers"
	"stlouis-middleware/imagekit"
	"stlouis-middleware/models"
	"stlouis-middleware/payments"

	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thanhpk/randstr"
)

// RequestID tags every request with a short hex id for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := randstr.Hex(8)
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		log.Printf("[%v] %v %v", id, c.Request.Method, c.Request.URL.Path)
		c.Next()
	}
}

// PostDonationInitialize runs a donation submission through the form
// controller and responds with the gateway's authorization URL. The
// frontend performs the actual navigation.
func PostDonationInitialize(c *gin.Context, pay *payments.Client) {
	body := models.DonationBody{}
	err := c.ShouldBindJSON(&body)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid request body"})
		return
	}

	redirectURL := ""
	ctrl := donate.NewController(pay, func(url string) {
		redirectURL = url
	})
	ctrl.UpdateForm(donate.Form{
		DonorName:    body.DonorName,
		Email:        body.Email,
		Phone:        body.Phone,
		Message:      body.Message,
		Amount:       body.Amount,
		DonationType: body.DonationType,
	})
	if !ctrl.CanSubmit() {
		c.JSON(400, gin.H{"error": "please fill in all required fields"})
		return
	}

	err = ctrl.Submit(c.Request.Context())
	if err != nil {
		var vErr *payments.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(400, gin.H{"error": ctrl.Error()})
			return
		}
		c.JSON(502, gin.H{"error": ctrl.Error()})
		return
	}

	session := ctrl.Session()
	c.JSON(200, gin.H{
		"authorization_url": redirectURL,
		"access_code":       session.AccessCode,
		"reference":         session.Reference,
	})
}

// GetDonationVerify re-fetches a transaction's status by reference.
func GetDonationVerify(c *gin.Context, pay *payments.Client) {
	reference, ok := c.Params.Get("reference")
	if !ok || reference == "" {
		helpers.Simple404(c)
		return
	}
	result, err := pay.VerifyPayment(c.Request.Context(), reference)
	if err != nil {
		log.Printf("failed to verify reference %v: %v", reference, err.Error())
		c.JSON(502, gin.H{"error": "failed to verify payment, please contact support"})
		return
	}
	c.JSON(200, result)
}

// PostCheckoutSession creates a Stripe checkout session for international
// donations.
// query params:
// - ids=csv price IDs from stripe
// - m=either "s" or "p" for monthly or one-time donations
func PostCheckoutSession(c *gin.Context, conf config.Config) {
	data, err := payments.CreateCheckoutSession(conf, c.Query("ids"), c.Query("m"))
	if err != nil {
		log.Printf("failed to create checkout session: %v", err.Error())
		helpers.Simple500(c)
		return
	}
	c.JSON(200, data)
}

// GetBetaStatus reports the current access state plus remaining time.
func GetBetaStatus(c *gin.Context, gate *access.Gate) {
	remaining, ok := gate.Remaining()
	resp := gin.H{"has_access": ok}
	if ok {
		resp["remaining_seconds"] = int64(remaining.Seconds())
	}
	c.JSON(200, resp)
}

// PostBetaVerify runs the agreement and code steps in one request.
func PostBetaVerify(c *gin.Context, verifier *beta.Verifier) {
	body := models.BetaVerifyBody{}
	err := c.ShouldBindJSON(&body)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid request body"})
		return
	}

	err = verifier.SubmitAgreement(body.Agreed)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	err = verifier.SubmitCode(body.Code)
	if err != nil {
		c.JSON(403, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"granted": true})
}

// PostBetaRevoke clears the access record.
func PostBetaRevoke(c *gin.Context, gate *access.Gate) {
	gate.RevokeAccess()
	c.JSON(200, gin.H{"granted": false})
}

// GetDevice classifies the caller from its User-Agent header and reported
// viewport, returning layout hints alongside the profile.
func GetDevice(c *gin.Context) {
	width, _ := strconv.Atoi(c.Query("w"))
	height, _ := strconv.Atoi(c.Query("h"))
	isTouch := c.Query("touch") == "1" || c.Query("touch") == "true"

	profile := device.Classify(c.Request.UserAgent(), width, height, isTouch)
	resp := gin.H{
		"profile": profile,
		"padding": device.TabletPadding(profile),
	}
	if sizes, ok := device.TabletTextSizes(profile); ok {
		resp["text_sizes"] = sizes
	}
	c.JSON(200, resp)
}

// GetImageKitFiles proxies the ImageKit file listing, mapping upstream
// failures to the closest matching status.
func GetImageKitFiles(c *gin.Context, ik *imagekit.Client) {
	helpers.SetProxyCORS(c)

	folder := c.Query("folder")
	if folder == "" {
		c.JSON(400, gin.H{"error": "Folder parameter is required"})
		return
	}
	if ik == nil || ik.PrivateKey == "" {
		log.Printf("IMAGEKIT_PRIVATE_KEY is not set")
		c.JSON(500, gin.H{"error": "Server configuration error"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	files, err := ik.ListFiles(c.Request.Context(), folder, limit, skip)
	if err != nil {
		var uErr *imagekit.UpstreamError
		if errors.As(err, &uErr) {
			c.JSON(uErr.StatusCode, gin.H{"error": uErr.Message, "details": uErr.Details})
			return
		}
		helpers.Simple500(c)
		return
	}
	c.Data(200, "application/json", files)
}

// GetTestEnv reports whether the imagekit key is configured, for local
// debugging only. Never expose this route in a production deployment.
func GetTestEnv(c *gin.Context, conf config.Config) {
	helpers.SetProxyCORS(c)

	key := conf.ImageKit.PrivateKey
	prefix := "none"
	if key != "" {
		n := 10
		if len(key) < n {
			n = len(key)
		}
		prefix = key[:n] + "..."
	}
	c.JSON(200, gin.H{
		"hasPrivateKey": key != "",
		"keyLength":     len(key),
		"keyPrefix":     prefix,
	})
}
