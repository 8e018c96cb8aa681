package main

import (
	"stlouis-middleware/access"
	"stlouis-middleware/beta"
	"stlouis-middleware/config"
	"stlouis-middleware/imagekit"
	"stlouis-middleware/payments"
	"stlouis-middleware/routes"

	"fmt"
	"log"

	"github.com/gin-gonic/gin"
)

func buildStore(conf config.Config) access.Store {
	switch conf.Storage.Driver {
	case "postgres":
		return access.NewPostgresStore(conf.Storage)
	case "sqlite":
		path := conf.Storage.SQLitePath
		if path == "" {
			path = "beta_state.db"
		}
		return access.NewSQLiteStore(path)
	default:
		log.Printf("no storage driver configured, beta access will not survive restarts")
		return access.NewMemoryStore()
	}
}

func main() {
	conf, err := config.LoadConfigYaml()
	if err != nil {
		log.Fatalf("failed to load config: %v", err.Error())
	}

	pay, err := payments.NewClient(conf)
	if err != nil {
		log.Fatalf("failed to initialize payment gateway client: %v", err.Error())
	}

	gate := access.NewGate(buildStore(conf))
	verifier := beta.NewVerifier(gate, func() {
		log.Printf("beta access granted")
	})

	ik := imagekit.NewClient(conf.ImageKit.PrivateKey)
	if conf.ImageKit.PrivateKey == "" {
		log.Printf("imagekit private key not configured, /api/imagekit-files will return 500")
	}

	// start up the api server
	r := gin.Default()
	r.Use(routes.RequestID())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.OPTIONS("/api/donations/initialize", func(c *gin.Context) {
		c.Data(200, "text/plain", []byte("OK"))
	})
	r.POST("/api/donations/initialize", func(c *gin.Context) {
		routes.PostDonationInitialize(c, pay)
	})
	r.GET("/api/donations/verify/:reference", func(c *gin.Context) {
		routes.GetDonationVerify(c, pay)
	})

	r.OPTIONS("/api/create-checkout-session", func(c *gin.Context) {
		c.Data(200, "text/plain", []byte("OK"))
	})
	r.POST("/api/create-checkout-session", func(c *gin.Context) {
		routes.PostCheckoutSession(c, conf)
	})

	r.GET("/api/beta/status", func(c *gin.Context) {
		routes.GetBetaStatus(c, gate)
	})
	r.OPTIONS("/api/beta/verify", func(c *gin.Context) {
		c.Data(200, "text/plain", []byte("OK"))
	})
	r.POST("/api/beta/verify", func(c *gin.Context) {
		routes.PostBetaVerify(c, verifier)
	})
	r.POST("/api/beta/revoke", func(c *gin.Context) {
		routes.PostBetaRevoke(c, gate)
	})

	r.GET("/api/device", func(c *gin.Context) {
		routes.GetDevice(c)
	})

	r.OPTIONS("/api/imagekit-files", func(c *gin.Context) {
		c.Data(200, "text/plain", []byte("OK"))
	})
	r.GET("/api/imagekit-files", func(c *gin.Context) {
		routes.GetImageKitFiles(c, ik)
	})
	r.GET("/api/test-env", func(c *gin.Context) {
		routes.GetTestEnv(c, conf)
	})

	err = r.Run(
		fmt.Sprintf(
			"%v:%v",
			conf.Global.BindAddr,
			conf.Global.BindPort,
		),
	)
	if err != nil {
		log.Fatalf("error running gin: %v", err.Error())
	}
}
