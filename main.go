package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/config"
	"github.com/uncountedbug0615/delivery-app-otp-verifier/controllers"
	"github.com/uncountedbug0615/delivery-app-otp-verifier/routes"
	"github.com/uncountedbug0615/delivery-app-otp-verifier/services"
)

func main() {
	cfg := config.LoadConfig()
	config.InitDB(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Stores ---
	otpStore := services.NewMongoOTPStore(config.DB)
	orderStore := services.NewMongoOrderStore(config.DB)
	deviceStore := services.NewMongoDeviceStore(config.DB)

	// --- Services ---
	emailService := services.NewEmailService()
	otpService := services.NewOTPService(otpStore, orderStore, emailService)

	// --- Controllers ---
	otpController := controllers.NewOTPController(otpService)

	// New-order watcher: without Firebase credentials the server still
	// serves OTP traffic, only admin pushes are disabled.
	pushService, err := services.NewFCMService(ctx, cfg)
	if err != nil {
		log.Printf("Firebase init failed, admin push disabled: %v", err)
	} else {
		watcher := services.NewOrderWatcher(orderStore, deviceStore, pushService, cfg.WatchInterval)
		go watcher.Start(ctx)
	}

	if cfg.SelfPingURL != "" {
		go services.SelfPing(ctx, cfg.SelfPingURL, 5*time.Minute)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRouter(router, otpController)

	log.Printf("✅ OTP server running on port %s", cfg.AppPort)
	if err := router.Run(":" + cfg.AppPort); err != nil {
		log.Fatalf("Cannot start server: %v", err)
	}
}
