package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/controllers"
)

// SetupRouter registers all routes.
func SetupRouter(router *gin.Engine, otpController *controllers.OTPController) {
	SetupOTPRoutes(router, otpController)

	// Health check / keep-alive target
	SetupPingRoute(router)
}

func SetupPingRoute(router *gin.Engine) {
	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "✅ Toshan Bakery Delivery OTP Server is alive.")
	})
}
